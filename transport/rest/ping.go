package rest

import (
	"io"
	"net/http"
)

func (that *Server) pingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Warn("failed to write pong", "error", err)
	}
}

// echoHandler writes the request body back, used by clients to check connectivity.
func (that *Server) echoHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err = w.Write(body); err != nil {
		that.logger.Warn("failed to write echo", "error", err)
	}
}
