package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gorilla/mux"

	"github.com/rocketscienceinc/tictactoe-server/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-server/internal/entity"
)

const (
	boardPage        = "/tictactoe.html"
	playerTwoPageURL = boardPage + "?p=2"
)

func (that *Server) newGameHandler(w http.ResponseWriter, r *http.Request) {
	if err := that.manager.StartNewGame(r.Context()); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to start new game")
		return
	}

	http.Redirect(w, r, boardPage, http.StatusFound)
}

// startGameHandler expects a form body like "type=X".
func (that *Server) startGameHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "startGameHandler")

	form, raw, err := readForm(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "unreadable body")
		return
	}

	value := form.Get("type")
	if value == "" && raw != "" {
		// bare bodies like "X" are accepted too
		value = lastCharacter(raw)
	}

	mark, err := entity.ParseMark(strings.ToUpper(value))
	if err != nil {
		log.Debug("invalid mark", "value", value)
		respondError(w, http.StatusBadRequest, "mark must be X or O")
		return
	}

	game, err := that.manager.JoinAsPlayer1(r.Context(), mark)
	if err != nil {
		respondJoinError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, game)
}

func (that *Server) joinGameHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := that.manager.JoinAsPlayer2(r.Context()); err != nil {
		respondJoinError(w, err)
		return
	}

	http.Redirect(w, r, playerTwoPageURL, http.StatusFound)
}

// moveHandler expects "x=<row>&y=<col>". Malformed input is answered with the invalid-move
// Message, like any other rejected move.
func (that *Server) moveHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "moveHandler")

	playerID, err := strconv.Atoi(mux.Vars(r)["playerId"])
	if err != nil {
		respondJSON(w, http.StatusOK, entity.InvalidMoveMessage())
		return
	}

	form, _, err := readForm(r)
	if err != nil {
		respondJSON(w, http.StatusOK, entity.InvalidMoveMessage())
		return
	}

	row, rowErr := strconv.Atoi(form.Get("x"))
	col, colErr := strconv.Atoi(form.Get("y"))
	if rowErr != nil || colErr != nil {
		log.Debug("malformed move", "x", form.Get("x"), "y", form.Get("y"))
		respondJSON(w, http.StatusOK, entity.InvalidMoveMessage())
		return
	}

	message, err := that.manager.SubmitMove(r.Context(), playerID, row, col)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "move could not be saved")
		return
	}

	respondJSON(w, http.StatusOK, message)
}

func (that *Server) gameBoardHandler(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, that.manager.Snapshot())
}

func (that *Server) observeHandler(w http.ResponseWriter, r *http.Request) {
	that.hub.ServeWS(w, r, that.manager.Snapshot())
}

func lastCharacter(raw string) string {
	_, size := utf8.DecodeLastRuneInString(raw)

	return raw[len(raw)-size:]
}

func readForm(r *http.Request) (url.Values, string, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return nil, "", err
	}

	raw := strings.TrimSpace(string(body))

	form, err := url.ParseQuery(raw)
	if err != nil {
		return url.Values{}, raw, nil
	}

	return form, raw, nil
}

func respondJoinError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperror.ErrInvalidMark):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperror.ErrPlayerAlreadyJoined), errors.Is(err, apperror.ErrPlayerOneMissing):
		respondError(w, http.StatusConflict, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "failed to join game")
	}
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
