package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/rocketscienceinc/tictactoe-server/internal/entity"
)

const (
	shutdownTimeout = 5 * time.Second
	maxBodySize     = 1 << 10
)

type gameManager interface {
	StartNewGame(ctx context.Context) error
	JoinAsPlayer1(ctx context.Context, mark entity.Mark) (*entity.Game, error)
	JoinAsPlayer2(ctx context.Context) (*entity.Game, error)
	SubmitMove(ctx context.Context, playerID, row, col int) (entity.Message, error)
	Snapshot() *entity.Game
}

type observerHub interface {
	ServeWS(w http.ResponseWriter, r *http.Request, initial *entity.Game)
}

type Server struct {
	logger *slog.Logger

	manager gameManager
	hub     observerHub

	router *mux.Router
}

func NewServer(logger *slog.Logger, manager gameManager, hub observerHub, staticDir string) *Server {
	server := &Server{
		logger:  logger.With("component", "rest"),
		manager: manager,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	server.setupRoutes(staticDir)

	return server
}

func (that *Server) setupRoutes(staticDir string) {
	that.router.HandleFunc("/ping", that.pingHandler).Methods(http.MethodGet)
	that.router.HandleFunc("/echo", that.echoHandler).Methods(http.MethodPost)

	that.router.HandleFunc("/newgame", that.newGameHandler).Methods(http.MethodGet)
	that.router.HandleFunc("/startgame", that.startGameHandler).Methods(http.MethodPost)
	that.router.HandleFunc("/joingame", that.joinGameHandler).Methods(http.MethodGet)
	that.router.HandleFunc("/move/{playerId}", that.moveHandler).Methods(http.MethodPost)
	that.router.HandleFunc("/getgameboard", that.gameBoardHandler).Methods(http.MethodGet)

	that.router.HandleFunc("/gameboard", that.observeHandler)

	if staticDir != "" {
		that.router.PathPrefix("/").Handler(http.FileServer(http.Dir(staticDir)))
	}
}

func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	that.router.ServeHTTP(w, r)
}

// Start - serves until ctx is cancelled, then shuts down gracefully.
func (that *Server) Start(ctx context.Context, port string) error {
	log := that.logger.With("method", "Start")

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", "port", port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	log.Info("http server stopped")

	return nil
}
