package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/matryer/way"
)

const shutdownTimeout = 5 * time.Second

// Handler returns the spectator routes:
//
//	GET /ws              websocket feed, ?session= filters one player
//	GET /board           latest board of every session as JSON
//	GET /board/:session  latest board of one session as plain text
func (h *Hub) Handler() http.Handler {
	r := way.NewRouter()
	r.HandleFunc("GET", "/ws", func(w http.ResponseWriter, req *http.Request) {
		h.ServeWS(w, req, req.URL.Query().Get("session"))
	})
	r.HandleFunc("GET", "/board", h.handleBoards)
	r.HandleFunc("GET", "/board/:session", h.handleBoard)
	return r
}

func (h *Hub) handleBoards(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.Latest()); err != nil {
		h.logger.Warn("cannot encode boards", "error", err)
	}
}

func (h *Hub) handleBoard(w http.ResponseWriter, r *http.Request) {
	session := way.Param(r.Context(), "session")

	h.mu.RLock()
	ev, ok := h.latest[session]
	h.mu.RUnlock()
	if !ok {
		http.Error(w, "no such session", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(ev.Board))
}

// ListenAndServe runs the hub and serves its routes on addr until ctx is
// done.
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go h.Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		h.logger.Info("spectator server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		h.logger.Info("stopping spectator server")
		return srv.Shutdown(shutdownCtx)
	}
}
