package communication

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"feud/engine"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

type ObserverOption func(o *Observer)

// ReadOnly disables move submission, for controllers whose moves arrive from
// elsewhere (a game server or a network client).
func ReadOnly() ObserverOption {
	return func(o *Observer) {
		o.readOnly = true
	}
}

// Observer serves a controller's game over HTTP and streams its events over
// a websocket.
type Observer struct {
	controller *engine.Controller
	hub        *hub
	readOnly   bool
	router     chi.Router
}

type movePayload struct {
	Move string `json:"move"`
}

func NewObserver(controller *engine.Controller, options ...ObserverOption) *Observer {
	o := &Observer{
		controller: controller,
		hub:        newHub(),
	}
	for _, option := range options {
		option(o)
	}
	controller.Subscribe(o.hub.publish)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Get("/api/board", o.handleGetBoard)
	r.Post("/api/move", o.handlePostMove)
	r.Get("/ws", o.serveWS)
	o.router = r
	return o
}

func (o *Observer) Handler() http.Handler {
	return o.router
}

// ListenAndServe serves until ctx is done.
func (o *Observer) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: o.router}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Info().Msgf("observer listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (o *Observer) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, o.controller.Board().Snapshot())
}

func (o *Observer) handlePostMove(w http.ResponseWriter, r *http.Request) {
	if o.readOnly {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "moves are not accepted here"})
		return
	}
	var payload movePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}

	select {
	case err := <-o.controller.Submit(payload.Move):
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
	case <-r.Context().Done():
		return
	}
	writeJSON(w, http.StatusOK, o.controller.Board().Snapshot())
}

func (o *Observer) serveWS(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &wsClient{send: make(chan []byte, 64)}
	o.hub.register(client, func() wsMessage {
		return wsMessage{Type: "board", Payload: mustMarshal(o.controller.Board().Snapshot())}
	})

	go func() {
		defer conn.Close()
		if err := writeWSWithHeartbeat(conn, client.send); err != nil {
			log.Debug().Err(err).Msg("websocket write failed")
		}
	}()

	// Drain client frames to notice disconnects
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			o.hub.unregister(client)
			return
		}
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("request_id", middleware.GetReqID(r.Context())).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msgf("%s %s", r.Method, r.URL.Path)
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
