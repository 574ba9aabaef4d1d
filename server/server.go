package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/rustyeddy/tradesim/bot"
)

func init() {
	// Dashboards read money as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

type Options struct {
	// Origins allowed to open /ws. Empty means same host only; "*" allows any.
	AllowedOrigins []string
}

// Server exposes a Bot over HTTP and websockets.
type Server struct {
	bot      *bot.Bot
	hub      *Hub
	router   *mux.Router
	upgrader websocket.Upgrader
}

// New builds the router and subscribes the websocket hub to b.
func New(b *bot.Bot, opts Options) (*Server, error) {
	s := &Server{
		bot:    b,
		hub:    NewHub(),
		router: mux.NewRouter(),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     checkOrigin(opts.AllowedOrigins),
	}

	if err := b.Subscribe(bot.TopicSnapshot, s.hub.OnSnapshot); err != nil {
		return nil, err
	}
	if err := b.Subscribe(bot.TopicNotice, s.hub.OnNotice); err != nil {
		return nil, err
	}

	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := s.router
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.handleWS).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/snapshot", s.handleSnapshot).Methods(http.MethodGet)
	api.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)
	api.HandleFunc("/performance", s.handlePerformance).Methods(http.MethodGet)
	api.HandleFunc("/positions", s.handlePositions).Methods(http.MethodGet)
	api.HandleFunc("/trades", s.handleTrades).Methods(http.MethodGet)
	api.HandleFunc("/equity", s.handleEquity).Methods(http.MethodGet)
	api.HandleFunc("/strategies", s.handleStrategies).Methods(http.MethodGet)
	api.HandleFunc("/markets/{market}", s.handleMarket).Methods(http.MethodGet)
	api.HandleFunc("/bot/toggle", s.handleToggle).Methods(http.MethodPost)
	api.HandleFunc("/bot/mode", s.handleMode).Methods(http.MethodPut)
	api.HandleFunc("/settings", s.handleGetSettings).Methods(http.MethodGet)
	api.HandleFunc("/settings", s.handlePutSettings).Methods(http.MethodPut)
}

func (s *Server) Handler() http.Handler { return s.router }

// Clients reports how many websocket clients are connected.
func (s *Server) Clients() int { return s.hub.Len() }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// Close unsubscribes from the bot and disconnects websocket clients.
func (s *Server) Close() {
	if err := s.bot.Unsubscribe(bot.TopicSnapshot, s.hub.OnSnapshot); err != nil {
		log.WithError(err).Debug("unsubscribe snapshot")
	}
	if err := s.bot.Unsubscribe(bot.TopicNotice, s.hub.OnNotice); err != nil {
		log.WithError(err).Debug("unsubscribe notice")
	}
	s.hub.Close()
}

func checkOrigin(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 {
		return nil
	}
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || set[origin]
	}
}
