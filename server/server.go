package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/notargets/PlateFEM/fem"
	"github.com/notargets/PlateFEM/mesh"
	log "github.com/sirupsen/logrus"
)

type Server struct {
	addr     string
	upgrader websocket.Upgrader
	defaults fem.PlateConfig
	rule     mesh.FixedNodeRule
	log      log.FieldLogger
}

type Option func(s *Server)

// WithDefaults sets the plate used for fields a mesh request leaves out
func WithDefaults(cfg fem.PlateConfig) Option {
	return func(s *Server) { s.defaults = cfg }
}

func WithFixedNodeRule(rule mesh.FixedNodeRule) Option {
	return func(s *Server) {
		if rule != nil {
			s.rule = rule
		}
	}
}

func WithLogger(logger log.FieldLogger) Option {
	return func(s *Server) {
		if logger != nil {
			s.log = logger
		}
	}
}

func NewServer(addr string, upgrader websocket.Upgrader, opts ...Option) *Server {
	s := &Server{
		addr:     addr,
		upgrader: upgrader,
		rule:     mesh.DefaultFixedNodeRule,
		log:      log.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// serveWs handles websocket requests from the peer.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("upgrade")
		return
	}
	defer conn.Close()

	hub := NewHub(s, conn)
	hub.log.WithField("remote", r.RemoteAddr).Info("client connected")
	done := make(chan struct{})
	go hub.handleRequest()
	go hub.handleResponse(done)
	for {
		var msg Msg
		if err = conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				hub.log.WithError(err).Warn("read")
			}
			break
		}
		hub.msg <- msg
	}
	close(hub.msg)
	<-done
	hub.log.Info("client disconnected")
}

// Handler routes /ws to the websocket endpoint
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWs)
	return mux
}

// Serve listens until ctx is cancelled
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdown)
	}()
	s.log.WithField("addr", s.addr).Info("serving websocket on /ws")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
