package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/bob-yamaguchi/tex-shooter/logger"
)

const (
	writeWait       = 5 * time.Second
	shutdownTimeout = 3 * time.Second
)

// Requests whose Origin host differs from the Host header are refused.
var upgrader = websocket.Upgrader{}

// Server exposes the UI assets at / and the message socket at /ws.
type Server struct {
	app *Application
	log logger.Interface

	// mu serializes Handle across all connections.
	mu sync.Mutex

	// connMu guards conns and closed. handlers counts running socket loops.
	connMu   sync.Mutex
	conns    map[*websocket.Conn]struct{}
	closed   bool
	handlers sync.WaitGroup
}

func NewServer(app *Application, log logger.Interface) *Server {
	return &Server{app: app, log: log, conns: make(map[*websocket.Conn]struct{})}
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	if dir := s.app.opts.AssetsDir; dir != "" {
		mux.Handle("/", http.FileServer(http.Dir(dir)))
	}
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

// Run listens on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.log.Infof("ui listening on http://%s", ln.Addr())

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		// Shutdown leaves hijacked websocket connections alone.
		s.closeConns()
		if err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		<-errCh
		return nil
	case err := <-errCh:
		s.closeConns()
		return err
	}
}

// track registers conn for closeConns. It reports false once the server is
// shutting down.
func (s *Server) track(conn *websocket.Conn) bool {
	s.connMu.Lock()
	defer s.connMu.Unlock()
	if s.closed {
		return false
	}
	s.conns[conn] = struct{}{}
	s.handlers.Add(1)
	return true
}

func (s *Server) untrack(conn *websocket.Conn) {
	s.connMu.Lock()
	delete(s.conns, conn)
	s.connMu.Unlock()
	s.handlers.Done()
}

// closeConns closes every open socket and waits until no handler is left
// inside Handle.
func (s *Server) closeConns() {
	s.connMu.Lock()
	s.closed = true
	for conn := range s.conns {
		_ = conn.Close()
	}
	s.connMu.Unlock()
	s.handlers.Wait()
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warnf("ws upgrade failed: %s", err.Error())
		return
	}
	defer conn.Close()
	if !s.track(conn) {
		return
	}
	defer s.untrack(conn)
	s.log.Debugf("ws client connected from %s", r.RemoteAddr)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Warnf("ws read from %s: %s", r.RemoteAddr, err.Error())
			}
			return
		}

		calls := s.dispatch(data)
		for _, c := range calls {
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(c); err != nil {
				s.log.Warnf("ws write to %s: %s", r.RemoteAddr, err.Error())
				return
			}
		}
	}
}

func (s *Server) dispatch(data []byte) []Call {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		s.log.Warnf("malformed message: %s", err.Error())
		return []Call{errorCall("malformed message", err.Error())}
	}
	s.log.Debugf("message %q value=%q", msg.Name, msg.Value)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.app.Handle(msg)
}
