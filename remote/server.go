package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/pthm-cable/orbis/config"
	"github.com/pthm-cable/orbis/globe"
)

const (
	writeWait  = 2 * time.Second
	sendBuffer = 32
)

// Options configures the server.
type Options struct {
	CommandRate  float64 // commands per second per connection
	CommandBurst int
	QueueSize    int // commands buffered for the frame thread

	// Gatherer backs /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer
}

// OptionsFromConfig reads the remote section.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		CommandRate:  cfg.Remote.CommandRate,
		CommandBurst: cfg.Remote.CommandBurst,
		QueueSize:    cfg.Remote.QueueSize,
	}
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Server accepts websocket clients on /ws and serves /metrics.
type Server struct {
	opts     Options
	upgrader websocket.Upgrader
	commands chan Command

	mu      sync.Mutex
	clients map[*client]struct{}

	httpSrv *http.Server
	ln      net.Listener
}

// NewServer creates a server. Call Start to listen, or mount Handler.
func NewServer(opts Options) *Server {
	if opts.QueueSize < 1 {
		opts.QueueSize = 64
	}
	if opts.CommandBurst < 1 {
		opts.CommandBurst = 1
	}
	return &Server{
		opts: opts,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		commands: make(chan Command, opts.QueueSize),
		clients:  make(map[*client]struct{}),
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	if s.opts.Gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{}))
	}
	return mux
}

// Start listens on addr and serves in the background.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("remote listen %s: %w", addr, err)
	}
	s.ln = ln
	s.httpSrv = &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := s.httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("remote server stopped", "error", err)
		}
	}()
	slog.Info("remote control listening", "addr", ln.Addr().String())
	return nil
}

// Addr returns the listen address once started.
func (s *Server) Addr() string {
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// Commands delivers validated commands in arrival order.
func (s *Server) Commands() <-chan Command {
	return s.commands
}

// Drain applies every queued command without blocking. It returns the
// number applied.
func (s *Server) Drain(fn func(Command)) int {
	n := 0
	for {
		select {
		case cmd := <-s.commands:
			fn(cmd)
			n++
		default:
			return n
		}
	}
}

// Clients returns the number of connected clients.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Observe is a globe listener broadcasting ev to every client. Slow
// clients miss events rather than stall the frame.
func (s *Server) Observe(ev globe.Event) {
	s.broadcast(Message{Type: "event", Event: NewEventJSON(ev)})
}

func (s *Server) broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Warn("remote marshal failed", "error", err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		select {
		case c.send <- data:
		default:
		}
	}
}

// Shutdown closes every client and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	for c := range s.clients {
		c.conn.Close()
	}
	s.mu.Unlock()
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()
	slog.Info("remote client connected", "remote", r.RemoteAddr)

	done := make(chan struct{})
	go s.writePump(c, done)

	defer func() {
		s.mu.Lock()
		delete(s.clients, c)
		close(c.send)
		s.mu.Unlock()
		<-done
		conn.Close()
		slog.Info("remote client disconnected", "remote", r.RemoteAddr)
	}()

	limiter := rate.NewLimiter(rate.Limit(s.opts.CommandRate), s.opts.CommandBurst)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var cmd Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			s.reply(c, Message{Type: "error", Error: "malformed command"})
			continue
		}
		if !limiter.Allow() {
			s.reply(c, Message{Type: "error", Op: cmd.Op, Error: "rate limited"})
			continue
		}
		if err := cmd.Validate(); err != nil {
			s.reply(c, Message{Type: "error", Op: cmd.Op, Error: err.Error()})
			continue
		}
		select {
		case s.commands <- cmd:
			s.reply(c, Message{Type: "ack", Op: cmd.Op})
		default:
			s.reply(c, Message{Type: "error", Op: cmd.Op, Error: "queue full"})
		}
	}
}

func (s *Server) reply(c *client, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case c.send <- data:
	default:
	}
}

func (s *Server) writePump(c *client, done chan<- struct{}) {
	defer close(done)
	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			slog.Warn("remote write failed", "error", err)
			c.conn.Close()
			// Keep draining so the reader side can close the channel.
			for range c.send {
			}
			return
		}
	}
}
