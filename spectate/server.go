// Package spectate streams rendered frames to local websocket viewers.
package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"torus-snake/game"
	"torus-snake/render"
)

const (
	clientQueue  = 16
	writeTimeout = 5 * time.Second
)

// Command is one draw call as sent to viewers.
type Command struct {
	Sprite   string `json:"sprite"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Rotation int    `json:"rotation"`
}

// Message is the JSON document sent for every frame.
type Message struct {
	Session  string    `json:"session"`
	Frame    uint64    `json:"frame"`
	Score    int       `json:"score"`
	Alive    bool      `json:"alive"`
	Commands []Command `json:"commands"`
}

func NewMessage(info game.FrameInfo) Message {
	cmds := make([]Command, 0, len(info.Commands))
	for _, c := range info.Commands {
		out := Command{X: c.Cell.X, Y: c.Cell.Y}
		switch c.Kind {
		case render.DrawWall:
			out.Sprite = "wall"
		default:
			out.Sprite = c.Sprite.String()
			out.Rotation = c.Rotation.Degrees()
		}
		cmds = append(cmds, out)
	}
	return Message{
		Session:  info.Session,
		Frame:    info.Frame,
		Score:    info.Score,
		Alive:    info.Alive,
		Commands: cmds,
	}
}

type client struct {
	id  uint64
	out chan []byte
}

// Server fans frames out to websocket clients on /ws and optionally serves
// Prometheus metrics on /metrics. Only loopback peers are accepted.
type Server struct {
	log      *slog.Logger
	upgrader websocket.Upgrader
	mux      *http.ServeMux

	mu      sync.Mutex
	clients map[uint64]*client
	nextID  atomic.Uint64
	dropped atomic.Uint64

	httpServer *http.Server
	listener   net.Listener
}

// NewServer builds the handlers. metrics may be nil.
func NewServer(metrics http.Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		log: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:    1024,
			WriteBufferSize:   16 * 1024,
			EnableCompression: true,
			CheckOrigin:       loopbackOrigin,
		},
		mux:     http.NewServeMux(),
		clients: make(map[uint64]*client),
	}
	s.mux.HandleFunc("/ws", s.handleWS)
	if metrics != nil {
		s.mux.Handle("/metrics", loopbackOnly(metrics))
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start listens on addr, which must resolve to a loopback interface.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("spectate listen: %w", err)
	}
	if tcp, ok := ln.Addr().(*net.TCPAddr); !ok || !tcp.IP.IsLoopback() {
		ln.Close()
		return fmt.Errorf("spectate: %s is not a loopback address", addr)
	}

	s.listener = ln
	s.httpServer = &http.Server{Handler: s.mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("spectate server stopped", "err", err)
		}
	}()
	s.log.Info("spectate server listening", "addr", ln.Addr().String())
	return nil
}

// Addr is the bound address once Start has succeeded.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// Observe queues the frame for every client. Clients whose queue is full skip it.
func (s *Server) Observe(info game.FrameInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.clients) == 0 {
		return
	}

	b, err := json.Marshal(NewMessage(info))
	if err != nil {
		s.log.Error("encode frame", "err", err)
		return
	}
	for _, c := range s.clients {
		select {
		case c.out <- b:
		default:
			s.dropped.Add(1)
		}
	}
}

func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Dropped counts frames skipped for slow clients
func (s *Server) Dropped() uint64 {
	return s.dropped.Load()
}

func (s *Server) register() *client {
	c := &client{id: s.nextID.Add(1), out: make(chan []byte, clientQueue)}
	s.mu.Lock()
	s.clients[c.id] = c
	s.mu.Unlock()
	return c
}

func (s *Server) unregister(c *client) {
	s.mu.Lock()
	delete(s.clients, c.id)
	s.mu.Unlock()
}

func (s *Server) handleWS(rw http.ResponseWriter, r *http.Request) {
	if !isLoopbackRemote(r.RemoteAddr) {
		http.Error(rw, "forbidden", http.StatusForbidden)
		return
	}

	conn, err := s.upgrader.Upgrade(rw, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	c := s.register()
	defer s.unregister(c)
	s.log.Info("spectator connected", "client", c.id, "remote", r.RemoteAddr)
	defer s.log.Info("spectator disconnected", "client", c.id)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	writeErr := make(chan error, 1)
	go func() {
		for {
			select {
			case <-ctx.Done():
				writeErr <- ctx.Err()
				return
			case b := <-c.out:
				_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
					writeErr <- err
					return
				}
			}
		}
	}()

	// Viewers only listen; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	cancel()
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"), time.Now().Add(time.Second))

	select {
	case <-writeErr:
	case <-time.After(500 * time.Millisecond):
	}
}

func loopbackOnly(h http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		if !isLoopbackRemote(r.RemoteAddr) {
			http.Error(rw, "forbidden", http.StatusForbidden)
			return
		}
		h.ServeHTTP(rw, r)
	})
}

// loopbackOrigin accepts non-browser clients (no Origin) and pages served from this machine.
func loopbackOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	host := u.Hostname()
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func isLoopbackRemote(remoteAddr string) bool {
	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}
	host = strings.TrimSuffix(strings.TrimPrefix(host, "["), "]")
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
