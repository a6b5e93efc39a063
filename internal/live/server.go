package live

import (
	"errors"
	"net"
	"net/http"
)

// Server serves a Hub on /events.
type Server struct {
	Hub  *Hub
	http *http.Server
	addr net.Addr
}

// Listen starts a Hub and serves it on addr.
func Listen(addr string, h *Hub) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.Handle("/events", h)

	s := &Server{Hub: h, http: &http.Server{Handler: mux}, addr: ln.Addr()}
	go h.Run()
	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			h.log.Errorf("live: serving %s: %v", addr, err)
		}
	}()
	h.log.Infof("streaming events on ws://%s/events", s.addr)
	return s, nil
}

// Addr is the address the server listens on.
func (s *Server) Addr() net.Addr { return s.addr }

// Close stops the server and disconnects every client.
func (s *Server) Close() error {
	s.Hub.Close()
	return s.http.Close()
}
