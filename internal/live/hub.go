// Package live streams run progress to websocket clients.
package live

import (
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/thelolagemann/shootout/internal/shootout"
	"github.com/thelolagemann/shootout/pkg/log"
)

const (
	// historySize is how many events are replayed to a client
	// joining mid run.
	historySize = 512
	writeWait   = 5 * time.Second
)

// Hub fans events out to every connected client. Clients that
// cannot keep up are dropped.
type Hub struct {
	log log.Logger

	clients    map[*client]struct{}
	history    [][]byte
	broadcast  chan []byte
	register   chan *client
	unregister chan *client
	done       chan struct{}
	closeOnce  sync.Once
	running    atomic.Bool
	stopped    chan struct{}
}

var _ shootout.EventSink = (*Hub)(nil)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024 * 16,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// NewHub returns a Hub. Run must be started before clients
// connect.
func NewHub(l log.Logger) *Hub {
	return &Hub{
		log:        l,
		clients:    make(map[*client]struct{}),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
		stopped:    make(chan struct{}),
	}
}

// Publish queues e for every client. It never blocks; events are
// dropped if the hub is not keeping up.
func (h *Hub) Publish(e shootout.Event) {
	msg, err := json.Marshal(e)
	if err != nil {
		h.log.Errorf("live: encoding event: %v", err)
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		h.log.Debugf("live: dropped %s event", e.Type)
	}
}

// Run delivers events until Close is called.
func (h *Hub) Run() {
	h.running.Store(true)
	defer close(h.stopped)
	for {
		select {
		case c := <-h.register:
			h.clients[c] = struct{}{}
			for _, msg := range h.history {
				h.send(c, msg)
			}
		case c := <-h.unregister:
			h.drop(c)
		case msg := <-h.broadcast:
			h.deliver(msg)
		case <-h.done:
			h.flush()
			return
		}
	}
}

func (h *Hub) deliver(msg []byte) {
	h.history = append(h.history, msg)
	if len(h.history) > historySize {
		h.history = h.history[1:]
	}
	for c := range h.clients {
		h.send(c, msg)
	}
}

// flush delivers the events still queued when Close was called and
// disconnects every client once its writer has sent them.
func (h *Hub) flush() {
	for pending := true; pending; {
		select {
		case msg := <-h.broadcast:
			h.deliver(msg)
		default:
			pending = false
		}
	}

	var flushed []chan struct{}
	for c := range h.clients {
		flushed = append(flushed, c.flushed)
		h.drop(c)
	}
	timeout := time.After(writeWait)
	for _, f := range flushed {
		select {
		case <-f:
		case <-timeout:
			h.log.Warnf("live: %d clients did not drain in %s", len(flushed), writeWait)
			return
		}
	}
}

func (h *Hub) send(c *client, msg []byte) {
	select {
	case c.send <- msg:
	default:
		h.log.Warnf("live: dropping slow client %s", c.conn.RemoteAddr())
		h.drop(c)
	}
}

func (h *Hub) drop(c *client) {
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// Close stops Run and disconnects every client. Events published
// before Close are still sent to connected clients.
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
	if h.running.Load() {
		<-h.stopped
	}
}

// ServeHTTP upgrades the request to a websocket and registers the
// connection as a client.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnf("live: upgrading %s: %v", r.RemoteAddr, err)
		return
	}
	c := &client{hub: h, conn: conn, send: make(chan []byte, 64), flushed: make(chan struct{})}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}
	go c.writePump()
	go c.readPump()
}
