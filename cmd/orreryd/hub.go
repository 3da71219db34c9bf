package main

import (
	"net/http"
	"sync"
	"time"

	kitlog "github.com/go-kit/kit/log"
	"github.com/gorilla/websocket"

	"github.com/solarsim/orrery"
)

// bodyDesc is the static descriptor of one body, sent once per connection.
type bodyDesc struct {
	Name    string      `json:"name"`
	Radius  float64     `json:"radius"` // km
	Color   string      `json:"color"`
	Content string      `json:"content"`
	Static  bool        `json:"static"`
	Trace   [][]float64 `json:"trace"` // closed orbit polyline, km
}

// helloMsg carries the catalog descriptors and the display scale to a newly
// connected renderer.
type helloMsg struct {
	Type   string     `json:"type"`
	Scale  float64    `json:"scale"` // km per scene unit
	Bodies []bodyDesc `json:"bodies"`
}

// frameMsg is the per-frame state publication: simulated epoch plus every
// known body position in heliocentric ecliptic kilometers.
type frameMsg struct {
	Type   string               `json:"type"`
	Epoch  string               `json:"epoch"`
	JD     float64              `json:"jd"`
	Paused bool                 `json:"paused"`
	Rate   float64              `json:"rate"`
	Bodies map[string][]float64 `json:"bodies"`
}

// controlMsg is a renderer-to-daemon clock control: pause, resume, or rate.
type controlMsg struct {
	Op   string  `json:"op"`
	Rate float64 `json:"rate,omitempty"`
}

// hub fans frame updates out to every connected renderer and funnels their
// control messages back to the frame loop. It implements orrery.ScenePublisher:
// the registry writes positions into the current frame, the frame loop flushes
// it. PublishPosition and flush must only be called from the loop goroutine.
type hub struct {
	logger   kitlog.Logger
	upgrader websocket.Upgrader
	hello    helloMsg
	controls chan controlMsg

	// positions persists across frames so bodies published once (static
	// placements) stay in every subsequent frame.
	positions map[string][]float64

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func newHub(logger kitlog.Logger) *hub {
	return &hub{
		logger:    logger,
		upgrader:  websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		controls:  make(chan controlMsg, 16),
		positions: make(map[string][]float64),
		clients:   make(map[*websocket.Conn]bool),
	}
}

// setHello builds the static catalog announcement from the registry traces.
func (h *hub) setHello(catalog *orrery.Catalog, traces map[string][][]float64, scale float64) {
	bodies := make([]bodyDesc, 0, catalog.Len())
	for _, b := range catalog.Bodies() {
		bodies = append(bodies, bodyDesc{
			Name:    b.Name,
			Radius:  b.Radius,
			Color:   b.Color,
			Content: b.ContentID,
			Static:  !b.HasElements(),
			Trace:   traces[b.Name],
		})
	}
	h.hello = helloMsg{Type: "hello", Scale: scale, Bodies: bodies}
}

// PublishPosition implements orrery.ScenePublisher.
func (h *hub) PublishPosition(name string, R []float64) {
	h.positions[name] = R
}

// drainControls applies any pending renderer controls to the clock. This is
// the input-sampling phase of the frame loop.
func (h *hub) drainControls(clock *orrery.SimClock) {
	for {
		select {
		case ctl := <-h.controls:
			switch ctl.Op {
			case "pause":
				clock.Pause()
			case "resume":
				clock.Resume()
			case "rate":
				clock.SetRate(ctl.Rate)
			default:
				h.logger.Log("level", "warning", "subsys", "hub", "err", "unknown control op", "op", ctl.Op)
				continue
			}
			h.logger.Log("level", "info", "subsys", "hub", "control", ctl.Op, "paused", clock.Paused(), "rate", clock.Rate())
		default:
			return
		}
	}
}

// flush sends the current frame to every connected renderer. This is the draw
// phase of the frame loop.
func (h *hub) flush(clock *orrery.SimClock) {
	frame := frameMsg{
		Type:   "frame",
		Epoch:  clock.Now().Format(time.RFC3339),
		JD:     clock.EpochJD(),
		Paused: clock.Paused(),
		Rate:   clock.Rate(),
		Bodies: h.positions,
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteJSON(frame); err != nil {
			h.logger.Log("level", "info", "subsys", "hub", "client", conn.RemoteAddr(), "status", "dropped", "err", err)
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// ServeHTTP upgrades the connection, announces the catalog, and reads control
// messages until the client goes away.
func (h *hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Log("level", "warning", "subsys", "hub", "err", err)
		return
	}
	if err := conn.WriteJSON(h.hello); err != nil {
		h.logger.Log("level", "warning", "subsys", "hub", "err", err)
		conn.Close()
		return
	}
	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()
	h.logger.Log("level", "info", "subsys", "hub", "client", conn.RemoteAddr(), "status", "connected")

	go func() {
		for {
			var ctl controlMsg
			if err := conn.ReadJSON(&ctl); err != nil {
				h.mu.Lock()
				if h.clients[conn] {
					conn.Close()
					delete(h.clients, conn)
				}
				h.mu.Unlock()
				return
			}
			h.controls <- ctl
		}
	}()
}
