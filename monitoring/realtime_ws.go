package monitoring

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"empowerher/catalog"
	"empowerher/ml"
	"empowerher/tracker"
)

// MessageType tags a server-to-client envelope.
type MessageType string

const (
	PredictionUpdate MessageType = "prediction"
	TrackerUpdate    MessageType = "tracker_update"
	SystemStatus     MessageType = "system_status"
	Heartbeat        MessageType = "heartbeat"
	ErrorNotice      MessageType = "error"
)

// Message is the envelope pushed over the dashboard socket.
type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// ClientMessage is what a connected dashboard sends. A "classify"
// message carries the current form selections; the answer goes back on
// that connection only, so one session's inputs never leak to another.
type ClientMessage struct {
	Type       string             `json:"type"` // classify, ping
	Selections catalog.Selections `json:"selections,omitempty"`
}

// TrackerEventData is broadcast when a wellness entry is saved.
type TrackerEventData struct {
	Entry    tracker.Entry    `json:"entry"`
	Progress tracker.Progress `json:"progress"`
}

type errorData struct {
	Message string   `json:"message"`
	Missing []string `json:"missing,omitempty"`
	Extra   []string `json:"extra,omitempty"`
}

// Client is one connected dashboard session.
type Client struct {
	conn     *websocket.Conn
	send     chan []byte
	clientID string
}

// DashboardHub fans envelopes out to connected dashboards and answers
// per-session classify requests.
type DashboardHub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
	upgrader   websocket.Upgrader
	ctx        context.Context
	cancel     context.CancelFunc

	classifier *ml.RiskClassifier
	stats      *PredictionStats
	logger     *zap.Logger
}

// NewDashboardHub creates the hub. classifier may be nil in tests that
// only exercise broadcasting.
func NewDashboardHub(classifier *ml.RiskClassifier, stats *PredictionStats, logger *zap.Logger) *DashboardHub {
	ctx, cancel := context.WithCancel(context.Background())

	return &DashboardHub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		ctx:        ctx,
		cancel:     cancel,
		classifier: classifier,
		stats:      stats,
		logger:     logger,
	}
}

// Start runs the hub loop until Stop.
func (h *DashboardHub) Start() {
	defer h.logger.Info("dashboard hub stopped")

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("dashboard connected", zap.String("client", client.clientID), zap.Int("total", total))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			total := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("dashboard disconnected", zap.String("client", client.clientID), zap.Int("total", total))

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()

		case <-h.ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Stop shuts the hub down and drops all connections.
func (h *DashboardHub) Stop() {
	h.cancel()
}

// HandleWebSocket upgrades the request and attaches the session.
func (h *DashboardHub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		conn:     conn,
		send:     make(chan []byte, 256),
		clientID: fmt.Sprintf("client_%d", time.Now().UnixNano()),
	}

	h.register <- client

	go client.writePump()
	go client.readPump(h)
}

// BroadcastTrackerEntry pushes a saved wellness entry to all dashboards.
func (h *DashboardHub) BroadcastTrackerEntry(entry tracker.Entry, progress tracker.Progress) {
	h.broadcastEnvelope(TrackerUpdate, TrackerEventData{Entry: entry, Progress: progress})
}

// BroadcastStatus pushes a stats snapshot.
func (h *DashboardHub) BroadcastStatus(snapshot StatsSnapshot) {
	h.broadcastEnvelope(SystemStatus, snapshot)
}

// SendHeartbeat keeps idle dashboards aware the service is alive.
func (h *DashboardHub) SendHeartbeat() {
	h.broadcastEnvelope(Heartbeat, map[string]string{"status": "alive"})
}

func (h *DashboardHub) broadcastEnvelope(kind MessageType, data interface{}) {
	payload, err := envelope(kind, data)
	if err != nil {
		h.logger.Warn("failed to marshal broadcast", zap.String("type", string(kind)), zap.Error(err))
		return
	}
	select {
	case h.broadcast <- payload:
	default:
		h.logger.Warn("broadcast queue full, dropping message", zap.String("type", string(kind)))
	}
}

func envelope(kind MessageType, data interface{}) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Message{Type: kind, Timestamp: time.Now(), Data: raw})
}

// handleClassify scores the session's current selections and answers on
// this connection only.
func (h *DashboardHub) handleClassify(c *Client, sel catalog.Selections) {
	if h.classifier == nil {
		c.reply(h, ErrorNotice, errorData{Message: "classifier not initialized"})
		return
	}

	result, err := h.classifier.Classify(sel)
	if err != nil {
		if h.stats != nil {
			h.stats.RecordRejection()
		}
		data := errorData{Message: err.Error()}
		if mismatch, ok := err.(*ml.SchemaMismatch); ok {
			data.Missing = mismatch.Missing
			data.Extra = mismatch.Extra
		}
		c.reply(h, ErrorNotice, data)
		return
	}

	if h.stats != nil {
		h.stats.RecordPrediction(result.Risk)
	}
	c.reply(h, PredictionUpdate, result)
}

func (c *Client) reply(h *DashboardHub, kind MessageType, data interface{}) {
	payload, err := envelope(kind, data)
	if err != nil {
		h.logger.Warn("failed to marshal reply", zap.Error(err))
		return
	}
	select {
	case c.send <- payload:
	default:
		h.logger.Warn("client send queue full", zap.String("client", c.clientID))
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(30 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(30 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) readPump(h *DashboardHub) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()

	for {
		_, messageData, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warn("websocket read error", zap.Error(err))
			}
			break
		}

		var clientMsg ClientMessage
		if err := json.Unmarshal(messageData, &clientMsg); err != nil {
			h.logger.Warn("unparseable client message", zap.String("client", c.clientID), zap.Error(err))
			continue
		}

		switch clientMsg.Type {
		case "classify":
			h.handleClassify(c, clientMsg.Selections)
		case "ping":
			c.reply(h, Heartbeat, map[string]string{"status": "alive"})
		}
	}
}
