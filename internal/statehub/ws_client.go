package statehub

import (
	"context"
	"encoding/json"
	"log"
	"smartsociety/backend/internal/auth"
	"smartsociety/backend/internal/gate"
	"smartsociety/backend/internal/session"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// OnboardingReader reads the per-device onboarding flag.
type OnboardingReader interface {
	HasCompletedOnboarding(ctx context.Context, deviceID string) (bool, error)
}

// WebSocketClient streams Frames for one device over a WebSocket connection.
type WebSocketClient struct {
	DeviceID   string
	Conn       *websocket.Conn
	Hub        *Manager
	Resolver   *session.Resolver
	Onboarding OnboardingReader
	Send       chan Frame

	// initial is the session the stream was opened with, nil when signed out.
	initial      *auth.Session
	events       <-chan auth.Event
	cancelEvents func()

	refresh chan string
	poke    chan struct{}

	mu    sync.Mutex
	group gate.Group

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewWebSocketClient wires a client for deviceID. events is the device's auth
// event stream and cancelEvents unsubscribes it.
func NewWebSocketClient(hub *Manager, conn *websocket.Conn, deviceID string, group gate.Group,
	resolver *session.Resolver, onboarding OnboardingReader,
	initial *auth.Session, events <-chan auth.Event, cancelEvents func()) *WebSocketClient {
	ctx, cancel := context.WithCancel(context.Background())
	return &WebSocketClient{
		DeviceID:     deviceID,
		Conn:         conn,
		Hub:          hub,
		Resolver:     resolver,
		Onboarding:   onboarding,
		Send:         make(chan Frame, 16),
		initial:      initial,
		events:       events,
		cancelEvents: cancelEvents,
		refresh:      make(chan string, 4),
		poke:         make(chan struct{}, 1),
		group:        group,
		ctx:          ctx,
		cancel:       cancel,
	}
}

func (c *WebSocketClient) GetDeviceID() string { return c.DeviceID }
func (c *WebSocketClient) GetUID() string      { return c.Resolver.SessionUID() }

func (c *WebSocketClient) Refresh(uid string) {
	select {
	case c.refresh <- uid:
	default:
	}
}

func (c *WebSocketClient) Poke() {
	select {
	case c.poke <- struct{}{}:
	default:
	}
}

// Run resolves the initial session and starts the pumps.
func (c *WebSocketClient) Run() {
	go func() {
		c.Resolver.Resolve(c.ctx, c.initial)
		c.Resolver.Run(c.ctx, c.events, c.refresh)
	}()
	go c.statePump()
	go c.writePump()
	go c.readPump()
}

// Close stops the pumps and unsubscribes from auth events.
func (c *WebSocketClient) Close() {
	c.closeOnce.Do(func() {
		c.cancel()
		if c.cancelEvents != nil {
			c.cancelEvents()
		}
	})
}

func (c *WebSocketClient) currentGroup() gate.Group {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.group
}

func (c *WebSocketClient) setGroup(g gate.Group) {
	c.mu.Lock()
	c.group = g
	c.mu.Unlock()
}

func (c *WebSocketClient) frame(st session.State) Frame {
	onboarded, err := c.Onboarding.HasCompletedOnboarding(c.ctx, c.DeviceID)
	if err != nil {
		log.Printf("WARN: Onboarding flag for device %s unavailable: %v", c.DeviceID, err)
	}
	return BuildFrame(st, onboarded, c.currentGroup())
}

// statePump is the only sender on Send and closes it when the client stops.
func (c *WebSocketClient) statePump() {
	defer close(c.Send)

	for {
		var st session.State
		select {
		case <-c.ctx.Done():
			return
		case st = <-c.Resolver.Updates():
		case <-c.poke:
			st = c.Resolver.Current()
		}

		select {
		case c.Send <- c.frame(st):
		case <-c.ctx.Done():
			return
		}
	}
}

func (c *WebSocketClient) unregister() {
	select {
	case c.Hub.UnregisterCh <- c:
	case <-c.ctx.Done():
	}
}

func (c *WebSocketClient) readPump() {
	defer func() {
		c.unregister()
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WARN: Session stream of device %s: %v", c.DeviceID, err)
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("WARN: Bad message from device %s: %v", c.DeviceID, err)
			continue
		}
		c.setGroup(gate.ParseGroup(msg.Group))
		c.Poke()
	}
}

func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteJSON(frame); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
