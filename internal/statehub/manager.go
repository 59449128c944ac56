// Package statehub pushes session state and navigation decisions to connected
// devices over WebSocket.
package statehub

import (
	"context"
	"log"
	"smartsociety/backend/internal/storage"
	"sync"
)

// Manager tracks connected clients and fans profile changes out to them.
type Manager struct {
	mu      sync.RWMutex
	clients map[Client]struct{}

	RegisterCh   chan Client
	UnregisterCh chan Client
	// ProfileCh carries UIDs whose profile changed.
	ProfileCh chan string
	// DeviceCh carries devices whose onboarding flag changed.
	DeviceCh chan string

	Notifier storage.ChangeNotifier
}

// NewManager creates a manager. notifier may be nil, in which case only
// ProfileCh feeds profile changes.
func NewManager(notifier storage.ChangeNotifier) *Manager {
	return &Manager{
		clients:      make(map[Client]struct{}),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		ProfileCh:    make(chan string, 64),
		DeviceCh:     make(chan string, 64),
		Notifier:     notifier,
	}
}

// NotifyDevice schedules a frame refresh for every stream of deviceID.
func (m *Manager) NotifyDevice(deviceID string) {
	select {
	case m.DeviceCh <- deviceID:
	default:
		log.Printf("WARN: Device notification queue full, dropping update for %s", deviceID)
	}
}

// ClientCount is the number of registered clients.
func (m *Manager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

// StartProfileListener forwards the profile_changes channel into ProfileCh.
func (m *Manager) StartProfileListener(ctx context.Context) {
	pubsub := m.Notifier.SubscribeProfileChanges(ctx)
	go func() {
		defer pubsub.Close()
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				select {
				case m.ProfileCh <- msg.Payload:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
}

// Run processes registrations and change notifications until ctx is done.
func (m *Manager) Run(ctx context.Context) {
	if m.Notifier != nil {
		m.StartProfileListener(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			m.closeAll()
			return

		case client := <-m.RegisterCh:
			m.mu.Lock()
			m.clients[client] = struct{}{}
			m.mu.Unlock()
			client.Run()
			log.Printf("INFO: Session stream opened for device %s", client.GetDeviceID())

		case client := <-m.UnregisterCh:
			m.mu.Lock()
			_, ok := m.clients[client]
			delete(m.clients, client)
			m.mu.Unlock()
			if ok {
				client.Close()
				log.Printf("INFO: Session stream closed for device %s", client.GetDeviceID())
			}

		case uid := <-m.ProfileCh:
			m.mu.RLock()
			for client := range m.clients {
				if client.GetUID() == uid {
					client.Refresh(uid)
				}
			}
			m.mu.RUnlock()

		case deviceID := <-m.DeviceCh:
			m.mu.RLock()
			for client := range m.clients {
				if client.GetDeviceID() == deviceID {
					client.Poke()
				}
			}
			m.mu.RUnlock()
		}
	}
}

func (m *Manager) closeAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for client := range m.clients {
		client.Close()
		delete(m.clients, client)
	}
}
