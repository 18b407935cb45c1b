package ws

import (
	"sync"

	"go.uber.org/zap"
)

// HubManager keeps one running hub per key, created on first use.
type HubManager struct {
	hubs   map[string]*Hub
	mu     sync.Mutex
	logger *zap.Logger
}

func NewHubManager(logger *zap.Logger) *HubManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HubManager{
		hubs:   make(map[string]*Hub),
		logger: logger,
	}
}

func (m *HubManager) GetHub(key string) *Hub {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[key]; ok {
		return hub
	}

	hub := NewHub(m.logger.With(zap.String("hub", key)))
	go hub.Run()
	m.hubs[key] = hub
	return hub
}

func (m *HubManager) StopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, hub := range m.hubs {
		hub.Stop()
		delete(m.hubs, key)
	}
}
