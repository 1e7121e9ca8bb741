package ws

import (
	"sync"

	"skill-community/internal/domain/user"
	"skill-community/internal/pkg/logger"
)

type delivery struct {
	userID  user.ID
	message []byte
	refresh bool
}

// Hub tracks live directory sockets by user id.
type Hub struct {
	clients    map[*Client]bool
	byUser     map[user.ID]map[*Client]bool
	deliver    chan delivery
	register   chan *Client
	unregister chan *Client
	stop       chan struct{}
	stopOnce   sync.Once
	mutex      sync.RWMutex
	logger     logger.Logger
}

func NewHub(log logger.Logger) *Hub {
	if log == nil {
		log = logger.NewNop()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		byUser:     make(map[user.ID]map[*Client]bool),
		deliver:    make(chan delivery, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		stop:       make(chan struct{}),
		logger:     log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.stop:
			h.mutex.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				client.closeSend()
			}
			h.byUser = make(map[user.ID]map[*Client]bool)
			h.mutex.Unlock()
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			h.clients[client] = true
			set := h.byUser[client.userID]
			if set == nil {
				set = make(map[*Client]bool)
				h.byUser[client.userID] = set
			}
			set[client] = true
			total := len(h.clients)
			h.mutex.Unlock()
			h.logger.Info("WS", "connected", map[string]any{"user_id": client.userID, "total_clients": total})

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.remove(client)

		case d := <-h.deliver:
			h.mutex.RLock()
			targets := make([]*Client, 0, len(h.byUser[d.userID]))
			for c := range h.byUser[d.userID] {
				targets = append(targets, c)
			}
			h.mutex.RUnlock()

			for _, client := range targets {
				if !client.enqueue(d.message) {
					h.remove(client)
					continue
				}
				if d.refresh {
					client.Refresh()
				}
			}
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mutex.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		if set := h.byUser[client.userID]; set != nil {
			delete(set, client)
			if len(set) == 0 {
				delete(h.byUser, client.userID)
			}
		}
		client.closeSend()
	}
	total := len(h.clients)
	h.mutex.Unlock()
	h.logger.Info("WS", "disconnected", map[string]any{"user_id": client.userID, "total_clients": total})
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.unregister <- client
}

// SendToUser queues message for every socket of userID. With refresh set each
// socket also reloads its directory.
func (h *Hub) SendToUser(userID user.ID, message []byte, refresh bool) {
	if h == nil || userID.IsZero() {
		return
	}
	select {
	case h.deliver <- delivery{userID: userID, message: message, refresh: refresh}:
	default:
		h.logger.Warn("WS", "delivery dropped", map[string]any{"user_id": userID, "reason": "buffer_full"})
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

func (h *Hub) UserClientCount(userID user.ID) int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.byUser[userID])
}

// Stop ends Run and closes every client's send channel.
func (h *Hub) Stop() {
	if h == nil {
		return
	}
	h.stopOnce.Do(func() { close(h.stop) })
}
