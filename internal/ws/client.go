package ws

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"skill-community/internal/domain/filter"
	"skill-community/internal/domain/session"
	"skill-community/internal/domain/user"
	"skill-community/internal/usecase"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 32
)

const (
	CommandToggleSkill  = "toggle_skill"
	CommandSetRole      = "set_role"
	CommandSetTimezone  = "set_timezone"
	CommandSearchSkills = "search_skills"
	CommandClearFilters = "clear_filters"
	CommandRefresh      = "refresh"
)

// Command is a client message changing the socket's directory query.
type Command struct {
	Type     string `json:"type"`
	Skill    string `json:"skill,omitempty"`
	Role     string `json:"role,omitempty"`
	Timezone string `json:"timezone,omitempty"`
	Query    string `json:"query,omitempty"`
}

// ClientOptions configure a socket. When Sessions is set, Token is re-resolved
// before every load and the socket closes once the session is gone.
type ClientOptions struct {
	Session   session.Session
	Token     string
	Sessions  usecase.SessionUsecase
	Directory usecase.DirectoryUsecase
	Debounce  time.Duration
	Initial   usecase.DirectoryQuery
}

// Client is one live directory socket. It owns the filter state of its page
// and a pipeline that reloads the directory whenever that state changes.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	userID user.ID

	sendMu sync.Mutex
	send   chan []byte
	closed bool

	stateMu sync.Mutex
	query   usecase.DirectoryQuery

	ctx      context.Context
	cancel   context.CancelFunc
	pipeline *usecase.DirectoryPipeline
}

func NewClient(hub *Hub, conn *websocket.Conn, opts ClientOptions) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Client{
		hub:    hub,
		conn:   conn,
		userID: opts.Session.UserID,
		send:   make(chan []byte, sendBuffer),
		query:  opts.Initial,
		ctx:    ctx,
		cancel: cancel,
	}

	sess := opts.Session
	load := func(ctx context.Context, q usecase.DirectoryQuery) usecase.DirectoryView {
		if opts.Sessions != nil {
			current, err := opts.Sessions.Resolve(ctx, opts.Token)
			if err != nil {
				return endedSessionView(q, err)
			}
			sess = current
		}
		return opts.Directory.Load(ctx, &sess, q)
	}
	c.pipeline = usecase.NewDirectoryPipeline(ctx, opts.Debounce, load, c.emit)
	return c
}

func (c *Client) emit(ev usecase.PipelineEvent) {
	b, err := encodePipelineEvent(ev)
	if err != nil {
		return
	}
	c.enqueue(b)
	if ev.View != nil && ev.View.SessionCleared {
		c.close()
	}
}

func (c *Client) close() {
	if c.hub != nil {
		c.hub.Unregister(c)
		return
	}
	c.closeSend()
}

// endedSessionView is sent instead of a directory once the socket's session
// was logged out or expired.
func endedSessionView(q usecase.DirectoryQuery, err error) usecase.DirectoryView {
	view := usecase.DirectoryView{
		State:  usecase.DirectoryLoginRequired,
		Filter: q.Filter,
		Cards:  []usecase.DirectoryCard{},
	}
	if errors.Is(err, usecase.ErrNoSession) {
		view.Message = usecase.MessageLoginRequired
		view.SessionCleared = true
		return view
	}
	view.State = usecase.DirectoryError
	view.Message = usecase.MessageSessionExpired
	return view
}

func (c *Client) enqueue(message []byte) bool {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- message:
		return true
	default:
		return false
	}
}

func (c *Client) closeSend() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
	c.cancel()
	c.pipeline.Close()
}

// Query returns the socket's current directory query.
func (c *Client) Query() usecase.DirectoryQuery {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return c.query
}

// Refresh reloads the directory with the current query.
func (c *Client) Refresh() {
	c.pipeline.Submit(c.Query())
}

// Apply updates the query from cmd and schedules a reload. Unknown commands
// return false and change nothing.
func (c *Client) Apply(cmd Command) bool {
	c.stateMu.Lock()
	q := c.query
	switch cmd.Type {
	case CommandToggleSkill:
		q.Filter = q.Filter.Toggle(cmd.Skill)
	case CommandSetRole:
		q.Filter = q.Filter.WithRole(cmd.Role)
	case CommandSetTimezone:
		q.Filter = q.Filter.WithTimezone(cmd.Timezone)
	case CommandSearchSkills:
		q.SkillSearch = cmd.Query
	case CommandClearFilters:
		q = usecase.DirectoryQuery{Filter: filter.New(nil, "", ""), SkillSearch: q.SkillSearch}
	case CommandRefresh:
	default:
		c.stateMu.Unlock()
		return false
	}
	c.query = q
	c.stateMu.Unlock()

	c.pipeline.Submit(q)
	return true
}

func (c *Client) ReadPump() {
	defer func() {
		if c.hub != nil {
			c.hub.Unregister(c)
		}
		c.cancel()
		c.pipeline.Close()
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var cmd Command
		if err := json.Unmarshal(message, &cmd); err != nil {
			c.enqueue(encodeError("invalid command"))
			continue
		}
		if !c.Apply(cmd) {
			c.enqueue(encodeError("unknown command: " + cmd.Type))
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
