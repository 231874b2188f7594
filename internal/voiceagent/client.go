package voiceagent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mockly-server/internal/observability"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

const (
	defaultHandshakeTimeout = 10 * time.Second
	defaultWriteTimeout     = 10 * time.Second
)

var ErrClientClosed = errors.New("voice agent client is closed")

// Dialer opens platform connections. One connection carries one call.
type Dialer struct {
	URL              string
	APIKey           string
	Logger           *observability.Logger
	HandshakeTimeout time.Duration
	// WriteTimeout bounds each frame write; a platform that stops reading fails the write instead of blocking it.
	WriteTimeout time.Duration
}

// Dial connects to the platform and starts relaying its events.
func (d Dialer) Dial(ctx context.Context) (*Client, error) {
	headers := make(http.Header)
	if d.APIKey != "" {
		headers.Set("Authorization", "Bearer "+d.APIKey)
	}

	timeout := d.HandshakeTimeout
	if timeout <= 0 {
		timeout = defaultHandshakeTimeout
	}
	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: timeout,
	}

	conn, resp, err := dialer.DialContext(ctx, d.URL, headers)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("voice agent dial failed (status %d): %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("voice agent dial failed: %w", err)
	}

	logger := d.Logger
	if logger == nil {
		logger = observability.NewNopLogger()
	}

	writeTimeout := d.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}

	c := &Client{
		conn:         conn,
		logger:       logger,
		ctx:          context.WithoutCancel(ctx),
		writeTimeout: writeTimeout,
		handlers:     make(map[uint64]Handler),
		done:         make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

// Client is a live platform connection.
type Client struct {
	conn   *websocket.Conn
	logger *observability.Logger
	ctx    context.Context

	writeMu      sync.Mutex
	writeTimeout time.Duration

	handlersMu sync.Mutex
	handlers   map[uint64]Handler
	nextID     uint64

	// stopped and ended describe the current call; Start resets them.
	callMu  sync.Mutex
	stopped bool
	ended   atomic.Bool

	closeOnce sync.Once
	closed    atomic.Bool
	done      chan struct{}
}

type outboundFrame struct {
	Type           string            `json:"type"`
	Assistant      Script            `json:"assistant,omitempty"`
	Workflow       Script            `json:"workflow,omitempty"`
	VariableValues map[string]string `json:"variableValues,omitempty"`
}

type inboundFrame struct {
	Type    string   `json:"type"`
	Message *Message `json:"message,omitempty"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Subscribe registers h for every subsequent event. The returned func removes it and is safe to call more than once.
func (c *Client) Subscribe(h Handler) func() {
	c.handlersMu.Lock()
	id := c.nextID
	c.nextID++
	c.handlers[id] = h
	c.handlersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.handlersMu.Lock()
			delete(c.handlers, id)
			c.handlersMu.Unlock()
		})
	}
}

// Start asks the platform to begin a call running script with the given template variables.
// Success is reported later by a call-start event.
func (c *Client) Start(ctx context.Context, script Script, vars map[string]string) error {
	if script == nil {
		return errors.New("script must not be nil")
	}
	frame := outboundFrame{Type: "start", VariableValues: vars}
	switch script.ScriptKind() {
	case KindAssistant:
		frame.Assistant = script
	case KindWorkflow:
		frame.Workflow = script
	default:
		return fmt.Errorf("unsupported script kind %q", script.ScriptKind())
	}

	c.callMu.Lock()
	c.stopped = false
	c.ended.Store(false)
	c.callMu.Unlock()

	if err := c.writeJSON(frame); err != nil {
		return fmt.Errorf("failed to send start: %w", err)
	}
	c.logger.Info(observability.WithFields(ctx, observability.Field{Key: "script_kind", Value: script.ScriptKind()}), "voice agent call requested")
	return nil
}

// Stop asks the platform to end the current call. Only the first call per started call sends anything.
func (c *Client) Stop(ctx context.Context) error {
	c.callMu.Lock()
	defer c.callMu.Unlock()
	if c.stopped {
		return nil
	}
	if err := c.writeJSON(outboundFrame{Type: "stop"}); err != nil {
		return fmt.Errorf("failed to send stop: %w", err)
	}
	c.stopped = true
	c.logger.Info(ctx, "voice agent call stop requested")
	return nil
}

// Close tears down the connection and waits for the read loop to exit.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		c.writeMu.Lock()
		_ = c.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(2*time.Second))
		c.writeMu.Unlock()
		_ = c.conn.Close()
	})
	<-c.done
	return nil
}

// Done is closed once the read loop has exited.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

func (c *Client) writeJSON(v any) error {
	if c.closed.Load() {
		return ErrClientClosed
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
		return err
	}
	return c.conn.WriteJSON(v)
}

func (c *Client) readLoop() {
	defer close(c.done)

	for {
		messageType, data, err := c.conn.ReadMessage()
		if err != nil {
			c.terminate(err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		event, ok := c.decode(data)
		if !ok {
			continue
		}
		if event.Type == EventCallEnd {
			if c.ended.Swap(true) {
				continue
			}
		}
		c.emit(event)
	}
}

// terminate reports the end of the stream. A call-end is always delivered exactly once;
// abnormal termination is preceded by an error event.
func (c *Client) terminate(err error) {
	switch {
	case c.closed.Load():
	case websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway):
		c.logger.Info(c.ctx, "voice agent connection closed")
	default:
		c.logger.Error(c.ctx, "voice agent connection lost", err)
		c.emit(Event{Type: EventError, Err: fmt.Errorf("%w: connection lost: %v", ErrPlatform, err)})
	}
	if !c.ended.Swap(true) {
		c.emit(Event{Type: EventCallEnd})
	}
}

func (c *Client) decode(data []byte) (Event, bool) {
	var frame inboundFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		c.logger.Error(c.ctx, "failed to decode voice agent frame", err)
		return Event{}, false
	}

	switch EventType(frame.Type) {
	case EventCallStart, EventCallEnd, EventSpeechStart, EventSpeechEnd:
		return Event{Type: EventType(frame.Type)}, true
	case EventMessage:
		if frame.Message == nil {
			return Event{}, false
		}
		return Event{Type: EventMessage, Message: frame.Message}, true
	case EventError:
		msg := "unknown error"
		if frame.Error != nil && frame.Error.Message != "" {
			msg = frame.Error.Message
		}
		return PlatformError(msg), true
	default:
		c.logger.Debug(c.ctx, fmt.Sprintf("ignoring voice agent frame %q", frame.Type))
		return Event{}, false
	}
}

func (c *Client) emit(event Event) {
	c.handlersMu.Lock()
	handlers := make([]Handler, 0, len(c.handlers))
	for _, h := range c.handlers {
		handlers = append(handlers, h)
	}
	c.handlersMu.Unlock()

	for _, h := range handlers {
		h(event)
	}
}
