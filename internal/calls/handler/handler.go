// Package handler serves the browser side of a voice call. Each websocket connection
// owns one call session and one platform connection.
package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"sync"
	"time"

	"mockly-server/internal/apierrors"
	authHandler "mockly-server/internal/auth/handler"
	"mockly-server/internal/callsession"
	"mockly-server/internal/observability"
	"mockly-server/internal/store"
	"mockly-server/internal/voiceagent"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// Frame types written to the browser
const (
	FrameState    = "state"
	FrameNavigate = "navigate"
	FrameError    = "error"
)

// Command types read from the browser
const (
	CommandStart = "start"
	CommandStop  = "stop"
)

// Platform is a dialed voice-agent connection
type Platform interface {
	callsession.Platform
	Close() error
}

// DialFunc opens a new platform connection for one call
type DialFunc func(ctx context.Context) (Platform, error)

// VoiceAgentDialer adapts a voiceagent.Dialer to a DialFunc.
func VoiceAgentDialer(d voiceagent.Dialer) DialFunc {
	return func(ctx context.Context) (Platform, error) {
		client, err := d.Dial(ctx)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}

// InterviewLoader resolves the interview conducted in interview mode
type InterviewLoader interface {
	GetInterview(ctx context.Context, interviewID uuid.UUID) (store.Interview, error)
}

type Handler struct {
	dial       DialFunc
	scripts    callsession.ScriptProvider
	feedback   callsession.FeedbackService
	interviews InterviewLoader
	upgrader   websocket.Upgrader
	metrics    *observability.Metrics
	logger     *observability.Logger
}

// New builds the call handler. Browser origins other than webAppURI are rejected.
func New(dial DialFunc, scripts callsession.ScriptProvider, feedback callsession.FeedbackService, interviews InterviewLoader, webAppURI string, metrics *observability.Metrics, logger *observability.Logger) Handler {
	return Handler{
		dial:       dial,
		scripts:    scripts,
		feedback:   feedback,
		interviews: interviews,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     sameOrigin(webAppURI),
		},
		metrics: metrics,
		logger:  logger,
	}
}

func sameOrigin(webAppURI string) func(r *http.Request) bool {
	allowed, err := url.Parse(webAppURI)
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if err != nil || allowed.Host == "" {
			return false
		}
		u, parseErr := url.Parse(origin)
		if parseErr != nil {
			return false
		}
		return u.Scheme == allowed.Scheme && u.Host == allowed.Host
	}
}

// Command is a browser instruction
type Command struct {
	Type string `json:"type"`
}

// StateFrame mirrors a session snapshot
type StateFrame struct {
	Type             string                       `json:"type"`
	Status           callsession.Status           `json:"status"`
	Speaking         bool                         `json:"speaking"`
	Failed           bool                         `json:"failed"`
	FailureReason    string                       `json:"failure_reason,omitempty"`
	LatestMessage    *callsession.TranscriptEntry `json:"latest_message,omitempty"`
	TranscriptLength int                          `json:"transcript_length"`
}

type NavigateFrame struct {
	Type string `json:"type"`
	Path string `json:"path"`
}

type ErrorFrame struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

func toStateFrame(snap callsession.Snapshot) StateFrame {
	frame := StateFrame{
		Type:             FrameState,
		Status:           snap.Status,
		Speaking:         snap.Speaking,
		Failed:           snap.Failed,
		FailureReason:    snap.FailureReason,
		TranscriptLength: len(snap.Transcript),
	}
	if n := len(snap.Transcript); n > 0 {
		latest := snap.Transcript[n-1]
		frame.LatestMessage = &latest
	}
	return frame
}

// HandleCall upgrades the request and runs one call session until the browser disconnects.
func (h *Handler) HandleCall(c *gin.Context) {
	ctx := c.Request.Context()

	user, ok := authHandler.CurrentUser(c)
	if !ok {
		apierrors.RespondWithError(c, apierrors.Unauthorized("Authentication required"))
		return
	}

	cfg := callsession.Config{
		Mode:     callsession.Mode(c.Query("mode")),
		Identity: callsession.Identity{UserName: user.Name, UserID: user.ID.String()},
	}
	switch cfg.Mode {
	case callsession.ModeGenerate:
	case callsession.ModeInterview:
		interviewID, err := uuid.Parse(c.Query("interview_id"))
		if err != nil {
			apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "interview_id must be a valid interview id"))
			return
		}
		interview, err := h.interviews.GetInterview(ctx, interviewID)
		if err != nil {
			apierrors.RespondWithError(c, err)
			return
		}
		cfg.Script = callsession.ScriptContext{InterviewID: interview.ID.String(), Questions: interview.Questions}
	default:
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "mode must be generate or interview"))
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// the upgrader already wrote the error response
		h.logger.InfoWithError(ctx, "failed to upgrade call socket", err)
		return
	}
	sock := &socket{conn: conn, ctx: ctx, logger: h.logger}
	defer sock.close()

	h.serve(ctx, sock, cfg)
}

func (h *Handler) serve(ctx context.Context, sock *socket, cfg callsession.Config) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "call_mode", Value: string(cfg.Mode)})

	platform, err := h.dial(ctx)
	if err != nil {
		h.logger.Error(ctx, "failed to connect to voice agent", err)
		sock.send(ErrorFrame{Type: FrameError, Error: "Voice agent is unavailable. Please try again later."})
		return
	}
	defer platform.Close()

	session, err := callsession.New(ctx, cfg, callsession.Deps{
		Platform:  platform,
		Scripts:   h.scripts,
		Feedback:  h.feedback,
		Navigator: sock,
		Observer:  sock.sendState,
		Metrics:   h.metrics,
		Logger:    h.logger,
	})
	if err != nil {
		h.logger.Error(ctx, "failed to create call session", err)
		sock.send(ErrorFrame{Type: FrameError, Error: err.Error()})
		return
	}
	defer session.Close()

	h.logger.Info(ctx, "call socket opened")
	sock.sendState(session.Snapshot())

	for {
		var cmd Command
		if err := sock.conn.ReadJSON(&cmd); err != nil {
			var closeErr *websocket.CloseError
			if !errors.As(err, &closeErr) {
				h.logger.InfoWithError(ctx, "call socket read failed", err)
			}
			break
		}

		switch cmd.Type {
		case CommandStart:
			if err := session.Start(); err != nil {
				sock.send(ErrorFrame{Type: FrameError, Error: err.Error()})
			}
		case CommandStop:
			session.Stop()
		default:
			sock.send(ErrorFrame{Type: FrameError, Error: "unknown command " + cmd.Type})
		}
	}

	// The browser left; a live call must not keep running on the platform.
	switch session.Snapshot().Status {
	case callsession.StatusConnecting, callsession.StatusActive:
		session.Stop()
	}
	h.logger.Info(ctx, "call socket closed")
}

// socket serializes writes to the browser connection. It is the session's Navigator.
type socket struct {
	conn   *websocket.Conn
	ctx    context.Context
	logger *observability.Logger

	mu     sync.Mutex
	closed bool
}

func (s *socket) Navigate(_ context.Context, path string) {
	s.send(NavigateFrame{Type: FrameNavigate, Path: path})
}

func (s *socket) sendState(snap callsession.Snapshot) {
	s.send(toStateFrame(snap))
}

func (s *socket) send(v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteJSON(v); err != nil {
		s.logger.Debug(s.ctx, "failed to write call socket frame: "+err.Error())
	}
}

func (s *socket) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	_ = s.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
	_ = s.conn.Close()
}
