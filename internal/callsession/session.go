// Package callsession drives one voice-agent call: it relays platform events into a
// four-state lifecycle, accumulates the final transcript and fires exactly one
// terminal action when the call finishes.
package callsession

//go:generate go run go.uber.org/mock/mockgen@latest -source=session.go -destination=mocks_test.go -package=callsession

import (
	"context"
	"errors"
	"fmt"
	"mockly-server/internal/observability"
	"mockly-server/internal/voiceagent"
	"strings"
	"sync"
)

type Status string

const (
	StatusInactive   Status = "INACTIVE"
	StatusConnecting Status = "CONNECTING"
	StatusActive     Status = "ACTIVE"
	StatusFinished   Status = "FINISHED"
)

// Mode selects the script and the terminal action. It never changes for a session.
type Mode string

const (
	ModeGenerate  Mode = "generate"
	ModeInterview Mode = "interview"
)

type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerSystem    Speaker = "system"
	SpeakerAssistant Speaker = "assistant"
)

// ParseSpeaker accepts only the known speaker roles.
func ParseSpeaker(role string) (Speaker, bool) {
	switch s := Speaker(role); s {
	case SpeakerUser, SpeakerSystem, SpeakerAssistant:
		return s, true
	default:
		return "", false
	}
}

// TranscriptEntry is one completed turn
type TranscriptEntry struct {
	Speaker Speaker `json:"role"`
	Text    string  `json:"content"`
}

type Identity struct {
	UserName string
	UserID   string
}

type ScriptContext struct {
	InterviewID string
	Questions   []string
}

type Config struct {
	Mode     Mode
	Identity Identity
	Script   ScriptContext
}

// Snapshot is a point-in-time copy of the session state
type Snapshot struct {
	Version       uint64
	Status        Status
	Speaking      bool
	Failed        bool
	FailureReason string
	Transcript    []TranscriptEntry
}

// Platform is the hosted voice-agent connection a session drives
type Platform interface {
	Start(ctx context.Context, script voiceagent.Script, vars map[string]string) error
	Stop(ctx context.Context) error
	Subscribe(h voiceagent.Handler) func()
}

type FeedbackRequest struct {
	InterviewID string
	UserID      string
	Transcript  []TranscriptEntry
}

type FeedbackResult struct {
	Success    bool
	FeedbackID string
}

// FeedbackService scores a finished interview transcript
type FeedbackService interface {
	Generate(ctx context.Context, req FeedbackRequest) (FeedbackResult, error)
}

// Navigator moves the caller to another surface of the application
type Navigator interface {
	Navigate(ctx context.Context, path string)
}

// ScriptProvider supplies the call configuration for each mode
type ScriptProvider interface {
	Generator() voiceagent.Script
	Interviewer() voiceagent.Script
}

// Deps are the collaborators of a session. Feedback, Observer and Metrics are optional.
type Deps struct {
	Platform  Platform
	Scripts   ScriptProvider
	Feedback  FeedbackService
	Navigator Navigator
	Observer  func(Snapshot)
	Metrics   *observability.Metrics
	Logger    *observability.Logger
}

const HomePath = "/"

var (
	ErrInvalidMode       = errors.New("invalid session mode")
	ErrMissingIdentity   = errors.New("user name and user id are required to generate questions")
	ErrMissingInterview  = errors.New("interview id and user id are required to conduct an interview")
	ErrMissingDependency = errors.New("platform, scripts and navigator are required")
	ErrCallInProgress    = errors.New("call already in progress")
	ErrSessionClosed     = errors.New("session is closed")
)

// StartupError means the call never reached ACTIVE
type StartupError struct {
	Err error
}

func (e *StartupError) Error() string { return "call failed to start: " + e.Err.Error() }
func (e *StartupError) Unwrap() error { return e.Err }

// FeedbackGenerationError means the interview finished but could not be scored
type FeedbackGenerationError struct {
	InterviewID string
	Err         error
}

func (e *FeedbackGenerationError) Error() string {
	return fmt.Sprintf("feedback generation failed for interview %s: %v", e.InterviewID, e.Err)
}
func (e *FeedbackGenerationError) Unwrap() error { return e.Err }

// Session is a single call controller. All methods are safe for concurrent use.
type Session struct {
	cfg    Config
	deps   Deps
	logger *observability.Logger
	ctx    context.Context

	mu         sync.Mutex
	status     Status
	speaking   bool
	failed     bool
	failure    string
	transcript []TranscriptEntry
	dispatched bool
	closed     bool
	version    uint64

	notifyMu     sync.Mutex
	lastNotified uint64

	unsubscribe func()
	closeOnce   sync.Once
}

// New validates cfg and subscribes the session to the platform event stream.
func New(ctx context.Context, cfg Config, deps Deps) (*Session, error) {
	if deps.Platform == nil || deps.Scripts == nil || deps.Navigator == nil {
		return nil, ErrMissingDependency
	}

	switch cfg.Mode {
	case ModeGenerate:
		if cfg.Identity.UserID == "" || cfg.Identity.UserName == "" {
			return nil, ErrMissingIdentity
		}
	case ModeInterview:
		if cfg.Script.InterviewID == "" || cfg.Identity.UserID == "" {
			return nil, ErrMissingInterview
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, cfg.Mode)
	}

	logger := deps.Logger
	if logger == nil {
		logger = observability.NewNopLogger()
	}

	ctx = observability.WithFields(context.WithoutCancel(ctx),
		observability.Field{Key: "call_mode", Value: string(cfg.Mode)},
		observability.Field{Key: "user_id", Value: cfg.Identity.UserID},
	)
	if cfg.Script.InterviewID != "" {
		ctx = observability.WithFields(ctx, observability.Field{Key: "interview_id", Value: cfg.Script.InterviewID})
	}

	s := &Session{
		cfg:    cfg,
		deps:   deps,
		logger: logger,
		ctx:    ctx,
		status: StatusInactive,
	}
	s.unsubscribe = deps.Platform.Subscribe(s.HandleEvent)
	return s, nil
}

// Start begins a call. It is allowed from INACTIVE or, for a new attempt, from FINISHED.
// A platform failure is not returned: it finishes the session with Failed set.
func (s *Session) Start() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.status != StatusInactive && s.status != StatusFinished {
		s.mu.Unlock()
		return ErrCallInProgress
	}
	if s.status == StatusFinished {
		s.transcript = nil
		s.failed = false
		s.failure = ""
		s.speaking = false
		s.dispatched = false
	}
	s.status = StatusConnecting
	connecting := s.snapshotLocked()

	if s.deps.Metrics != nil {
		s.deps.Metrics.CallsStarted.WithLabelValues(string(s.cfg.Mode)).Inc()
		s.deps.Metrics.CallsActive.Inc()
	}

	script, vars := s.script()
	// Platform.Start runs under the lock so a concurrent Stop cannot overtake it.
	err := s.deps.Platform.Start(s.ctx, script, vars)
	var (
		dispatch bool
		finished Snapshot
	)
	if err != nil {
		startupErr := &StartupError{Err: err}
		dispatch, finished = s.finishLocked(true, startupErr.Error())
		s.logger.Error(s.ctx, "voice agent call failed to start", startupErr)
	}
	s.mu.Unlock()

	s.notify(connecting)
	if err == nil {
		s.logger.Info(s.ctx, "call session connecting")
		return nil
	}
	s.notify(finished)
	if dispatch {
		s.runTerminalAction(finished)
	}
	return nil
}

// Stop ends the call from any state. Repeated calls are no-ops.
func (s *Session) Stop() {
	s.mu.Lock()
	if s.status == StatusFinished {
		s.mu.Unlock()
		return
	}
	live := s.status == StatusConnecting || s.status == StatusActive
	dispatch, snap := s.finishLocked(false, "")
	s.mu.Unlock()

	s.logger.Info(s.ctx, "call session stopped")
	s.notify(snap)
	if live {
		if err := s.deps.Platform.Stop(s.ctx); err != nil {
			s.logger.Error(s.ctx, "failed to stop voice agent call", err)
		}
	}
	if dispatch {
		s.runTerminalAction(snap)
	}
}

// Close unsubscribes from the platform. It does not stop a live call.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		s.unsubscribe()
	})
}

// Snapshot returns a copy of the current state
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Mode returns the session mode
func (s *Session) Mode() Mode {
	return s.cfg.Mode
}

// HandleEvent applies one platform event. It is the handler registered with the platform.
func (s *Session) HandleEvent(e voiceagent.Event) {
	switch e.Type {
	case voiceagent.EventCallStart:
		s.mu.Lock()
		if s.status != StatusConnecting {
			s.mu.Unlock()
			return
		}
		s.status = StatusActive
		snap := s.snapshotLocked()
		s.mu.Unlock()
		s.logger.Info(s.ctx, "call session active")
		s.notify(snap)

	case voiceagent.EventCallEnd:
		s.mu.Lock()
		if s.status == StatusFinished {
			s.mu.Unlock()
			return
		}
		dispatch, snap := s.finishLocked(false, "")
		s.mu.Unlock()
		s.logger.Info(s.ctx, "call session ended by platform")
		s.notify(snap)
		if dispatch {
			s.runTerminalAction(snap)
		}

	case voiceagent.EventMessage:
		if e.Message == nil || !e.Message.IsFinalTranscript() {
			return
		}
		speaker, ok := ParseSpeaker(e.Message.Role)
		if !ok {
			s.logger.Warn(observability.WithFields(s.ctx, observability.Field{Key: "role", Value: e.Message.Role}),
				"dropping transcript with unknown role")
			return
		}
		entry := TranscriptEntry{Speaker: speaker, Text: e.Message.Transcript}
		s.mu.Lock()
		s.transcript = append(s.transcript, entry)
		snap := s.snapshotLocked()
		s.mu.Unlock()
		if s.deps.Metrics != nil {
			s.deps.Metrics.TranscriptEntries.WithLabelValues(string(entry.Speaker)).Inc()
		}
		s.notify(snap)

	case voiceagent.EventSpeechStart, voiceagent.EventSpeechEnd:
		speaking := e.Type == voiceagent.EventSpeechStart
		s.mu.Lock()
		if s.status == StatusFinished || s.speaking == speaking {
			s.mu.Unlock()
			return
		}
		s.speaking = speaking
		snap := s.snapshotLocked()
		s.mu.Unlock()
		s.notify(snap)

	case voiceagent.EventError:
		s.handleError(e.Err)
	}
}

// handleError fails a call that is still connecting; later errors are only logged.
func (s *Session) handleError(err error) {
	if err == nil {
		err = voiceagent.ErrPlatform
	}

	s.mu.Lock()
	if s.status != StatusConnecting {
		status := s.status
		s.mu.Unlock()
		s.logger.Error(observability.WithFields(s.ctx, observability.Field{Key: "call_status", Value: string(status)}),
			"voice agent platform error", err)
		return
	}
	startupErr := &StartupError{Err: err}
	dispatch, snap := s.finishLocked(true, startupErr.Error())
	s.mu.Unlock()

	s.logger.Error(s.ctx, "voice agent call failed while connecting", startupErr)
	s.notify(snap)
	if stopErr := s.deps.Platform.Stop(s.ctx); stopErr != nil {
		s.logger.Error(s.ctx, "failed to stop voice agent call", stopErr)
	}
	if dispatch {
		s.runTerminalAction(snap)
	}
}

// finishLocked moves to FINISHED and arms the terminal latch. It reports whether
// the caller owns the single terminal dispatch for this attempt.
func (s *Session) finishLocked(failed bool, reason string) (bool, Snapshot) {
	prev := s.status
	s.status = StatusFinished
	s.speaking = false
	if failed {
		s.failed = true
		s.failure = reason
	}

	if s.deps.Metrics != nil && (prev == StatusConnecting || prev == StatusActive) {
		outcome := "completed"
		if s.failed {
			outcome = "failed"
		}
		s.deps.Metrics.CallsActive.Dec()
		s.deps.Metrics.CallsFinished.WithLabelValues(string(s.cfg.Mode), outcome).Inc()
	}

	dispatch := !s.dispatched
	s.dispatched = true
	return dispatch, s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	transcript := make([]TranscriptEntry, len(s.transcript))
	copy(transcript, s.transcript)
	s.version++
	return Snapshot{
		Version:       s.version,
		Status:        s.status,
		Speaking:      s.speaking,
		Failed:        s.failed,
		FailureReason: s.failure,
		Transcript:    transcript,
	}
}

func (s *Session) script() (voiceagent.Script, map[string]string) {
	if s.cfg.Mode == ModeGenerate {
		return s.deps.Scripts.Generator(), map[string]string{
			"userid":   s.cfg.Identity.UserID,
			"username": s.cfg.Identity.UserName,
		}
	}
	return s.deps.Scripts.Interviewer(), map[string]string{
		"questions": FormatQuestions(s.cfg.Script.Questions),
	}
}

// FormatQuestions renders questions as a dash-prefixed list, one per line.
func FormatQuestions(questions []string) string {
	if len(questions) == 0 {
		return ""
	}
	lines := make([]string, len(questions))
	for i, q := range questions {
		lines[i] = "- " + q
	}
	return strings.Join(lines, "\n")
}

func (s *Session) runTerminalAction(snap Snapshot) {
	if s.cfg.Mode == ModeGenerate {
		s.navigate(HomePath)
		return
	}

	if snap.Failed || s.deps.Feedback == nil {
		s.navigate(HomePath)
		return
	}

	result, err := s.deps.Feedback.Generate(s.ctx, FeedbackRequest{
		InterviewID: s.cfg.Script.InterviewID,
		UserID:      s.cfg.Identity.UserID,
		Transcript:  snap.Transcript,
	})
	if err != nil {
		s.logger.Error(s.ctx, "failed to generate feedback", &FeedbackGenerationError{InterviewID: s.cfg.Script.InterviewID, Err: err})
		s.navigate(HomePath)
		return
	}
	if !result.Success || result.FeedbackID == "" {
		s.logger.Warn(s.ctx, "feedback generation returned no feedback")
		s.navigate(HomePath)
		return
	}

	s.navigate(fmt.Sprintf("/interview/%s/feedback/%s", s.cfg.Script.InterviewID, result.FeedbackID))
}

func (s *Session) navigate(path string) {
	s.logger.Info(observability.WithFields(s.ctx, observability.Field{Key: "path", Value: path}), "navigating after call")
	s.deps.Navigator.Navigate(s.ctx, path)
}

// notify delivers snap unless the observer already saw a newer one.
func (s *Session) notify(snap Snapshot) {
	if s.deps.Observer == nil {
		return
	}
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	if snap.Version <= s.lastNotified {
		return
	}
	s.lastNotified = snap.Version
	s.deps.Observer(snap)
}
