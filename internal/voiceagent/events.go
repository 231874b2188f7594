// Package voiceagent is a client for the hosted voice-agent platform.
// The platform owns speech recognition, speech synthesis and the dialogue itself;
// this package starts and stops calls and relays the platform's event stream.
package voiceagent

import (
	"errors"
	"fmt"
)

// ErrPlatform wraps every error reported by the platform over the event stream.
var ErrPlatform = errors.New("voice agent platform error")

type EventType string

const (
	EventCallStart   EventType = "call-start"
	EventCallEnd     EventType = "call-end"
	EventMessage     EventType = "message"
	EventSpeechStart EventType = "speech-start"
	EventSpeechEnd   EventType = "speech-end"
	EventError       EventType = "error"
)

const (
	MessageTypeTranscript = "transcript"

	TranscriptTypePartial = "partial"
	TranscriptTypeFinal   = "final"
)

// Message is the payload of a "message" event
type Message struct {
	Type           string `json:"type"`
	TranscriptType string `json:"transcriptType,omitempty"`
	Role           string `json:"role,omitempty"`
	Transcript     string `json:"transcript,omitempty"`
}

// IsFinalTranscript reports whether the platform marked this fragment as a completed turn.
func (m Message) IsFinalTranscript() bool {
	return m.Type == MessageTypeTranscript && m.TranscriptType == TranscriptTypeFinal
}

// Event is one entry of the platform event stream.
// Message is set for EventMessage, Err for EventError.
type Event struct {
	Type    EventType
	Message *Message
	Err     error
}

func (e Event) String() string {
	switch {
	case e.Message != nil:
		return fmt.Sprintf("%s(%s/%s)", e.Type, e.Message.Type, e.Message.TranscriptType)
	case e.Err != nil:
		return fmt.Sprintf("%s(%v)", e.Type, e.Err)
	default:
		return string(e.Type)
	}
}

// Handler receives platform events. Handlers are called one at a time, in arrival order.
type Handler func(Event)

// PlatformError builds an EventError carrying the platform's message.
func PlatformError(message string) Event {
	return Event{Type: EventError, Err: fmt.Errorf("%w: %s", ErrPlatform, message)}
}
