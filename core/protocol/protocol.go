// Package protocol translates the relay's JSON text frames into events and
// local commands into frames.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/koscakluka/hotline-core/core/call"
	"github.com/koscakluka/hotline-core/core/events"
	"github.com/koscakluka/hotline-core/internal/utils"
)

// Server message types sent by the relay.
const (
	TypeSessionState       = "session_state"
	TypeCallConnected      = "call_connected"
	TypeCAFSpeakingStarted = "caf_speaking_started"
	TypeCAFSaid            = "caf_said"
	TypeCAFFinished        = "caf_finished"
	TypeWaitingForUser     = "waiting_for_user"
	TypeAgentThinking      = "agent_thinking"
	TypeAgentSuggests      = "agent_suggests"
	TypeSpeakingToCAF      = "speaking_to_caf"
	TypeFinishedSpeaking   = "finished_speaking"
	TypeCallEnded          = "call_ended"
	TypeError              = "error"
)

// ErrUnknownMessageType is returned for well formed frames whose type is not
// understood. Callers ignore such frames.
var ErrUnknownMessageType = errors.New("unknown message type")

const CodeBadRequest = "bad_request"

// DecodeError reports a frame that could not be interpreted at all.
type DecodeError struct {
	Code string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return e.Code
	}
	return e.Code + ": " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error { return e.Err }

// serverMessage is the union of every field a relay frame may carry.
type serverMessage struct {
	Type string `json:"type"`

	Phase    string `json:"phase"`
	Target   string `json:"target"`
	Question string `json:"question"`

	Status *string `json:"status"`

	French  string  `json:"french"`
	English string  `json:"english"`
	IsFinal *bool   `json:"is_final"`
	Speaker *string `json:"speaker"`

	Prompt  *string `json:"prompt"`
	Message *string `json:"message"`
	Text    *string `json:"text"`

	AutoSend      *bool  `json:"auto_send"`
	AutoSendDelay *int64 `json:"auto_send_delay"`
}

// DecodeServerMessage decodes one inbound text frame.
//
// Invalid JSON or a frame without a type yields a [*DecodeError] with code
// [CodeBadRequest]. A frame of an unknown type yields [ErrUnknownMessageType].
func DecodeServerMessage(data []byte) (events.Event, error) {
	var msg serverMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, &DecodeError{Code: CodeBadRequest, Err: err}
	}
	if msg.Type == "" {
		return nil, &DecodeError{Code: CodeBadRequest, Err: errors.New("missing message type")}
	}

	switch msg.Type {
	case TypeSessionState:
		return events.NewSessionSnapshot(call.Phase(msg.Phase), call.Target(msg.Target), msg.Question), nil
	case TypeCallConnected:
		return events.NewCallConnected(), nil
	case TypeCAFSpeakingStarted:
		return events.NewRemoteSpeakingStarted(), nil
	case TypeCAFSaid:
		return events.NewRemoteUtterance(msg.speaker(), msg.French, msg.English, utils.Deref(msg.IsFinal, false)), nil
	case TypeCAFFinished:
		return events.NewRemoteTurnComplete(msg.speaker(), msg.French, msg.English), nil
	case TypeWaitingForUser:
		return events.NewAwaitingInput(utils.Deref(msg.Prompt, "")), nil
	case TypeAgentThinking:
		return events.NewAgentThinking(utils.Deref(msg.Message, "")), nil
	case TypeAgentSuggests:
		suggestion := events.NewAgentSuggestion(msg.English)
		suggestion.AutoSend = utils.Deref(msg.AutoSend, false)
		suggestion.AutoSendDelay = time.Duration(utils.Deref(msg.AutoSendDelay, 0)) * time.Millisecond
		return suggestion, nil
	case TypeSpeakingToCAF:
		return events.NewLocalSpeaking(utils.Deref(msg.Text, "")), nil
	case TypeFinishedSpeaking:
		return events.NewLocalFinishedSpeaking(), nil
	case TypeCallEnded:
		return events.NewCallEnded(), nil
	case TypeError:
		return events.NewSessionError(utils.Deref(msg.Message, "")), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMessageType, msg.Type)
	}
}

// speaker defaults to the hotline side, the relay only transcribes it.
func (m serverMessage) speaker() call.Speaker {
	if m.Speaker == nil || *m.Speaker == "" {
		return call.SpeakerHotline
	}
	return call.Speaker(*m.Speaker)
}
