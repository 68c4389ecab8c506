// Package triggers interprets requests from the tool layer to join a call
// that was placed elsewhere.
package triggers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/koscakluka/hotline-core/core/call"
)

const StatusFailed = "failed"

var (
	ErrMissingCallID = errors.New("join trigger has no call id")
	ErrUnknownTarget = errors.New("join trigger has an unknown target")
)

// JoinTrigger identifies a call to observe.
type JoinTrigger struct {
	CallID string
	Target call.Target
	// Status is the status reported when the call was placed, e.g.
	// "dialing" or "failed".
	Status   string
	Question string
}

// Failed reports whether the call could not be placed. Such a call must not
// be joined.
func (t JoinTrigger) Failed() bool {
	return strings.EqualFold(t.Status, StatusFailed)
}

// ParseJoinTrigger decodes a trigger from JSON. Both the bare shape
// {"callId":…,"target":…} and the wrapped {"callAction":{…}} are accepted,
// with snake_case keys as well.
func ParseJoinTrigger(data []byte) (JoinTrigger, error) {
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return JoinTrigger{}, fmt.Errorf("failed to decode join trigger: %w", err)
	}
	return JoinTriggerFromMap(payload)
}

// JoinTriggerFromMap builds a trigger from an already decoded payload.
func JoinTriggerFromMap(payload map[string]any) (JoinTrigger, error) {
	action := payload
	for _, key := range []string{"callAction", "call_action"} {
		if nested, ok := payload[key].(map[string]any); ok {
			action = nested
			break
		}
	}

	trigger := JoinTrigger{
		CallID:   lookupString(action, "callId", "call_id"),
		Target:   call.Target(strings.ToLower(lookupString(action, "target"))),
		Status:   lookupString(action, "status"),
		Question: lookupString(action, "question", "userQuestion", "user_question"),
	}
	if trigger.Question == "" && len(action) != len(payload) {
		trigger.Question = lookupString(payload, "question", "userQuestion", "user_question")
	}

	if trigger.CallID == "" {
		return JoinTrigger{}, ErrMissingCallID
	}
	if trigger.Target == "" {
		trigger.Target = call.DefaultTarget
	}
	if !trigger.Target.IsValid() {
		return JoinTrigger{}, fmt.Errorf("%w: %q", ErrUnknownTarget, trigger.Target)
	}

	return trigger, nil
}

func lookupString(payload map[string]any, keys ...string) string {
	for _, key := range keys {
		switch value := payload[key].(type) {
		case string:
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				return trimmed
			}
		case json.Number:
			return value.String()
		case float64:
			return fmt.Sprintf("%.0f", value)
		}
	}
	return ""
}
