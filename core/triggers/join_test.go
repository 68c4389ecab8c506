package triggers

import (
	"errors"
	"slices"
	"testing"

	"github.com/koscakluka/hotline-core/core/call"
)

func TestParseJoinTriggerShapes(t *testing.T) {
	testCases := []struct {
		name    string
		payload string
		want    JoinTrigger
	}{
		{
			name:    "bare",
			payload: `{"callId":"abc123","target":"prefecture"}`,
			want:    JoinTrigger{CallID: "abc123", Target: call.TargetPrefecture},
		},
		{
			name:    "wrapped",
			payload: `{"callAction":{"callId":"abc123","target":"impots","status":"dialing"}}`,
			want:    JoinTrigger{CallID: "abc123", Target: call.TargetImpots, Status: "dialing"},
		},
		{
			name:    "snake case from the relay",
			payload: `{"status":"calling","call_action":{"call_id":"abc123","target":"caf","status":"dialing"},"question":"refund"}`,
			want:    JoinTrigger{CallID: "abc123", Target: call.TargetCAF, Status: "dialing", Question: "refund"},
		},
		{
			name:    "missing target defaults",
			payload: `{"callId":"abc123"}`,
			want:    JoinTrigger{CallID: "abc123", Target: call.DefaultTarget},
		},
		{
			name:    "target is case insensitive",
			payload: `{"callId":" abc123 ","target":"CAF"}`,
			want:    JoinTrigger{CallID: "abc123", Target: call.TargetCAF},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			trigger, err := ParseJoinTrigger([]byte(testCase.payload))
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if trigger != testCase.want {
				t.Fatalf("expected %+v, got %+v", testCase.want, trigger)
			}
		})
	}
}

func TestParseJoinTriggerErrors(t *testing.T) {
	testCases := []struct {
		name    string
		payload string
		err     error
	}{
		{name: "missing call id", payload: `{"target":"caf"}`, err: ErrMissingCallID},
		{name: "empty wrapped call id", payload: `{"callAction":{"callId":""}}`, err: ErrMissingCallID},
		{name: "unknown target", payload: `{"callId":"abc123","target":"mairie"}`, err: ErrUnknownTarget},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if _, err := ParseJoinTrigger([]byte(testCase.payload)); !errors.Is(err, testCase.err) {
				t.Fatalf("expected %v, got %v", testCase.err, err)
			}
		})
	}

	if _, err := ParseJoinTrigger([]byte(`{`)); err == nil {
		t.Fatalf("expected error for invalid JSON")
	}
}

func TestJoinTriggerFromMap(t *testing.T) {
	trigger, err := JoinTriggerFromMap(map[string]any{
		"callAction": map[string]any{"callId": "abc123", "status": "failed"},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !trigger.Failed() {
		t.Fatalf("expected failed call action")
	}
	if trigger.Target != call.TargetCAF {
		t.Fatalf("expected default target, got %q", trigger.Target)
	}
}

func TestJoinTriggerSchemaRequiresCallID(t *testing.T) {
	schema := JoinTriggerSchema()

	action, ok := schema.Properties.Get("callAction")
	if !ok {
		t.Fatalf("expected callAction property")
	}
	if !slices.Contains(action.Required, "callId") {
		t.Fatalf("expected callId to be required, got %v", action.Required)
	}
	if slices.Contains(action.Required, "target") {
		t.Fatalf("expected target to be optional")
	}

	if _, err := JoinTriggerSchemaJSON(); err != nil {
		t.Fatalf("expected schema to marshal, got %v", err)
	}
}
