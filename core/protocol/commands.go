package protocol

import (
	"encoding/json"
	"fmt"
)

const (
	TypeUserResponse = "user_response"
	TypeHangUp       = "hangup"
)

// Command is an outbound frame.
type Command struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

func (c Command) String() string {
	if c.Text == "" {
		return c.Type
	}
	return c.Type + ": " + c.Text
}

// SubmitResponse builds the command carrying a typed reply.
func SubmitResponse(text string) Command {
	return Command{Type: TypeUserResponse, Text: text}
}

// HangUp builds the command ending the call.
func HangUp() Command {
	return Command{Type: TypeHangUp}
}

// EncodeCommand marshals a command into a text frame.
func EncodeCommand(cmd Command) ([]byte, error) {
	if cmd.Type == "" {
		return nil, fmt.Errorf("command type is required")
	}

	data, err := json.Marshal(cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s command: %w", cmd.Type, err)
	}
	return data, nil
}
