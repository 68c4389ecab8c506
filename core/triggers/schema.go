package triggers

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// CallAction documents the trigger shape for tool definitions.
type CallAction struct {
	CallID   string `json:"callId" jsonschema:"title=Call ID,description=Identifier of the call session to join"`
	Target   string `json:"target,omitempty" jsonschema:"title=Target,description=Administration that was called,enum=caf,enum=prefecture,enum=impots,default=caf"`
	Status   string `json:"status,omitempty" jsonschema:"title=Status,description=Status reported when the call was placed,enum=dialing,enum=calling,enum=failed"`
	Question string `json:"question,omitempty" jsonschema:"title=Question,description=What the user wants to find out"`
}

type joinPayload struct {
	CallAction CallAction `json:"callAction" jsonschema:"title=Call action,description=The call to join"`
}

// JoinTriggerSchema returns the JSON schema of the wrapped trigger shape.
func JoinTriggerSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{DoNotReference: true}
	return reflector.Reflect(&joinPayload{})
}

// JoinTriggerSchemaJSON returns the schema marshalled for tool layers that
// take raw JSON.
func JoinTriggerSchemaJSON() (json.RawMessage, error) {
	return json.Marshal(JoinTriggerSchema())
}
