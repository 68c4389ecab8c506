package events

const (
	// KindAwaitingInput identifies the relay waiting for a user reply.
	KindAwaitingInput Kind = "user_input.awaiting"
	// KindLocalSpeaking identifies the user's reply being spoken.
	KindLocalSpeaking Kind = "user_input.speaking"
	// KindLocalFinishedSpeaking identifies the end of reply playback.
	KindLocalFinishedSpeaking Kind = "user_input.finished_speaking"
	// KindResponseSubmitted identifies a reply typed by the user.
	KindResponseSubmitted Kind = "user_input.response_submitted"
	// KindHangUpRequested identifies the user ending the call.
	KindHangUpRequested Kind = "user_input.hang_up_requested"
)

// AwaitingInput marks that the relay waits for the user. Prompt is an
// optional hint about what is expected.
type AwaitingInput struct {
	Base
	Prompt string
}

// NewAwaitingInput creates an awaiting input event.
func NewAwaitingInput(prompt string, opts ...RebaseOption) AwaitingInput {
	return AwaitingInput{Base: NewBase(KindAwaitingInput, opts...), Prompt: prompt}
}

// LocalSpeaking marks that the user's reply is being spoken to the hotline.
type LocalSpeaking struct {
	Base
	Text string
}

// NewLocalSpeaking creates a local speaking event.
func NewLocalSpeaking(text string, opts ...RebaseOption) LocalSpeaking {
	return LocalSpeaking{Base: NewBase(KindLocalSpeaking, opts...), Text: text}
}

// LocalFinishedSpeaking marks the end of the reply playback.
type LocalFinishedSpeaking struct{ Base }

// NewLocalFinishedSpeaking creates a local finished speaking event.
func NewLocalFinishedSpeaking(opts ...RebaseOption) LocalFinishedSpeaking {
	return LocalFinishedSpeaking{Base: NewBase(KindLocalFinishedSpeaking, opts...)}
}

// ResponseSubmitted carries a reply typed by the user. It is applied
// optimistically, before the relay acknowledges it.
type ResponseSubmitted struct {
	Base
	Text string
}

// NewResponseSubmitted creates a response submitted event.
func NewResponseSubmitted(text string, opts ...RebaseOption) ResponseSubmitted {
	return ResponseSubmitted{Base: NewBase(KindResponseSubmitted, opts...), Text: text}
}

// HangUpRequested marks the user ending the call. It is applied
// optimistically, the relay is never waited on.
type HangUpRequested struct{ Base }

// NewHangUpRequested creates a hang up requested event.
func NewHangUpRequested(opts ...RebaseOption) HangUpRequested {
	return HangUpRequested{Base: NewBase(KindHangUpRequested, opts...)}
}
