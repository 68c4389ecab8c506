package events

import "github.com/koscakluka/hotline-core/core/call"

const (
	// KindRemoteSpeakingStarted identifies the hotline starting to talk.
	KindRemoteSpeakingStarted Kind = "remote_speech.started"
	// KindRemoteUtterance identifies a partial or final recognized utterance.
	KindRemoteUtterance Kind = "remote_speech.utterance"
	// KindRemoteTurnComplete identifies the end of the hotline's turn.
	KindRemoteTurnComplete Kind = "remote_speech.turn_complete"
)

// RemoteSpeakingStarted marks the hotline starting to talk.
type RemoteSpeakingStarted struct{ Base }

// NewRemoteSpeakingStarted creates a remote speaking started event.
func NewRemoteSpeakingStarted(opts ...RebaseOption) RemoteSpeakingStarted {
	return RemoteSpeakingStarted{Base: NewBase(KindRemoteSpeakingStarted, opts...)}
}

// RemoteUtterance carries recognized speech. SourceText is the text in the
// speaker's language, TranslatedText its translation. While IsFinal is false
// the text is a growing snapshot of the same utterance, not a delta.
type RemoteUtterance struct {
	Base
	Speaker        call.Speaker
	SourceText     string
	TranslatedText string
	IsFinal        bool
}

// NewRemoteUtterance creates a remote utterance event.
func NewRemoteUtterance(speaker call.Speaker, sourceText, translatedText string, isFinal bool, opts ...RebaseOption) RemoteUtterance {
	return RemoteUtterance{
		Base:           NewBase(KindRemoteUtterance, opts...),
		Speaker:        speaker,
		SourceText:     sourceText,
		TranslatedText: translatedText,
		IsFinal:        isFinal,
	}
}

// RemoteTurnComplete carries the final text of a speaker's turn.
type RemoteTurnComplete struct {
	Base
	Speaker        call.Speaker
	SourceText     string
	TranslatedText string
}

// NewRemoteTurnComplete creates a remote turn complete event.
func NewRemoteTurnComplete(speaker call.Speaker, sourceText, translatedText string, opts ...RebaseOption) RemoteTurnComplete {
	return RemoteTurnComplete{
		Base:           NewBase(KindRemoteTurnComplete, opts...),
		Speaker:        speaker,
		SourceText:     sourceText,
		TranslatedText: translatedText,
	}
}
