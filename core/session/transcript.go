package session

import (
	"slices"

	"github.com/koscakluka/hotline-core/core/call"
)

// MergeUtterance folds a streaming utterance into the transcript.
//
// A trailing non-final entry of the same speaker is amended in place, which
// coalesces streaming updates into one growing entry. Anything else is
// appended. The input slice is never modified.
func MergeUtterance(transcript []TranscriptEntry, entry TranscriptEntry) []TranscriptEntry {
	if n := len(transcript); n > 0 {
		last := transcript[n-1]
		if last.Speaker == entry.Speaker && !last.IsFinal {
			merged := slices.Clone(transcript)
			merged[n-1].SourceText = entry.SourceText
			merged[n-1].TranslatedText = entry.TranslatedText
			merged[n-1].IsFinal = entry.IsFinal
			return merged
		}
	}

	return AppendEntry(transcript, entry)
}

// AppendEntry appends entry to the transcript. A trailing non-final entry is
// sealed first so that at most one non-final entry exists and it is always
// the last one.
func AppendEntry(transcript []TranscriptEntry, entry TranscriptEntry) []TranscriptEntry {
	appended := make([]TranscriptEntry, len(transcript), len(transcript)+1)
	copy(appended, transcript)
	if n := len(appended); n > 0 && !appended[n-1].IsFinal {
		appended[n-1].IsFinal = true
	}
	return append(appended, entry)
}

// CompleteTurn finalizes the trailing entry of speaker with the final text.
//
// When the transcript does not end with a non-final entry of that speaker
// the transcript is returned unchanged: a completion without preceding
// partials is tolerated, and entries that are already final are never
// rewritten. A final caf_said followed by a caf_finished with different text
// therefore keeps the caf_said text.
func CompleteTurn(transcript []TranscriptEntry, speaker call.Speaker, sourceText, translatedText string) []TranscriptEntry {
	n := len(transcript)
	if n == 0 {
		return transcript
	}

	last := transcript[n-1]
	if last.Speaker != speaker || last.IsFinal {
		return transcript
	}

	completed := slices.Clone(transcript)
	completed[n-1].SourceText = sourceText
	completed[n-1].TranslatedText = translatedText
	completed[n-1].IsFinal = true
	return completed
}
