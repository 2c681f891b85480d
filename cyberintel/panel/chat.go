package panel

import (
	"strings"

	"github.com/google/uuid"
)

// Speaker identifies who produced a chat turn.
type Speaker int

const (
	SpeakerUser Speaker = iota
	SpeakerAssistant
)

// ChatTurn is one entry of the append-only chat transcript. The transcript
// is session-scoped and rendered in submission order.
type ChatTurn struct {
	ID      string
	Speaker Speaker
	Text    string
}

// NewChatTurn creates a turn with a fresh ID.
func NewChatTurn(speaker Speaker, text string) ChatTurn {
	return ChatTurn{ID: uuid.NewString(), Speaker: speaker, Text: text}
}

// OutageReply is the assistant turn appended when the chat transport fails.
const OutageReply = "SYSTEM OUTAGE: Unable to connect to Sentinel AI subroutines."

// Segment is one run of a chat message, either plain or strongly emphasized.
type Segment struct {
	Text   string
	Strong bool
}

// SplitEmphasis resolves the paired double-asterisk markup assistant replies
// may contain into alternating plain/strong segments. An unpaired "**" is
// treated as literal text. Empty runs are dropped.
func SplitEmphasis(text string) []Segment {
	var segments []Segment
	rest := text
	for {
		open := strings.Index(rest, "**")
		if open < 0 {
			break
		}
		close := strings.Index(rest[open+2:], "**")
		if close < 0 {
			break
		}
		if open > 0 {
			segments = append(segments, Segment{Text: rest[:open]})
		}
		if close > 0 {
			segments = append(segments, Segment{Text: rest[open+2 : open+2+close], Strong: true})
		}
		rest = rest[open+2+close+2:]
	}
	if rest != "" {
		segments = append(segments, Segment{Text: rest})
	}
	return segments
}
