// Package notify implements the transient notification queue shared by every
// panel. Notifications are insertion-ordered, auto-dismissed in two phases
// (a fade after the display duration, removal shortly after), and bounded so
// a burst of toasts cannot take over the screen.
package notify

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// Severity classifies a notification for icon and color selection.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Phase is the lifecycle stage of a visible notification.
type Phase int

const (
	// PhaseVisible is the initial, fully rendered stage.
	PhaseVisible Phase = iota
	// PhaseFading is the dimmed stage between the fade trigger and removal.
	PhaseFading
)

// DisplayDuration is how long a notification stays fully visible before the
// fade phase starts.
const DisplayDuration = 3500 * time.Millisecond

// FadeDuration is how long the fade phase lasts before the notification is
// removed from the queue entirely.
const FadeDuration = 400 * time.Millisecond

// Notification is one transient user-visible message.
type Notification struct {
	ID        string
	Message   string
	Severity  Severity
	Phase     Phase
	CreatedAt time.Time
}

// FadeMsg asks the program to move a notification into its fade phase.
type FadeMsg struct {
	ID string
}

// ExpireMsg asks the program to remove a notification from the queue.
type ExpireMsg struct {
	ID string
}

// Queue holds the visible notifications, oldest first. Methods are
// mutex-guarded: Bubble Tea commands complete on their own goroutines, so the
// queue cannot rely on the single-writer property a browser event loop has.
type Queue struct {
	mu       sync.Mutex
	items    []Notification
	maxItems int
}

// NewQueue creates a Queue that keeps at most maxItems notifications visible.
// A non-positive bound falls back to 5.
func NewQueue(maxItems int) *Queue {
	if maxItems <= 0 {
		maxItems = 5
	}
	return &Queue{maxItems: maxItems}
}

// Post appends a notification and returns its ID together with the command
// that schedules the fade phase. An empty severity defaults to success.
func (q *Queue) Post(message string, severity Severity) (string, tea.Cmd) {
	if severity == "" {
		severity = SeveritySuccess
	}

	n := Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Severity:  severity,
		Phase:     PhaseVisible,
		CreatedAt: time.Now(),
	}

	q.mu.Lock()
	q.items = append(q.items, n)
	// Drop the oldest entries when over the bound. The contract allows this
	// simplification; insertion order of the survivors is preserved.
	if len(q.items) > q.maxItems {
		q.items = q.items[len(q.items)-q.maxItems:]
	}
	q.mu.Unlock()

	id := n.ID
	return id, tea.Tick(DisplayDuration, func(time.Time) tea.Msg {
		return FadeMsg{ID: id}
	})
}

// Fade moves the notification with the given ID into its fade phase and
// returns the command that schedules its removal. A notification that was
// already dropped (queue bound, duplicate message) yields a nil command.
func (q *Queue) Fade(id string) tea.Cmd {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i := range q.items {
		if q.items[i].ID == id {
			q.items[i].Phase = PhaseFading
			return tea.Tick(FadeDuration, func(time.Time) tea.Msg {
				return ExpireMsg{ID: id}
			})
		}
	}
	return nil
}

// Remove deletes the notification with the given ID. Removal happens
// regardless of which view is active; unknown IDs are a no-op.
func (q *Queue) Remove(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i := range q.items {
		if q.items[i].ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return
		}
	}
}

// Items returns a snapshot of the queue, oldest first.
func (q *Queue) Items() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Notification, len(q.items))
	copy(out, q.items)
	return out
}

// Len reports how many notifications are currently visible or fading.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
