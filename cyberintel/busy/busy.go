// Package busy implements per-control mutual exclusion for network-triggering
// actions. A control that is busy refuses to start a second invocation, and
// release is structural: every guarded action completes through a DoneMsg that
// the program routes through one handler, so a failed (or even panicking)
// request can never leave a control stuck in its busy state.
package busy

import (
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrConflict is returned by Begin when the control is already busy.
// Callers at the UI layer ignore it silently; the refusal itself is the
// double-submission guard.
var ErrConflict = errors.New("control is already busy")

// DoneMsg wraps the completion of a guarded action. The program must release
// the named control when handling it, before dispatching Inner.
type DoneMsg struct {
	Control string
	Inner   tea.Msg
}

// PanicMsg is the Inner payload of a DoneMsg whose action panicked. The
// recovered value is carried so it can be logged; the control is released the
// same way as on any other outcome.
type PanicMsg struct {
	Control string
	Value   interface{}
}

// Controller tracks which controls are busy and what label each shows while
// its request is in flight.
type Controller struct {
	mu     sync.Mutex
	labels map[string]string
}

// NewController creates an empty Controller.
func NewController() *Controller {
	return &Controller{labels: make(map[string]string)}
}

// Begin marks a control busy and records the label it displays while busy.
// It returns ErrConflict, without side effects, when the control is already
// held.
func (c *Controller) Begin(control string, busyLabel string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, held := c.labels[control]; held {
		return ErrConflict
	}
	c.labels[control] = busyLabel
	return nil
}

// End restores a control to idle. Ending an idle control is a no-op, so the
// single release point in the program's update loop stays unconditional.
func (c *Controller) End(control string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.labels, control)
}

// IsBusy reports whether a control currently holds its busy scope.
func (c *Controller) IsBusy(control string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, held := c.labels[control]
	return held
}

// BusyLabel returns the label recorded for a busy control, or the given
// idle label when the control is not busy. Views call this instead of
// branching on IsBusy themselves.
func (c *Controller) BusyLabel(control string, idleLabel string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if label, held := c.labels[control]; held {
		return label
	}
	return idleLabel
}

// Scope wraps a blocking action into a command whose result always arrives as
// a DoneMsg for the given control, success or failure. A panic inside the
// action is recovered into a PanicMsg so the release path still runs.
//
// Scope does not itself call Begin; callers acquire the control first and only
// build the command once Begin succeeded.
func (c *Controller) Scope(control string, action func() tea.Msg) tea.Cmd {
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = DoneMsg{Control: control, Inner: PanicMsg{Control: control, Value: r}}
			}
		}()
		return DoneMsg{Control: control, Inner: action()}
	}
}
