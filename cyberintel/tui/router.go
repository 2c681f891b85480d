package tui

import "fmt"

// View identifies one of the named panels of the interface.
type View int

const (
	DashboardView View = iota
	URLScannerView
	PasswordLabView
	PhishingView
	BreachView
	ChatView
	numViews // Keep this last to count number of views
)

var viewNames = []string{
	"Dashboard",
	"URL Scanner",
	"Password Lab",
	"Phishing Detector",
	"Breach Check",
	"Sentinel AI",
}

// String returns the navigation label of the view.
func (v View) String() string {
	if v < 0 || v >= numViews {
		return fmt.Sprintf("Unknown View (%d)", v)
	}
	return viewNames[v]
}

// ViewByName resolves a stored view name back to its identifier. Unknown
// names resolve to the dashboard, the designated default view.
func ViewByName(name string) View {
	for i, n := range viewNames {
		if n == name {
			return View(i)
		}
	}
	return DashboardView
}

// Router owns the single-active-view state. Exactly one view is active at
// any time; every transition goes through SwitchTo, which also closes the
// profile overlay so navigation never leaves a stale popup on screen.
type Router struct {
	active      View
	overlayOpen bool
}

// NewRouter creates a Router with the dashboard active.
func NewRouter() *Router {
	return &Router{active: DashboardView}
}

// Active returns the currently active view.
func (r *Router) Active() View {
	return r.active
}

// SwitchTo activates the given view and closes any open overlay. Unknown
// identifiers are rejected with an error and leave the active view
// unchanged, rather than deactivating everything.
func (r *Router) SwitchTo(v View) error {
	if v < 0 || v >= numViews {
		return fmt.Errorf("unknown view id %d", int(v))
	}
	r.active = v
	r.overlayOpen = false
	return nil
}

// ToggleOverlay flips the profile overlay open or closed.
func (r *Router) ToggleOverlay() {
	r.overlayOpen = !r.overlayOpen
}

// CloseOverlay closes the profile overlay if it is open.
func (r *Router) CloseOverlay() {
	r.overlayOpen = false
}

// OverlayOpen reports whether the profile overlay is showing.
func (r *Router) OverlayOpen() bool {
	return r.overlayOpen
}
