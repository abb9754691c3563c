// Package redirect sends administrative users to the admin landing view
// when their session becomes authenticated.
package redirect

import (
	"fmt"
	"os/exec"
	"runtime"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/jobdeck-dev/jobdeck/internal/session"
)

// Navigator performs the actual navigation. The default implementation
// opens the system browser; tests substitute a recorder.
type Navigator interface {
	Open(url string) error
}

// Policy is a one-shot session listener: the first authenticated transition
// with an administrative user navigates to the landing URL, and the policy
// never fires again for the lifetime of the process, even if the user later
// navigates away and re-triggers a transition.
type Policy struct {
	landingURL string
	nav        Navigator
	log        zerolog.Logger
	fired      atomic.Bool
}

// NewPolicy creates a redirect policy targeting the given admin landing URL
func NewPolicy(landingURL string, nav Navigator, log zerolog.Logger) *Policy {
	if nav == nil {
		nav = BrowserNavigator{}
	}
	return &Policy{
		landingURL: landingURL,
		nav:        nav,
		log:        log,
	}
}

// Listener returns the session listener to subscribe on the manager.
func (p *Policy) Listener() session.Listener {
	return func(st session.State) {
		if !st.IsAuthenticated || !st.User.IsAdministrative() {
			return
		}
		if !p.fired.CompareAndSwap(false, true) {
			return
		}

		p.log.Info().Str("url", p.landingURL).Msg("Administrative user, opening admin landing view")
		if err := p.nav.Open(p.landingURL); err != nil {
			p.log.Warn().Err(err).Str("url", p.landingURL).Msg("Failed to open admin landing view")
		}
	}
}

// Fired reports whether the policy has already navigated.
func (p *Policy) Fired() bool {
	return p.fired.Load()
}

// BrowserNavigator opens URLs in the default system browser. This is a full
// page navigation on purpose: the admin area is served by the backend, not
// rendered by this client.
type BrowserNavigator struct{}

// Open launches the default browser at the given URL
func (BrowserNavigator) Open(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
