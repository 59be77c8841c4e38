package auth

type Decision int

const (
	// Loading means the session is not resolved yet; render a placeholder.
	Loading Decision = iota
	Allow
	RedirectLogin
)

func (d Decision) String() string {
	switch d {
	case Loading:
		return "loading"
	case Allow:
		return "allow"
	default:
		return "redirect-login"
	}
}

func Guard(s Status) Decision {
	switch s.State {
	case Bootstrapping, Verifying:
		return Loading
	case Authenticated:
		if s.User == nil {
			return Loading
		}
		return Allow
	default:
		return RedirectLogin
	}
}

// Guard evaluates the route guard against the controller's current status.
func (c *Controller) Guard() Decision {
	return Guard(c.Status())
}
