// Package v1 contains the API controllers for the first API version.
package v1

import (
	"github.com/pkoka888/budget-control/internal/auth"
	"github.com/pkoka888/budget-control/internal/mail"
)

// Package level dependencies, set once at startup.
var (
	tokens       auth.Tokens
	loginLimiter *auth.LoginLimiter
	notifier     *mail.Sender
)

// Configure sets the dependencies the controllers need. It must be called
// before any route is served.
func Configure(t auth.Tokens, limiter *auth.LoginLimiter, sender *mail.Sender) {
	tokens = t
	loginLimiter = limiter
	notifier = sender
}
