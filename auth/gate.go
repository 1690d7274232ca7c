// Package auth gates admin operations behind the shared moderation secret.
package auth

import "github.com/vibe-graveyard/backend/errs"

// Gate authorizes admin requests against the configured secret. The check is
// an exact-match string comparison, as the site has always done it; the
// single-operator model keeps a constant-time comparison out of scope.
type Gate struct {
	secret string
}

func NewGate(secret string) Gate {
	return Gate{secret: secret}
}

// Authorize returns nil when the supplied credential matches the configured
// secret, errs.Unauthorized otherwise. An empty configured secret rejects
// everything rather than waving requests through.
func (g Gate) Authorize(credential string) error {
	if g.secret == "" || credential != g.secret {
		return errs.Unauthorized
	}
	return nil
}
