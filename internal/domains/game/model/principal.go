package model

import "strings"

// Capabilities checked by the dispatcher
const (
	CapabilityRead  = "games:read"
	CapabilityWrite = "games:write"
)

// Principal is the authenticated caller, precomputed once per request by the auth middleware
type Principal struct {
	Subject       string
	Authenticated bool
	Capabilities  map[string]struct{}
}

// Anonymous returns a principal without identity or capabilities
func Anonymous() Principal {
	return Principal{Capabilities: map[string]struct{}{}}
}

// NewPrincipal builds an authenticated principal from a list of scopes
func NewPrincipal(subject string, scopes ...string) Principal {
	caps := make(map[string]struct{}, len(scopes))
	for _, s := range scopes {
		if s = strings.TrimSpace(s); s != "" {
			caps[s] = struct{}{}
		}
	}
	return Principal{Subject: subject, Authenticated: true, Capabilities: caps}
}

func (p Principal) Has(capability string) bool {
	_, ok := p.Capabilities[capability]
	return ok
}
