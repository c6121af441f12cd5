package backend

import (
	"strings"
	"sync"
)

// Principal is the administrator role a session holds.
type Principal string

const (
	PrincipalPlatformAdmin Principal = "platform_admin"
	PrincipalTenant        Principal = "tenant"
)

// ParsePrincipal validates a stored principal-type string.
func ParsePrincipal(raw string) (Principal, bool) {
	switch Principal(strings.TrimSpace(raw)) {
	case PrincipalPlatformAdmin:
		return PrincipalPlatformAdmin, true
	case PrincipalTenant:
		return PrincipalTenant, true
	default:
		return "", false
	}
}

// Session holds the credential state for one browser. It is created from
// persisted storage at the start of a request, passed by reference into
// every backend call, and written back when the tokens rotate. A session
// holds exactly one principal type; the three fields are always set and
// cleared together.
//
// Handlers fan pages out over several backend calls at once, so the token
// fields are guarded by mu. Direct field access is safe only before the
// session is shared and after all calls using it have returned.
type Session struct {
	AccessToken  string
	RefreshToken string
	Principal    Principal

	mu      sync.Mutex
	rotated bool
}

// Authenticated reports whether the session holds credentials.
func (s *Session) Authenticated() bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.AccessToken != "" && s.Principal != ""
}

// TokensRotated reports whether a login or refresh replaced the tokens
// since the session was loaded, meaning it must be persisted again.
func (s *Session) TokensRotated() bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rotated
}

// Clear removes all credential state in one step.
func (s *Session) Clear() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.AccessToken = ""
	s.RefreshToken = ""
	s.Principal = ""
	s.rotated = true
}

// bearer returns the access token to attach to the next request.
func (s *Session) bearer() string {
	if s == nil {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.AccessToken
}

func (s *Session) install(accessToken, refreshToken string, principal Principal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.AccessToken = accessToken
	s.RefreshToken = refreshToken
	s.Principal = principal
	s.rotated = true
}
