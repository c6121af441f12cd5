// Package session persists browser credential sessions. Tokens never reach
// the browser; only the scs session cookie does.
package session

import (
	"context"
	"net/http"
	"time"

	"github.com/alexedwards/scs/pgxstore"
	"github.com/alexedwards/scs/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prismtrack/console/internal/backend"
)

const (
	keyToken        = "token"
	keyRefreshToken = "refreshToken"
	keyUserType     = "userType"
)

// NewManager builds the session manager. With a pool, sessions live in
// Postgres and survive restarts; without one, the in-memory store is used.
func NewManager(pool *pgxpool.Pool, cookieSecure bool) *scs.SessionManager {
	m := scs.New()
	m.Lifetime = 12 * time.Hour
	m.Cookie.Name = "prismtrack_session"
	m.Cookie.HttpOnly = true
	m.Cookie.Secure = cookieSecure
	m.Cookie.SameSite = http.SameSiteLaxMode
	if pool != nil {
		m.Store = pgxstore.New(pool)
	}
	return m
}

// Load reads the stored credential triple into a Session. A partially
// stored triple (any field missing) counts as no session.
func Load(ctx context.Context, m *scs.SessionManager) *backend.Session {
	access := m.GetString(ctx, keyToken)
	refresh := m.GetString(ctx, keyRefreshToken)
	principal, ok := backend.ParsePrincipal(m.GetString(ctx, keyUserType))
	if access == "" || refresh == "" || !ok {
		return &backend.Session{}
	}
	return &backend.Session{
		AccessToken:  access,
		RefreshToken: refresh,
		Principal:    principal,
	}
}

// Save writes the credential triple back in one step. A cleared session
// destroys the stored state entirely.
func Save(ctx context.Context, m *scs.SessionManager, sess *backend.Session) error {
	if !sess.Authenticated() {
		return m.Destroy(ctx)
	}
	m.Put(ctx, keyToken, sess.AccessToken)
	m.Put(ctx, keyRefreshToken, sess.RefreshToken)
	m.Put(ctx, keyUserType, string(sess.Principal))
	return nil
}
