package session

import (
	"context"
	"testing"

	"github.com/alexedwards/scs/v2"

	"github.com/prismtrack/console/internal/backend"
)

func loadedContext(t *testing.T, m *scs.SessionManager) context.Context {
	t.Helper()
	ctx, err := m.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return ctx
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	m := scs.New()
	ctx := loadedContext(t, m)

	in := &backend.Session{AccessToken: "a", RefreshToken: "r", Principal: backend.PrincipalPlatformAdmin}
	if err := Save(ctx, m, in); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	out := Load(ctx, m)
	if !out.Authenticated() {
		t.Fatal("loaded session not authenticated")
	}
	if out.AccessToken != "a" || out.RefreshToken != "r" || out.Principal != backend.PrincipalPlatformAdmin {
		t.Fatalf("loaded session = %+v", out)
	}
	if out.TokensRotated() {
		t.Error("freshly loaded session reports rotated tokens")
	}
}

func TestLoadPartialTripleIsAnonymous(t *testing.T) {
	t.Parallel()

	m := scs.New()
	ctx := loadedContext(t, m)

	m.Put(ctx, keyToken, "a")
	m.Put(ctx, keyUserType, string(backend.PrincipalTenant))
	// refreshToken missing

	if Load(ctx, m).Authenticated() {
		t.Fatal("partial credential triple treated as a session")
	}
}

func TestLoadRejectsUnknownPrincipal(t *testing.T) {
	t.Parallel()

	m := scs.New()
	ctx := loadedContext(t, m)

	m.Put(ctx, keyToken, "a")
	m.Put(ctx, keyRefreshToken, "r")
	m.Put(ctx, keyUserType, "superuser")

	if Load(ctx, m).Authenticated() {
		t.Fatal("unknown principal type treated as a session")
	}
}

func TestSaveClearedSessionDestroysState(t *testing.T) {
	t.Parallel()

	m := scs.New()
	ctx := loadedContext(t, m)

	sess := &backend.Session{AccessToken: "a", RefreshToken: "r", Principal: backend.PrincipalTenant}
	if err := Save(ctx, m, sess); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	sess.Clear()
	if err := Save(ctx, m, sess); err != nil {
		t.Fatalf("Save() after Clear error = %v", err)
	}

	if m.GetString(ctx, keyToken) != "" || m.GetString(ctx, keyRefreshToken) != "" || m.GetString(ctx, keyUserType) != "" {
		t.Fatal("credential keys still present after destroy")
	}
}
