package auth_test

import (
	"context"
	"errors"
	"testing"

	"taskdeck/internal/auth"
	"taskdeck/internal/testutil"
)

func TestManager_InitialDelivery(t *testing.T) {
	provider := testutil.NewSignedInProvider("u1", "ana@example.com", "tok")
	m := auth.NewManager(provider)
	defer m.Close()

	s := m.Current()
	if s == nil {
		t.Fatal("expected current session after construction")
	}
	if s.UserID != "u1" || s.Email != "ana@example.com" {
		t.Errorf("unexpected session %+v", s)
	}
}

func TestManager_OnSessionChange(t *testing.T) {
	provider := testutil.NewFakeProvider()
	m := auth.NewManager(provider)
	defer m.Close()

	var got []*auth.Session
	unsubscribe := m.OnSessionChange(func(s *auth.Session) { got = append(got, s) })

	// The listener fires synchronously with the current (nil) state.
	if len(got) != 1 || got[0] != nil {
		t.Fatalf("expected one initial nil delivery, got %v", got)
	}

	provider.SetSession(&auth.Session{UserID: "u1", Email: "ana@example.com"}, "tok")
	if len(got) != 2 || got[1] == nil || got[1].UserID != "u1" {
		t.Fatalf("expected sign-in delivery, got %v", got)
	}

	provider.SetSession(nil, "")
	if len(got) != 3 || got[2] != nil {
		t.Fatalf("expected sign-out delivery, got %v", got)
	}

	unsubscribe()
	provider.SetSession(&auth.Session{UserID: "u2"}, "tok2")
	if len(got) != 3 {
		t.Errorf("listener fired after unsubscribe, deliveries = %d", len(got))
	}
}

func TestManager_FreshToken(t *testing.T) {
	provider := testutil.NewFakeProvider()
	m := auth.NewManager(provider)
	defer m.Close()

	if _, err := m.FreshToken(context.Background()); !errors.Is(err, auth.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}

	provider.SetSession(&auth.Session{UserID: "u1"}, "tok-a")
	tok, err := m.FreshToken(context.Background())
	if err != nil {
		t.Fatalf("FreshToken: %v", err)
	}
	if tok != "tok-a" {
		t.Errorf("token = %q, want %q", tok, "tok-a")
	}

	// Each call reflects the provider's state at that instant; nothing is
	// cached between calls.
	provider.SetSession(&auth.Session{UserID: "u1"}, "tok-b")
	tok, err = m.FreshToken(context.Background())
	if err != nil {
		t.Fatalf("FreshToken: %v", err)
	}
	if tok != "tok-b" {
		t.Errorf("token = %q, want %q", tok, "tok-b")
	}
}

func TestManager_FreshTokenProviderError(t *testing.T) {
	provider := testutil.NewSignedInProvider("u1", "ana@example.com", "tok")
	provider.AccessTokenErr = errors.New("refresh failed")
	m := auth.NewManager(provider)
	defer m.Close()

	if _, err := m.FreshToken(context.Background()); err == nil {
		t.Error("expected provider error to propagate")
	}
}

func TestManager_CloseReleasesSubscription(t *testing.T) {
	provider := testutil.NewFakeProvider()
	m := auth.NewManager(provider)

	if n := provider.SubscriberCount(); n != 1 {
		t.Fatalf("subscribers after construction = %d, want 1", n)
	}

	m.Close()
	if n := provider.SubscriberCount(); n != 0 {
		t.Errorf("subscribers after Close = %d, want 0", n)
	}

	// Close is idempotent.
	m.Close()
}

func TestManager_SignInUpdatesCurrent(t *testing.T) {
	provider := testutil.NewFakeProvider()
	m := auth.NewManager(provider)
	defer m.Close()

	s, err := m.SignIn(context.Background(), "ana@example.com", "pw")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if s == nil || s.Email != "ana@example.com" {
		t.Fatalf("unexpected session %+v", s)
	}
	if cur := m.Current(); cur == nil || cur.Email != "ana@example.com" {
		t.Errorf("Current() not updated after sign-in: %+v", cur)
	}

	if err := m.SignOut(context.Background()); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if m.Current() != nil {
		t.Error("expected nil session after sign-out")
	}
}
