package security

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestSessionSignerRoundTrip(t *testing.T) {
	signer := NewSessionSigner("test-secret", time.Hour)
	id := GenerateSessionID()

	token, expires, err := signer.Sign(id)
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}
	if time.Until(expires) <= 0 {
		t.Errorf("expiry %v is not in the future", expires)
	}

	got, err := signer.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error: %v", err)
	}
	if got != id {
		t.Errorf("Verify() = %q, want %q", got, id)
	}
}

func TestSessionSignerRejects(t *testing.T) {
	signer := NewSessionSigner("test-secret", time.Hour)
	token, _, err := signer.Sign(GenerateSessionID())
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}

	expired := NewSessionSigner("test-secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, _, err := expired.Sign(GenerateSessionID())
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}

	notUUID, _, err := signer.Sign("not-a-uuid")
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}

	tests := []struct {
		name  string
		token string
		s     *SessionSigner
	}{
		{name: "wrong secret", token: token, s: NewSessionSigner("other-secret", time.Hour)},
		{name: "tampered", token: token + "x", s: signer},
		{name: "expired", token: expiredToken, s: signer},
		{name: "garbage", token: "abc.def.ghi", s: signer},
		{name: "subject not a session id", token: notUUID, s: signer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.s.Verify(tt.token); err == nil {
				t.Error("Verify() accepted an invalid token")
			}
		})
	}
}

func TestCreateSessionCookie(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Forwarded-Proto", "https")

	cookie := CreateSessionCookie(req, "token", time.Now().Add(time.Hour))
	if cookie.Name != SessionCookieName {
		t.Errorf("cookie name = %q, want %q", cookie.Name, SessionCookieName)
	}
	if !cookie.HttpOnly || !cookie.Secure {
		t.Errorf("expected HttpOnly and Secure flags, got %+v", cookie)
	}
}
