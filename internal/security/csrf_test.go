package security

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestCSRFGenerator(t *testing.T) {
	gen := NewCSRFGenerator("secret")

	token, err := gen.GenerateToken("session-1")
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}

	tests := []struct {
		name      string
		sessionID string
		token     string
		want      bool
	}{
		{name: "valid", sessionID: "session-1", token: token, want: true},
		{name: "other session", sessionID: "session-2", token: token, want: false},
		{name: "empty token", sessionID: "session-1", token: "", want: false},
		{name: "empty session", sessionID: "", token: token, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gen.ValidateToken(tt.sessionID, tt.token); got != tt.want {
				t.Errorf("ValidateToken() = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := gen.GenerateToken(""); err == nil {
		t.Error("GenerateToken(\"\") should fail")
	}
}

func TestTokenFromRequest(t *testing.T) {
	req := httptest.NewRequest("POST", "/", nil)
	req.Header.Set(CSRFHeaderName, "from-header")
	if got := TokenFromRequest(req); got != "from-header" {
		t.Errorf("TokenFromRequest() = %q, want from-header", got)
	}

	form := url.Values{CSRFFormField: {"from-form"}}
	req = httptest.NewRequest("POST", "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if got := TokenFromRequest(req); got != "from-form" {
		t.Errorf("TokenFromRequest() = %q, want from-form", got)
	}
}
