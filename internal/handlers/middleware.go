package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"wordmemo/internal/models"
	"wordmemo/internal/security"
	"wordmemo/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const ClientSessionContextKey ContextKey = "client_session"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	sessions *service.ClientSessions
	signer   *security.SessionSigner
	csrf     *security.CSRFGenerator
	limiter  *security.RateLimiter
	debug    bool
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(sessions *service.ClientSessions, signer *security.SessionSigner, csrf *security.CSRFGenerator, limiter *security.RateLimiter, debug bool) *Middleware {
	return &Middleware{
		sessions: sessions,
		signer:   signer,
		csrf:     csrf,
		limiter:  limiter,
		debug:    debug,
	}
}

// Session attaches the caller's client session, issuing a new signed
// cookie when the request has none or an invalid one
func (m *Middleware) Session(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sessionID string
		if cookie, err := r.Cookie(security.SessionCookieName); err == nil {
			id, err := m.signer.Verify(cookie.Value)
			if err == nil {
				sessionID = id
			} else if m.debug {
				log.Printf("[DEBUG] Rejected session cookie: %v", err)
			}
		}

		if sessionID == "" {
			sessionID = security.GenerateSessionID()
			token, expires, err := m.signer.Sign(sessionID)
			if err != nil {
				respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error signing session", err)
				return
			}
			http.SetCookie(w, security.CreateSessionCookie(r, token, expires))
		}

		cs := m.sessions.GetOrCreate(sessionID)
		ctx := context.WithValue(r.Context(), ClientSessionContextKey, cs)
		next(w, r.WithContext(ctx))
	}
}

// CSRFProtect rejects state-changing requests without a valid CSRF token.
// It must run inside Session.
func (m *Middleware) CSRFProtect(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead {
			next(w, r)
			return
		}

		cs := GetClientSession(r.Context())
		if cs == nil || !m.csrf.ValidateToken(cs.ID, security.TokenFromRequest(r)) {
			respondWithError(w, http.StatusForbidden, ErrInvalidCSRFToken, "", nil)
			return
		}
		next(w, r)
	}
}

// RateLimit throttles state-changing requests per client IP
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			ip := security.GetClientIP(r)
			if !m.limiter.Allow(ip) {
				log.Printf("Rate limit exceeded for %s on %s", ip, r.URL.Path)
				respondWithError(w, http.StatusTooManyRequests, ErrTooManyRequests, "", nil)
				return
			}
		}
		next(w, r)
	}
}

// RequireTeacherMode only lets clients in Teacher mode through
func (m *Middleware) RequireTeacherMode(next http.HandlerFunc) http.HandlerFunc {
	return m.requireMode(models.ModeTeacher, ErrTeacherModeOnly, next)
}

// RequirePlayMode only lets clients in Play mode through
func (m *Middleware) RequirePlayMode(next http.HandlerFunc) http.HandlerFunc {
	return m.requireMode(models.ModePlay, ErrPlayModeOnly, next)
}

func (m *Middleware) requireMode(mode models.Mode, msg string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cs := GetClientSession(r.Context())
		if cs == nil || cs.Gate.Mode() != mode {
			respondWithError(w, http.StatusForbidden, msg, "", nil)
			return
		}
		next(w, r)
	}
}

// Public wraps a handler with session, rate limiting and CSRF checks
func (m *Middleware) Public(next http.HandlerFunc) http.HandlerFunc {
	return m.Session(m.RateLimit(m.CSRFProtect(next)))
}

// Teacher is Public plus the Teacher mode gate
func (m *Middleware) Teacher(next http.HandlerFunc) http.HandlerFunc {
	return m.Public(m.RequireTeacherMode(next))
}

// Play is Public plus the Play mode gate
func (m *Middleware) Play(next http.HandlerFunc) http.HandlerFunc {
	return m.Public(m.RequirePlayMode(next))
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// GetClientSession retrieves the client session from the request context
func GetClientSession(ctx context.Context) *service.ClientSession {
	cs, ok := ctx.Value(ClientSessionContextKey).(*service.ClientSession)
	if !ok {
		return nil
	}
	return cs
}
