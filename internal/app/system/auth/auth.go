// Package auth holds the cookie-session layer that gates the
// dashboard. Sessions carry only the operator's ID, role, and a random
// session token; everything else is re-fetched per request so role
// changes and disabled accounts take effect immediately.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/teloworks/telodash/internal/app/system/normalize"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Session cookie value keys.
const (
	isAuthKey       = "is_authenticated"
	userIDKey       = "user_id"
	userRoleKey     = "user_role"
	sessionTokenKey = "session_token"
)

// SessionManager owns the cookie store and the auth middleware. Create
// one with NewSessionManager and attach a UserFetcher before serving.
type SessionManager struct {
	store       *sessions.CookieStore
	logger      *zap.Logger
	name        string
	userFetcher UserFetcher
}

// SessionConfigError reports an unusable session configuration.
type SessionConfigError struct {
	Message string
}

func (e *SessionConfigError) Error() string {
	return e.Message
}

// NewSessionManager builds the cookie-session store.
//
// sessionKey signs the cookie and must be 32+ random chars when secure
// is true; in dev a weak key only logs a warning. name defaults to
// "telodash-session". Cookies are HttpOnly and SameSite=Lax: the
// dashboard is strictly first-party, and Lax still permits the
// top-level navigation back from the Google consent screen.
func NewSessionManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, &SessionConfigError{Message: "session key is empty; provide ≥32 random chars"}
	}

	weak := len(sessionKey) < 32 || isPlaceholderKey(sessionKey)
	if weak {
		if secure {
			return nil, &SessionConfigError{
				Message: "session key is too weak for production; provide ≥32 random chars (not a placeholder)",
			}
		}
		logger.Warn("session key is weak; 32+ random chars required in production",
			zap.Int("length", len(sessionKey)),
			zap.Bool("placeholder", isPlaceholderKey(sessionKey)))
	}

	if name == "" {
		name = "telodash-session"
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	store.Options = &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	logger.Info("session manager initialized",
		zap.Bool("secure", secure),
		zap.String("name", name),
		zap.String("domain", domain))

	return &SessionManager{
		store:  store,
		logger: logger,
		name:   name,
	}, nil
}

// SetUserFetcher attaches the per-request account lookup. Call after
// the database is connected and before the router starts serving.
func (sm *SessionManager) SetUserFetcher(uf UserFetcher) {
	sm.userFetcher = uf
}

// UserFetcher resolves a session's user ID to a live account.
type UserFetcher interface {
	// FetchUser returns nil if the account is missing or disabled, in
	// which case the session is invalidated.
	FetchUser(ctx context.Context, userID string) *SessionUser
}

// SessionUser is the signed-in operator as seen by handlers and
// templates, rebuilt from the users collection on every request.
type SessionUser struct {
	ID    string
	Name  string
	Email string
	Role  string
	Token string // random per-login token, carried for audit correlation
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the operator from the request context, if signed
// in.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// WithTestUser injects a SessionUser into the request context for
// handler tests.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

// LoadSessionUser decodes the session cookie and, when it marks a
// signed-in operator, resolves the account through the UserFetcher and
// puts it in the request context. A session whose account no longer
// resolves is cleared on the spot. Cookie errors never fail the
// request; the visitor just proceeds signed out.
func (sm *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := sm.store.Get(r, sm.name)
		if err != nil {
			sm.logCookieError(r, err)
		}

		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
			userID := getString(sess, userIDKey)
			token := getString(sess, sessionTokenKey)

			switch {
			case sm.userFetcher != nil && userID != "":
				if u := sm.userFetcher.FetchUser(r.Context(), userID); u != nil {
					u.Token = token
					r = withUser(r, u)
				} else {
					sm.logger.Info("session invalidated: user not found or disabled",
						zap.String("user_id", userID),
						zap.String("path", r.URL.Path))
					sess.Values[isAuthKey] = false
					delete(sess.Values, userIDKey)
					_ = sess.Save(r, w)
				}
			case userID != "":
				// No fetcher wired (tests, early startup): trust the
				// cookie's own claims.
				r = withUser(r, &SessionUser{
					ID:    userID,
					Role:  getString(sess, userRoleKey),
					Token: token,
				})
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth rejects requests with no operator in context. htmx
// requests get an HX-Redirect so the whole page, not the panel target,
// navigates to the sign-in form; plain browser requests get a 303.
// Either way the original URI rides along as the return parameter.
func (sm *SessionManager) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}

		ret := url.QueryEscape(r.URL.RequestURI())

		if r.Header.Get("HX-Request") == "true" {
			w.Header().Set("HX-Redirect", "/login?return="+ret)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		if wantsHTML(r) {
			http.Redirect(w, r, "/login?return="+ret, http.StatusSeeOther)
			return
		}

		// Non-HTML callers (the chart JSON endpoint) get a plain 401.
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})
}

// CreateSession marks the session signed in for the given operator.
// An empty token gets a freshly generated one.
func (sm *SessionManager) CreateSession(w http.ResponseWriter, r *http.Request, userID primitive.ObjectID, role, token string) error {
	sess, err := sm.store.Get(r, sm.name)
	if err != nil {
		sess, _ = sm.store.New(r, sm.name)
	}

	if token == "" {
		token, err = GenerateSessionToken()
		if err != nil {
			return err
		}
	}

	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = userID.Hex()
	sess.Values[userRoleKey] = normalize.Role(role)
	sess.Values[sessionTokenKey] = token

	return sess.Save(r, w)
}

// DestroySession signs the operator out and expires the cookie. Best
// effort: an undecodable cookie is already as signed out as it gets.
func (sm *SessionManager) DestroySession(w http.ResponseWriter, r *http.Request) {
	sess, err := sm.store.Get(r, sm.name)
	if err != nil {
		return
	}

	sess.Values[isAuthKey] = false
	delete(sess.Values, userIDKey)
	delete(sess.Values, userRoleKey)
	delete(sess.Values, sessionTokenKey)

	sess.Options.MaxAge = -1
	_ = sess.Save(r, w)
}

// GenerateSessionToken returns a random URL-safe token that ties a
// login's audit records to one browser session.
func GenerateSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// logCookieError picks a log level for a failed cookie decode. An
// expired timestamp is routine, a bad MAC is worth a warning with the
// client details attached.
func (sm *SessionManager) logCookieError(r *http.Request, err error) {
	scErr, ok := err.(securecookie.Error)
	if !ok || !scErr.IsDecode() {
		sm.logger.Error("session store error, starting fresh session",
			zap.Error(err),
			zap.String("path", r.URL.Path))
		return
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "expired timestamp"):
		sm.logger.Debug("session expired, starting fresh session",
			zap.String("path", r.URL.Path))
	case strings.Contains(msg, "mac") || strings.Contains(msg, "hash"):
		sm.logger.Warn("session MAC validation failed (possible tampering)",
			zap.String("path", r.URL.Path),
			zap.String("remote_addr", r.RemoteAddr),
			zap.String("user_agent", r.UserAgent()))
	default:
		sm.logger.Info("session decode failed, starting fresh session",
			zap.String("path", r.URL.Path))
	}
}

func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}

func wantsHTML(r *http.Request) bool {
	if r.Header.Get("HX-Request") == "true" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

// isPlaceholderKey catches keys that were clearly never replaced with
// a real secret.
func isPlaceholderKey(key string) bool {
	lower := strings.ToLower(key)
	for _, p := range []string{
		"dev-only", "change-me", "placeholder", "default",
		"example", "insecure", "test-key", "secret123", "password",
	} {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
