// internal/app/features/authgoogle/authgoogle.go
package authgoogle

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	errorsfeature "github.com/teloworks/telodash/internal/app/features/errors"
	loginstore "github.com/teloworks/telodash/internal/app/store/logins"
	"github.com/teloworks/telodash/internal/app/store/oauthstate"
	userstore "github.com/teloworks/telodash/internal/app/store/users"
	"github.com/teloworks/telodash/internal/app/system/auth"
	"github.com/teloworks/telodash/internal/app/system/normalize"
	"github.com/teloworks/telodash/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Handler provides Google OAuth handlers. Google sign-in never creates
// accounts; the email must already exist as an operator.
type Handler struct {
	userStore       *userstore.Store
	loginStore      *loginstore.Store
	sessionMgr      *auth.SessionManager
	errLog          *errorsfeature.ErrorLogger
	oauthStateStore *oauthstate.Store
	oauthConfig     *oauth2.Config
	logger          *zap.Logger
}

// NewHandler creates a new Google OAuth Handler.
func NewHandler(
	db *mongo.Database,
	sessionMgr *auth.SessionManager,
	errLog *errorsfeature.ErrorLogger,
	oauthStateStore *oauthstate.Store,
	clientID string,
	clientSecret string,
	baseURL string,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		userStore:       userstore.New(db),
		loginStore:      loginstore.New(db),
		sessionMgr:      sessionMgr,
		errLog:          errLog,
		oauthStateStore: oauthStateStore,
		oauthConfig: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  baseURL + "/auth/google/callback",
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		logger: logger,
	}
}

// Routes returns a chi.Router with Google OAuth routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.startAuth)
	r.Get("/callback", h.handleCallback)
	return r
}

// startAuth initiates the Google OAuth flow.
func (h *Handler) startAuth(w http.ResponseWriter, r *http.Request) {
	state, err := generateState()
	if err != nil {
		h.errLog.Log(r, "failed to generate state", err)
		http.Redirect(w, r, "/login?error=oauth_failed", http.StatusSeeOther)
		return
	}

	if err := h.oauthStateStore.Create(r.Context(), state); err != nil {
		h.errLog.Log(r, "failed to store state", err)
		http.Redirect(w, r, "/login?error=oauth_failed", http.StatusSeeOther)
		return
	}

	url := h.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// handleCallback processes the Google OAuth callback.
func (h *Handler) handleCallback(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	if !h.oauthStateStore.Verify(r.Context(), state) {
		h.logger.Warn("invalid oauth state")
		http.Redirect(w, r, "/login?error=oauth_failed", http.StatusSeeOther)
		return
	}

	if errMsg := r.URL.Query().Get("error"); errMsg != "" {
		h.logger.Warn("oauth error from google", zap.String("error", errMsg))
		http.Redirect(w, r, "/login?error=oauth_failed", http.StatusSeeOther)
		return
	}

	code := r.URL.Query().Get("code")
	token, err := h.oauthConfig.Exchange(r.Context(), code)
	if err != nil {
		h.errLog.Log(r, "failed to exchange code", err)
		http.Redirect(w, r, "/login?error=oauth_failed", http.StatusSeeOther)
		return
	}

	userInfo, err := h.getUserInfo(r.Context(), token)
	if err != nil {
		h.errLog.Log(r, "failed to get user info", err)
		http.Redirect(w, r, "/login?error=oauth_failed", http.StatusSeeOther)
		return
	}

	user, err := h.userStore.GetByEmail(r.Context(), userInfo.Email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			h.logger.Warn("google sign-in for unknown operator", zap.String("email", userInfo.Email))
			http.Redirect(w, r, "/login?error=oauth_failed", http.StatusSeeOther)
			return
		}
		h.errLog.Log(r, "failed to get user by email", err)
		http.Redirect(w, r, "/login?error=service_unavailable", http.StatusSeeOther)
		return
	}

	if normalize.Status(user.Status) == "disabled" {
		http.Redirect(w, r, "/login?error=account_disabled", http.StatusSeeOther)
		return
	}

	sessionToken, err := auth.GenerateSessionToken()
	if err != nil {
		h.errLog.Log(r, "failed to generate session token", err)
		http.Redirect(w, r, "/login?error=service_unavailable", http.StatusSeeOther)
		return
	}
	if err := h.sessionMgr.CreateSession(w, r, user.ID, user.Role, sessionToken); err != nil {
		h.errLog.Log(r, "failed to create session", err)
		http.Redirect(w, r, "/login?error=service_unavailable", http.StatusSeeOther)
		return
	}

	// Best effort: a failed history write never blocks sign-in.
	if err := h.loginStore.RecordFrom(r.Context(), r, user.Email, models.ActionLogin); err != nil {
		h.logger.Warn("failed to record login event", zap.Error(err))
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// GoogleUserInfo represents user info from Google.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// getUserInfo fetches user info from Google.
func (h *Handler) getUserInfo(ctx context.Context, token *oauth2.Token) (*GoogleUserInfo, error) {
	client := h.oauthConfig.Client(ctx, token)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", "https://www.googleapis.com/oauth2/v2/userinfo", nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var userInfo GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return nil, err
	}

	return &userInfo, nil
}

// generateState generates a random state token.
func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
