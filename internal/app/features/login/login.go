// internal/app/features/login/login.go
package login

import (
	"net/http"

	errorsfeature "github.com/teloworks/telodash/internal/app/features/errors"
	loginstore "github.com/teloworks/telodash/internal/app/store/logins"
	userstore "github.com/teloworks/telodash/internal/app/store/users"
	"github.com/teloworks/telodash/internal/app/system/auth"
	"github.com/teloworks/telodash/internal/app/system/authutil"
	"github.com/teloworks/telodash/internal/app/system/normalize"
	"github.com/teloworks/telodash/internal/app/system/viewdata"
	"github.com/teloworks/telodash/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// lastEmailCookie remembers the last signed-in email so the form can
// prefill it on the next visit. It is a convenience, not an auth token.
const (
	lastEmailCookie = "telodash_last_email"
	lastEmailMaxAge = 365 * 24 * 60 * 60
)

// Handler provides login handlers.
type Handler struct {
	userStore     *userstore.Store
	loginStore    *loginstore.Store
	sessionMgr    *auth.SessionManager
	errLog        *errorsfeature.ErrorLogger
	googleEnabled bool
	logger        *zap.Logger
}

// NewHandler creates a new login Handler.
func NewHandler(
	db *mongo.Database,
	sessionMgr *auth.SessionManager,
	errLog *errorsfeature.ErrorLogger,
	googleEnabled bool,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		userStore:     userstore.New(db),
		loginStore:    loginstore.New(db),
		sessionMgr:    sessionMgr,
		errLog:        errLog,
		googleEnabled: googleEnabled,
		logger:        logger,
	}
}

// LoginVM is the view model for the login page.
type LoginVM struct {
	viewdata.BaseVM
	Error         string
	Email         string
	ReturnURL     string
	GoogleEnabled bool
}

// Routes returns a chi.Router with login routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.showLogin)
	r.Post("/", h.handleLogin)

	return r
}

// showLogin displays the sign-in form, prefilled with the last email
// that signed in from this browser.
func (h *Handler) showLogin(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	// Map error codes to user-friendly messages
	errorCode := r.URL.Query().Get("error")
	errorMsg := ""
	switch errorCode {
	case "oauth_failed":
		errorMsg = "Google sign-in failed. Please try again."
	case "account_disabled":
		errorMsg = "Account is disabled."
	case "service_unavailable":
		errorMsg = "Service temporarily unavailable. Please try again."
	case "":
		// No error
	default:
		errorMsg = errorCode
	}

	email := ""
	if c, err := r.Cookie(lastEmailCookie); err == nil {
		email = c.Value
	}

	vm := h.loginVM(r, errorMsg, email, query.Get(r, "return"))
	templates.Render(w, r, "login/index", vm)
}

// handleLogin checks the email/password pair and starts a session.
// Failures render inline on the form; the password field is never
// echoed back.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.errLog.Log(r, "failed to parse form", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	email := normalize.Email(r.FormValue("email"))
	password := r.FormValue("password")
	returnURL := r.FormValue("return")

	if email == "" || password == "" {
		vm := h.loginVM(r, "Please enter your email and password", email, returnURL)
		templates.Render(w, r, "login/index", vm)
		return
	}

	user, err := h.userStore.GetByEmail(r.Context(), email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			// Same message as a wrong password; no account enumeration.
			vm := h.loginVM(r, "Invalid email or password", email, returnURL)
			templates.Render(w, r, "login/index", vm)
			return
		}
		h.errLog.Log(r, "database error during login lookup", err)
		vm := h.loginVM(r, "Service temporarily unavailable. Please try again.", email, returnURL)
		templates.Render(w, r, "login/index", vm)
		return
	}

	if normalize.Status(user.Status) == "disabled" {
		vm := h.loginVM(r, "Account is disabled", email, returnURL)
		templates.Render(w, r, "login/index", vm)
		return
	}

	if user.PasswordHash == nil || !authutil.CheckPassword(password, *user.PasswordHash) {
		vm := h.loginVM(r, "Invalid email or password", email, returnURL)
		templates.Render(w, r, "login/index", vm)
		return
	}

	token, err := auth.GenerateSessionToken()
	if err != nil {
		h.errLog.Log(r, "failed to generate session token", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if err := h.sessionMgr.CreateSession(w, r, user.ID, user.Role, token); err != nil {
		h.errLog.Log(r, "failed to create session", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     lastEmailCookie,
		Value:    user.Email,
		Path:     "/",
		MaxAge:   lastEmailMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	// Best effort: a failed history write never blocks sign-in.
	if err := h.loginStore.RecordFrom(r.Context(), r, user.Email, models.ActionLogin); err != nil {
		h.logger.Warn("failed to record login event", zap.Error(err))
	}

	http.Redirect(w, r, urlutil.SafeReturn(returnURL, "", "/dashboard"), http.StatusSeeOther)
}

func (h *Handler) loginVM(r *http.Request, errMsg, email, returnURL string) LoginVM {
	vm := LoginVM{
		BaseVM:        viewdata.New(r),
		Error:         errMsg,
		Email:         email,
		ReturnURL:     returnURL,
		GoogleEnabled: h.googleEnabled,
	}
	vm.Title = "Sign In"
	return vm
}
