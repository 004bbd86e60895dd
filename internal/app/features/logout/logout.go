// internal/app/features/logout/logout.go
package logout

import (
	"net/http"

	loginstore "github.com/teloworks/telodash/internal/app/store/logins"
	"github.com/teloworks/telodash/internal/app/system/auth"
	"github.com/teloworks/telodash/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler provides logout handlers.
type Handler struct {
	sessionMgr *auth.SessionManager
	loginStore *loginstore.Store
	logger     *zap.Logger
}

// NewHandler creates a new logout Handler.
func NewHandler(
	sessionMgr *auth.SessionManager,
	loginStore *loginstore.Store,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		sessionMgr: sessionMgr,
		loginStore: loginStore,
		logger:     logger,
	}
}

// Routes returns a chi.Router with logout routes mounted.
func Routes(h *Handler, sessionMgr *auth.SessionManager) http.Handler {
	r := chi.NewRouter()
	r.Use(sessionMgr.RequireAuth)
	r.Post("/", h.handleLogout)
	r.Get("/", h.handleLogout) // Allow GET for simple logout links
	return r
}

// handleLogout terminates the session. The history write is best
// effort; the session is destroyed even when it fails.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if user, ok := auth.CurrentUser(r); ok {
		if err := h.loginStore.RecordFrom(r.Context(), r, user.Email, models.ActionLogout); err != nil {
			h.logger.Warn("failed to record logout event", zap.Error(err))
		}
	}

	h.sessionMgr.DestroySession(w, r)

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
