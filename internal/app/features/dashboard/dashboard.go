// internal/app/features/dashboard/dashboard.go
package dashboard

import (
	"net/http"

	"github.com/teloworks/telodash/internal/app/system/auth"
	"github.com/teloworks/telodash/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves the dashboard shell. The shell renders the tab bar and
// an empty panel container; each panel loads itself as an HTML fragment
// over htmx.
type Handler struct {
	logger *zap.Logger
}

// NewHandler creates a new dashboard Handler.
func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

// Tab describes one dashboard tab for the shell template.
type Tab struct {
	ID    string
	Label string
	URL   string
}

// DashboardVM is the view model for the dashboard shell.
type DashboardVM struct {
	viewdata.BaseVM
	Tabs []Tab
}

// Routes returns a chi.Router with the shell route mounted.
func Routes(h *Handler, sessionMgr *auth.SessionManager) http.Handler {
	r := chi.NewRouter()
	r.Use(sessionMgr.RequireAuth)
	r.Get("/", h.showDashboard)
	return r
}

func (h *Handler) showDashboard(w http.ResponseWriter, r *http.Request) {
	vm := DashboardVM{
		BaseVM: viewdata.New(r),
		Tabs: []Tab{
			{ID: "overview", Label: "Overview", URL: "/dashboard/overview"},
			{ID: "monthly", Label: "Monthly Stats", URL: "/dashboard/monthly"},
			{ID: "daily", Label: "Daily Stats", URL: "/dashboard/daily"},
			{ID: "activity", Label: "Login Activity", URL: "/dashboard/activity"},
			{ID: "links", Label: "Invite Links", URL: "/dashboard/links"},
		},
	}
	vm.Title = "Dashboard"

	templates.Render(w, r, "dashboard/index", vm)
}
