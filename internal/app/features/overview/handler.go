// internal/app/features/overview/handler.go
package overview

import (
	"net/http"
	"time"

	errorsfeature "github.com/teloworks/telodash/internal/app/features/errors"
	loginstore "github.com/teloworks/telodash/internal/app/store/logins"
	statsstore "github.com/teloworks/telodash/internal/app/store/stats"
	"github.com/teloworks/telodash/internal/app/system/auth"
	"github.com/teloworks/telodash/internal/app/system/format"
	"github.com/teloworks/telodash/internal/app/system/jsonutil"
	"github.com/teloworks/telodash/internal/app/system/queryfail"
	"github.com/teloworks/telodash/internal/app/system/timeouts"
	"github.com/teloworks/telodash/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	topUserCount = 5
	chartDays    = 7
)

// Handler serves the overview panel and its chart data.
type Handler struct {
	stats  *statsstore.Store
	logins *loginstore.Store
	errLog *errorsfeature.ErrorLogger
	logger *zap.Logger
}

// NewHandler creates a new overview Handler.
func NewHandler(db *mongo.Database, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		stats:  statsstore.New(db),
		logins: loginstore.New(db),
		errLog: errLog,
		logger: logger,
	}
}

// Routes returns a chi.Router with overview routes mounted.
func Routes(h *Handler, sessionMgr *auth.SessionManager) http.Handler {
	r := chi.NewRouter()
	r.Use(sessionMgr.RequireAuth)
	r.Get("/", h.showPanel)
	r.Get("/chart", h.serveChart)
	return r
}

// showPanel renders the overview fragment: summary cards plus the
// top-senders table. A failed query renders the panel's failure state;
// the rest of the dashboard stays usable.
func (h *Handler) showPanel(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.ForPanel(r.Context())
	defer cancel()

	vm := OverviewVM{BaseVM: viewdata.New(r)}

	now := time.Now().In(format.KST)

	rows, err := h.stats.AllMonthly(ctx)
	if err != nil {
		h.renderFailure(w, r, vm, queryfail.Classify("overview.monthly", err))
		return
	}

	activeEmails, err := h.logins.ActiveEmails(ctx, format.Day(now))
	if err != nil {
		h.renderFailure(w, r, vm, queryfail.Classify("overview.active", err))
		return
	}

	vm.Summary = BuildSummary(rows, len(activeEmails), now)
	vm.TopUsers = BuildTopUsers(rows, topUserCount)

	templates.Render(w, r, "overview/panel", vm)
}

// serveChart returns the 7-day activity series as JSON for Chart.js.
func (h *Handler) serveChart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.ForPanel(r.Context())
	defer cancel()

	days := LastNDays(time.Now(), chartDays)

	sums, err := h.stats.DailySums(ctx, days[0], days[len(days)-1])
	if err != nil {
		qerr := queryfail.Classify("overview.chart", err)
		h.errLog.Log(r, "failed to load chart series", qerr)
		jsonutil.Error(w, http.StatusInternalServerError, queryfail.Message(qerr))
		return
	}

	jsonutil.OK(w, BuildChartSeries(days, sums))
}

func (h *Handler) renderFailure(w http.ResponseWriter, r *http.Request, vm OverviewVM, err error) {
	h.errLog.Log(r, "failed to load overview panel", err)
	vm.Error = queryfail.Message(err)
	templates.Render(w, r, "overview/panel", vm)
}
