// internal/app/features/monthly/monthly.go
package monthly

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	errorsfeature "github.com/teloworks/telodash/internal/app/features/errors"
	statsstore "github.com/teloworks/telodash/internal/app/store/stats"
	"github.com/teloworks/telodash/internal/app/system/auth"
	"github.com/teloworks/telodash/internal/app/system/format"
	"github.com/teloworks/telodash/internal/app/system/normalize"
	"github.com/teloworks/telodash/internal/app/system/queryfail"
	"github.com/teloworks/telodash/internal/app/system/timeouts"
	"github.com/teloworks/telodash/internal/app/system/viewdata"
	"github.com/teloworks/telodash/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// yearSpan is how many years back the year selector offers.
const yearSpan = 3

// Handler serves the monthly statistics panel.
type Handler struct {
	stats  *statsstore.Store
	errLog *errorsfeature.ErrorLogger
	logger *zap.Logger
}

// NewHandler creates a new monthly Handler.
func NewHandler(db *mongo.Database, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		stats:  statsstore.New(db),
		errLog: errLog,
		logger: logger,
	}
}

// MonthlyVM is the view model for the monthly panel fragment.
type MonthlyVM struct {
	viewdata.BaseVM
	Error  string
	Year   int
	Years  []int
	Search string
	Rows   []RowVM
}

// RowVM is one formatted row of the monthly table.
type RowVM struct {
	Month          string // "2025-08"
	Email          string
	DMCount        string
	InviteSuccess  string
	InviteFailed   string
	ContactSuccess string
	ContactTotal   string
	LinkCount      string
}

// Routes returns a chi.Router with the monthly panel mounted.
func Routes(h *Handler, sessionMgr *auth.SessionManager) http.Handler {
	r := chi.NewRouter()
	r.Use(sessionMgr.RequireAuth)
	r.Get("/", h.showPanel)
	return r
}

// showPanel renders the monthly fragment. Filters: year (defaults to
// the current KST year) and a case-insensitive email substring.
func (h *Handler) showPanel(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.ForPanel(r.Context())
	defer cancel()

	now := time.Now().In(format.KST)

	year := now.Year()
	if y, err := strconv.Atoi(r.URL.Query().Get("year")); err == nil && y > 0 {
		year = y
	}
	search := normalize.QueryParam(r.URL.Query().Get("email"))

	vm := MonthlyVM{
		BaseVM: viewdata.New(r),
		Year:   year,
		Years:  yearOptions(now.Year()),
		Search: search,
	}

	rows, err := h.stats.Monthly(ctx, statsstore.MonthlyFilter{
		Year:     year,
		EmailSub: search,
	})
	if err != nil {
		qerr := queryfail.Classify("monthly.list", err)
		h.errLog.Log(r, "failed to load monthly stats", qerr)
		vm.Error = queryfail.Message(qerr)
		templates.Render(w, r, "monthly/panel", vm)
		return
	}

	vm.Rows = BuildRows(rows)
	templates.Render(w, r, "monthly/panel", vm)
}

// BuildRows formats store rows for display. Null counters render "0".
func BuildRows(rows []models.MonthlyStatRow) []RowVM {
	out := make([]RowVM, 0, len(rows))
	for _, row := range rows {
		out = append(out, RowVM{
			Month:          fmt.Sprintf("%04d-%02d", row.Year, row.Month),
			Email:          row.Email,
			DMCount:        format.Count(row.DMCount),
			InviteSuccess:  format.Count(row.InviteSuccess),
			InviteFailed:   format.Count(row.InviteFailed),
			ContactSuccess: format.Count(row.ContactSuccess),
			ContactTotal:   format.Count(row.ContactTotal),
			LinkCount:      format.Count(row.LinkCount),
		})
	}
	return out
}

func yearOptions(current int) []int {
	years := make([]int, 0, yearSpan)
	for y := current; y > current-yearSpan; y-- {
		years = append(years, y)
	}
	return years
}
