// internal/app/features/daily/daily.go
package daily

import (
	"net/http"
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

// Handler serves the daily statistics panel.
type Handler struct {
	stats  *statsstore.Store
	errLog *errorsfeature.ErrorLogger
	logger *zap.Logger
}

// NewHandler creates a new daily Handler.
func NewHandler(db *mongo.Database, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		stats:  statsstore.New(db),
		errLog: errLog,
		logger: logger,
	}
}

// DailyVM is the view model for the daily panel fragment.
type DailyVM struct {
	viewdata.BaseVM
	Error   string
	Start   string
	End     string
	Search  string
	Rows    []RowVM
	Capped  bool
	MaxRows int
}

// RowVM is one formatted row of the daily table.
type RowVM struct {
	Day            string // "2025-08-28"
	Email          string
	DMCount        string
	InviteSuccess  string
	InviteFailed   string
	ContactSuccess string
	ContactTotal   string
	LinkCount      string
}

// Routes returns a chi.Router with the daily panel mounted.
func Routes(h *Handler, sessionMgr *auth.SessionManager) http.Handler {
	r := chi.NewRouter()
	r.Use(sessionMgr.RequireAuth)
	r.Get("/", h.showPanel)
	return r
}

// showPanel renders the daily fragment. Filters: inclusive start/end
// KST dates and a case-insensitive email substring. Results cap at the
// store's row limit; the template notes when the cap was hit.
func (h *Handler) showPanel(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.ForPanel(r.Context())
	defer cancel()

	start := parseDay(r.URL.Query().Get("start"))
	end := parseDay(r.URL.Query().Get("end"))
	search := normalize.QueryParam(r.URL.Query().Get("email"))

	vm := DailyVM{
		BaseVM:  viewdata.New(r),
		Start:   start,
		End:     end,
		Search:  search,
		MaxRows: statsstore.MaxRows,
	}

	rows, err := h.stats.Daily(ctx, statsstore.DailyFilter{
		Start:    start,
		End:      end,
		EmailSub: search,
	})
	if err != nil {
		qerr := queryfail.Classify("daily.list", err)
		h.errLog.Log(r, "failed to load daily stats", qerr)
		vm.Error = queryfail.Message(qerr)
		templates.Render(w, r, "daily/panel", vm)
		return
	}

	vm.Rows = BuildRows(rows)
	vm.Capped = len(rows) == statsstore.MaxRows
	templates.Render(w, r, "daily/panel", vm)
}

// BuildRows formats store rows for display. Null counters render "0".
func BuildRows(rows []models.DailyStatRow) []RowVM {
	out := make([]RowVM, 0, len(rows))
	for _, row := range rows {
		out = append(out, RowVM{
			Day:            row.Day,
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

// parseDay validates a "YYYY-MM-DD" input; anything else is dropped so
// a malformed date never reaches the query.
func parseDay(s string) string {
	s = normalize.QueryParam(s)
	if s == "" {
		return ""
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return ""
	}
	return s
}
