// internal/app/features/activity/activity.go
package activity

import (
	"net/http"
	"time"

	errorsfeature "github.com/teloworks/telodash/internal/app/features/errors"
	loginstore "github.com/teloworks/telodash/internal/app/store/logins"
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

// Handler serves the login activity panel.
type Handler struct {
	logins *loginstore.Store
	errLog *errorsfeature.ErrorLogger
	logger *zap.Logger
}

// NewHandler creates a new activity Handler.
func NewHandler(db *mongo.Database, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		logins: loginstore.New(db),
		errLog: errLog,
		logger: logger,
	}
}

// ActivityVM is the view model for the activity panel fragment.
type ActivityVM struct {
	viewdata.BaseVM
	Error   string
	Action  string
	Search  string
	Start   string
	End     string
	Groups  []DayGroupVM
	Capped  bool
	MaxRows int
}

// DayGroupVM is one calendar day of login/logout events.
type DayGroupVM struct {
	Date   string // "2025-08-28"
	Events []EventVM
}

// EventVM is one formatted event line.
type EventVM struct {
	Arrow  string // "→" login, "←" logout
	Action string
	Email  string
	Time   string // "14:03:21"
	IP     string
}

// Routes returns a chi.Router with the activity panel mounted.
func Routes(h *Handler, sessionMgr *auth.SessionManager) http.Handler {
	r := chi.NewRouter()
	r.Use(sessionMgr.RequireAuth)
	r.Get("/", h.showPanel)
	return r
}

// showPanel renders the activity fragment. Filters: action, email
// substring, and an inclusive KST date range.
func (h *Handler) showPanel(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.ForPanel(r.Context())
	defer cancel()

	action := r.URL.Query().Get("action")
	if action != models.ActionLogin && action != models.ActionLogout {
		action = ""
	}
	search := normalize.QueryParam(r.URL.Query().Get("email"))
	startDay := normalize.QueryParam(r.URL.Query().Get("start"))
	endDay := normalize.QueryParam(r.URL.Query().Get("end"))

	vm := ActivityVM{
		BaseVM:  viewdata.New(r),
		Action:  action,
		Search:  search,
		Start:   startDay,
		End:     endDay,
		MaxRows: loginstore.MaxRows,
	}

	events, err := h.logins.History(ctx, loginstore.Filter{
		Action:   action,
		EmailSub: search,
		Start:    dayBound(startDay, false),
		End:      dayBound(endDay, true),
	})
	if err != nil {
		qerr := queryfail.Classify("activity.list", err)
		h.errLog.Log(r, "failed to load login activity", qerr)
		vm.Error = queryfail.Message(qerr)
		templates.Render(w, r, "activity/panel", vm)
		return
	}

	vm.Groups = GroupByDate(events)
	vm.Capped = len(events) == loginstore.MaxRows
	templates.Render(w, r, "activity/panel", vm)
}

// GroupByDate groups events by the date prefix of their KST timestamp
// string, preserving first-seen order. Events arrive latest-first, so
// groups come out newest-day-first with events newest-first inside.
func GroupByDate(events []models.LoginEvent) []DayGroupVM {
	var groups []DayGroupVM
	index := make(map[string]int)

	for _, ev := range events {
		date, clock := splitKSTStamp(ev)

		i, ok := index[date]
		if !ok {
			i = len(groups)
			index[date] = i
			groups = append(groups, DayGroupVM{Date: date})
		}

		arrow := "→"
		if ev.Action == models.ActionLogout {
			arrow = "←"
		}
		groups[i].Events = append(groups[i].Events, EventVM{
			Arrow:  arrow,
			Action: ev.Action,
			Email:  ev.Email,
			Time:   clock,
			IP:     ev.IPAddress,
		})
	}
	return groups
}

// splitKSTStamp splits "YYYY-MM-DD HH:MM:SS" into date and clock parts.
// Rows with a malformed string fall back to the stored time in KST.
func splitKSTStamp(ev models.LoginEvent) (date, clock string) {
	s := ev.CreatedAtStr
	if len(s) >= len("2006-01-02 15:04:05") && s[10] == ' ' {
		return s[:10], s[11:19]
	}
	t := ev.CreatedAt.In(format.KST)
	return t.Format("2006-01-02"), t.Format("15:04:05")
}

// dayBound converts a "YYYY-MM-DD" KST date to the UTC instant at the
// start (or, for end bounds, the last second) of that day. Malformed
// input means no bound.
func dayBound(day string, end bool) *time.Time {
	if day == "" {
		return nil
	}
	t, err := time.ParseInLocation("2006-01-02", day, format.KST)
	if err != nil {
		return nil
	}
	if end {
		t = t.AddDate(0, 0, 1).Add(-time.Second)
	}
	u := t.UTC()
	return &u
}
