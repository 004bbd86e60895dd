// internal/app/features/links/links.go
package links

import (
	"net/http"
	"sort"
	"time"

	errorsfeature "github.com/teloworks/telodash/internal/app/features/errors"
	invitestore "github.com/teloworks/telodash/internal/app/store/invitelinks"
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

// neverUsedKey groups links that have no first-use timestamp. It sorts
// after every real "YYYY-MM" key.
const neverUsedKey = "never"

// Handler serves the invite links panel.
type Handler struct {
	links  *invitestore.Store
	errLog *errorsfeature.ErrorLogger
	logger *zap.Logger
}

// NewHandler creates a new links Handler.
func NewHandler(db *mongo.Database, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		links:  invitestore.New(db),
		errLog: errLog,
		logger: logger,
	}
}

// LinksVM is the view model for the links panel fragment.
type LinksVM struct {
	viewdata.BaseVM
	Error  string
	Search string
	Month  string
	Groups []MonthGroupVM
}

// MonthGroupVM is one month of invite links, split per email.
type MonthGroupVM struct {
	Month  string // "2025-08", or "Never used"
	Count  int    // total links in the month
	Emails []EmailGroupVM
}

// EmailGroupVM is one email's links within a month. Each renders as
// its own collapsible block with a per-email count.
type EmailGroupVM struct {
	Email string
	Count int
	Links []LinkVM
}

// LinkVM is one formatted invite link row.
type LinkVM struct {
	Email       string
	InviteLink  string
	GroupName   string
	FirstUsedAt string // "2025. 08. 28. 14:03" or "-"
}

// Routes returns a chi.Router with the links panel mounted.
func Routes(h *Handler, sessionMgr *auth.SessionManager) http.Handler {
	r := chi.NewRouter()
	r.Use(sessionMgr.RequireAuth)
	r.Get("/", h.showPanel)
	return r
}

// showPanel renders the links fragment. Filters: email substring and
// an optional "YYYY-MM" month of first use.
func (h *Handler) showPanel(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.ForPanel(r.Context())
	defer cancel()

	search := normalize.QueryParam(r.URL.Query().Get("email"))
	month := normalize.QueryParam(r.URL.Query().Get("month"))

	vm := LinksVM{
		BaseVM: viewdata.New(r),
		Search: search,
		Month:  month,
	}

	filter := invitestore.Filter{EmailSub: search}
	if start, end, ok := monthBounds(month); ok {
		filter.Start = &start
		filter.End = &end
	}

	rows, err := h.links.Links(ctx, filter)
	if err != nil {
		qerr := queryfail.Classify("links.list", err)
		h.errLog.Log(r, "failed to load invite links", qerr)
		vm.Error = queryfail.Message(qerr)
		templates.Render(w, r, "links/panel", vm)
		return
	}

	vm.Groups = GroupByMonth(rows)
	templates.Render(w, r, "links/panel", vm)
}

// GroupByMonth buckets links by the KST month they were first used,
// newest month first, then by email within each month. An email's
// links order by group name. Links never used form a final bucket.
func GroupByMonth(rows []models.InviteLink) []MonthGroupVM {
	buckets := make(map[string][]models.InviteLink)
	for _, row := range rows {
		key := neverUsedKey
		if row.FirstUsedAt != nil {
			key = format.MonthKey(*row.FirstUsedAt)
		}
		buckets[key] = append(buckets[key], row)
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		if k != neverUsedKey {
			keys = append(keys, k)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	if _, ok := buckets[neverUsedKey]; ok {
		keys = append(keys, neverUsedKey)
	}

	groups := make([]MonthGroupVM, 0, len(keys))
	for _, key := range keys {
		bucket := buckets[key]

		label := key
		if key == neverUsedKey {
			label = "Never used"
		}

		groups = append(groups, MonthGroupVM{
			Month:  label,
			Count:  len(bucket),
			Emails: groupByEmail(bucket),
		})
	}
	return groups
}

// groupByEmail splits one month's links into per-email blocks, emails
// ascending, links within an email by group name.
func groupByEmail(bucket []models.InviteLink) []EmailGroupVM {
	byEmail := make(map[string][]models.InviteLink)
	for _, row := range bucket {
		byEmail[row.Email] = append(byEmail[row.Email], row)
	}

	emails := make([]string, 0, len(byEmail))
	for email := range byEmail {
		emails = append(emails, email)
	}
	sort.Strings(emails)

	out := make([]EmailGroupVM, 0, len(emails))
	for _, email := range emails {
		rows := byEmail[email]
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].GroupName < rows[j].GroupName
		})

		eg := EmailGroupVM{Email: email, Count: len(rows)}
		for _, row := range rows {
			eg.Links = append(eg.Links, LinkVM{
				Email:       row.Email,
				InviteLink:  row.InviteLink,
				GroupName:   row.GroupName,
				FirstUsedAt: format.Timestamp(row.FirstUsedAt),
			})
		}
		out = append(out, eg)
	}
	return out
}

// monthBounds converts "YYYY-MM" to the inclusive UTC bounds of that
// KST month.
func monthBounds(month string) (start, end time.Time, ok bool) {
	t, err := time.ParseInLocation("2006-01", month, format.KST)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	start = t.UTC()
	end = t.AddDate(0, 1, 0).Add(-time.Second).UTC()
	return start, end, true
}
