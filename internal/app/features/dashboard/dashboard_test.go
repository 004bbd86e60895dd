package dashboard

import (
	"net/http"
	"testing"

	"github.com/teloworks/telodash/internal/testutil"
	"go.uber.org/zap"
)

func TestShowDashboard_RendersTabs(t *testing.T) {
	testutil.MustBootTemplates(t)
	h := NewHandler(zap.NewNop())

	req := testutil.NewAuthenticatedRequestWithCSRF(http.MethodGet, "/dashboard", testutil.AdminUser())
	rec := testutil.NewRecorder()

	h.showDashboard(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	for _, label := range []string{"Overview", "Monthly Stats", "Daily Stats", "Login Activity", "Invite Links"} {
		rec.AssertContains(t, label)
	}
	rec.AssertContains(t, `id="panel"`)
	rec.AssertContains(t, `hx-get="/dashboard/overview"`)
}
