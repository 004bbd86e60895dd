// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"html/template"
	"net/http"
	"sync"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"

	"github.com/teloworks/telodash/internal/app/system/auth"
	"github.com/teloworks/telodash/internal/app/system/authz"
	"github.com/teloworks/telodash/internal/app/system/htmlsanitize"
)

// DefaultSiteName is used when no site name is configured.
const DefaultSiteName = "Telo Dashboard"

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
type BaseVM struct {
	SiteName string

	// Operator context (from auth middleware)
	IsLoggedIn bool
	UserID     string
	UserName   string
	UserEmail  string
	Role       string

	// Page context
	Title       string
	BackURL     string
	CurrentPath string

	// Security
	CSRFToken string // CSRF token for forms (use in hidden input field)

	// Optional notice banner, sanitized HTML from config
	NoticeHTML template.HTML
}

var (
	mu         sync.RWMutex
	siteName   = DefaultSiteName
	noticeHTML template.HTML
)

// Init sets the site name and notice banner for all BaseVMs.
// The notice is sanitized once here; call from bootstrap after config load.
func Init(name, notice string) {
	mu.Lock()
	defer mu.Unlock()
	if name != "" {
		siteName = name
	}
	noticeHTML = htmlsanitize.SanitizeToHTML(notice)
}

// New creates a BaseVM populated from the request context.
func New(r *http.Request) BaseVM {
	role, name, userID, signedIn := authz.UserCtx(r)

	mu.RLock()
	site, notice := siteName, noticeHTML
	mu.RUnlock()

	vm := BaseVM{
		SiteName:    site,
		IsLoggedIn:  signedIn,
		UserID:      userID.Hex(),
		Role:        role,
		UserName:    name,
		CurrentPath: httpnav.CurrentPath(r),
		CSRFToken:   csrf.Token(r),
		NoticeHTML:  notice,
	}

	if signedIn {
		if user, ok := auth.CurrentUser(r); ok {
			vm.UserEmail = user.Email
		}
	}

	return vm
}

// NewBaseVM creates a BaseVM with a title and default back URL.
func NewBaseVM(r *http.Request, title, backDefault string) BaseVM {
	vm := New(r)
	vm.Title = title
	vm.BackURL = httpnav.ResolveBackURL(r, backDefault)
	return vm
}
