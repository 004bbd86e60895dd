// internal/domain/models/loginevent.go
package models

import "time"

// Login event actions
const (
	ActionLogin  = "login"
	ActionLogout = "logout"
)

// LoginEvent is one row of the login_history collection.
//
// Device apps append login/logout events through the Telo backend; this
// console appends its own operator sign-in/sign-out events as well.
// CreatedAtStr is the backend-rendered KST timestamp
// ("YYYY-MM-DD HH:MM:SS"); the activity view groups rows by its date
// prefix rather than re-deriving dates from CreatedAt.
type LoginEvent struct {
	Email        string    `bson:"email"`
	Action       string    `bson:"action"` // login, logout
	CreatedAt    time.Time `bson:"created_at"`
	CreatedAtStr string    `bson:"created_at_kst_str"`
	IPAddress    string    `bson:"ip_address,omitempty"`
}
