// internal/domain/models/invitelink.go
package models

import "time"

// InviteLink is one row of the user_invite_links reporting view.
// FirstUsedAt is nil for links that were issued but never opened.
type InviteLink struct {
	Email       string     `bson:"email"`
	InviteLink  string     `bson:"invite_link"`
	GroupName   string     `bson:"group_name"`
	FirstUsedAt *time.Time `bson:"first_used_at"`
}
