// internal/app/store/logins/loginstore.go
package loginstore

import (
	"context"
	"net/http"
	"time"

	"github.com/teloworks/telodash/internal/app/store/storeutil"
	"github.com/teloworks/telodash/internal/app/system/format"
	"github.com/teloworks/telodash/internal/app/system/network"
	"github.com/teloworks/telodash/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MaxRows caps any single history query.
const MaxRows = 100

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("login_history")}
}

// Filter narrows a History query. Zero values mean "no constraint".
// Start and End bound created_at inclusively.
type Filter struct {
	Action   string
	EmailSub string
	Start    *time.Time
	End      *time.Time
	Limit    int64
}

// History returns login/logout events latest-first, capped at MaxRows.
func (s *Store) History(ctx context.Context, f Filter) ([]models.LoginEvent, error) {
	filter := bson.M{}
	if f.Action != "" {
		filter["action"] = f.Action
	}
	if f.EmailSub != "" {
		filter["email"] = storeutil.EmailSubstring(f.EmailSub)
	}
	if f.Start != nil || f.End != nil {
		rng := bson.M{}
		if f.Start != nil {
			rng["$gte"] = *f.Start
		}
		if f.End != nil {
			rng["$lte"] = *f.End
		}
		filter["created_at"] = rng
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(storeutil.CapLimit(f.Limit, MaxRows))

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var events []models.LoginEvent
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// ActiveEmails returns the distinct emails with a login event on the
// given KST calendar day ("YYYY-MM-DD"). Matching runs on the
// backend-rendered KST timestamp string, the same field the activity
// view groups by.
func (s *Store) ActiveEmails(ctx context.Context, day string) ([]string, error) {
	filter := bson.M{
		"action":             models.ActionLogin,
		"created_at_kst_str": primitive.Regex{Pattern: "^" + day},
	}
	vals, err := s.c.Distinct(ctx, "email", filter)
	if err != nil {
		return nil, err
	}
	emails := make([]string, 0, len(vals))
	for _, v := range vals {
		if s, ok := v.(string); ok {
			emails = append(emails, s)
		}
	}
	return emails, nil
}

// Record inserts a login/logout event. If CreatedAt is zero, it is set
// to time.Now().UTC() and CreatedAtStr is derived from it in KST.
func (s *Store) Record(ctx context.Context, ev models.LoginEvent) error {
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	if ev.CreatedAtStr == "" {
		ev.CreatedAtStr = ev.CreatedAt.In(format.KST).Format("2006-01-02 15:04:05")
	}
	_, err := s.c.InsertOne(ctx, ev)
	return err
}

// RecordFrom builds an event from the HTTP request and inserts it.
// The client IP comes from proxy headers when present.
func (s *Store) RecordFrom(ctx context.Context, r *http.Request, email, action string) error {
	return s.Record(ctx, models.LoginEvent{
		Email:     email,
		Action:    action,
		IPAddress: network.ClientIP(r),
	})
}
