// internal/app/store/invitelinks/invitestore.go
package invitestore

import (
	"context"
	"time"

	"github.com/teloworks/telodash/internal/app/store/storeutil"
	"github.com/teloworks/telodash/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store reads the user_invite_links reporting view.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("user_invite_links")}
}

// Filter narrows a Links query. Start and End bound first_used_at
// inclusively; links that were never used have no first_used_at and
// only match unbounded queries.
type Filter struct {
	EmailSub string
	Start    *time.Time
	End      *time.Time
}

// Links returns invite link rows, most recently used first. Rows with
// no first_used_at sort last.
func (s *Store) Links(ctx context.Context, f Filter) ([]models.InviteLink, error) {
	filter := bson.M{}
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
		filter["first_used_at"] = rng
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "first_used_at", Value: -1},
		{Key: "email", Value: 1},
	})

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var links []models.InviteLink
	if err := cur.All(ctx, &links); err != nil {
		return nil, err
	}
	return links, nil
}
