// internal/app/store/stats/statsstore.go
package statsstore

import (
	"context"

	"github.com/teloworks/telodash/internal/app/store/storeutil"
	"github.com/teloworks/telodash/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MaxRows caps any single listing query.
const MaxRows = 100

// Store reads the device_stats_monthly and device_stats_daily reporting
// views. Both are maintained by the Telo backend; nothing here writes.
type Store struct {
	monthly *mongo.Collection
	daily   *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		monthly: db.Collection("device_stats_monthly"),
		daily:   db.Collection("device_stats_daily"),
	}
}

// MonthlyFilter narrows a Monthly query.
type MonthlyFilter struct {
	Year     int
	EmailSub string
}

// Monthly returns rows for one year, newest month first, then email.
func (s *Store) Monthly(ctx context.Context, f MonthlyFilter) ([]models.MonthlyStatRow, error) {
	filter := bson.M{"year": f.Year}
	if f.EmailSub != "" {
		filter["email"] = storeutil.EmailSubstring(f.EmailSub)
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "month", Value: -1},
		{Key: "email", Value: 1},
	})

	cur, err := s.monthly.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []models.MonthlyStatRow
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// AllMonthly returns the entire monthly view, unfiltered. The overview
// derives its all-time figures from this set: distinct device emails,
// current-month totals, and the per-email invite ranking. Volumes are
// one row per (email, year, month), so no limit is applied.
func (s *Store) AllMonthly(ctx context.Context) ([]models.MonthlyStatRow, error) {
	cur, err := s.monthly.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []models.MonthlyStatRow
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// DailyFilter narrows a Daily query. Start and End are inclusive KST
// calendar dates in "YYYY-MM-DD" form; empty means unbounded.
type DailyFilter struct {
	Start    string
	End      string
	EmailSub string
	Limit    int64
}

// Daily returns daily rows newest-first, capped at MaxRows.
func (s *Store) Daily(ctx context.Context, f DailyFilter) ([]models.DailyStatRow, error) {
	filter := bson.M{}
	if f.EmailSub != "" {
		filter["email"] = storeutil.EmailSubstring(f.EmailSub)
	}
	if f.Start != "" || f.End != "" {
		rng := bson.M{}
		if f.Start != "" {
			rng["$gte"] = f.Start
		}
		if f.End != "" {
			rng["$lte"] = f.End
		}
		filter["day"] = rng
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "day", Value: -1}, {Key: "email", Value: 1}}).
		SetLimit(storeutil.CapLimit(f.Limit, MaxRows))

	cur, err := s.daily.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []models.DailyStatRow
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// DaySum is the per-day total across all device emails, used by the
// overview chart.
type DaySum struct {
	Day            string `bson:"_id"`
	DMCount        int64  `bson:"dm_count"`
	InviteSuccess  int64  `bson:"invite_success"`
	InviteFailed   int64  `bson:"invite_failed"`
	ContactSuccess int64  `bson:"contact_success"`
}

// DailySums aggregates daily rows into per-day totals for the inclusive
// date range, oldest day first. Null counters count as zero.
func (s *Store) DailySums(ctx context.Context, start, end string) ([]DaySum, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"day": bson.M{"$gte": start, "$lte": end},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":             "$day",
			"dm_count":        bson.M{"$sum": bson.M{"$ifNull": bson.A{"$dm_count", 0}}},
			"invite_success":  bson.M{"$sum": bson.M{"$ifNull": bson.A{"$invite_success", 0}}},
			"invite_failed":   bson.M{"$sum": bson.M{"$ifNull": bson.A{"$invite_failed", 0}}},
			"contact_success": bson.M{"$sum": bson.M{"$ifNull": bson.A{"$contact_success", 0}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cur, err := s.daily.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var sums []DaySum
	if err := cur.All(ctx, &sums); err != nil {
		return nil, err
	}
	return sums, nil
}
