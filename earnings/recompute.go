package earnings

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hawurwanda/db"
	"hawurwanda/metrics"
	"hawurwanda/models"
	"hawurwanda/utils"
)

// Recompute rebuilds one staff member's earnings document for the day
// containing t, from scratch, and upserts it keyed by (staffId, startOfDay).
// Rebuilding instead of incrementing makes the operation idempotent: a retried
// completion or a nightly sweep over already-processed days lands on the same
// numbers.
func Recompute(ctx context.Context, staffID, salonID string, t time.Time) (*models.StaffEarnings, error) {
	start, end := utils.DayBounds(t)

	cur, err := db.BookingCollection.Find(ctx, bson.M{
		"barberId": staffID,
		"status":   models.BookingCompleted,
		"timeSlot": bson.M{"$gte": start, "$lte": end},
	})
	if err != nil {
		return nil, err
	}
	var bookings []models.Booking
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, err
	}

	services := map[string]models.Service{}
	if len(bookings) > 0 {
		ids := make([]string, 0, len(bookings))
		for _, b := range bookings {
			ids = append(ids, b.ServiceID)
		}
		scur, err := db.ServiceCollection.Find(ctx, bson.M{"serviceid": bson.M{"$in": ids}})
		if err != nil {
			return nil, err
		}
		var svcs []models.Service
		if err := scur.All(ctx, &svcs); err != nil {
			return nil, err
		}
		for _, s := range svcs {
			services[s.ServiceID] = s
		}
	}

	wcur, err := db.WalkInCollection.Find(ctx, bson.M{
		"barberId":  staffID,
		"status":    models.BookingCompleted,
		"createdAt": bson.M{"$gte": start, "$lte": end},
	})
	if err != nil {
		return nil, err
	}
	var walkIns []models.WalkInCustomer
	if err := wcur.All(ctx, &walkIns); err != nil {
		return nil, err
	}

	summary := ComputeDaily(staffID, salonID, start, bookings, services, walkIns)
	now := time.Now()
	summary.UpdatedAt = now

	_, err = db.StaffEarningsCollection.UpdateOne(ctx,
		bson.M{"staffId": staffID, "date": start},
		bson.M{
			"$set":         summaryUpdate(&summary),
			"$setOnInsert": bson.M{"createdAt": now},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func summaryUpdate(s *models.StaffEarnings) bson.M {
	return bson.M{
		"staffId":                s.StaffID,
		"salonId":                s.SalonID,
		"date":                   s.Date,
		"totalEarnings":          s.TotalEarnings,
		"commissionRate":         s.CommissionRate,
		"commissionAmount":       s.CommissionAmount,
		"bookingEarnings":        s.BookingEarnings,
		"walkInEarnings":         s.WalkInEarnings,
		"totalBookings":          s.TotalBookings,
		"totalWalkIns":           s.TotalWalkIns,
		"paymentMethodBreakdown": s.PaymentMethodBreakdown,
		"services":               s.Services,
		"updatedAt":              s.UpdatedAt,
	}
}

// RecomputeAsync runs Recompute on a detached context so a slow aggregation
// never delays the request that triggered it. Failures are logged and counted,
// never surfaced to the client; the nightly sweep will repair any gap.
func RecomputeAsync(staffID, salonID string, t time.Time) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := Recompute(ctx, staffID, salonID, t); err != nil {
			log.Printf("earnings recompute failed for staff %s: %v", staffID, err)
			metrics.SideEffectFailures.WithLabelValues("earnings_recompute").Inc()
		}
	}()
}

// RecomputeAllForDate sweeps every active staff member, rebuilding their
// earnings for the given day. Used by the nightly cron job to repair any
// summary a best-effort trigger missed.
func RecomputeAllForDate(ctx context.Context, t time.Time) error {
	cur, err := db.UserCollection.Find(ctx, bson.M{
		"role":     bson.M{"$in": models.StaffRoles},
		"isActive": true,
	})
	if err != nil {
		return err
	}
	var staff []models.User
	if err := cur.All(ctx, &staff); err != nil {
		return err
	}

	for _, u := range staff {
		if _, err := Recompute(ctx, u.UserID, u.SalonID, t); err != nil {
			log.Printf("nightly earnings sweep: staff %s: %v", u.UserID, err)
			metrics.SideEffectFailures.WithLabelValues("earnings_recompute").Inc()
		}
	}
	log.Printf("nightly earnings sweep finished for %s (%d staff)", t.Format("2006-01-02"), len(staff))
	return nil
}
