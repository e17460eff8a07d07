// Package bookings implements appointment booking: slot resolution from a
// staff member's weekly schedule, conflict-guarded creation, status
// transitions and receipts.
package bookings

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"hawurwanda/db"
	"hawurwanda/models"
	"hawurwanda/utils"
)

// SlotStride is the spacing between offered appointment slots.
const SlotStride = 30 * time.Minute

// windowSlots expands one availability window into concrete slot times on the
// given day. The window end is exclusive: a 08:00-12:00 window's last slot is
// 11:30. Windows with unparseable times yield nothing.
func windowSlots(day time.Time, win models.TimeWindow) []time.Time {
	start, err1 := time.Parse("15:04", win.Start)
	end, err2 := time.Parse("15:04", win.End)
	if err1 != nil || err2 != nil || !start.Before(end) {
		return nil
	}

	var slots []time.Time
	for t := start; t.Before(end); t = t.Add(SlotStride) {
		slots = append(slots, time.Date(day.Year(), day.Month(), day.Day(),
			t.Hour(), t.Minute(), 0, 0, day.Location()))
	}
	return slots
}

// scheduleLookupErr classifies an availability lookup failure: a missing
// document means the staff member never set a schedule, anything else is a
// persistence error the caller must surface as such, never as a 404.
func scheduleLookupErr(err error) (missing bool, fail error) {
	if err == mongo.ErrNoDocuments {
		return true, nil
	}
	return false, err
}

// ResolveSlots computes the bookable slots for a staff member on one day:
// the weekday's available windows expanded at 30-minute stride, minus slots
// held by an active booking. Returns ok=false when the staff member has no
// schedule at all.
//
// Manually blocked and manually added slots on the availability document are
// intentionally not consulted; the weekly schedule is the single source the
// resolver trusts.
func ResolveSlots(ctx context.Context, barberID string, day time.Time) (slots []time.Time, ok bool, err error) {
	var avail models.Availability
	if err := db.AvailabilityCollection.FindOne(ctx, bson.M{"barberId": barberID}).Decode(&avail); err != nil {
		missing, err := scheduleLookupErr(err)
		if missing {
			return nil, false, nil
		}
		return nil, false, err
	}

	candidates := CandidateSlots(day, avail.WeeklyAvailability[utils.WeekdayKey(day)])
	if len(candidates) == 0 {
		return []time.Time{}, true, nil
	}

	start, end := utils.DayBounds(day)
	cur, err := db.BookingCollection.Find(ctx, bson.M{
		"barberId": barberID,
		"status":   bson.M{"$in": models.ActiveStatuses},
		"timeSlot": bson.M{"$gte": start, "$lte": end},
	})
	if err != nil {
		return nil, true, err
	}
	var booked []models.Booking
	if err := cur.All(ctx, &booked); err != nil {
		return nil, true, err
	}

	bookedTimes := make([]time.Time, 0, len(booked))
	for _, b := range booked {
		bookedTimes = append(bookedTimes, b.TimeSlot)
	}
	return FilterFree(candidates, bookedTimes), true, nil
}

// FilterFree removes candidate slots that collide with booked times. Split
// out of ResolveSlots so the exclusion logic is testable without a database.
func FilterFree(candidates []time.Time, booked []time.Time) []time.Time {
	taken := map[int64]bool{}
	for _, b := range booked {
		taken[b.Unix()] = true
	}
	free := []time.Time{}
	for _, c := range candidates {
		if !taken[c.Unix()] {
			free = append(free, c)
		}
	}
	return free
}

// CandidateSlots expands a day's windows without consulting bookings.
func CandidateSlots(day time.Time, windows []models.TimeWindow) []time.Time {
	var candidates []time.Time
	for _, win := range windows {
		if !win.Available {
			continue
		}
		candidates = append(candidates, windowSlots(day, win)...)
	}
	return candidates
}
