package models

import "time"

type TimeWindow struct {
	Start     string `bson:"start" json:"start"`
	End       string `bson:"end" json:"end"`
	Available bool   `bson:"available" json:"available"`
}

// Availability holds one staff member's weekly recurring schedule plus manual
// per-date overrides. Keys of WeeklyAvailability are lowercase weekday names.
type Availability struct {
	BarberID             string                  `bson:"barberId" json:"barberId"`
	SalonID              string                  `bson:"salonId" json:"salonId"`
	WeeklyAvailability   map[string][]TimeWindow `bson:"weeklyAvailability" json:"weeklyAvailability"`
	ManuallyBlockedSlots []time.Time             `bson:"manuallyBlockedSlots" json:"manuallyBlockedSlots"`
	AddedSlots           []time.Time             `bson:"addedSlots" json:"addedSlots"`
	CreatedAt            time.Time               `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time               `bson:"updatedAt" json:"updatedAt"`
}
