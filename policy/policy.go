// Package policy centralizes the ownership checks that every mutating route
// needs: one predicate per resource type instead of ad hoc boolean
// expressions repeated per handler.
package policy

import (
	"net/http"

	"hawurwanda/globals"
	"hawurwanda/models"
)

// Actor is the authenticated caller, as carried in the JWT claims.
type Actor struct {
	UserID  string
	Role    string
	SalonID string
}

// FromRequest extracts the actor the auth middleware stored on the context.
func FromRequest(r *http.Request) Actor {
	ctx := r.Context()
	userID, _ := ctx.Value(globals.UserIDKey).(string)
	role, _ := ctx.Value(globals.RoleKey).(string)
	salonID, _ := ctx.Value(globals.SalonIDKey).(string)
	return Actor{UserID: userID, Role: role, SalonID: salonID}
}

func (a Actor) IsAdmin() bool {
	return models.IsAdminRole(a.Role)
}

func (a Actor) IsStaff() bool {
	return models.IsStaffRole(a.Role)
}

// CanAccessBooking reports whether the actor may view a booking: the client,
// the staff member, anyone at the booking's salon, or an admin.
func CanAccessBooking(a Actor, b models.Booking) bool {
	return a.UserID == b.ClientID ||
		a.UserID == b.BarberID ||
		(a.SalonID != "" && a.SalonID == b.SalonID) ||
		a.IsAdmin()
}

// CanManageBooking reports whether the actor may change a booking's status
// or record payments against it. Clients cannot; they cancel instead.
func CanManageBooking(a Actor, b models.Booking) bool {
	return a.UserID == b.BarberID ||
		(a.SalonID != "" && a.SalonID == b.SalonID) ||
		a.IsAdmin()
}

// CanCancelBooking additionally allows the client who made the booking.
func CanCancelBooking(a Actor, b models.Booking) bool {
	return a.UserID == b.ClientID || CanManageBooking(a, b)
}

// CanManageSalon reports whether the actor may mutate a salon's profile,
// services, or staff roster.
func CanManageSalon(a Actor, s models.Salon) bool {
	return a.UserID == s.OwnerID || a.IsAdmin()
}

// CanManageAvailability reports whether the actor may edit a staff member's
// schedule: the staff member themselves, their salon's owner, or an admin.
func CanManageAvailability(a Actor, barber models.User) bool {
	return a.UserID == barber.UserID ||
		(a.SalonID != "" && a.SalonID == barber.SalonID) ||
		a.IsAdmin()
}

// CanViewStaffEarnings reports whether the actor may read or recompute a
// staff member's earnings. Staff see only their own; owners see their salon's
// staff; admins see everyone.
func CanViewStaffEarnings(a Actor, staff models.User) bool {
	if a.IsAdmin() {
		return true
	}
	if a.IsStaff() {
		return a.UserID == staff.UserID
	}
	if a.Role == models.RoleOwner {
		return staff.SalonID != "" && staff.SalonID == a.SalonID
	}
	return false
}

// CanManageWalkIn reports whether the actor may update or delete a walk-in
// record: the staff member who created it, their salon, or an admin.
func CanManageWalkIn(a Actor, w models.WalkInCustomer) bool {
	return a.UserID == w.BarberID ||
		(a.SalonID != "" && a.SalonID == w.SalonID) ||
		a.IsAdmin()
}

// CanViewTransaction mirrors the booking access rule for financial records.
func CanViewTransaction(a Actor, t models.Transaction) bool {
	return (t.BarberID != "" && a.UserID == t.BarberID) ||
		(a.SalonID != "" && a.SalonID == t.SalonID) ||
		a.IsAdmin()
}
