package policy

import (
	"testing"

	"hawurwanda/models"
)

func TestCanAccessBooking(t *testing.T) {
	booking := models.Booking{ClientID: "u1", BarberID: "u2", SalonID: "s1"}

	cases := []struct {
		name  string
		actor Actor
		want  bool
	}{
		{"client", Actor{UserID: "u1", Role: models.RoleClient}, true},
		{"barber", Actor{UserID: "u2", Role: models.RoleBarber}, true},
		{"same salon owner", Actor{UserID: "u3", Role: models.RoleOwner, SalonID: "s1"}, true},
		{"other salon owner", Actor{UserID: "u3", Role: models.RoleOwner, SalonID: "s2"}, false},
		{"admin", Actor{UserID: "u9", Role: models.RoleAdmin}, true},
		{"superadmin", Actor{UserID: "u9", Role: models.RoleSuperAdmin}, true},
		{"stranger", Actor{UserID: "u4", Role: models.RoleClient}, false},
	}
	for _, tc := range cases {
		if got := CanAccessBooking(tc.actor, booking); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCanManageBookingExcludesClient(t *testing.T) {
	booking := models.Booking{ClientID: "u1", BarberID: "u2", SalonID: "s1"}

	if CanManageBooking(Actor{UserID: "u1", Role: models.RoleClient}, booking) {
		t.Error("client must not be able to manage booking status")
	}
	if !CanCancelBooking(Actor{UserID: "u1", Role: models.RoleClient}, booking) {
		t.Error("client must be able to cancel their own booking")
	}
}

func TestCanViewStaffEarnings(t *testing.T) {
	staff := models.User{UserID: "b1", Role: models.RoleBarber, SalonID: "s1"}

	cases := []struct {
		name  string
		actor Actor
		want  bool
	}{
		{"self", Actor{UserID: "b1", Role: models.RoleBarber}, true},
		{"other barber", Actor{UserID: "b2", Role: models.RoleBarber}, false},
		{"own salon owner", Actor{UserID: "o1", Role: models.RoleOwner, SalonID: "s1"}, true},
		{"other salon owner", Actor{UserID: "o2", Role: models.RoleOwner, SalonID: "s2"}, false},
		{"admin", Actor{UserID: "a1", Role: models.RoleAdmin}, true},
		{"client", Actor{UserID: "c1", Role: models.RoleClient}, false},
	}
	for _, tc := range cases {
		if got := CanViewStaffEarnings(tc.actor, staff); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCanManageSalon(t *testing.T) {
	salon := models.Salon{SalonID: "s1", OwnerID: "o1"}

	if !CanManageSalon(Actor{UserID: "o1", Role: models.RoleOwner}, salon) {
		t.Error("owner must manage own salon")
	}
	if CanManageSalon(Actor{UserID: "o2", Role: models.RoleOwner, SalonID: "s2"}, salon) {
		t.Error("other owner must not manage salon")
	}
	if !CanManageSalon(Actor{UserID: "a1", Role: models.RoleSuperAdmin}, salon) {
		t.Error("superadmin must manage any salon")
	}
}
