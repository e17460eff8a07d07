package models

import "time"

// Roles
const (
	RoleClient       = "client"
	RoleBarber       = "barber"
	RoleHairstylist  = "hairstylist"
	RoleNailTech     = "nail_technician"
	RoleMassage      = "massage_therapist"
	RoleEsthetician  = "esthetician"
	RoleReceptionist = "receptionist"
	RoleManager      = "manager"
	RoleOwner        = "owner"
	RoleAdmin        = "admin"
	RoleSuperAdmin   = "superadmin"
)

// StaffRoles are the roles that perform services and accrue earnings.
var StaffRoles = []string{
	RoleBarber, RoleHairstylist, RoleNailTech, RoleMassage,
	RoleEsthetician, RoleReceptionist, RoleManager,
}

type DaySchedule struct {
	Start     string `bson:"start,omitempty" json:"start,omitempty"`
	End       string `bson:"end,omitempty" json:"end,omitempty"`
	Available bool   `bson:"available" json:"available"`
}

type User struct {
	UserID           string                 `bson:"userid" json:"userid"`
	Name             string                 `bson:"name" json:"name"`
	Email            string                 `bson:"email" json:"email"`
	Phone            string                 `bson:"phone" json:"phone"`
	NationalID       string                 `bson:"nationalId,omitempty" json:"nationalId,omitempty"`
	PasswordHash     string                 `bson:"passwordHash" json:"-"`
	Role             string                 `bson:"role" json:"role"`
	SalonID          string                 `bson:"salonId,omitempty" json:"salonId,omitempty"`
	ProfilePhoto     string                 `bson:"profilePhoto,omitempty" json:"profilePhoto,omitempty"`
	IsVerified       bool                   `bson:"isVerified" json:"isVerified"`
	IsActive         bool                   `bson:"isActive" json:"isActive"`
	StaffCategory    string                 `bson:"staffCategory,omitempty" json:"staffCategory,omitempty"`
	Specialties      []string               `bson:"specialties,omitempty" json:"specialties,omitempty"`
	Experience       string                 `bson:"experience,omitempty" json:"experience,omitempty"`
	Bio              string                 `bson:"bio,omitempty" json:"bio,omitempty"`
	Credentials      []string               `bson:"credentials,omitempty" json:"credentials,omitempty"`
	AssignedServices []string               `bson:"assignedServices,omitempty" json:"assignedServices,omitempty"`
	WorkSchedule     map[string]DaySchedule `bson:"workSchedule,omitempty" json:"workSchedule,omitempty"`
	CreatedAt        time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time              `bson:"updatedAt" json:"updatedAt"`
}

// PublicUser is the shape returned to API consumers.
type PublicUser struct {
	UserID        string    `json:"userid"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Role          string    `json:"role"`
	SalonID       string    `json:"salonId,omitempty"`
	ProfilePhoto  string    `json:"profilePhoto,omitempty"`
	IsVerified    bool      `json:"isVerified"`
	StaffCategory string    `json:"staffCategory,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		UserID:        u.UserID,
		Name:          u.Name,
		Email:         u.Email,
		Phone:         u.Phone,
		Role:          u.Role,
		SalonID:       u.SalonID,
		ProfilePhoto:  u.ProfilePhoto,
		IsVerified:    u.IsVerified,
		StaffCategory: u.StaffCategory,
		CreatedAt:     u.CreatedAt,
	}
}

func IsStaffRole(role string) bool {
	for _, r := range StaffRoles {
		if r == role {
			return true
		}
	}
	return false
}

func IsAdminRole(role string) bool {
	return role == RoleAdmin || role == RoleSuperAdmin
}
