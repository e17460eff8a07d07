package models

import "time"

type WorkingDay struct {
	Open   string `bson:"open,omitempty" json:"open,omitempty"`
	Close  string `bson:"close,omitempty" json:"close,omitempty"`
	Closed bool   `bson:"closed" json:"closed"`
}

type Salon struct {
	SalonID           string                `bson:"salonid" json:"salonid"`
	Name              string                `bson:"name" json:"name"`
	Address           string                `bson:"address" json:"address"`
	Province          string                `bson:"province" json:"province"`
	District          string                `bson:"district" json:"district"`
	Sector            string                `bson:"sector,omitempty" json:"sector,omitempty"`
	Latitude          float64               `bson:"latitude" json:"latitude"`
	Longitude         float64               `bson:"longitude" json:"longitude"`
	OwnerID           string                `bson:"ownerId" json:"ownerId"`
	OwnerIDNumber     string                `bson:"ownerIdNumber" json:"ownerIdNumber"`
	OwnerContactPhone string                `bson:"ownerContactPhone" json:"ownerContactPhone"`
	OwnerContactEmail string                `bson:"ownerContactEmail,omitempty" json:"ownerContactEmail,omitempty"`
	NumberOfEmployees int                   `bson:"numberOfEmployees" json:"numberOfEmployees"`
	ServiceCategories []string              `bson:"serviceCategories,omitempty" json:"serviceCategories,omitempty"`
	CustomServices    string                `bson:"customServices,omitempty" json:"customServices,omitempty"`
	Logo              string                `bson:"logo,omitempty" json:"logo,omitempty"`
	CoverImages       []string              `bson:"coverImages,omitempty" json:"coverImages,omitempty"`
	Gallery           []string              `bson:"gallery,omitempty" json:"gallery,omitempty"`
	Services          []string              `bson:"services,omitempty" json:"services,omitempty"`
	Barbers           []string              `bson:"barbers,omitempty" json:"barbers,omitempty"`
	Verified          bool                  `bson:"verified" json:"verified"`
	Description       string                `bson:"description,omitempty" json:"description,omitempty"`
	Phone             string                `bson:"phone,omitempty" json:"phone,omitempty"`
	Email             string                `bson:"email,omitempty" json:"email,omitempty"`
	WorkingHours      map[string]WorkingDay `bson:"workingHours,omitempty" json:"workingHours,omitempty"`
	CreatedAt         time.Time             `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time             `bson:"updatedAt" json:"updatedAt"`
}

// Service categories
var ServiceCategories = []string{
	"haircut", "styling", "coloring", "treatment", "beard",
	"nails", "skincare", "massage", "makeup", "other",
}

type Service struct {
	ServiceID       string    `bson:"serviceid" json:"serviceid"`
	SalonID         string    `bson:"salonId" json:"salonId"`
	Title           string    `bson:"title" json:"title"`
	Description     string    `bson:"description,omitempty" json:"description,omitempty"`
	DurationMinutes int       `bson:"durationMinutes" json:"durationMinutes"`
	Price           float64   `bson:"price" json:"price"`
	Category        string    `bson:"category" json:"category"`
	TargetAudience  []string  `bson:"targetAudience" json:"targetAudience"`
	IsActive        bool      `bson:"isActive" json:"isActive"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}
