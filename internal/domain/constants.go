package domain

// Input limits for bookings, profiles and quotes.
const (
	MinDurationHours          = 1
	MaxDurationHours          = 720 // 30 days
	MinContactNameLength      = 2
	MaxContactNameLength      = 100
	MinAddressLength          = 10
	MaxAddressLength          = 500
	MaxSpecialRequirementsLen = 2000
	MaxStatusNotesLength      = 1000
)

// Catalog paging.
const (
	DefaultEquipmentPageLimit = 20
	DefaultBookingsPageLimit  = 10
	MaxPageLimit              = 100
	MaxPage                   = 10000
	DefaultSearchRadiusKm     = 50
)

// DefaultCurrency of bookings and payments.
const DefaultCurrency = "INR"

// Availability calendar range, in days.
const (
	DefaultAvailabilityDays = 14
	MaxAvailabilityDays     = 62
)
