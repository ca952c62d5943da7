package domain

// CleanerTier is the seniority level of a cleaner. Each tier has its own
// allowed hourly rate range.
type CleanerTier string

const (
	CleanerTierNew      CleanerTier = "NEW"
	CleanerTierStandard CleanerTier = "STANDARD"
	CleanerTierPremium  CleanerTier = "PREMIUM"
)

// ParseCleanerTier validates a tier string. Empty means NEW.
func ParseCleanerTier(s string) (CleanerTier, bool) {
	switch t := CleanerTier(s); t {
	case CleanerTierNew, CleanerTierStandard, CleanerTierPremium:
		return t, true
	case "":
		return CleanerTierNew, true
	}
	return "", false
}

// TierRateRange bounds the hourly rate (bani/hour) a cleaner of a tier may charge.
type TierRateRange struct {
	Tier    CleanerTier
	MinRate int64
	MaxRate int64
}

// Contains reports whether rate lies inside the inclusive range.
func (r TierRateRange) Contains(rate int64) bool {
	return rate >= r.MinRate && rate <= r.MaxRate
}

// CleanerProfile is the public profile of a cleaner.
type CleanerProfile struct {
	ID          string
	UserID      string
	DisplayName string
	Bio         string
	Tier        CleanerTier
	HourlyRate  int64
	Rating      float64
	ReviewCount int
	City        string
	PostalCode  string
	BaseLat     float64
	BaseLng     float64
	Active      bool
}

// AvailableCleaner is a candidate returned by the availability lookup.
type AvailableCleaner struct {
	CleanerID   string      `json:"cleaner_id"`
	ProfileID   string      `json:"profile_id"`
	Name        string      `json:"name"`
	Tier        CleanerTier `json:"tier"`
	HourlyRate  int64       `json:"hourly_rate"`
	Rating      float64     `json:"rating"`
	ReviewCount int         `json:"review_count"`
}

// AvailabilityQuery describes the slot a customer wants to book.
type AvailabilityQuery struct {
	Date       string  `json:"date"`
	StartTime  string  `json:"start_time"`
	Duration   float64 `json:"duration"`
	City       string  `json:"city"`
	PostalCode string  `json:"postal_code,omitempty"`
}
