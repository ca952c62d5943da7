package wizard

import (
	"time"

	"cleanhome/internal/domain"
	"cleanhome/internal/pricing"
)

// Summary is the confirmation view of a complete wizard.
//
// EstimatedTotal is hours times the cleaner's rate. It leaves out the travel
// and platform fees, so it is never the amount charged; the booking's
// TotalPrice is.
type Summary struct {
	LocationSize   string             `json:"location_size"`
	ServiceName    string             `json:"service_name"`
	ServiceType    domain.ServiceType `json:"service_type"`
	AddOns         []string           `json:"add_ons"`
	Address        string             `json:"address"`
	Date           string             `json:"date"`
	Time           string             `json:"time"`
	CleanerName    string             `json:"cleaner_name"`
	HourlyRate     int64              `json:"hourly_rate"`
	HourlyRateText string             `json:"hourly_rate_text"`
	TotalHours     float64            `json:"total_hours"`
	EstimatedTotal int64              `json:"estimated_total"`
	EstimateText   string             `json:"estimated_total_text"`
	ExcludesFees   bool               `json:"excludes_fees"`
}

// Summary returns nil when any required selection is missing.
func (w *Wizard) Summary() *Summary {
	s := w.state
	if s.LocationSizeID == "" || s.ServiceID == "" || s.Address == nil ||
		s.Date == "" || s.Time == "" || s.CleanerID == "" {
		return nil
	}
	ls, ok := w.catalog.LocationSize(s.LocationSizeID)
	if !ok {
		return nil
	}
	svc, ok := w.catalog.Service(s.ServiceID)
	if !ok {
		return nil
	}
	addOns, unknown := w.catalog.ResolveAddOns(s.AddOnIDs)
	if unknown != "" {
		return nil
	}
	cleaner := w.candidate(s.CleanerID)
	if cleaner == nil {
		return nil
	}

	names := make([]string, 0, len(addOns))
	for _, a := range addOns {
		names = append(names, a.Name)
	}
	hours := domain.TotalHours(svc, addOns)
	estimate := pricing.HoursCost(hours, cleaner.HourlyRate)

	return &Summary{
		LocationSize:   ls.Label,
		ServiceName:    svc.Name,
		ServiceType:    svc.Type,
		AddOns:         names,
		Address:        s.Address.Address.Display(),
		Date:           formatDate(s.Date),
		Time:           s.Time,
		CleanerName:    cleaner.Name,
		HourlyRate:     cleaner.HourlyRate,
		HourlyRateText: pricing.FormatAmount(cleaner.HourlyRate),
		TotalHours:     hours,
		EstimatedTotal: estimate,
		EstimateText:   pricing.FormatAmount(estimate),
		ExcludesFees:   true,
	}
}

func formatDate(date string) string {
	d, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return date
	}
	return d.Format("Monday, January 2, 2006")
}
