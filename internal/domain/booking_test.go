package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBooking_Schedule(t *testing.T) {
	b := &Booking{
		ScheduledDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		ScheduledTime: "14:00",
		Duration:      3.5,
		Status:        BookingStatusPending,
	}

	assert.Equal(t, time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC), b.StartsAt())
	assert.Equal(t, time.Date(2026, 3, 10, 17, 30, 0, 0, time.UTC), b.EndsAt())

	assert.True(t, b.IsUpcoming(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)))
	assert.True(t, b.IsUpcoming(time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)))
	assert.False(t, b.IsUpcoming(time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)))

	b.Status = BookingStatusCancelled
	assert.False(t, b.IsUpcoming(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)))
}

func TestBooking_Subtotal(t *testing.T) {
	b := &Booking{ServicePrice: 25500, AddOnsPrice: 5000, TravelFee: 600, PlatformFee: 5303, TotalPrice: 36403}
	assert.Equal(t, int64(31100), b.Subtotal())
	assert.Equal(t, b.TotalPrice-b.PlatformFee, b.Subtotal())
}

func TestParseEnums(t *testing.T) {
	f, ok := ParseFrequency("")
	assert.True(t, ok)
	assert.Equal(t, FrequencyOneTime, f)

	_, ok = ParseFrequency("DAILY")
	assert.False(t, ok)

	tier, ok := ParseCleanerTier("")
	assert.True(t, ok)
	assert.Equal(t, CleanerTierNew, tier)

	_, ok = ParseCancellationReason("BORED")
	assert.False(t, ok)

	r, ok := ParseCancellationReason("WEATHER")
	assert.True(t, ok)
	assert.Equal(t, CancellationWeather, r)

	_, ok = ParseBookingStatus("DONE")
	assert.False(t, ok)
}

func TestCatalog_Helpers(t *testing.T) {
	c := &Catalog{
		LocationSizes: []LocationSize{{ID: "studio", Label: "Studio"}, {ID: "2br", Label: "2 Bedrooms", IsDefault: true}},
		Services:      []Service{{ID: "general", Type: ServiceTypeGeneral, Name: "General Cleaning", BaseHours: 3}},
		AddOns:        []AddOn{{ID: "oven", Name: "Oven Cleaning", Hours: 0.5, Price: 5000}, {ID: "windows", Name: "Windows", Hours: 1, Price: 8000}},
	}

	ls, ok := c.DefaultLocationSize()
	assert.True(t, ok)
	assert.Equal(t, "2br", ls.ID)

	svc, ok := c.Service("general")
	assert.True(t, ok)

	addOns, unknown := c.ResolveAddOns([]string{"oven", "windows"})
	assert.Empty(t, unknown)
	assert.Equal(t, 4.5, TotalHours(svc, addOns))

	_, unknown = c.ResolveAddOns([]string{"oven", "sauna"})
	assert.Equal(t, "sauna", unknown)
}

func TestDefaultAddress(t *testing.T) {
	assert.Nil(t, DefaultAddress(nil))

	first := &Address{ID: "a1"}
	second := &Address{ID: "a2", IsDefault: true}
	assert.Equal(t, second, DefaultAddress([]*Address{first, second}))
	assert.Equal(t, first, DefaultAddress([]*Address{first}))
}

func TestAddress_Display(t *testing.T) {
	a := &Address{Street: "Strada Lipscani", StreetNumber: "12", Apartment: "4", City: "Bucuresti", PostalCode: "030031"}
	assert.Equal(t, "Strada Lipscani 12, Apt 4, Bucuresti, 030031", a.Display())

	a.Formatted = "Strada Lipscani 12, Bucharest"
	assert.Equal(t, "Strada Lipscani 12, Bucharest", a.Display())
}
