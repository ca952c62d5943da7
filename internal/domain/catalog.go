package domain

// LocationSize is a property size option ("Studio", "2 Bedrooms", ...).
// It labels the booking; duration comes from the service and add-ons.
type LocationSize struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	IsDefault bool   `json:"is_default"`
	SortOrder int    `json:"sort_order"`
}

// Service is a bookable cleaning service with its base duration.
type Service struct {
	ID        string      `json:"id"`
	Type      ServiceType `json:"type"`
	Name      string      `json:"name"`
	BaseHours float64     `json:"base_hours"`
}

// AddOn is an optional extra that adds time and a fixed price (bani).
type AddOn struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Hours float64 `json:"hours"`
	Price int64   `json:"price"`
}

// Catalog groups everything a customer can pick in the booking flow.
type Catalog struct {
	LocationSizes []LocationSize `json:"location_sizes"`
	Services      []Service      `json:"services"`
	AddOns        []AddOn        `json:"add_ons"`
}

func (c *Catalog) LocationSize(id string) (LocationSize, bool) {
	for _, ls := range c.LocationSizes {
		if ls.ID == id {
			return ls, true
		}
	}
	return LocationSize{}, false
}

func (c *Catalog) Service(id string) (Service, bool) {
	for _, s := range c.Services {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}

func (c *Catalog) AddOn(id string) (AddOn, bool) {
	for _, a := range c.AddOns {
		if a.ID == id {
			return a, true
		}
	}
	return AddOn{}, false
}

// ResolveAddOns returns the add-ons for ids in the given order.
// The second return value is the first unknown id, if any.
func (c *Catalog) ResolveAddOns(ids []string) ([]AddOn, string) {
	out := make([]AddOn, 0, len(ids))
	for _, id := range ids {
		a, ok := c.AddOn(id)
		if !ok {
			return nil, id
		}
		out = append(out, a)
	}
	return out, ""
}

// DefaultLocationSize returns the size flagged as default, or the first one.
func (c *Catalog) DefaultLocationSize() (LocationSize, bool) {
	for _, ls := range c.LocationSizes {
		if ls.IsDefault {
			return ls, true
		}
	}
	if len(c.LocationSizes) > 0 {
		return c.LocationSizes[0], true
	}
	return LocationSize{}, false
}

// TotalHours is the service base duration plus the duration of every add-on.
func TotalHours(service Service, addOns []AddOn) float64 {
	hours := service.BaseHours
	for _, a := range addOns {
		hours += a.Hours
	}
	return hours
}
