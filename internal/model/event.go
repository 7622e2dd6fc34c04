package model

import "time"

// EventName identifies one of the four funnel stage events.
type EventName string

const (
	EventSignup      EventName = "signup"
	EventProductView EventName = "product_view"
	EventAddToCart   EventName = "add_to_cart"
	EventCheckout    EventName = "checkout"
)

// EventNames returns the valid stage events in funnel order.
func EventNames() []EventName {
	return []EventName{EventSignup, EventProductView, EventAddToCart, EventCheckout}
}

// Valid reports whether the name is one of the four funnel stages.
func (n EventName) Valid() bool {
	switch n {
	case EventSignup, EventProductView, EventAddToCart, EventCheckout:
		return true
	}
	return false
}

// Device is the device class a user browses from.
type Device string

const (
	DeviceMobile  Device = "mobile"
	DeviceDesktop Device = "desktop"
)

// The seven cities users are drawn from. Delhi, Mumbai and Bangalore are
// tier-1 and carry a distinct checkout probability modifier.
const (
	CityDelhi     = "Delhi"
	CityMumbai    = "Mumbai"
	CityBangalore = "Bangalore"
	CityJaipur    = "Jaipur"
	CityIndore    = "Indore"
	CityLucknow   = "Lucknow"
	CityPatna     = "Patna"
)

// Cities returns all seven cities, tier-1 first.
func Cities() []string {
	return []string{CityDelhi, CityMumbai, CityBangalore, CityJaipur, CityIndore, CityLucknow, CityPatna}
}

// IsTierOne reports whether the city is Delhi, Mumbai or Bangalore.
func IsTierOne(city string) bool {
	return city == CityDelhi || city == CityMumbai || city == CityBangalore
}

// Event is one row of the clickstream log. Events are produced once and
// never updated. Within a session the generator emits stages in funnel
// order with positive time offsets; consumers rely on that without
// re-verifying it per session.
type Event struct {
	UserID    int
	SessionID string // "{user_id}_{session_index}"
	Timestamp time.Time
	Name      EventName
	Device    Device
	City      string
}
