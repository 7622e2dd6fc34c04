package generator

import (
	"fmt"
	"math/rand"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/crimson-sun/funnelscope/internal/model"
)

// Stage progression parameters.
const (
	viewProb = 0.85
	cartProb = 0.60

	baseCheckoutProb   = 0.45
	mobilePenalty      = 0.15
	lateNightPenalty   = 0.10
	tierOneCityPenalty = 0.05

	viewOffset     = 2 * time.Minute
	cartOffset     = 3 * time.Minute
	checkoutOffset = 4 * time.Minute

	maxSessionsPerUser = 3
	startDayRange      = 180

	mobileShare = 0.65
)

// cityWeights is the categorical city distribution; weights sum to 1.00.
var cityWeights = []struct {
	city   string
	weight float64
}{
	{model.CityDelhi, 0.18},
	{model.CityMumbai, 0.18},
	{model.CityBangalore, 0.18},
	{model.CityJaipur, 0.12},
	{model.CityIndore, 0.12},
	{model.CityLucknow, 0.11},
	{model.CityPatna, 0.11},
}

// Config controls the synthetic population.
type Config struct {
	Users int
	Seed  int64
	Start time.Time // base date session start days offset from
}

// Generator synthesizes a clickstream for a population of users. All
// randomness comes from a single seeded source consumed in a fixed draw
// order, so the same Config reproduces byte-identical events.
type Generator struct {
	cfg Config
	rng *rand.Rand
}

// New creates a Generator seeded from cfg.Seed.
func New(cfg Config) *Generator {
	return &Generator{cfg: cfg, rng: rand.New(rand.NewSource(cfg.Seed))}
}

// Generate emits every user's events in generation order. The result is
// not chronologically sorted; sorting is a persistence concern.
func (g *Generator) Generate() []model.Event {
	events := make([]model.Event, 0, g.cfg.Users*4)
	for userID := 1; userID <= g.cfg.Users; userID++ {
		sessions := g.rng.Intn(maxSessionsPerUser) + 1
		device := g.drawDevice()
		city := g.drawCity()
		for s := 0; s < sessions; s++ {
			events = append(events, g.session(userID, s, device, city)...)
		}
	}
	log.WithFields(log.Fields{
		"users":  g.cfg.Users,
		"events": len(events),
		"seed":   g.cfg.Seed,
	}).Info("generated clickstream")
	return events
}

// session emits one session's events. Each stage is gated on the previous
// stage having been emitted: progression is a chain, never a skip.
func (g *Generator) session(userID, index int, device model.Device, city string) []model.Event {
	sessionID := fmt.Sprintf("%d_%d", userID, index)
	day := g.rng.Intn(startDayRange)
	hour := g.rng.Intn(24)
	t := g.cfg.Start.AddDate(0, 0, day).Add(time.Duration(hour) * time.Hour)

	emit := func(name model.EventName, at time.Time) model.Event {
		return model.Event{
			UserID:    userID,
			SessionID: sessionID,
			Timestamp: at,
			Name:      name,
			Device:    device,
			City:      city,
		}
	}

	events := []model.Event{emit(model.EventSignup, t)}

	if g.rng.Float64() >= viewProb {
		return events
	}
	t = t.Add(viewOffset)
	events = append(events, emit(model.EventProductView, t))

	if g.rng.Float64() >= cartProb {
		return events
	}
	t = t.Add(cartOffset)
	events = append(events, emit(model.EventAddToCart, t))

	if g.rng.Float64() >= checkoutProb(device, city, hour) {
		return events
	}
	t = t.Add(checkoutOffset)
	events = append(events, emit(model.EventCheckout, t))
	return events
}

func (g *Generator) drawDevice() model.Device {
	if g.rng.Float64() < mobileShare {
		return model.DeviceMobile
	}
	return model.DeviceDesktop
}

func (g *Generator) drawCity() string {
	r := g.rng.Float64()
	cum := 0.0
	for _, cw := range cityWeights {
		cum += cw.weight
		if r < cum {
			return cw.city
		}
	}
	// Float rounding can leave r just above the final cumulative weight.
	return cityWeights[len(cityWeights)-1].city
}

// checkoutProb applies the device, time-of-day and city adjustments to the
// base checkout probability. With the documented parameters the worst case
// is 0.15, but the result is clamped to [0,1] so a future parameter change
// cannot drive the draw negative.
func checkoutProb(device model.Device, city string, hour int) float64 {
	p := baseCheckoutProb
	if device == model.DeviceMobile {
		p -= mobilePenalty
	}
	if model.IsLateNight(hour) {
		p -= lateNightPenalty
	}
	if model.IsTierOne(city) {
		p -= tierOneCityPenalty
	}
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
