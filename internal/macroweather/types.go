// Package macroweather maintains a small, bounded population of pressure
// systems advected over the sphere and stamps their aggregate influence
// onto tiles once per tick, ahead of the Weather phase.
package macroweather

import "math/rand"

// Classification governs where a system is likely to spawn and how it
// behaves once alive.
type Classification string

const (
	TropicalLow        Classification = "tropical_low"
	SubtropicalHigh    Classification = "subtropical_high"
	MidLatitudeCyclone Classification = "mid_latitude_cyclone"
	PolarHigh          Classification = "polar_high"
	ThermalLow         Classification = "thermal_low"
)

// PressureSystem is one advected low/high pressure cell.
type PressureSystem struct {
	ID    int
	Sphere   [3]float64
	Lat, Lon float64

	// Anomaly is the pressure departure from the 1013.25 hPa baseline;
	// negative for lows, positive for highs.
	Anomaly float64

	// Radius is the system's influence radius, in the same distance units
	// as the world's sphere radius (see MacroWeatherState.SphereRadius).
	Radius float64

	// Velocity is the system's tangent-plane drift, east/north components,
	// in distance units per tick.
	Velocity [2]float64

	Age, MaxAge int
	Class       Classification
	Moisture    float64
}

// Spent reports whether the system has exceeded its lifetime.
func (p *PressureSystem) Spent() bool { return p.Age >= p.MaxAge }

// MacroWeatherState is the world-level, owned-by-World collection of
// active pressure systems plus the PRNG driving deterministic spawns.
type MacroWeatherState struct {
	Systems []PressureSystem
	NextID  int

	SphereRadius float64

	rng *rand.Rand
}

// NewState seeds a fresh, empty pressure-system population. seed composes
// with the world seed so spawn sequences are reproducible for a fixed
// world_seed regardless of worker count (macro-weather itself runs
// sequentially — see Update).
func NewState(seed int64, sphereRadius float64) *MacroWeatherState {
	return &MacroWeatherState{
		SphereRadius: sphereRadius,
		rng:          rand.New(rand.NewSource(seed)),
	}
}
