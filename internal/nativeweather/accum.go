// Package nativeweather implements the Weather phase directly in Go
// instead of through the script host, for the configurations that select
// native evaluation. It chains four interdependent steps against a
// per-tile accumulator so intermediate results never get lost to
// last-write-wins snapshot semantics the way independently scripted rules
// would lose them.
package nativeweather

import "worldground/internal/tile"

// macroHumidityWeightGain and macroHumidityWeightCap implement the
// coverage-weighted macro-humidity blend: macro-weight = min(macro_humidity
// * macroHumidityWeightGain, macroHumidityWeightCap). A tile with zero
// macro coverage (macro_humidity == 0) gets a zero macro-weight, so it
// never loses humidity to the blend.
const (
	macroHumidityWeightGain = 3.5
	macroHumidityWeightCap  = 0.35
)

// WeatherAccum carries one tile's Weather state through the four-step
// chain. It starts as a copy of the tile's prior Weather and is written
// back as a single mutation once all four steps complete.
type WeatherAccum struct {
	tile.Weather

	// inputs carried alongside Weather for steps that need them.
	elevation          float64
	vegetationDensity  float64
	vegetationHealth   float64
	snowDepth          float64
	soilMoisture       float64
	baseTemperature    float64
	normalizedLatitude float64
	isOcean            bool

	// soilMoistureDelta accumulates snowmelt's soil-moisture contribution
	// (see stepHumidity). The Weather phase doesn't own conditions.soil_
	// moisture, so this rides alongside the Weather result as a second,
	// narrowly-scoped native write rather than going through the normal
	// mutation whitelist.
	soilMoistureDelta float64
}

// NewAccum seeds an accumulator from a tile's immutable and prior mutable
// layers.
func NewAccum(t *tile.Tile) *WeatherAccum {
	return &WeatherAccum{
		Weather:            t.Weather,
		elevation:          t.Geology.Elevation,
		vegetationDensity:  t.Biome.VegetationDensity,
		vegetationHealth:   t.Biome.VegetationHealth,
		snowDepth:          t.Conditions.SnowDepth,
		soilMoisture:       t.Conditions.SoilMoisture,
		baseTemperature:    t.Climate.BaseTemperature,
		normalizedLatitude: t.Climate.NormalizedLatitude,
		isOcean:            t.Geology.Terrain == tile.TerrainOcean,
	}
}

// Evaluate runs all four steps in order against the accumulator and
// returns the resulting Weather (clamped to its declared ranges) plus the
// soil-moisture delta snowmelt contributed this tick.
func (a *WeatherAccum) Evaluate(season tile.Season) (tile.Weather, float64) {
	a.stepWindTemperature(season)
	a.stepHumidity()
	a.stepCloudsPrecipitation()
	a.stepStorm()
	a.Weather.ClampRanges()
	return a.Weather, a.soilMoistureDelta
}
