package nativeweather

import (
	"math"

	"worldground/internal/tile"
)

// stepWindTemperature blends local wind with the macro-stamped wind and
// derives temperature from base climate, elevation lapse, and season.
func (a *WeatherAccum) stepWindTemperature(season tile.Season) {
	const lapseRatePerElevation = 35.0 // Kelvin lost from sea level to elevation 1.0
	seasonalOffset := map[tile.Season]float64{
		tile.SeasonSpring: 0,
		tile.SeasonSummer: 8,
		tile.SeasonAutumn: 0,
		tile.SeasonWinter: -8,
	}[season]

	a.Temperature = a.baseTemperature - a.elevation*lapseRatePerElevation + seasonalOffset

	const windMomentumBlend = 0.5
	a.WindSpeed = a.WindSpeed*(1-windMomentumBlend) + a.MacroWindSpeed*windMomentumBlend
	a.WindDirection = blendAngles(a.WindDirection, a.MacroWindDirection, windMomentumBlend)
}

// stepHumidity blends toward the macro-stamped humidity (coverage
// weighted, never a fixed fraction), adds evapotranspiration on land, and
// applies snowmelt's humidity contribution — everything that doesn't
// depend on this tick's precipitation.
func (a *WeatherAccum) stepHumidity() {
	macroWeight := math.Min(a.MacroHumidity*macroHumidityWeightGain, macroHumidityWeightCap)
	localWeight := 1 - macroWeight
	a.Humidity = localWeight*a.Humidity + macroWeight*a.MacroHumidity

	if !a.isOcean {
		const evapRate = 0.02
		a.Humidity += a.vegetationDensity * a.vegetationHealth * evapRate
	}

	const freezingK = 273.15
	if a.Temperature > freezingK && a.snowDepth > 0 {
		melt := math.Min(a.snowDepth, (a.Temperature-freezingK)*0.01)
		a.Humidity += melt * 0.5
		a.soilMoistureDelta += melt * 0.5
	}

	dryness := 1 - a.Humidity
	decay := 0.02 + dryness*0.05
	a.Humidity -= a.Humidity * decay
	if a.Humidity < 0 {
		a.Humidity = 0
	}
}

// stepCloudsPrecipitation derives cloud cover and precipitation from the
// post-humidity-step state, then drains humidity proportionally to the
// precipitation intensity it just computed (never a fixed drain).
func (a *WeatherAccum) stepCloudsPrecipitation() {
	a.CloudCover = tile.Clamp(a.Humidity*1.1, 0, 1)

	const precipThreshold = 0.6
	if a.Humidity > precipThreshold {
		a.PrecipIntensity = tile.Clamp((a.Humidity-precipThreshold)/(1-precipThreshold), 0, 1)
	} else {
		a.PrecipIntensity = 0
	}

	const freezingK = 273.15
	switch {
	case a.PrecipIntensity <= 0:
		a.PrecipClass = tile.PrecipitationNone
	case a.Temperature < freezingK-3:
		a.PrecipClass = tile.PrecipitationSnow
	case a.Temperature < freezingK:
		a.PrecipClass = tile.PrecipitationSleet
	default:
		a.PrecipClass = tile.PrecipitationRain
	}

	a.Humidity -= a.Humidity * a.PrecipIntensity * 0.3
	if a.Humidity < 0 {
		a.Humidity = 0
	}
}

// stepStorm derives storm intensity from wind and precipitation, then
// feeds back to raise wind speed — the one place the chain loops.
func (a *WeatherAccum) stepStorm() {
	windFactor := tile.Clamp(a.WindSpeed/40, 0, 1)
	a.StormIntensity = tile.Clamp(windFactor*0.5+a.PrecipIntensity*0.5, 0, 1)
	a.WindSpeed += a.StormIntensity * 10
}

// blendAngles interpolates between two compass bearings (degrees) taking
// the shorter arc, weighting b by t.
func blendAngles(a, b, t float64) float64 {
	diff := math.Mod(b-a+540, 360) - 180
	return math.Mod(a+diff*t+360, 360)
}
