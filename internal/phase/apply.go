package phase

import (
	"worldground/internal/biome"
	"worldground/internal/scripthost"
	"worldground/internal/tile"
)

// applyMutations writes each whitelisted mutation into t, dropping
// anything outside phase's whitelist. biome.type changes are deferred to
// the end of the batch and gated by the adjacency-constrained transition
// rule, evaluated against the tile's final transition_pressure for this
// phase. Returns the count of dropped writes (counted by the caller as
// additional rule errors).
func applyMutations(t *tile.Tile, phase tile.PhaseName, muts []scripthost.Mutation) (dropped int) {
	var proposedType tile.BiomeClass
	var hasProposedType bool

	for _, m := range muts {
		if !allowed(phase, m.Path) {
			dropped++
			continue
		}
		if m.Path == "biome.type" {
			s, ok := m.Value.(string)
			if !ok {
				dropped++
				continue
			}
			proposedType = tile.BiomeClass(s)
			hasProposedType = true
			continue
		}
		if !setField(t, m.Path, m.Value) {
			dropped++
		}
	}

	if hasProposedType {
		if biome.ShouldTransition(t.Biome.Type, proposedType, t.Biome.TicksInCurrentBiome, t.Biome.TransitionPressure) {
			if proposedType != t.Biome.Type {
				t.Biome.TicksInCurrentBiome = 0
			}
			t.Biome.Type = proposedType
		} else {
			dropped++
		}
	}

	t.ClampAll()
	return dropped
}

// setField writes value into t at path. Only whitelisted paths ever reach
// here, so this is a small explicit switch rather than a reflected
// accessor table.
func setField(t *tile.Tile, path string, value interface{}) bool {
	switch path {
	case "weather.temperature":
		return setFloat(&t.Weather.Temperature, value)
	case "weather.precip_intensity":
		return setFloat(&t.Weather.PrecipIntensity, value)
	case "weather.precip_class":
		return setPrecipClass(&t.Weather.PrecipClass, value)
	case "weather.wind_speed":
		return setFloat(&t.Weather.WindSpeed, value)
	case "weather.wind_direction":
		return setFloat(&t.Weather.WindDirection, value)
	case "weather.cloud_cover":
		return setFloat(&t.Weather.CloudCover, value)
	case "weather.humidity":
		return setFloat(&t.Weather.Humidity, value)
	case "weather.storm_intensity":
		return setFloat(&t.Weather.StormIntensity, value)
	case "weather.pressure":
		return setFloat(&t.Weather.Pressure, value)

	case "conditions.soil_moisture":
		return setFloat(&t.Conditions.SoilMoisture, value)
	case "conditions.snow_depth":
		return setFloat(&t.Conditions.SnowDepth, value)
	case "conditions.mud_level":
		return setFloat(&t.Conditions.MudLevel, value)
	case "conditions.flood_level":
		return setFloat(&t.Conditions.FloodLevel, value)
	case "conditions.frost_days":
		return setInt(&t.Conditions.FrostDays, value)
	case "conditions.drought_days":
		return setInt(&t.Conditions.DroughtDays, value)
	case "conditions.fire_risk":
		return setFloat(&t.Conditions.FireRisk, value)

	case "biome.type":
		return setBiomeClass(&t.Biome.Type, value)
	case "biome.vegetation_density":
		return setFloat(&t.Biome.VegetationDensity, value)
	case "biome.vegetation_health":
		return setFloat(&t.Biome.VegetationHealth, value)
	case "biome.transition_pressure":
		return setFloat(&t.Biome.TransitionPressure, value)
	}

	if idx, ok := depositIndex(path); ok {
		if idx < 0 || idx >= len(t.Resources.Deposits) {
			return false
		}
		return setFloat(&t.Resources.Deposits[idx].Quantity, value)
	}
	return false
}

func setFloat(dst *float64, value interface{}) bool {
	switch v := value.(type) {
	case float64:
		*dst = v
		return true
	case int:
		*dst = float64(v)
		return true
	default:
		return false
	}
}

func setInt(dst *int, value interface{}) bool {
	switch v := value.(type) {
	case float64:
		*dst = int(v)
		return true
	case int:
		*dst = v
		return true
	default:
		return false
	}
}

func setPrecipClass(dst *tile.PrecipitationClass, value interface{}) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	*dst = tile.PrecipitationClass(s)
	return true
}

func setBiomeClass(dst *tile.BiomeClass, value interface{}) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	*dst = tile.BiomeClass(s)
	return true
}
