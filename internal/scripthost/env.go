package scripthost

import "worldground/internal/tile"

// tileEnv builds the read-only evaluation environment for one tile: a
// nested map mirroring the six layers plus top-level conveniences for the
// macro-stamped fields rules reach for most often.
func tileEnv(t *tile.Tile) map[string]interface{} {
	return map[string]interface{}{
		"id":  t.ID,
		"lat": t.Position.Lat,
		"lon": t.Position.Lon,
		"sphere": [3]float64{t.Position.Sphere[0], t.Position.Sphere[1], t.Position.Sphere[2]},

		"geology": map[string]interface{}{
			"terrain":         string(t.Geology.Terrain),
			"elevation":       t.Geology.Elevation,
			"soil":            string(t.Geology.Soil),
			"drainage":        string(t.Geology.Drainage),
			"tectonic_stress": t.Geology.TectonicStress,
		},
		"climate": map[string]interface{}{
			"zone":                string(t.Climate.Zone),
			"base_temperature":    t.Climate.BaseTemperature,
			"base_precipitation":  t.Climate.BasePrecipitation,
			"normalized_latitude": t.Climate.NormalizedLatitude,
		},
		"weather": map[string]interface{}{
			"temperature":          t.Weather.Temperature,
			"precip_intensity":     t.Weather.PrecipIntensity,
			"precip_class":         string(t.Weather.PrecipClass),
			"wind_speed":           t.Weather.WindSpeed,
			"wind_direction":       t.Weather.WindDirection,
			"cloud_cover":          t.Weather.CloudCover,
			"humidity":             t.Weather.Humidity,
			"storm_intensity":      t.Weather.StormIntensity,
			"pressure":             t.Weather.Pressure,
			"macro_wind_speed":     t.Weather.MacroWindSpeed,
			"macro_wind_direction": t.Weather.MacroWindDirection,
			"macro_humidity":       t.Weather.MacroHumidity,
		},
		"conditions": map[string]interface{}{
			"soil_moisture": t.Conditions.SoilMoisture,
			"snow_depth":    t.Conditions.SnowDepth,
			"mud_level":     t.Conditions.MudLevel,
			"flood_level":   t.Conditions.FloodLevel,
			"frost_days":    float64(t.Conditions.FrostDays),
			"drought_days":  float64(t.Conditions.DroughtDays),
			"fire_risk":     t.Conditions.FireRisk,
		},
		"biome": map[string]interface{}{
			"type":                   string(t.Biome.Type),
			"vegetation_density":     t.Biome.VegetationDensity,
			"vegetation_health":      t.Biome.VegetationHealth,
			"transition_pressure":    t.Biome.TransitionPressure,
			"ticks_in_current_biome": float64(t.Biome.TicksInCurrentBiome),
		},

		// Top-level aliases for the fields rules reach for most often.
		"macro_wind_speed":     t.Weather.MacroWindSpeed,
		"macro_wind_direction": t.Weather.MacroWindDirection,
		"macro_humidity":       t.Weather.MacroHumidity,
	}
}

// lookupPath descends a dot-path ("weather.wind_speed") into a nested
// tileEnv map and coerces the result to float64. Missing values are
// treated as zero, matching the neighbor aggregate contract.
func lookupPath(env map[string]interface{}, path string) (float64, bool) {
	parts := splitPath(path)
	var cur interface{} = env
	for _, p := range parts {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return 0, false
		}
		cur, ok = m[p]
		if !ok {
			return 0, false
		}
	}
	return toFloat(cur)
}

func splitPath(path string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(path); i++ {
		if path[i] == '.' {
			parts = append(parts, path[start:i])
			start = i + 1
		}
	}
	parts = append(parts, path[start:])
	return parts
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
