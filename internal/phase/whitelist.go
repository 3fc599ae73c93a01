package phase

import (
	"strconv"
	"strings"

	"worldground/internal/tile"
)

// fieldWhitelist lists the exact field paths a phase's rules may write.
// Writes outside the phase's set are dropped and counted as rule errors,
// per the mutation whitelist.
var fieldWhitelist = map[tile.PhaseName]map[string]bool{
	tile.PhaseWeather: {
		"weather.temperature":     true,
		"weather.precip_intensity": true,
		"weather.precip_class":    true,
		"weather.wind_speed":      true,
		"weather.wind_direction":  true,
		"weather.cloud_cover":     true,
		"weather.humidity":        true,
		"weather.storm_intensity": true,
		"weather.pressure":        true,
	},
	tile.PhaseConditions: {
		"conditions.soil_moisture": true,
		"conditions.snow_depth":    true,
		"conditions.mud_level":     true,
		"conditions.flood_level":   true,
		"conditions.frost_days":    true,
		"conditions.drought_days":  true,
		"conditions.fire_risk":     true,
	},
	tile.PhaseTerrain: {
		"biome.type":               true,
		"biome.vegetation_density":  true,
		"biome.vegetation_health":   true,
		"biome.transition_pressure": true,
	},
	// Resources addresses individual deposits by index:
	// "resources.deposits.<i>.quantity". Checked by prefix below rather
	// than as fixed keys, since the deposit count is per-tile.
}

// allowed reports whether phase's rules may write path.
func allowed(phase tile.PhaseName, path string) bool {
	if phase == tile.PhaseResources {
		return strings.HasPrefix(path, "resources.deposits.") && strings.HasSuffix(path, ".quantity")
	}
	set, ok := fieldWhitelist[phase]
	if !ok {
		return false
	}
	return set[path]
}

// depositIndex extracts the deposit index from a
// "resources.deposits.<i>.quantity" path. Returns false if malformed.
func depositIndex(path string) (int, bool) {
	parts := strings.Split(path, ".")
	if len(parts) != 4 {
		return 0, false
	}
	i, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, false
	}
	return i, true
}
