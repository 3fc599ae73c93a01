package nativeweather

import "worldground/internal/tile"

// EvaluateTile runs the four-step chain for one tile and returns the
// resulting Weather layer plus the soil-moisture delta snowmelt
// contributed, both of which the Phase Executor writes back for native
// mode.
func EvaluateTile(t *tile.Tile, season tile.Season) (tile.Weather, float64) {
	return NewAccum(t).Evaluate(season)
}
