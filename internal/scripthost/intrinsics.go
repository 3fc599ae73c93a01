package scripthost

import (
	"fmt"
	"math"

	"github.com/Knetic/govaluate"
)

// buildFunctions returns the intrinsic table for one rule invocation. A
// fresh table is built per tile/rule so set/log/rand close over that
// invocation's own collector and PRNG rather than sharing state across
// tiles.
func buildFunctions(rng *xorshift64, limits Limits, mutations *[]Mutation, onLog func(string)) map[string]govaluate.ExpressionFunction {
	return map[string]govaluate.ExpressionFunction{
		"set": func(args ...interface{}) (interface{}, error) {
			if len(args) != 2 {
				return nil, fmt.Errorf("set: want 2 arguments, got %d", len(args))
			}
			path, ok := args[0].(string)
			if !ok {
				return nil, fmt.Errorf("set: path must be a string")
			}
			if err := checkSetValue(limits, args[1]); err != nil {
				return nil, fmt.Errorf("set(%s): %w", path, err)
			}
			*mutations = append(*mutations, Mutation{Path: path, Value: args[1]})
			return true, nil
		},
		"log": func(args ...interface{}) (interface{}, error) {
			if onLog != nil && len(args) == 1 {
				onLog(fmt.Sprintf("%v", args[0]))
			}
			return true, nil
		},
		"rand": func(args ...interface{}) (interface{}, error) {
			return rng.float64(), nil
		},
		"rand_range": func(args ...interface{}) (interface{}, error) {
			a, b, err := twoFloats("rand_range", args)
			if err != nil {
				return nil, err
			}
			return rng.rangeFloat(a, b), nil
		},
		"sin_deg": func(args ...interface{}) (interface{}, error) {
			v, err := oneFloat("sin_deg", args)
			if err != nil {
				return nil, err
			}
			return math.Sin(v * math.Pi / 180), nil
		},
		"cos_deg": func(args ...interface{}) (interface{}, error) {
			v, err := oneFloat("cos_deg", args)
			if err != nil {
				return nil, err
			}
			return math.Cos(v * math.Pi / 180), nil
		},
		"sqrt": func(args ...interface{}) (interface{}, error) {
			v, err := oneFloat("sqrt", args)
			if err != nil {
				return nil, err
			}
			return math.Sqrt(v), nil
		},
		"abs": func(args ...interface{}) (interface{}, error) {
			v, err := oneFloat("abs", args)
			if err != nil {
				return nil, err
			}
			return math.Abs(v), nil
		},
		"clamp": func(args ...interface{}) (interface{}, error) {
			if len(args) != 3 {
				return nil, fmt.Errorf("clamp: want 3 arguments, got %d", len(args))
			}
			v, lo, hi, err := threeFloats("clamp", args)
			if err != nil {
				return nil, err
			}
			if v < lo {
				return lo, nil
			}
			if v > hi {
				return hi, nil
			}
			return v, nil
		},
		"direction_to": func(args ...interface{}) (interface{}, error) {
			if len(args) != 2 {
				return nil, fmt.Errorf("direction_to: want 2 arguments, got %d", len(args))
			}
			from, ok1 := args[0].(map[string]interface{})
			to, ok2 := args[1].(map[string]interface{})
			if !ok1 || !ok2 {
				return nil, fmt.Errorf("direction_to: arguments must be tile references")
			}
			return bearingBetween(from, to), nil
		},
		"wind_align": func(args ...interface{}) (interface{}, error) {
			if len(args) != 3 {
				return nil, fmt.Errorf("wind_align: want 3 arguments, got %d", len(args))
			}
			from, ok1 := args[0].(map[string]interface{})
			to, ok2 := args[1].(map[string]interface{})
			windDir, err := toFloatArg(args[2])
			if !ok1 || !ok2 || err != nil {
				return nil, fmt.Errorf("wind_align: invalid arguments")
			}
			bearing := bearingBetween(from, to)
			return math.Cos((bearing - windDir) * math.Pi / 180), nil
		},
		"wind_align_unit": func(args ...interface{}) (interface{}, error) {
			if len(args) != 3 {
				return nil, fmt.Errorf("wind_align_unit: want 3 arguments, got %d", len(args))
			}
			from, ok1 := args[0].(map[string]interface{})
			to, ok2 := args[1].(map[string]interface{})
			windDir, err := toFloatArg(args[2])
			if !ok1 || !ok2 || err != nil {
				return nil, fmt.Errorf("wind_align_unit: invalid arguments")
			}
			bearing := bearingBetween(from, to)
			cos := math.Cos((bearing - windDir) * math.Pi / 180)
			if cos < 0 {
				return 0.0, nil
			}
			return cos, nil
		},
		"neighbor": func(args ...interface{}) (interface{}, error) {
			if len(args) != 2 {
				return nil, fmt.Errorf("neighbor: want 2 arguments, got %d", len(args))
			}
			neighbors, ok := args[0].([]interface{})
			if !ok {
				return nil, fmt.Errorf("neighbor: first argument must be the neighbor list")
			}
			idx, err := toFloatArg(args[1])
			if err != nil {
				return nil, err
			}
			i := int(idx)
			if i < 0 || i >= len(neighbors) {
				return nil, fmt.Errorf("neighbor: index %d out of range (have %d neighbors)", i, len(neighbors))
			}
			return neighbors[i], nil
		},
		"neighbor_avg": func(args ...interface{}) (interface{}, error) {
			return neighborAggregate(args, aggAvg)
		},
		"neighbor_sum": func(args ...interface{}) (interface{}, error) {
			return neighborAggregate(args, aggSum)
		},
		"neighbor_max": func(args ...interface{}) (interface{}, error) {
			return neighborAggregate(args, aggMax)
		},
	}
}

func oneFloat(name string, args []interface{}) (float64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%s: want 1 argument, got %d", name, len(args))
	}
	return toFloatArg(args[0])
}

func twoFloats(name string, args []interface{}) (float64, float64, error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("%s: want 2 arguments, got %d", name, len(args))
	}
	a, err := toFloatArg(args[0])
	if err != nil {
		return 0, 0, err
	}
	b, err := toFloatArg(args[1])
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func threeFloats(name string, args []interface{}) (float64, float64, float64, error) {
	a, b, err := twoFloats(name, args[:2])
	if err != nil {
		return 0, 0, 0, err
	}
	c, err := toFloatArg(args[2])
	if err != nil {
		return 0, 0, 0, err
	}
	return a, b, c, nil
}

func toFloatArg(v interface{}) (float64, error) {
	f, ok := toFloat(v)
	if !ok {
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
	return f, nil
}

type aggKind int

const (
	aggAvg aggKind = iota
	aggSum
	aggMax
)

func neighborAggregate(args []interface{}, kind aggKind) (interface{}, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("neighbor aggregate: want 2 arguments, got %d", len(args))
	}
	neighbors, ok := args[0].([]interface{})
	if !ok {
		return nil, fmt.Errorf("neighbor aggregate: first argument must be the neighbor list")
	}
	path, ok := args[1].(string)
	if !ok {
		return nil, fmt.Errorf("neighbor aggregate: second argument must be a field path string")
	}

	var sum, max float64
	count := 0
	first := true
	for _, n := range neighbors {
		env, ok := n.(map[string]interface{})
		if !ok {
			continue
		}
		v, _ := lookupPath(env, path) // missing values treated as zero
		sum += v
		if first || v > max {
			max = v
			first = false
		}
		count++
	}
	switch kind {
	case aggSum:
		return sum, nil
	case aggMax:
		return max, nil
	default:
		if count == 0 {
			return 0.0, nil
		}
		return sum / float64(count), nil
	}
}

// bearingBetween computes the tangent-plane bearing from "from" to "to"
// in from's local east/north basis: direction = normalize(project(B-A
// onto A's tangent plane)), expressed as a compass degree.
func bearingBetween(from, to map[string]interface{}) float64 {
	a := sphereOf(from)
	b := sphereOf(to)
	lat, lon := latLonOf(from)

	east, north := tangentBasis(lat, lon)
	d := [3]float64{b[0] - a[0], b[1] - a[1], b[2] - a[2]}

	eastComp := dot(d, east)
	northComp := dot(d, north)

	deg := math.Atan2(eastComp, northComp) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}

func sphereOf(env map[string]interface{}) [3]float64 {
	if s, ok := env["sphere"].([3]float64); ok {
		return s
	}
	lat, lon := latLonOf(env)
	latR := lat * math.Pi / 180
	lonR := lon * math.Pi / 180
	return [3]float64{
		math.Cos(latR) * math.Sin(lonR),
		math.Sin(latR),
		math.Cos(latR) * math.Cos(lonR),
	}
}

func latLonOf(env map[string]interface{}) (float64, float64) {
	lat, _ := toFloat(env["lat"])
	lon, _ := toFloat(env["lon"])
	return lat, lon
}

func tangentBasis(lat, lon float64) (east, north [3]float64) {
	latR := lat * math.Pi / 180
	lonR := lon * math.Pi / 180
	east = [3]float64{math.Cos(lonR), 0, -math.Sin(lonR)}
	north = [3]float64{
		-math.Sin(latR) * math.Sin(lonR),
		math.Cos(latR),
		-math.Sin(latR) * math.Cos(lonR),
	}
	return east, north
}

func dot(a, b [3]float64) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }
