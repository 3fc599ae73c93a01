package scripthost

import "fmt"

// Limits bounds a single rule invocation. New fills it from DefaultLimits;
// a zero field is a cap of zero, not a fallback to the default.
type Limits struct {
	MaxOps      int
	MaxStringLen int
	MaxArrayLen  int
	MaxMapLen    int
}

// DefaultLimits matches the sandbox limits table: 100,000 operations per
// rule invocation, 1KiB strings, 1000-element arrays, 100-entry maps.
func DefaultLimits() Limits {
	return Limits{
		MaxOps:       100000,
		MaxStringLen: 1024,
		MaxArrayLen:  1000,
		MaxMapLen:    100,
	}
}

// Mutation is one proposed field write, collected during rule evaluation
// and applied (with clamping and whitelist checks) by the Phase Executor.
type Mutation struct {
	Path  string
	Value interface{}
}

// checkSetValue enforces the size caps at the set() intrinsic boundary.
func checkSetValue(limits Limits, v interface{}) error {
	switch val := v.(type) {
	case string:
		if len(val) > limits.MaxStringLen {
			return fmt.Errorf("string value exceeds %d bytes", limits.MaxStringLen)
		}
	case []interface{}:
		if len(val) > limits.MaxArrayLen {
			return fmt.Errorf("array value exceeds %d elements", limits.MaxArrayLen)
		}
	case map[string]interface{}:
		if len(val) > limits.MaxMapLen {
			return fmt.Errorf("map value exceeds %d entries", limits.MaxMapLen)
		}
	}
	return nil
}
