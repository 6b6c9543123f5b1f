package config

import (
	"encoding/json"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// Int is an integer setting that also accepts numbers written with a fraction,
// such as 64.0. Fractions are truncated toward zero.
type Int int

func (i *Int) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a number", node.Line)
	}
	var f float64
	if err := node.Decode(&f); err != nil {
		return fmt.Errorf("line %d: %q is not a number", node.Line, node.Value)
	}
	v, err := truncate(f)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*i = v
	return nil
}

func (i *Int) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("expected a number, got %s", data)
	}
	v, err := truncate(f)
	if err != nil {
		return err
	}
	*i = v
	return nil
}

func truncate(f float64) (Int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("number %v out of range", f)
	}
	return Int(math.Trunc(f)), nil
}

func ints(vs ...int) []Int {
	out := make([]Int, len(vs))
	for i, v := range vs {
		out[i] = Int(v)
	}
	return out
}
