package orientation

import (
	"fmt"
	"strings"
)

// Permutation remaps the vector part of a quaternion from the sensor
// frame into the render-world frame. Each render axis is one sensor axis
// with an optional sign flip. The w component is never touched.
type Permutation struct {
	index [3]int     // which sensor component feeds each render axis
	sign  [3]float64 // +1 or -1 per render axis
}

// IdentityPermutation maps the sensor frame straight through.
func IdentityPermutation() Permutation {
	return Permutation{index: [3]int{0, 1, 2}, sign: [3]float64{1, 1, 1}}
}

// ParsePermutation parses a spec like "x,-z,y": three comma-separated
// axis names, each optionally prefixed with '-', naming the sensor axis
// that feeds the render x, y and z axes respectively.
func ParsePermutation(spec string) (Permutation, error) {
	parts := strings.Split(spec, ",")
	if len(parts) != 3 {
		return Permutation{}, fmt.Errorf("axis permutation %q: want 3 components, got %d", spec, len(parts))
	}

	var p Permutation
	seen := [3]bool{}
	for i, part := range parts {
		part = strings.TrimSpace(part)
		sign := 1.0
		if strings.HasPrefix(part, "-") {
			sign = -1.0
			part = part[1:]
		}
		var idx int
		switch strings.ToLower(part) {
		case "x":
			idx = 0
		case "y":
			idx = 1
		case "z":
			idx = 2
		default:
			return Permutation{}, fmt.Errorf("axis permutation %q: unknown axis %q", spec, part)
		}
		if seen[idx] {
			return Permutation{}, fmt.Errorf("axis permutation %q: axis %q used twice", spec, part)
		}
		seen[idx] = true
		p.index[i] = idx
		p.sign[i] = sign
	}
	return p, nil
}

// Apply remaps q's vector part through the permutation.
func (p Permutation) Apply(q Quaternion) Quaternion {
	v := [3]float64{q.X, q.Y, q.Z}
	return Quaternion{
		W: q.W,
		X: p.sign[0] * v[p.index[0]],
		Y: p.sign[1] * v[p.index[1]],
		Z: p.sign[2] * v[p.index[2]],
	}
}

// String renders the permutation back in the spec format accepted by
// ParsePermutation.
func (p Permutation) String() string {
	names := [3]string{"x", "y", "z"}
	out := make([]string, 3)
	for i := 0; i < 3; i++ {
		s := ""
		if p.sign[i] < 0 {
			s = "-"
		}
		out[i] = s + names[p.index[i]]
	}
	return strings.Join(out, ",")
}
