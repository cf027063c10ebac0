package protocols

import "github.com/vybium/vybium-starks-vm/internal/core"

// AggregateAirgroupValues folds every air's airgroup-values within an
// airgroup into one vector once every air of that airgroup has been proven
// (supplemented from the zisk original's global_constraints.hpp; the final
// SNARK-wrap-up aggregation itself stays out of scope). Sum-typed entries
// are added across airs; product-typed entries are multiplied.
type AirgroupValueMode int

const (
	AirgroupSum AirgroupValueMode = iota
	AirgroupProduct
)

// AggregateAirgroupValues combines perAir[i][j] (the j-th airgroup-value of
// the i-th air proven in this airgroup) according to modes[j].
func AggregateAirgroupValues(perAir [][]core.ExtElement, modes []AirgroupValueMode) ([]core.ExtElement, error) {
	if len(perAir) == 0 {
		return nil, newErr(ErrShape, "aggregate_airgroup_values over zero airs")
	}
	width := len(modes)
	for i, air := range perAir {
		if len(air) != width {
			return nil, newErr(ErrShape, "air %d has %d airgroup-values, want %d", i, len(air), width)
		}
	}

	out := make([]core.ExtElement, width)
	for j, mode := range modes {
		acc := core.ExtOne
		if mode == AirgroupSum {
			acc = core.ExtZero
		}
		for _, air := range perAir {
			if mode == AirgroupSum {
				acc = acc.Add(air[j])
			} else {
				acc = acc.Mul(air[j])
			}
		}
		out[j] = acc
	}
	return out, nil
}
