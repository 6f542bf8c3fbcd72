// Package valuation maps health scores to derived token values.
package valuation

// TreeBaseValue is the fixed base used when valuing a tree. A minted token
// starts at its own base value and thereafter tracks the tree's derived
// value rather than being valued independently.
const TreeBaseValue = 100.0

// Derive computes the derived value for a health score against a base value:
//
//	derived = base * (score / 100)
//
// Scores outside [0, 100] extrapolate linearly rather than clamping, so
// historical ledger entries never need retroactive correction if the domain
// of "health score" widens.
func Derive(healthScore, baseValue float64) float64 {
	return baseValue * (healthScore / 100.0)
}
