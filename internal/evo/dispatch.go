package evo

import (
	"fmt"
	"math/rand"

	"panmixia/internal/model"
)

// Gate pairs a selector variant with the probability threshold that
// activates it.
type Gate[G any] struct {
	Threshold float64
	Selector  Selector[G]
}

// Dispatch is a static, probability-gated selector table: a drawn
// probability below a gate's threshold activates that gate's selector, and
// a draw clearing every threshold selects nothing. Gates are consulted in
// order, so earlier entries shadow later ones for overlapping ranges.
type Dispatch[G any] []Gate[G]

// NewDispatch validates the gate table eagerly: thresholds must lie in
// [0, 1] and every gate needs a selector.
func NewDispatch[G any](gates ...Gate[G]) (Dispatch[G], error) {
	for i, g := range gates {
		if g.Selector == nil {
			return nil, fmt.Errorf("gate %d: selector is required", i)
		}
		if g.Threshold < 0 || g.Threshold > 1 {
			return nil, fmt.Errorf("gate %d: threshold %v outside [0, 1]", i, g.Threshold)
		}
	}
	return Dispatch[G](gates), nil
}

// Choose resolves the drawn probability p against the gate table, returning
// the activated selector or false when no threshold is met.
func (d Dispatch[G]) Choose(p float64) (Selector[G], bool) {
	for _, g := range d {
		if p < g.Threshold {
			return g.Selector, true
		}
	}
	return nil, false
}

// GatedSelector draws one probability per selection and routes it through
// the gate table. When no gate activates, the fallback selector runs.
type GatedSelector[G any] struct {
	Gates    Dispatch[G]
	Fallback Selector[G]
}

func (GatedSelector[G]) Name() string {
	return "gated"
}

func (s GatedSelector[G]) Select(
	rng *rand.Rand,
	pop model.Population[G],
	count int,
	cmp Compare[G],
) (model.Population[G], error) {
	if err := checkSelectArgs(rng, pop, count, cmp); err != nil {
		return model.Population[G]{}, err
	}

	if selector, ok := s.Gates.Choose(rng.Float64()); ok {
		return selector.Select(rng, pop, count, cmp)
	}
	if s.Fallback == nil {
		return model.Population[G]{}, fmt.Errorf("no gate activated and no fallback selector is set")
	}
	return s.Fallback.Select(rng, pop, count, cmp)
}
