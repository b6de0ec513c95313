package evol

import (
	cp "github.com/jinzhu/copier"
)

// EvalFunc scores a single chromosome on its own. Used by populations in
// absolute evaluation mode.
type EvalFunc func(chromosome any) float64

// ContestEvalFunc scores a group of chromosomes against each other and
// returns one score per competitor, positionally aligned. Used by
// populations in contest evaluation mode.
type ContestEvalFunc func(chromosomes ...any) []float64

// MutateFunc produces a replacement chromosome from an existing one.
type MutateFunc func(chromosome any) any

// MapFunc transforms one individual into another.
type MapFunc func(ind *Individual) *Individual

// FilterFunc reports whether an individual should be kept.
type FilterFunc func(ind *Individual) bool

// CombineFunc recombines one or more parent chromosomes into an offspring
// chromosome. Operator parameters (crossover points, blend ratios, ...) are
// captured by the closure itself.
type CombineFunc func(chromosomes ...any) any

// ParentPicker selects one or more parents from the candidates handed to
// it. Breed never lets a picker see offspring created during the same call.
type ParentPicker func(candidates []*Individual) []*Individual

// Individual pairs an opaque chromosome with a cached fitness score.
// A nil Fitness means "not evaluated yet, or invalidated".
type Individual struct {
	Chromosome any
	Fitness    *float64
	Age        uint
}

func NewIndividual(chromosome any) *Individual {
	return &Individual{Chromosome: chromosome}
}

// Evaluate scores the individual with eval and caches the result. With
// lazy set, an already cached score is kept as is.
func (ind *Individual) Evaluate(eval EvalFunc, lazy bool) {
	if lazy && ind.Fitness != nil {
		return
	}
	f := eval(ind.Chromosome)
	ind.Fitness = &f
}

// Mutate replaces the chromosome with fn's output. The cached fitness is
// left alone; invalidation is the caller's concern in absolute mode, and
// contest populations reset it on structural change anyway.
func (ind *Individual) Mutate(fn MutateFunc) {
	ind.Chromosome = fn(ind.Chromosome)
}

func (ind *Individual) Clone() *Individual {
	clone := &Individual{}
	cp.CopyWithOption(clone, ind, cp.Option{DeepCopy: true})
	return clone
}
