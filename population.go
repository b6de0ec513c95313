package evol

import (
	"log"
)

// DefaultGeneratedSize is used by GeneratePopulation when no size is given.
const DefaultGeneratedSize = 100

// Population is an ordered collection of individuals plus the metadata
// needed to evaluate, select and breed them. Exactly one evaluation mode is
// active: absolute (eval) or contest (contest). All operations mutate the
// receiver in place and return it so pipelines can chain; Evolve is the one
// exception and works on a deep copy.
//
// A Population is not safe for concurrent use. Callers wanting parallel
// scoring parallelize inside their eval function.
type Population struct {
	Individuals  []*Individual
	IntendedSize int
	Maximize     bool
	Generation   int

	eval    EvalFunc
	contest *contestStrategy
}

type contestStrategy struct {
	eval                ContestEvalFunc
	matchesPerRound     int
	individualsPerMatch int
}

func NewPopulation(chromosomes []any, eval EvalFunc, maximize bool) *Population {
	individuals := make([]*Individual, len(chromosomes))
	for i, chromosome := range chromosomes {
		individuals[i] = NewIndividual(chromosome)
	}
	return &Population{
		Individuals:  individuals,
		IntendedSize: len(chromosomes),
		Maximize:     maximize,
		eval:         eval,
	}
}

// GeneratePopulation builds a population by calling init once per slot.
// A size of 0 or less falls back to DefaultGeneratedSize.
func GeneratePopulation(init func() any, eval EvalFunc, size int) *Population {
	if size <= 0 {
		size = DefaultGeneratedSize
	}
	chromosomes := make([]any, size)
	for i := range chromosomes {
		chromosomes[i] = init()
	}
	return NewPopulation(chromosomes, eval, true)
}

func (p *Population) Len() int {
	return len(p.Individuals)
}

// Evaluate scores individuals through the active evaluation mode. With lazy
// set, individuals holding a cached score are skipped (absolute mode), or
// the whole pass is skipped when every score is cached (contest mode).
func (p *Population) Evaluate(lazy bool) *Population {
	if p.contest != nil {
		return p.contestEvaluate(lazy)
	}
	for _, ind := range p.Individuals {
		ind.Evaluate(p.eval, lazy)
	}
	return p
}

// MinIndividual lazily evaluates and returns the individual with the lowest
// fitness. Ties keep the earliest in sequence order. Nil for an empty
// population.
func (p *Population) MinIndividual() *Individual {
	p.Evaluate(true)
	var min *Individual
	for _, ind := range p.Individuals {
		if min == nil || *ind.Fitness < *min.Fitness {
			min = ind
		}
	}
	return min
}

// MaxIndividual is MinIndividual's counterpart for the highest fitness.
func (p *Population) MaxIndividual() *Individual {
	p.Evaluate(true)
	var max *Individual
	for _, ind := range p.Individuals {
		if max == nil || *ind.Fitness > *max.Fitness {
			max = ind
		}
	}
	return max
}

// Mutate replaces every individual's chromosome with fn's output.
func (p *Population) Mutate(fn MutateFunc) *Population {
	for _, ind := range p.Individuals {
		ind.Mutate(fn)
	}
	return p
}

// Map replaces the individual sequence with fn applied to each entry.
// Contest populations drop every cached fitness afterwards.
func (p *Population) Map(fn MapFunc) *Population {
	mapped := make([]*Individual, len(p.Individuals))
	for i, ind := range p.Individuals {
		mapped[i] = fn(ind)
	}
	p.Individuals = mapped
	p.invalidateOnChange()
	return p
}

// Filter keeps only the individuals fn approves of. Contest populations
// drop every cached fitness afterwards.
func (p *Population) Filter(fn FilterFunc) *Population {
	kept := p.Individuals[:0]
	for _, ind := range p.Individuals {
		if fn(ind) {
			kept = append(kept, ind)
		}
	}
	p.Individuals = kept
	p.invalidateOnChange()
	return p
}

// Apply hands the whole population to fn and returns whatever fn returns.
// Escape hatch for transforms that are not naturally a map or filter.
func (p *Population) Apply(fn func(p *Population) *Population) *Population {
	return fn(p)
}

// Update calls fn for its side effects and returns the population.
func (p *Population) Update(fn func(p *Population)) *Population {
	fn(p)
	return p
}

// ResetFitness drops every cached fitness score.
func (p *Population) ResetFitness() {
	for _, ind := range p.Individuals {
		ind.Fitness = nil
	}
}

func (p *Population) invalidateOnChange() {
	if p.contest != nil {
		p.ResetFitness()
	}
}

// Clone deep-copies the population. The evaluation functions themselves are
// shared; everything else is independent of the receiver.
func (p *Population) Clone() *Population {
	clone := &Population{
		Individuals:  make([]*Individual, len(p.Individuals)),
		IntendedSize: p.IntendedSize,
		Maximize:     p.Maximize,
		Generation:   p.Generation,
		eval:         p.eval,
	}
	if p.contest != nil {
		c := *p.contest
		clone.contest = &c
	}
	for i, ind := range p.Individuals {
		clone.Individuals[i] = ind.Clone()
	}
	return clone
}

// Evolve deep-copies the population and threads the copy through every step
// of the evolution, n times over. The receiver is never touched, so a
// failed or partial run leaves the caller's population intact.
func (p *Population) Evolve(evolution Evolution, n int) (*Population, error) {
	result := p.Clone()
	for batch := 0; batch < n; batch++ {
		if DEBUG {
			log.Printf("Evolve batch %d/%d over %d individuals", batch+1, n, len(result.Individuals))
		}
		for _, step := range evolution {
			var err error
			if result, err = step.Apply(result); err != nil {
				return nil, err
			}
		}
	}
	return result, nil
}
