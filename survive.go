package evol

import (
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
)

var (
	// ErrNoSurvivorCriteria means Survive was called with neither a
	// fraction nor an absolute count.
	ErrNoSurvivorCriteria = errors.New("everyone survives: provide a fraction and/or n below the population size")
	// ErrNoSurvivors means the requested survivor count worked out to zero.
	ErrNoSurvivors = errors.New("no one survived")
	// ErrTooManySurvivors means more survivors were requested than exist.
	ErrTooManySurvivors = errors.New("requested more survivors than the population holds")
	// ErrNegativeFitness means luck-based survival met a negative weight.
	ErrNegativeFitness = errors.New("negative fitness cannot be used as a sampling weight")
)

// Survive shrinks the population to a target size. The target comes from
// fraction (rounded share of the current size), n (absolute count), or the
// stricter of the two when both are given; zero values mean "not given".
// Individuals are lazily evaluated first since selection needs fitness.
//
// With luck unset, the best individuals by fitness are kept (direction per
// Maximize), stably, so equal scores preserve their prior order. With luck
// set, survivors are drawn with replacement, each individual weighted by
// its raw fitness; negative fitness is rejected with ErrNegativeFitness,
// and an all-zero population is sampled uniformly.
//
// Contest populations drop every cached fitness afterwards.
func (p *Population) Survive(fraction float64, n int, luck bool) (*Population, error) {
	var resultingSize int
	switch {
	case fraction <= 0 && n <= 0:
		return nil, ErrNoSurvivorCriteria
	case fraction <= 0:
		resultingSize = n
	case n <= 0:
		resultingSize = int(math.Round(fraction * float64(len(p.Individuals))))
	default:
		resultingSize = int(math.Round(fraction * float64(len(p.Individuals))))
		if n < resultingSize {
			resultingSize = n
		}
	}

	p.Evaluate(true)

	if resultingSize == 0 {
		return nil, ErrNoSurvivors
	}
	if resultingSize > len(p.Individuals) {
		return nil, fmt.Errorf("%w: want %d of %d", ErrTooManySurvivors, resultingSize, len(p.Individuals))
	}

	if DEBUG {
		log.Printf("Survive: keeping %d of %d (luck=%v)", resultingSize, len(p.Individuals), luck)
	}

	if luck {
		survivors, err := p.sampleByFitness(resultingSize)
		if err != nil {
			return nil, err
		}
		p.Individuals = survivors
	} else {
		ranked := make([]*Individual, len(p.Individuals))
		copy(ranked, p.Individuals)
		sort.SliceStable(ranked, func(i, j int) bool {
			if p.Maximize {
				return *ranked[i].Fitness > *ranked[j].Fitness
			}
			return *ranked[i].Fitness < *ranked[j].Fitness
		})
		p.Individuals = ranked[:resultingSize]
	}

	p.invalidateOnChange()
	return p, nil
}

// sampleByFitness draws k individuals with replacement, with probability
// proportional to raw fitness. Every individual must already be evaluated.
func (p *Population) sampleByFitness(k int) ([]*Individual, error) {
	var total float64
	for _, ind := range p.Individuals {
		if *ind.Fitness < 0 {
			return nil, fmt.Errorf("%w: %f", ErrNegativeFitness, *ind.Fitness)
		}
		total += *ind.Fitness
	}

	survivors := make([]*Individual, 0, k)
	for len(survivors) < k {
		if total == 0 {
			survivors = append(survivors, p.Individuals[rng.Intn(len(p.Individuals))])
			continue
		}
		spin := rng.Float64() * total
		var cumulative float64
		for _, ind := range p.Individuals {
			cumulative += *ind.Fitness
			if spin < cumulative {
				survivors = append(survivors, ind)
				break
			}
		}
		if len(survivors) < k && cumulative <= spin {
			// Floating point drift left the spin past the last bucket.
			survivors = append(survivors, p.Individuals[len(p.Individuals)-1])
		}
	}
	return survivors, nil
}
