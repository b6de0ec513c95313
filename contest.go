package evol

import (
	"log"
)

const (
	DefaultMatchesPerRound     = 10
	DefaultIndividualsPerMatch = 2
)

// NewContestPopulation builds a population whose fitness is relative: each
// evaluation pass plays matchesPerRound rounds of randomized round-robin
// matches of individualsPerMatch competitors each, scored by eval. Because
// the scores only mean something against the membership that produced
// them, Map, Filter and Survive reset every cached fitness.
//
// Non-positive tournament parameters fall back to the defaults, and
// individualsPerMatch is never less than 2.
func NewContestPopulation(chromosomes []any, eval ContestEvalFunc, matchesPerRound, individualsPerMatch int, maximize bool) *Population {
	if matchesPerRound <= 0 {
		matchesPerRound = DefaultMatchesPerRound
	}
	if individualsPerMatch <= 0 {
		individualsPerMatch = DefaultIndividualsPerMatch
	}
	if individualsPerMatch < 2 {
		individualsPerMatch = 2
	}
	p := NewPopulation(chromosomes, nil, maximize)
	p.contest = &contestStrategy{
		eval:                eval,
		matchesPerRound:     matchesPerRound,
		individualsPerMatch: individualsPerMatch,
	}
	return p
}

// contestEvaluate runs the tournament. Each round zips individualsPerMatch
// cyclic rotations of the individual sequence: rotation 0 is the anchor
// (offset 0, so every individual fronts exactly one match per round), the
// rest start at uniform random offsets and may coincide. Position i of
// every rotation forms match i, eval returns positionally aligned scores,
// and each competitor accumulates its score. Final fitness is the sum over
// all participations.
func (p *Population) contestEvaluate(lazy bool) *Population {
	if lazy && p.allEvaluated() {
		return p
	}

	n := len(p.Individuals)
	if n == 0 {
		return p
	}

	for _, ind := range p.Individuals {
		f := 0.0
		ind.Fitness = &f
	}

	c := p.contest
	offsets := make([]int, c.individualsPerMatch)
	competitors := make([]*Individual, c.individualsPerMatch)
	chromosomes := make([]any, c.individualsPerMatch)

	for round := 0; round < c.matchesPerRound; round++ {
		offsets[0] = 0
		for j := 1; j < c.individualsPerMatch; j++ {
			offsets[j] = rng.Intn(n)
		}
		if DEBUG {
			log.Printf("Contest round %d/%d offsets %v", round+1, c.matchesPerRound, offsets)
		}
		for i := 0; i < n; i++ {
			for j, offset := range offsets {
				competitors[j] = p.Individuals[(i+offset)%n]
				chromosomes[j] = competitors[j].Chromosome
			}
			scores := c.eval(chromosomes...)
			for j := 0; j < len(scores) && j < len(competitors); j++ {
				*competitors[j].Fitness += scores[j]
			}
		}
	}
	return p
}

func (p *Population) allEvaluated() bool {
	for _, ind := range p.Individuals {
		if ind.Fitness == nil {
			return false
		}
	}
	return true
}
