package evol

import (
	"log"
)

// Breed appends offspring until the population reaches its intended size.
// A positive populationSize overrides the intended size first. Parents are
// picked from a snapshot taken before any offspring exist, so individuals
// created during this call never breed within it. Offspring start with nil
// fitness.
func (p *Population) Breed(pick ParentPicker, combine CombineFunc, populationSize int) *Population {
	if populationSize > 0 {
		p.IntendedSize = populationSize
	}

	snapshot := make([]*Individual, len(p.Individuals))
	copy(snapshot, p.Individuals)

	if DEBUG && len(p.Individuals) < p.IntendedSize {
		log.Printf("Breed: filling from %d to %d", len(p.Individuals), p.IntendedSize)
	}

	for len(p.Individuals) < p.IntendedSize {
		parents := pick(snapshot)
		chromosomes := make([]any, len(parents))
		for i, parent := range parents {
			chromosomes[i] = parent.Chromosome
		}
		p.Individuals = append(p.Individuals, NewIndividual(combine(chromosomes...)))
	}
	return p
}
