package evol

import (
	"math"
)

// PopulationMetrics holds aggregate fitness metrics over the evaluated
// part of a population.
type PopulationMetrics struct {
	Evaluated  int
	MinFitness float64
	MaxFitness float64
	AvgFitness float64
	StdFitness float64
}

// Metrics aggregates cached fitness scores. Individuals without a score
// are skipped; nil when nothing is evaluated yet.
func (p *Population) Metrics() *PopulationMetrics {
	m := &PopulationMetrics{
		MinFitness: math.Inf(1),
		MaxFitness: math.Inf(-1),
	}

	var sum float64
	for _, ind := range p.Individuals {
		if ind.Fitness == nil {
			continue
		}
		f := *ind.Fitness
		m.Evaluated++
		sum += f
		if f < m.MinFitness {
			m.MinFitness = f
		}
		if f > m.MaxFitness {
			m.MaxFitness = f
		}
	}
	if m.Evaluated == 0 {
		return nil
	}
	m.AvgFitness = sum / float64(m.Evaluated)

	var variance float64
	for _, ind := range p.Individuals {
		if ind.Fitness == nil {
			continue
		}
		d := *ind.Fitness - m.AvgFitness
		variance += d * d
	}
	m.StdFitness = math.Sqrt(variance / float64(m.Evaluated))
	return m
}
