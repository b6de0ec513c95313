package evol

import (
	"testing"
)

// BenchmarkEvolve runs a full survive/breed/mutate generation over a mid
// sized population. Run with: go test -run=^$ -bench=BenchmarkEvolve
func BenchmarkEvolve(b *testing.B) {
	rng = newPooledRand(42)

	next := 0
	pop := GeneratePopulation(func() any {
		next++
		return next
	}, identityEval, 1000)

	evolution := Evolution{
		SurviveStep(0.5, 0, false),
		BreedStep(PickRandom(2), sumCombiner, 0),
		MutateStep(func(chromosome any) any { return chromosome.(int) + 1 }),
		EvaluateStep(false),
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := pop.Evolve(evolution, 1); err != nil {
			b.Fatalf("Evolve failed: %v", err)
		}
	}
}

// BenchmarkContestEvaluate measures one full tournament pass.
func BenchmarkContestEvaluate(b *testing.B) {
	rng = newPooledRand(42)

	chromosomes := make([]any, 200)
	for i := range chromosomes {
		chromosomes[i] = i
	}
	pop := NewContestPopulation(chromosomes, everyoneScores, 10, 2, true)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		pop.Evaluate(false)
	}
}
