package evol

import (
	test "testing"
)

func intChromosomes(values ...int) []any {
	chromosomes := make([]any, len(values))
	for i, v := range values {
		chromosomes[i] = v
	}
	return chromosomes
}

func identityEval(chromosome any) float64 {
	return float64(chromosome.(int))
}

func makeIntPopulation(values ...int) *Population {
	return NewPopulation(intChromosomes(values...), identityEval, true)
}

func TestNewPopulation(t *test.T) {
	pop := makeIntPopulation(1, 2, 3, 4)

	if pop.Len() != 4 {
		t.Errorf("Population size [%v] is not expected value [4]", pop.Len())
	}
	if pop.IntendedSize != 4 {
		t.Errorf("IntendedSize [%v] is not expected value [4]", pop.IntendedSize)
	}
	if pop.Generation != 0 {
		t.Errorf("Generation [%v] is not expected value [0]", pop.Generation)
	}
	for i, ind := range pop.Individuals {
		if ind.Fitness != nil {
			t.Errorf("Individual %d should start with nil fitness", i)
		}
	}
}

func TestGeneratePopulation(t *test.T) {
	next := 0
	init := func() any {
		next++
		return next
	}

	pop := GeneratePopulation(init, identityEval, 25)
	if pop.Len() != 25 {
		t.Errorf("Generated size [%v] is not expected value [25]", pop.Len())
	}

	pop = GeneratePopulation(init, identityEval, 0)
	if pop.Len() != DefaultGeneratedSize {
		t.Errorf("Generated size [%v] is not default [%v]", pop.Len(), DefaultGeneratedSize)
	}
}

func TestEvaluateLazyIdempotent(t *test.T) {
	calls := 0
	eval := func(chromosome any) float64 {
		calls++
		return float64(chromosome.(int))
	}
	pop := NewPopulation(intChromosomes(1, 2, 3), eval, true)

	pop.Evaluate(true)
	if calls != 3 {
		t.Fatalf("Expected 3 eval calls, got %d", calls)
	}

	before := make([]float64, pop.Len())
	for i, ind := range pop.Individuals {
		before[i] = *ind.Fitness
	}

	pop.Evaluate(true)
	if calls != 3 {
		t.Errorf("Second lazy evaluate re-scored individuals (%d calls)", calls)
	}
	for i, ind := range pop.Individuals {
		if *ind.Fitness != before[i] {
			t.Errorf("Fitness %d changed across lazy evaluations: %v != %v", i, *ind.Fitness, before[i])
		}
	}

	pop.Evaluate(false)
	if calls != 6 {
		t.Errorf("Eager evaluate should re-score everyone, got %d calls", calls)
	}
}

func TestMinMaxIndividual(t *test.T) {
	pop := makeIntPopulation(3, 1, 4, 1, 5)

	min := pop.MinIndividual()
	if min.Chromosome.(int) != 1 {
		t.Errorf("MinIndividual chromosome [%v] is not expected value [1]", min.Chromosome)
	}
	if min != pop.Individuals[1] {
		t.Errorf("MinIndividual should keep the earliest of tied individuals")
	}

	max := pop.MaxIndividual()
	if max.Chromosome.(int) != 5 {
		t.Errorf("MaxIndividual chromosome [%v] is not expected value [5]", max.Chromosome)
	}
}

func TestMapFilter(t *test.T) {
	pop := makeIntPopulation(1, 2, 3, 4, 5)

	pop.Map(func(ind *Individual) *Individual {
		return NewIndividual(ind.Chromosome.(int) * 10)
	})
	if pop.Individuals[0].Chromosome.(int) != 10 {
		t.Errorf("Map did not transform individuals: %v", pop.Individuals[0].Chromosome)
	}

	pop.Filter(func(ind *Individual) bool {
		return ind.Chromosome.(int) > 20
	})
	if pop.Len() != 3 {
		t.Errorf("Filtered size [%v] is not expected value [3]", pop.Len())
	}

	// Plain populations keep fitness across map/filter
	pop2 := makeIntPopulation(1, 2).Evaluate(false)
	pop2.Filter(func(ind *Individual) bool { return true })
	for i, ind := range pop2.Individuals {
		if ind.Fitness == nil {
			t.Errorf("Plain population filter reset fitness of individual %d", i)
		}
	}
}

func TestApplyUpdate(t *test.T) {
	pop := makeIntPopulation(1, 2, 3)

	reversed := pop.Apply(func(p *Population) *Population {
		for i, j := 0, len(p.Individuals)-1; i < j; i, j = i+1, j-1 {
			p.Individuals[i], p.Individuals[j] = p.Individuals[j], p.Individuals[i]
		}
		return p
	})
	if reversed.Individuals[0].Chromosome.(int) != 3 {
		t.Errorf("Apply result not threaded through: %v", reversed.Individuals[0].Chromosome)
	}

	seen := 0
	got := pop.Update(func(p *Population) { seen = p.Len() })
	if seen != 3 {
		t.Errorf("Update callback saw size [%v], expected [3]", seen)
	}
	if got != pop {
		t.Errorf("Update must return the same population")
	}
}

func TestPopulationMutate(t *test.T) {
	pop := makeIntPopulation(1, 2, 3)
	pop.Mutate(func(chromosome any) any { return chromosome.(int) + 1 })

	for i, ind := range pop.Individuals {
		if ind.Chromosome.(int) != i+2 {
			t.Errorf("Individual %d chromosome [%v] is not expected value [%v]", i, ind.Chromosome, i+2)
		}
	}
}

func TestSurviveExample(t *test.T) {
	pop := makeIntPopulation(1, 2, 3, 4)

	result, err := pop.Survive(0, 2, false)
	if err != nil {
		t.Fatalf("Survive failed: %v", err)
	}
	if result.Len() != 2 {
		t.Fatalf("Survivor count [%v] is not expected value [2]", result.Len())
	}
	if result.Individuals[0].Chromosome.(int) != 4 || result.Individuals[1].Chromosome.(int) != 3 {
		t.Errorf("Survivors [%v %v] are not the two best in rank order",
			result.Individuals[0].Chromosome, result.Individuals[1].Chromosome)
	}
}

func TestEvolvePurity(t *test.T) {
	pop := makeIntPopulation(1, 2, 3, 4).Evaluate(false)

	chromosomes := make([]int, pop.Len())
	fitness := make([]float64, pop.Len())
	for i, ind := range pop.Individuals {
		chromosomes[i] = ind.Chromosome.(int)
		fitness[i] = *ind.Fitness
	}

	evolution := Evolution{
		SurviveStep(0, 2, false),
		BreedStep(PickRandom(1), func(parents ...any) any {
			return parents[0].(int) + 100
		}, 0),
		MutateStep(func(chromosome any) any { return chromosome.(int) * -1 }),
	}

	result, err := pop.Evolve(evolution, 2)
	if err != nil {
		t.Fatalf("Evolve failed: %v", err)
	}
	if result == pop {
		t.Fatalf("Evolve must operate on a copy")
	}

	if pop.Len() != 4 {
		t.Errorf("Original population size changed to %d", pop.Len())
	}
	for i, ind := range pop.Individuals {
		if ind.Chromosome.(int) != chromosomes[i] {
			t.Errorf("Original chromosome %d changed: %v != %v", i, ind.Chromosome, chromosomes[i])
		}
		if ind.Fitness == nil || *ind.Fitness != fitness[i] {
			t.Errorf("Original fitness %d changed: %v != %v", i, ind.Fitness, fitness[i])
		}
	}
}

func TestEvolveRepeats(t *test.T) {
	pop := makeIntPopulation(1, 2, 3)

	applied := 0
	count := StepFunc(func(p *Population) (*Population, error) {
		applied++
		return p, nil
	})

	if _, err := pop.Evolve(Evolution{count, count}, 3); err != nil {
		t.Fatalf("Evolve failed: %v", err)
	}
	if applied != 6 {
		t.Errorf("Expected 6 step applications (2 steps x 3 batches), got %d", applied)
	}
}
