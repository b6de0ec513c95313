package evol

import (
	test "testing"
)

func TestNewIndividual(t *test.T) {
	ind := NewIndividual(42)

	if ind.Chromosome.(int) != 42 {
		t.Errorf("Chromosome [%v] is not expected value [42]", ind.Chromosome)
	}
	if ind.Fitness != nil {
		t.Errorf("New individual should have nil fitness, got [%v]", *ind.Fitness)
	}
	if ind.Age != 0 {
		t.Errorf("New individual should have age 0, got [%v]", ind.Age)
	}
}

func TestIndividualEvaluate(t *test.T) {
	calls := 0
	eval := func(chromosome any) float64 {
		calls++
		return float64(chromosome.(int)) * 2
	}

	ind := NewIndividual(3)
	ind.Evaluate(eval, true)

	if calls != 1 {
		t.Fatalf("Expected 1 eval call, got %d", calls)
	}
	if *ind.Fitness != 6 {
		t.Errorf("Fitness [%v] is not expected value [6]", *ind.Fitness)
	}

	// Lazy: cached score is kept
	ind.Evaluate(eval, true)
	if calls != 1 {
		t.Errorf("Lazy evaluate re-invoked eval function (%d calls)", calls)
	}

	// Eager: always re-scored
	ind.Evaluate(eval, false)
	if calls != 2 {
		t.Errorf("Eager evaluate did not re-invoke eval function (%d calls)", calls)
	}
}

func TestIndividualMutateKeepsFitness(t *test.T) {
	ind := NewIndividual(3)
	f := 6.0
	ind.Fitness = &f

	ind.Mutate(func(chromosome any) any { return chromosome.(int) + 1 })

	if ind.Chromosome.(int) != 4 {
		t.Errorf("Chromosome [%v] is not expected value [4]", ind.Chromosome)
	}
	if ind.Fitness == nil || *ind.Fitness != 6 {
		t.Errorf("Mutate must leave the cached fitness alone, got [%v]", ind.Fitness)
	}
}

func TestIndividualClone(t *test.T) {
	ind := NewIndividual("abc")
	f := 1.5
	ind.Fitness = &f
	ind.Age = 3

	clone := ind.Clone()

	if clone.Chromosome.(string) != "abc" {
		t.Errorf("Clone chromosome [%v] does not match original", clone.Chromosome)
	}
	if clone.Age != 3 {
		t.Errorf("Clone age [%v] does not match original", clone.Age)
	}
	if clone.Fitness == nil || *clone.Fitness != 1.5 {
		t.Fatalf("Clone fitness does not match original: %v", clone.Fitness)
	}
	if clone.Fitness == ind.Fitness {
		t.Errorf("Clone shares the original's fitness pointer")
	}

	*clone.Fitness = 99
	if *ind.Fitness != 1.5 {
		t.Errorf("Mutating the clone's fitness changed the original")
	}
}
