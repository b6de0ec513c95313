package evol

// Step is one stage of an evolution pipeline. Apply may mutate the
// population it is given and returns the population the next step should
// see. Steps are consumed through this contract alone.
type Step interface {
	Apply(p *Population) (*Population, error)
}

// StepFunc adapts a plain function to the Step interface.
type StepFunc func(p *Population) (*Population, error)

func (f StepFunc) Apply(p *Population) (*Population, error) {
	return f(p)
}

// Evolution is an ordered sequence of steps; Population.Evolve threads a
// working copy through all of them, in order.
type Evolution []Step

// EvaluateStep scores the population through its evaluation mode.
func EvaluateStep(lazy bool) Step {
	return StepFunc(func(p *Population) (*Population, error) {
		return p.Evaluate(lazy), nil
	})
}

// SurviveStep shrinks the population; see Population.Survive.
func SurviveStep(fraction float64, n int, luck bool) Step {
	return StepFunc(func(p *Population) (*Population, error) {
		return p.Survive(fraction, n, luck)
	})
}

// BreedStep refills the population; see Population.Breed.
func BreedStep(pick ParentPicker, combine CombineFunc, populationSize int) Step {
	return StepFunc(func(p *Population) (*Population, error) {
		return p.Breed(pick, combine, populationSize), nil
	})
}

// MutateStep rewrites every chromosome; see Population.Mutate.
func MutateStep(fn MutateFunc) Step {
	return StepFunc(func(p *Population) (*Population, error) {
		return p.Mutate(fn), nil
	})
}

// UpdateStep runs fn for its side effects (logging, checkpointing) and
// passes the population along unchanged.
func UpdateStep(fn func(p *Population)) Step {
	return StepFunc(func(p *Population) (*Population, error) {
		return p.Update(fn), nil
	})
}
