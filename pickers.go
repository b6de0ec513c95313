package evol

// Stock parent pickers. Operator parameters are bound up front so Breed
// only ever hands a picker the candidate set.

// PickRandom picks n parents uniformly at random, with replacement.
func PickRandom(n int) ParentPicker {
	return func(candidates []*Individual) []*Individual {
		picked := make([]*Individual, n)
		for i := range picked {
			picked[i] = candidates[rng.Intn(len(candidates))]
		}
		return picked
	}
}

// PickTournament picks n parents, each the winner of a tournament among
// tournamentSize random candidates. Unevaluated candidates never win
// against evaluated ones. Higher fitness wins when maximize is set.
func PickTournament(n, tournamentSize int, maximize bool) ParentPicker {
	if tournamentSize < 1 {
		tournamentSize = 1
	}
	return func(candidates []*Individual) []*Individual {
		picked := make([]*Individual, n)
		for i := range picked {
			best := candidates[rng.Intn(len(candidates))]
			for round := 1; round < tournamentSize; round++ {
				challenger := candidates[rng.Intn(len(candidates))]
				if fitterThan(challenger, best, maximize) {
					best = challenger
				}
			}
			picked[i] = best
		}
		return picked
	}
}

func fitterThan(a, b *Individual, maximize bool) bool {
	if a.Fitness == nil {
		return false
	}
	if b.Fitness == nil {
		return true
	}
	if maximize {
		return *a.Fitness > *b.Fitness
	}
	return *a.Fitness < *b.Fitness
}
