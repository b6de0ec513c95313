package main

import (
	"flag"
	"log"
	"math/rand"
	"os"

	evol "github.com/bahia14/Evol"

	"github.com/BurntSushi/toml"
)

/*
	Evolves mixed rock-paper-scissors strategies with relative fitness.

	A chromosome is a weight vector over the three moves. Each match pits
	strategies against each other and scores them by expected payoff, so
	fitness only means anything relative to the current population — the
	contest evaluation mode.
*/

type ContestConfig struct {
	PopulationSize      int     `toml:"population_size"`
	Generations         int     `toml:"generations"`
	MatchesPerRound     int     `toml:"matches_per_round"`
	IndividualsPerMatch int     `toml:"individuals_per_match"`
	SurvivalFraction    float64 `toml:"survival_fraction"`
	MutationSigma       float64 `toml:"mutation_sigma"`
	Seed                int64   `toml:"seed"`
}

var configPath *string = flag.String("config", "./contest.toml", "The contest config to use. Defaults to './contest.toml'")

// payoff[i][j] is move i's score against move j (rock, paper, scissors).
var payoff = [3][3]float64{
	{0, -1, 1},
	{1, 0, -1},
	{-1, 1, 0},
}

func expectedPayoff(a, b []float64) float64 {
	var score float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			score += a[i] * b[j] * payoff[i][j]
		}
	}
	return score
}

func normalize(weights []float64) []float64 {
	var total float64
	for _, w := range weights {
		total += w
	}
	if total == 0 {
		return []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}
	}
	normalized := make([]float64, len(weights))
	for i, w := range weights {
		normalized[i] = w / total
	}
	return normalized
}

func main() {
	flag.Parse()

	conffile, err := os.Open(*configPath)

	if err != nil {
		log.Fatalf("Unable to load contest config: %v", err)
	}

	confDecoder := toml.NewDecoder(conffile)
	var config ContestConfig
	if _, err = confDecoder.Decode(&config); err != nil {
		log.Fatalf("Failed to unmarshal contest config: %v", err)
	}
	conffile.Close()

	if config.PopulationSize <= 0 {
		config.PopulationSize = 50
	}
	if config.Generations <= 0 {
		config.Generations = 100
	}
	if config.SurvivalFraction <= 0 {
		config.SurvivalFraction = 0.5
	}
	if config.MutationSigma <= 0 {
		config.MutationSigma = 0.1
	}

	evol.InitRNG(config.Seed)
	rnd := rand.New(rand.NewSource(config.Seed + 1))

	chromosomes := make([]any, config.PopulationSize)
	for i := range chromosomes {
		chromosomes[i] = normalize([]float64{rnd.Float64(), rnd.Float64(), rnd.Float64()})
	}

	// Every competitor is scored by its summed expected payoff against the
	// rest of the match.
	evalFunc := func(competitors ...any) []float64 {
		scores := make([]float64, len(competitors))
		for i, raw := range competitors {
			a := raw.([]float64)
			for j, other := range competitors {
				if i == j {
					continue
				}
				scores[i] += expectedPayoff(a, other.([]float64))
			}
		}
		return scores
	}

	combine := func(chromosomes ...any) any {
		mother := chromosomes[0].([]float64)
		father := chromosomes[1].([]float64)
		child := make([]float64, 3)
		mix := rnd.Float64()
		for i := range child {
			child[i] = mix*mother[i] + (1-mix)*father[i]
		}
		return normalize(child)
	}

	mutate := func(chromosome any) any {
		weights := chromosome.([]float64)
		jittered := make([]float64, len(weights))
		for i, w := range weights {
			jittered[i] = w + rnd.NormFloat64()*config.MutationSigma
			if jittered[i] < 0 {
				jittered[i] = 0
			}
		}
		return normalize(jittered)
	}

	pop := evol.NewContestPopulation(chromosomes, evalFunc,
		config.MatchesPerRound, config.IndividualsPerMatch, true)

	generation := 0
	report := func(p *evol.Population) {
		generation++
		if m := p.Metrics(); m != nil {
			log.Printf("generation %d: best=%.2f avg=%.2f", generation, m.MaxFitness, m.AvgFitness)
		}
	}

	// Survive resets contest fitness, so evaluate, report while the
	// scores still exist, then select and refill.
	evolution := evol.Evolution{
		evol.EvaluateStep(true),
		evol.UpdateStep(report),
		evol.SurviveStep(config.SurvivalFraction, 0, false),
		evol.BreedStep(evol.PickRandom(2), combine, config.PopulationSize),
		evol.MutateStep(mutate),
	}

	result, err := pop.Evolve(evolution, config.Generations)
	if err != nil {
		log.Fatalf("Evolution failed: %v", err)
	}

	best := result.MaxIndividual()
	weights := best.Chromosome.([]float64)
	log.Printf("best strategy after %d generations: rock=%.3f paper=%.3f scissors=%.3f",
		config.Generations, weights[0], weights[1], weights[2])
}
