package main

import (
	"flag"
	"log"
	"math/rand"
	"os"

	evol "github.com/bahia14/Evol"

	"github.com/BurntSushi/toml"
	"github.com/xrash/smetrics"
)

/*
	Read config file (TOML)

	From unmarshaled config:
		Seed the RNG
		Generate a population of random candidate strings
		Evolve: evaluate -> survive -> breed -> mutate, checkpointing
		each generation to SQLite

	Fitness is the negated Wagner-Fischer edit distance to the target.
*/

type OptimizeConfig struct {
	Target           string                  `toml:"target"`
	Alphabet         string                  `toml:"alphabet"`
	PopulationSize   int                     `toml:"population_size"`
	Generations      int                     `toml:"generations"`
	SurvivalFraction float64                 `toml:"survival_fraction"`
	MutationRate     float64                 `toml:"mutation_rate"`
	TournamentSize   int                     `toml:"tournament_size"`
	Seed             int64                   `toml:"seed"`
	Persistence      *evol.PersistenceConfig `toml:"persistence"`
}

var configPath *string = flag.String("config", "./optimize.toml", "The optimization config to use. Defaults to './optimize.toml'")

func main() {
	flag.Parse()

	conffile, err := os.Open(*configPath)

	if err != nil {
		log.Fatalf("Unable to load optimize config: %v", err)
	}

	confDecoder := toml.NewDecoder(conffile)
	var config OptimizeConfig
	if _, err = confDecoder.Decode(&config); err != nil {
		log.Fatalf("Failed to unmarshal optimize config: %v", err)
	}
	conffile.Close()

	if len(config.Target) == 0 {
		log.Fatalf("A non-empty target string is required")
	}
	if len(config.Alphabet) == 0 {
		config.Alphabet = " abcdefghijklmnopqrstuvwxyz"
	}
	if config.SurvivalFraction <= 0 {
		config.SurvivalFraction = 0.3
	}
	if config.MutationRate <= 0 {
		config.MutationRate = 0.05
	}
	if config.TournamentSize <= 0 {
		config.TournamentSize = 3
	}
	if config.Generations <= 0 {
		config.Generations = 100
	}

	evol.InitRNG(config.Seed)
	rnd := rand.New(rand.NewSource(config.Seed + 1))

	var persist *evol.Persistence
	if config.Persistence != nil {
		if persist, err = evol.NewPersistence(config.Persistence); err != nil {
			log.Fatalf("Failed to create or initialize Persistence: %v", err)
		}
		defer persist.Shutdown()
	}

	target := config.Target
	alphabet := []rune(config.Alphabet)

	initFunc := func() any {
		candidate := make([]rune, len(target))
		for i := range candidate {
			candidate[i] = alphabet[rnd.Intn(len(alphabet))]
		}
		return string(candidate)
	}

	evalFunc := func(chromosome any) float64 {
		return -float64(smetrics.WagnerFischer(chromosome.(string), target, 1, 1, 2))
	}

	// One-point crossover over the parents' runes.
	combine := func(chromosomes ...any) any {
		mother := []rune(chromosomes[0].(string))
		father := []rune(chromosomes[1].(string))
		cut := rnd.Intn(len(mother) + 1)
		return string(mother[:cut]) + string(father[cut:])
	}

	mutate := func(chromosome any) any {
		candidate := []rune(chromosome.(string))
		for i := range candidate {
			if rnd.Float64() < config.MutationRate {
				candidate[i] = alphabet[rnd.Intn(len(alphabet))]
			}
		}
		return string(candidate)
	}

	pop := evol.GeneratePopulation(initFunc, evalFunc, config.PopulationSize)

	generation := 0
	checkpoint := func(p *evol.Population) {
		generation++
		if m := p.Metrics(); m != nil {
			log.Printf("generation %d: best=%.0f avg=%.2f evaluated=%d",
				generation, m.MaxFitness, m.AvgFitness, m.Evaluated)
		}
		if persist != nil {
			if _, err := persist.SaveSnapshot("optimize", p); err != nil {
				log.Fatalf("Failed to checkpoint generation %d: %v", generation, err)
			}
		}
	}

	// Mutation rewrites chromosomes without dropping cached scores, so the
	// evaluate step after it must be eager.
	evolution := evol.Evolution{
		evol.SurviveStep(config.SurvivalFraction, 0, false),
		evol.BreedStep(evol.PickTournament(2, config.TournamentSize, true), combine, config.PopulationSize),
		evol.MutateStep(mutate),
		evol.EvaluateStep(false),
		evol.UpdateStep(checkpoint),
	}

	result, err := pop.Evolve(evolution, config.Generations)
	if err != nil {
		log.Fatalf("Evolution failed: %v", err)
	}

	best := result.MaxIndividual()
	log.Printf("best after %d generations: %q (distance %.0f)",
		config.Generations, best.Chromosome.(string), -*best.Fitness)
}
