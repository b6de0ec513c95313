package evol

import (
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite"
	gorm "gorm.io/gorm"
)

type PersistenceConfig struct {
	Name          string   `toml:"name"`
	Path          string   `toml:"path"`
	SQLitePragmas []string `toml:"sqlite_pragmas"`
	SQLiteOptions []string `toml:"sqlite_options"`
}

// Persistence snapshots populations to SQLite so long optimization runs
// can be inspected and resumed. The core types never touch it; cmd tools
// wire it in through Update steps.
type Persistence struct {
	Config *PersistenceConfig
	DB     *gorm.DB
}

// PopulationSnapshot is one recorded population state.
type PopulationSnapshot struct {
	ID           uint
	Label        string
	Generation   int
	Size         int
	IntendedSize int
	Maximize     bool
	BestFitness  *float64
	Individuals  []*IndividualSnapshot
	CreatedAt    time.Time
}

// IndividualSnapshot stores one individual with its chromosome JSON-encoded.
type IndividualSnapshot struct {
	ID                   uint
	PopulationSnapshotID uint
	Chromosome           string
	Fitness              *float64
	Age                  uint
}

func NewPersistence(config *PersistenceConfig) (*Persistence, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	if len(config.Path) == 0 {
		return nil, fmt.Errorf("Path to database must be defined")
	}

	if len(config.Name) == 0 {
		return nil, fmt.Errorf("Name of database must be defined")
	}

	var params []string
	for _, prag := range config.SQLitePragmas {
		params = append(params, fmt.Sprintf("_pragma=%s", prag))
	}
	params = append(params, config.SQLiteOptions...)

	var path strings.Builder
	path.WriteString(filepath.Join(config.Path, config.Name))
	if len(params) > 0 {
		path.WriteRune('?')
		path.WriteString(strings.Join(params, "&"))
	}

	db, err := gorm.Open(sqlite.Open(path.String()), &gorm.Config{})

	if err != nil {
		return nil, err
	}

	db = db.Session(&gorm.Session{PrepareStmt: true, CreateBatchSize: 1000})

	p := &Persistence{Config: config, DB: db}
	if err = p.initialize(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Persistence) initialize() error {
	return p.DB.AutoMigrate(
		&PopulationSnapshot{},
		&IndividualSnapshot{},
	)
}

func (p *Persistence) Shutdown() {
	if sqldb, err := p.DB.DB(); err != nil {
		log.Fatalf("Failed to retrieve raw DB: %v", err)
	} else {
		sqldb.Close()
	}
}

// SaveSnapshot records the population's current state under label and
// returns the snapshot id. Chromosomes must be JSON-encodable.
func (p *Persistence) SaveSnapshot(label string, pop *Population) (uint, error) {
	if pop == nil {
		return 0, fmt.Errorf("Population cannot be nil")
	}

	snap := &PopulationSnapshot{
		Label:        label,
		Generation:   pop.Generation,
		Size:         len(pop.Individuals),
		IntendedSize: pop.IntendedSize,
		Maximize:     pop.Maximize,
	}
	if best := bestOf(pop); best != nil && best.Fitness != nil {
		f := *best.Fitness
		snap.BestFitness = &f
	}

	for _, ind := range pop.Individuals {
		encoded, err := json.Marshal(ind.Chromosome)
		if err != nil {
			return 0, fmt.Errorf("Failed to encode chromosome: %w", err)
		}
		rec := &IndividualSnapshot{Chromosome: string(encoded), Age: ind.Age}
		if ind.Fitness != nil {
			f := *ind.Fitness
			rec.Fitness = &f
		}
		snap.Individuals = append(snap.Individuals, rec)
	}

	if result := p.DB.Create(snap); result.Error != nil {
		return 0, fmt.Errorf("Failed to call gorm.Create(): %w", result.Error)
	}

	return snap.ID, nil
}

// LoadSnapshot fetches a snapshot with its individuals.
func (p *Persistence) LoadSnapshot(id uint) (*PopulationSnapshot, error) {
	var snap PopulationSnapshot
	if result := p.DB.Preload("Individuals").First(&snap, id); result.Error != nil {
		return nil, fmt.Errorf("Failed to load snapshot %d: %w", id, result.Error)
	}
	return &snap, nil
}

// LoadChromosomes decodes the chromosomes of a snapshot, ready to seed a
// new population. JSON typing applies: numbers come back as float64.
func (p *Persistence) LoadChromosomes(id uint) ([]any, error) {
	snap, err := p.LoadSnapshot(id)
	if err != nil {
		return nil, err
	}
	chromosomes := make([]any, len(snap.Individuals))
	for i, rec := range snap.Individuals {
		var chromosome any
		if err := json.Unmarshal([]byte(rec.Chromosome), &chromosome); err != nil {
			return nil, fmt.Errorf("Failed to decode chromosome %d: %w", rec.ID, err)
		}
		chromosomes[i] = chromosome
	}
	return chromosomes, nil
}

// bestOf picks the extremal individual by cached fitness only; unlike
// MinIndividual/MaxIndividual it never triggers an evaluation.
func bestOf(pop *Population) *Individual {
	var best *Individual
	for _, ind := range pop.Individuals {
		if ind.Fitness == nil {
			continue
		}
		if best == nil || fitterThan(ind, best, pop.Maximize) {
			best = ind
		}
	}
	return best
}
