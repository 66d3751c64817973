package genetic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/ini.v1"
)

// ErrInvalidConfig wraps every configuration validation failure.
var ErrInvalidConfig = errors.New("config error")

// Representation names.
const (
	RepresentationPermutation = "permutation"
	RepresentationBoard       = "board"
)

// Crossover names.
const (
	CrossoverPMXUniform = "pmx-uniform"
	CrossoverPMXSegment = "pmx-segment"
	CrossoverVote       = "vote"
)

// Evaluator names.
const (
	EvaluatorIncremental = "incremental"
	EvaluatorNaive       = "naive"
)

// Store backend names.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Config stores the configuration parameters of an optimization run.
type Config struct {
	Engine EngineConfig
	Queens QueensConfig
	Run    RunConfig
}

// EngineConfig holds parameters of the evolutionary loop itself.
type EngineConfig struct {
	PopSize             int     `ini:"population"` // capacity kept by elitism
	MaxIterations       int     `ini:"max_iterations"`
	ParentsPerFamily    int     `ini:"parents_per_family"`
	ChildrenPerCycle    int     `ini:"children_per_cycle"` // partition rounds per generation
	MutationProbability float64 `ini:"mutation_probability"`
	KillParents         bool    `ini:"kill_parents"`
	Seed                uint64  `ini:"seed"`           // 0 reseeds from OS entropy
	LogInterval         int     `ini:"log_interval"`   // 0 disables progress logs
	MaxStagnation       int     `ini:"max_stagnation"` // 0 disables the stagnation stop
}

// QueensConfig selects the board size and the operator family.
type QueensConfig struct {
	BoardSize      int    `ini:"board_size"`
	Representation string `ini:"representation"`
	Crossover      string `ini:"crossover"`
	Evaluator      string `ini:"evaluator"`
}

// RunConfig controls repetitions and what is persisted about them.
type RunConfig struct {
	Repetitions        int    `ini:"repetitions"`
	Store              string `ini:"store"`
	DBPath             string `ini:"db_path"`
	Checkpoint         string `ini:"checkpoint"`
	// CheckpointInterval saves every that many generations; 0 saves only on
	// cancellation and at the end of a run.
	CheckpointInterval int    `ini:"checkpoint_interval"`
	PlotDir            string `ini:"plot_dir"` // empty disables fitness charts
}

// DefaultConfig returns the preset tuned for a 100x100 board.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			PopSize:             5,
			MaxIterations:       5000,
			ParentsPerFamily:    2,
			ChildrenPerCycle:    320,
			MutationProbability: 1.0,
			KillParents:         true,
			LogInterval:         500,
		},
		Queens: QueensConfig{
			BoardSize:      100,
			Representation: RepresentationPermutation,
			Crossover:      CrossoverPMXSegment,
			Evaluator:      EvaluatorIncremental,
		},
		Run: RunConfig{
			Repetitions: 1,
			Store:       StoreMemory,
			DBPath:      "runs.db",
		},
	}
}

// LoadConfig loads configuration parameters from an INI file.
// Keys missing from the file keep their DefaultConfig values.
func LoadConfig(filePath string) (*Config, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:         true,
		UnescapeValueCommentSymbols: true,
	}, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file '%s': %w", filePath, err)
	}

	config := DefaultConfig()

	if err := cfg.Section("Engine").MapTo(&config.Engine); err != nil {
		return nil, fmt.Errorf("failed to map [Engine] section: %w", err)
	}
	if err := cfg.Section("Queens").MapTo(&config.Queens); err != nil {
		return nil, fmt.Errorf("failed to map [Queens] section: %w", err)
	}
	if err := cfg.Section("Run").MapTo(&config.Run); err != nil {
		return nil, fmt.Errorf("failed to map [Run] section: %w", err)
	}

	config.Queens.Representation = strings.ToLower(cleanIniString(config.Queens.Representation))
	config.Queens.Crossover = strings.ToLower(cleanIniString(config.Queens.Crossover))
	config.Queens.Evaluator = strings.ToLower(cleanIniString(config.Queens.Evaluator))
	config.Run.Store = strings.ToLower(cleanIniString(config.Run.Store))
	config.Run.DBPath = cleanIniString(config.Run.DBPath)
	config.Run.Checkpoint = cleanIniString(config.Run.Checkpoint)
	config.Run.PlotDir = cleanIniString(config.Run.PlotDir)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// EnvOverrides holds the settings that may also come from QUEENS_*
// environment variables. Zero values leave the configuration untouched.
type EnvOverrides struct {
	Seed        uint64 `env:"SEED"`
	Repetitions int    `env:"RUNS"`
	Store       string `env:"STORE"`
	DBPath      string `env:"DB_PATH"`
	Checkpoint  string `env:"CHECKPOINT"`
	PlotDir     string `env:"PLOT_DIR"`
}

// ApplyEnv overlays QUEENS_* environment variables onto c and validates the result.
func (c *Config) ApplyEnv() error {
	var o EnvOverrides
	if err := env.ParseWithOptions(&o, env.Options{Prefix: "QUEENS_"}); err != nil {
		return fmt.Errorf("%w: environment: %v", ErrInvalidConfig, err)
	}

	if o.Seed != 0 {
		c.Engine.Seed = o.Seed
	}
	if o.Repetitions != 0 {
		c.Run.Repetitions = o.Repetitions
	}
	if o.Store != "" {
		c.Run.Store = strings.ToLower(strings.TrimSpace(o.Store))
	}
	if o.DBPath != "" {
		c.Run.DBPath = o.DBPath
	}
	if o.Checkpoint != "" {
		c.Run.Checkpoint = o.Checkpoint
	}
	if o.PlotDir != "" {
		c.Run.PlotDir = o.PlotDir
	}
	return c.Validate()
}

// Validate checks the configuration for values the engine cannot run with.
func (c *Config) Validate() error {
	e, q, r := c.Engine, c.Queens, c.Run

	if q.BoardSize < 2 {
		return fmt.Errorf("%w: board_size must be at least 2", ErrInvalidConfig)
	}
	if e.ParentsPerFamily < 2 {
		return fmt.Errorf("%w: parents_per_family must be at least 2", ErrInvalidConfig)
	}
	if e.PopSize < e.ParentsPerFamily {
		return fmt.Errorf("%w: population (%d) must be at least parents_per_family (%d)", ErrInvalidConfig, e.PopSize, e.ParentsPerFamily)
	}
	if e.MaxIterations <= 0 {
		return fmt.Errorf("%w: max_iterations must be positive", ErrInvalidConfig)
	}
	if e.ChildrenPerCycle <= 0 {
		return fmt.Errorf("%w: children_per_cycle must be positive", ErrInvalidConfig)
	}
	if e.MutationProbability < 0 || e.MutationProbability > 1 {
		return fmt.Errorf("%w: mutation_probability must be between 0 and 1", ErrInvalidConfig)
	}
	if e.LogInterval < 0 {
		return fmt.Errorf("%w: log_interval cannot be negative", ErrInvalidConfig)
	}
	if e.MaxStagnation < 0 {
		return fmt.Errorf("%w: max_stagnation cannot be negative", ErrInvalidConfig)
	}

	switch q.Representation {
	case RepresentationPermutation:
		if q.Crossover != CrossoverPMXUniform && q.Crossover != CrossoverPMXSegment {
			return fmt.Errorf("%w: crossover '%s' is not valid for the permutation representation", ErrInvalidConfig, q.Crossover)
		}
		if e.ParentsPerFamily != 2 {
			return fmt.Errorf("%w: PMX crossover requires parents_per_family = 2, got %d", ErrInvalidConfig, e.ParentsPerFamily)
		}
		if q.Evaluator != EvaluatorIncremental && q.Evaluator != EvaluatorNaive {
			return fmt.Errorf("%w: invalid evaluator '%s'", ErrInvalidConfig, q.Evaluator)
		}
	case RepresentationBoard:
		if q.Crossover != CrossoverVote {
			return fmt.Errorf("%w: crossover '%s' is not valid for the board representation", ErrInvalidConfig, q.Crossover)
		}
		if q.Evaluator != EvaluatorNaive {
			return fmt.Errorf("%w: the board representation only supports the naive evaluator", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: invalid representation '%s', must be one of 'permutation', 'board'", ErrInvalidConfig, q.Representation)
	}

	if e.KillParents {
		if err := checkSurvival(e); err != nil {
			return err
		}
	}

	if r.CheckpointInterval < 0 {
		return fmt.Errorf("%w: checkpoint_interval cannot be negative", ErrInvalidConfig)
	}
	if r.Repetitions <= 0 {
		return fmt.Errorf("%w: repetitions must be positive", ErrInvalidConfig)
	}
	switch r.Store {
	case StoreMemory:
	case StoreSQLite:
		if r.DBPath == "" {
			return fmt.Errorf("%w: db_path is required for the sqlite store", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: invalid store '%s', must be one of 'memory', 'sqlite'", ErrInvalidConfig, r.Store)
	}

	return nil
}

// checkSurvival follows the population size from generation to generation when
// parents are discarded and fails if it ever drops below one family. Each
// partition round breeds one child per family of two or more members.
func checkSurvival(e EngineConfig) error {
	size := e.PopSize
	for {
		parents := min(size, e.PopSize)
		families := parents / e.ParentsPerFamily
		if parents%e.ParentsPerFamily > 1 {
			families++
		}
		next := e.ChildrenPerCycle * families
		if next < e.ParentsPerFamily {
			return fmt.Errorf("%w: population dies out (size %d after %d), raise children_per_cycle or population", ErrInvalidConfig, next, size)
		}
		if next >= size || next >= e.PopSize {
			return nil
		}
		size = next
	}
}

// cleanIniString removes inline comments and trims whitespace from a string read from INI.
func cleanIniString(s string) string {
	if idx := strings.IndexAny(s, "#;"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
