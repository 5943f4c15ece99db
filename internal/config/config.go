package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure
type Config struct {
	Seed    int64         `yaml:"seed"`
	NN      NNConfig      `yaml:"nn"`
	GA      GAConfig      `yaml:"ga"`
	Eval    EvalConfig    `yaml:"eval"`
	Logging LogConfig     `yaml:"logging"`
	Storage StorageConfig `yaml:"storage"`
}

// NNConfig defines the hidden layers. Input and output sizes come from the task.
type NNConfig struct {
	Hidden []int `yaml:"hidden"`
}

// GAConfig defines genetic algorithm parameters
type GAConfig struct {
	Population     int     `yaml:"population"`
	Selection      string  `yaml:"selection"` // roulette|tournament
	TournamentK    int     `yaml:"tournament_k"`
	Crossover      string  `yaml:"crossover"` // uniform|single_point
	MutationChance float64 `yaml:"mutation_chance"`
	MutationCoeff  float32 `yaml:"mutation_coeff"`
}

// EvalConfig defines evaluation parameters
type EvalConfig struct {
	Task    string `yaml:"task"`
	Workers int    `yaml:"workers"`
}

// LogConfig defines logging parameters
type LogConfig struct {
	Level             string `yaml:"level"`
	EveryGenSummary   bool   `yaml:"every_gen_summary"`
	TopNDebug         int    `yaml:"topn_debug"`
	SaveChampionEvery int    `yaml:"save_champion_every"`
	CSVPath           string `yaml:"csv_path"`
	JSONPath          string `yaml:"json_path"`
	ArtifactsDir      string `yaml:"artifacts_dir"`
}

// StorageConfig selects where generation checkpoints go
type StorageConfig struct {
	Kind            string `yaml:"kind"` // memory|sqlite
	Path            string `yaml:"path"`
	CheckpointEvery int    `yaml:"checkpoint_every"`
}

// Default returns the configuration used for any key a file leaves out.
func Default() *Config {
	return &Config{
		Seed: 1337,
		NN: NNConfig{
			Hidden: []int{4},
		},
		GA: GAConfig{
			Population:     100,
			Selection:      "roulette",
			TournamentK:    3,
			Crossover:      "uniform",
			MutationChance: 0.01,
			MutationCoeff:  0.3,
		},
		Eval: EvalConfig{
			Task: "xor",
		},
		Logging: LogConfig{
			Level:             "info",
			TopNDebug:         3,
			SaveChampionEvery: 100,
			CSVPath:           "runs/run.csv",
			JSONPath:          "runs/run.jsonl",
			ArtifactsDir:      "artifacts",
		},
		Storage: StorageConfig{
			Kind:            "memory",
			Path:            "runs/evosim.db",
			CheckpointEvery: 10,
		},
	}
}

// Load reads a YAML config file and returns a Config
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML over Default and validates the result. Keys present in
// data win, including explicit zeros.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the engine would only fail on later.
func (c *Config) Validate() error {
	if c.GA.Population < 1 {
		return fmt.Errorf("ga.population must be at least 1, got %d", c.GA.Population)
	}
	switch c.GA.Selection {
	case "roulette", "tournament":
	default:
		return fmt.Errorf("ga.selection: unknown method %q", c.GA.Selection)
	}
	switch c.GA.Crossover {
	case "uniform", "single_point":
	default:
		return fmt.Errorf("ga.crossover: unknown method %q", c.GA.Crossover)
	}
	if c.GA.MutationChance < 0 || c.GA.MutationChance > 1 {
		return fmt.Errorf("ga.mutation_chance must be in [0, 1], got %v", c.GA.MutationChance)
	}
	if c.GA.MutationCoeff < 0 {
		return fmt.Errorf("ga.mutation_coeff must not be negative, got %v", c.GA.MutationCoeff)
	}
	for i, h := range c.NN.Hidden {
		if h < 1 {
			return fmt.Errorf("nn.hidden[%d] must be at least 1, got %d", i, h)
		}
	}
	switch c.Storage.Kind {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("storage.kind: unsupported backend %q", c.Storage.Kind)
	}
	return nil
}
