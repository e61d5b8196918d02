package calc

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gnolang/tcalc/internal/compiler"
	"github.com/gnolang/tcalc/internal/engine"
	"github.com/gnolang/tcalc/internal/lexer"
	"github.com/gnolang/tcalc/internal/rule"
)

// DefaultConfigPath is where the CLI looks for a configuration file.
const DefaultConfigPath = ".tcalc.yaml"

// RuleConfig is a user rule preloaded into every session.
type RuleConfig struct {
	Name        string `yaml:"name"`
	Pattern     string `yaml:"pattern"`
	Replacement string `yaml:"replacement"`
}

// Config represents the overall configuration of a calculator.
type Config struct {
	Name      string       `yaml:"name"`
	MaxSteps  int          `yaml:"max_steps,omitempty"`
	DumpSteps bool         `yaml:"dump_steps,omitempty"`
	Rules     []RuleConfig `yaml:"rules"`
}

// DefaultConfig is the configuration written by "tcalc init".
func DefaultConfig() Config {
	return Config{
		Name:     "tcalc",
		MaxSteps: engine.DefaultMaxSteps,
		Rules: []RuleConfig{
			{Name: "square", Pattern: "square X", Replacement: "X * X"},
			{Name: "increment-empty", Pattern: "increment []", Replacement: "[]"},
			{Name: "increment", Pattern: "increment [H ... T]", Replacement: "[H + 1 ... increment T]"},
		},
	}
}

// LoadConfig reads a configuration file. An empty file is a valid, empty
// configuration.
func LoadConfig(configurationPath string) (Config, error) {
	var config Config

	f, err := os.Open(configurationPath)
	if err != nil {
		return config, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, fmt.Errorf("parsing %s: %w", configurationPath, err)
	}

	return config, nil
}

// WriteConfig writes config to configurationPath, replacing any existing
// file.
func WriteConfig(configurationPath string, config Config) error {
	d, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	f, err := os.Create(configurationPath)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(d)
	return err
}

// Compile lexes and compiles the rule. The rule keeps its configured name.
func (rc RuleConfig) Compile() (rule.Rule, error) {
	pat, err := lexer.Lex(rc.Pattern)
	if err != nil {
		return nil, fmt.Errorf("rule %s: pattern: %w", rc.label(), err)
	}
	repl, err := lexer.Lex(rc.Replacement)
	if err != nil {
		return nil, fmt.Errorf("rule %s: replacement: %w", rc.label(), err)
	}
	r, err := compiler.Compile(pat, repl)
	if err != nil {
		return nil, fmt.Errorf("rule %s: %w", rc.label(), err)
	}
	if rc.Name == "" {
		return r, nil
	}
	return r.Renamed(rc.Name), nil
}

func (rc RuleConfig) label() string {
	if rc.Name != "" {
		return rc.Name
	}
	return fmt.Sprintf("%q", rc.Pattern)
}

// Options translates the configuration into session options. Every rule
// must compile.
func (c Config) Options() ([]engine.Option, error) {
	rules := make([]rule.Rule, 0, len(c.Rules))
	for _, rc := range c.Rules {
		r, err := rc.Compile()
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return []engine.Option{
		engine.WithMaxSteps(c.MaxSteps),
		engine.WithDumpSteps(c.DumpSteps),
		engine.WithRules(rules...),
	}, nil
}
