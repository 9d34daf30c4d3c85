// Package config loads session tuning from YAML and the process settings
// from the environment.
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/talgya/streetsim/internal/actions"
	"github.com/talgya/streetsim/internal/engine"
)

//go:embed tuning.schema.json
var tuningSchema []byte

const schemaURL = "mem://streetsim/tuning.schema.json"

// Tuning is everything a session runs under.
type Tuning struct {
	Seed         int64        `yaml:"seed" json:"seed"` // 0 draws a fresh seed
	TickMs       int          `yaml:"tick_ms" json:"tick_ms"`
	MoveRepeatMs int          `yaml:"move_repeat_ms" json:"move_repeat_ms"`
	LockHoldMs   int          `yaml:"lock_hold_ms" json:"lock_hold_ms"`
	Rules        engine.Rules `yaml:"rules" json:"rules"`
}

// Default returns the stock tuning.
func Default() Tuning {
	return Tuning{
		TickMs:       1000,
		MoveRepeatMs: 150,
		LockHoldMs:   int(actions.DefaultHold / time.Millisecond),
		Rules:        engine.DefaultRules(),
	}
}

// Casual slows every drain so a first run lasts.
func Casual() Tuning {
	t := Default()
	p := &t.Rules.Stats
	p.HungerDecay *= 0.7
	p.HopeDecay *= 0.7
	for i := range p.WarmthDecay {
		p.WarmthDecay[i] *= 0.7
	}
	p.ParanoiaChance /= 2
	p.DogSickAfter *= 2
	return t
}

// Hard makes the street meaner.
func Hard() Tuning {
	t := Default()
	p := &t.Rules.Stats
	p.HungerDecay *= 1.3
	p.HopeDecay *= 1.3
	for i := range p.WarmthDecay {
		p.WarmthDecay[i] *= 1.3
	}
	p.CrashHopeLoss *= 1.5
	p.DogLossHopeLoss = 35
	return t
}

// Preset returns the named difficulty. The empty name is the default.
func Preset(name string) (Tuning, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default", "normal":
		return Default(), nil
	case "casual", "easy":
		return Casual(), nil
	case "hard":
		return Hard(), nil
	}
	return Tuning{}, fmt.Errorf("unknown difficulty %q", name)
}

// Load overlays the YAML file at path onto base. The file is validated
// against the tuning schema before anything is applied.
func Load(path string, base Tuning) (Tuning, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read tuning: %w", err)
	}
	return Parse(raw, base)
}

// Parse is Load on an in-memory document.
func Parse(raw []byte, base Tuning) (Tuning, error) {
	if err := Validate(raw); err != nil {
		return base, err
	}
	t := base
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return base, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}

// Validate checks a YAML tuning document against the embedded schema.
func Validate(raw []byte) error {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("tuning.yaml: %w", err)
	}
	if doc == nil {
		return nil
	}
	// Round-trip through JSON so the validator sees JSON-native types.
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("tuning.yaml: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("tuning.yaml: %w", err)
	}

	schema, err := compileSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("tuning.yaml: %w", err)
	}
	return nil
}

func compileSchema() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(schemaURL, bytes.NewReader(tuningSchema)); err != nil {
		return nil, fmt.Errorf("tuning schema: %w", err)
	}
	s, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("tuning schema: %w", err)
	}
	return s, nil
}

// TickInterval is the period of one simulated second.
func (t Tuning) TickInterval() time.Duration {
	return time.Duration(t.TickMs) * time.Millisecond
}

// MoveRepeat is the period of repeated steps while a direction is held.
func (t Tuning) MoveRepeat() time.Duration {
	return time.Duration(t.MoveRepeatMs) * time.Millisecond
}

// LockHold is how long a changed action triple is held on screen.
func (t Tuning) LockHold() time.Duration {
	return time.Duration(t.LockHoldMs) * time.Millisecond
}

// SessionOptions converts the tuning into engine options.
func (t Tuning) SessionOptions() engine.Options {
	return engine.Options{
		Seed:           t.Seed,
		Rules:          t.Rules,
		TickInterval:   t.TickInterval(),
		RepeatInterval: t.MoveRepeat(),
	}
}
