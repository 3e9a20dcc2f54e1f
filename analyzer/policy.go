package analyzer

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidPolicy is returned when a scoring policy cannot be used.
var ErrInvalidPolicy = errors.New("invalid scoring policy")

const weightTolerance = 0.001

// Policy is a versioned table of scoring rules, one per factor.
type Policy struct {
	Version string                     `json:"version" yaml:"version"`
	Rules   map[FactorName]ScoringRule `json:"rules" yaml:"rules"`
}

func bound(v float64) *float64 {
	return &v
}

// DefaultPolicy returns the five-factor policy.
func DefaultPolicy() Policy {
	return Policy{
		Version: "2",
		Rules: map[FactorName]ScoringRule{
			KeywordDensity: {Weight: 0.30, Min: bound(1), Max: bound(3)},
			TitleLength:    {Weight: 0.25, Min: bound(30), Max: bound(60)},
			KeywordInTitle: {Weight: 0.20},
			ContentLength:  {Weight: 0.15},
			Readability:    {Weight: 0.10},
		},
	}
}

// ParsePolicy reads a YAML policy. Band bounds left out of the document fall
// back to the defaults.
func ParsePolicy(data []byte) (Policy, error) {
	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Policy{}, fmt.Errorf("%w: %v", ErrInvalidPolicy, err)
	}

	defaults := DefaultPolicy()
	for name, rule := range p.Rules {
		def, ok := defaults.Rules[name]
		if !ok {
			continue
		}
		if rule.Min == nil {
			rule.Min = def.Min
		}
		if rule.Max == nil {
			rule.Max = def.Max
		}
		p.Rules[name] = rule
	}

	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

// LoadPolicy reads a YAML policy from disk
func LoadPolicy(path string) (Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("failed to read scoring policy: %w", err)
	}
	return ParsePolicy(data)
}

// Validate checks that every factor has exactly one rule, no weight is
// negative, the weights sum to 1.0 and banded factors have a usable band.
func (p Policy) Validate() error {
	sum := 0.0
	for name, rule := range p.Rules {
		if _, ok := factorTable[name]; !ok {
			return fmt.Errorf("%w: unknown factor %q", ErrInvalidPolicy, name)
		}
		if rule.Weight < 0 {
			return fmt.Errorf("%w: negative weight %f for %s", ErrInvalidPolicy, rule.Weight, name)
		}
		sum += rule.Weight
	}

	for _, name := range factorOrder {
		rule, ok := p.Rules[name]
		if !ok {
			return fmt.Errorf("%w: missing rule for %s", ErrInvalidPolicy, name)
		}
		if factorTable[name].banded {
			if rule.Min == nil || rule.Max == nil {
				return fmt.Errorf("%w: %s needs min and max", ErrInvalidPolicy, name)
			}
			if *rule.Min <= 0 || *rule.Min > *rule.Max {
				return fmt.Errorf("%w: %s band [%v, %v] is not usable", ErrInvalidPolicy, name, *rule.Min, *rule.Max)
			}
		}
	}

	if math.Abs(sum-1.0) > weightTolerance {
		return fmt.Errorf("%w: weights sum to %.4f, must sum to 1.0", ErrInvalidPolicy, sum)
	}
	return nil
}
