package rules

import (
	"strconv"
	"strings"
)

// Config is the per-rule configuration block.
type Config interface {
	ValueOrDefault(key, def string) string
	Active() bool
}

// RuleConfig is a map backed Config. The "active" key toggles the rule.
type RuleConfig map[string]string

func (c RuleConfig) ValueOrDefault(key, def string) string {
	if v, ok := c[key]; ok {
		return v
	}
	return def
}

func (c RuleConfig) Active() bool {
	v, ok := c["active"]
	if !ok {
		return true
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	return err != nil || b
}

type Settings struct {
	Disabled map[string]bool
	Rules    map[string]RuleConfig
	Workers  int
}

var rsettings = Settings{
	Disabled: map[string]bool{},
	Rules:    map[string]RuleConfig{},
	Workers:  4,
}

func SetSettings(s Settings) {
	// fill defaults
	if s.Disabled == nil {
		s.Disabled = map[string]bool{}
	}
	if s.Rules == nil {
		s.Rules = map[string]RuleConfig{}
	}
	if s.Workers <= 0 {
		s.Workers = 4
	}
	rsettings = s
}

func CurrentSettings() Settings { return rsettings }

// configFor returns the configuration block of ruleID (case-insensitive lookup).
func configFor(s Settings, ruleID string) RuleConfig {
	if c, ok := s.Rules[ruleID]; ok {
		return c
	}
	for id, c := range s.Rules {
		if strings.EqualFold(id, ruleID) {
			return c
		}
	}
	return RuleConfig{}
}
