package shared

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Database struct {
		Driver string `yaml:"driver"` // "sqlite" (default)
		DSN    string `yaml:"dsn"`    // "./namelint.db"
	} `yaml:"database"`

	Analysis struct {
		Sources   []string `yaml:"sources"`    // ["./"]
		Workers   int      `yaml:"workers"`    // 4
		RulePacks []string `yaml:"rule_packs"` // ["./configs/naming.yaml"]
		Disabled  []string `yaml:"disabled"`   // rule IDs
	} `yaml:"analysis"`

	// Rules holds per-rule blocks, e.g.
	//   ForbiddenClassName:
	//     active: true
	//     forbiddenName: "Manager,Helper"
	Rules map[string]map[string]any `yaml:"rules"`

	Reporting struct {
		OutDir string `yaml:"out_dir"` // "./reports"
	} `yaml:"reporting"`

	Logging struct {
		Format string `yaml:"format"` // "json"|"text"
		Level  string `yaml:"level"`  // "info"|"debug"|"warn"|"error"
	} `yaml:"logging"`

	API struct {
		Addr            string   `yaml:"addr"`             // ":8080"
		AllowedOrigins  []string `yaml:"allowed_origins"`  // ["*"]
		SessionDuration string   `yaml:"session_duration"` // "12h"
	} `yaml:"api"`
}

func DefaultConfig() Config {
	var c Config
	c.Database.Driver = "sqlite"
	c.Database.DSN = "./namelint.db"
	c.Analysis.Workers = 4
	c.Rules = map[string]map[string]any{}
	c.Reporting.OutDir = "./reports"
	c.Logging.Format = "json"
	c.Logging.Level = "info"
	c.API.Addr = ":8080"
	c.API.SessionDuration = "12h"
	return c
}

// LoadConfig reads path (optional) over the defaults and applies env overrides.
// A missing file is not an error; a malformed one is.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return c, fmt.Errorf("read config %s: %w", path, err)
		}
		if err == nil {
			if err := yaml.Unmarshal(b, &c); err != nil {
				return DefaultConfig(), fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	if c.Rules == nil {
		c.Rules = map[string]map[string]any{}
	}
	// Env overrides (simple, explicit)
	if v := os.Getenv("NAMELINT_DB_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("NAMELINT_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Analysis.Workers = n
		}
	}
	if v, ok := os.LookupEnv("NAMELINT_FORBIDDEN_NAME"); ok {
		c.SetRuleOption("ForbiddenClassName", "forbiddenName", v)
	}
	if v := os.Getenv("NAMELINT_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("NAMELINT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("NAMELINT_OUT_DIR"); v != "" {
		c.Reporting.OutDir = v
	}
	if v := os.Getenv("NAMELINT_API_ADDR"); v != "" {
		c.API.Addr = v
	}
	return c, nil
}

// SetRuleOption sets a single option of a rule block, creating it if needed.
func (c *Config) SetRuleOption(ruleID, key string, value any) {
	if c.Rules == nil {
		c.Rules = map[string]map[string]any{}
	}
	if c.Rules[ruleID] == nil {
		c.Rules[ruleID] = map[string]any{}
	}
	c.Rules[ruleID][key] = value
}

// RuleOptions flattens every rule block into string options. YAML lists are
// joined with commas so `forbiddenName: [Manager, Helper]` is accepted too.
func (c Config) RuleOptions() map[string]map[string]string {
	out := make(map[string]map[string]string, len(c.Rules))
	for id, block := range c.Rules {
		m := make(map[string]string, len(block))
		for k, v := range block {
			m[k] = stringify(v)
		}
		out[id] = m
	}
	return out
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []any:
		s := ""
		for i, e := range x {
			if i > 0 {
				s += ","
			}
			s += stringify(e)
		}
		return s
	default:
		return fmt.Sprint(x)
	}
}
