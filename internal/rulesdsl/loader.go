package rulesdsl

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/codewithboateng/namelint/internal/debt"
	"github.com/codewithboateng/namelint/internal/ir"
	"github.com/codewithboateng/namelint/internal/rules"
)

type dslPack struct {
	Rules []dslRule `yaml:"rules"`
}

type dslRule struct {
	ID       string `yaml:"id"`
	Summary  string `yaml:"summary"`
	Severity string `yaml:"severity"` // Style|CodeSmell|Warning|...
	Message  string `yaml:"message"`  // may contain {name} and {kind}
	DebtMins int    `yaml:"debt_mins"`

	Where struct {
		Kind      string `yaml:"kind"`       // struct|interface|type|alias (optional)
		NameRegex string `yaml:"name_regex"` // regex on the declared name (case-sensitive)
		Anonymous bool   `yaml:"anonymous"`  // also inspect anonymous declarations
	} `yaml:"where"`
}

type compiled struct {
	issue     rules.Issue
	message   string
	kind      string
	reName    *regexp.Regexp
	anonymous bool
}

// LoadAndRegister reads a YAML rule pack and registers every rule it defines.
func LoadAndRegister(path string) (int, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read rules pack: %w", err)
	}
	return ParseAndRegister(b)
}

// ParseAndRegister is LoadAndRegister for an in-memory pack.
func ParseAndRegister(b []byte) (int, error) {
	var pack dslPack
	if err := yaml.Unmarshal(b, &pack); err != nil {
		return 0, fmt.Errorf("parse yaml: %w", err)
	}
	var n int
	for _, r := range pack.Rules {
		cr, err := compile(r)
		if err != nil {
			return n, fmt.Errorf("compile rule %q: %w", r.ID, err)
		}
		registerCompiled(r, cr)
		n++
	}
	return n, nil
}

func compile(r dslRule) (*compiled, error) {
	if r.ID == "" || r.Severity == "" || r.Message == "" || r.Where.NameRegex == "" {
		return nil, fmt.Errorf("missing required fields (id/severity/message/where.name_regex)")
	}
	re, err := regexp.Compile(r.Where.NameRegex)
	if err != nil {
		return nil, fmt.Errorf("name_regex: %w", err)
	}
	d := debt.FromMinutes(r.DebtMins)
	if r.DebtMins <= 0 {
		d = debt.FiveMins
	}
	return &compiled{
		issue: rules.Issue{
			ID:          r.ID,
			Severity:    r.Severity,
			Description: r.Summary,
			Debt:        d,
		},
		message:   r.Message,
		kind:      strings.ToLower(strings.TrimSpace(r.Where.Kind)),
		reName:    re,
		anonymous: r.Where.Anonymous,
	}, nil
}

func registerCompiled(r dslRule, c *compiled) {
	rules.Register(rules.Rule{
		ID:       c.issue.ID,
		Summary:  r.Summary,
		Severity: c.issue.Severity,
		Debt:     c.issue.Debt,
		New: func(rules.Config) rules.TypeDeclVisitor {
			return c
		},
	})
}

func (c *compiled) OnTypeDeclaration(decl *ir.TypeDecl, rep rules.Reporter) {
	if c.kind != "" && c.kind != decl.Kind {
		return
	}
	if decl.Anonymous && !c.anonymous {
		return
	}
	name := decl.SimpleName()
	if !c.reName.MatchString(name) {
		return
	}
	msg := strings.NewReplacer("{name}", name, "{kind}", decl.Kind).Replace(c.message)
	rep.Report(c.issue.NewFinding(decl, msg))
}
