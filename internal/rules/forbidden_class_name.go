package rules

import (
	"strings"

	"github.com/codewithboateng/namelint/internal/debt"
	"github.com/codewithboateng/namelint/internal/ir"
	"github.com/codewithboateng/namelint/internal/pattern"
)

const (
	ForbiddenClassNameID = "ForbiddenClassName"
	// ForbiddenNameKey is the configuration option holding the comma separated deny-list.
	ForbiddenNameKey = "forbiddenName"
)

func init() {
	Register(Rule{
		ID:       ForbiddenClassNameID,
		Summary:  "Reports type names containing a configured forbidden fragment (e.g. Manager). Disabled until forbiddenName is set.",
		Severity: ir.SeverityStyle,
		Debt:     debt.FiveMins,
		New: func(cfg Config) TypeDeclVisitor {
			return NewForbiddenClassName(cfg)
		},
	})
}

// ForbiddenClassName reports struct, interface and other type declarations whose
// name contains one of the configured forbidden fragments.
type ForbiddenClassName struct {
	issue     Issue
	forbidden pattern.Set
}

func NewForbiddenClassName(cfg Config) *ForbiddenClassName {
	if cfg == nil {
		cfg = RuleConfig{}
	}
	return &ForbiddenClassName{
		issue: Issue{
			ID:          ForbiddenClassNameID,
			Severity:    ir.SeverityStyle,
			Description: "Forbidden class name as per configuration detected.",
			Debt:        debt.FiveMins,
		},
		forbidden: pattern.Split(cfg.ValueOrDefault(ForbiddenNameKey, "")),
	}
}

func (r *ForbiddenClassName) Issue() Issue { return r.issue }

// Forbidden returns the configured fragments.
func (r *ForbiddenClassName) Forbidden() []string { return r.forbidden.Fragments() }

func (r *ForbiddenClassName) OnTypeDeclaration(decl *ir.TypeDecl, rep Reporter) {
	name := decl.SimpleName()
	matched := r.forbidden.Matches(name)
	if len(matched) == 0 {
		return
	}
	f := r.issue.NewFinding(decl, ForbiddenClassNameMessage(name, matched))
	f.Metadata = map[string]any{"matched": matched}
	rep.Report(f)
}

// ForbiddenClassNameMessage formats the finding message for name and its matched fragments.
func ForbiddenClassNameMessage(name string, matched []string) string {
	return "Class name " + name + " is forbidden as it contains: " + strings.Join(matched, ", ")
}
