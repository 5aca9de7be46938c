package rules

import "github.com/codewithboateng/namelint/internal/ir"

// Rule represents a single analysis rule executed over every type declaration.
type Rule struct {
	ID       string
	Summary  string
	Severity string
	Debt     ir.Debt
	// New builds the visitor from the rule's configuration block. It is called
	// once per run; the visitor is then shared by all units of that run.
	New func(cfg Config) TypeDeclVisitor
}

// Issue is the static identity attached to every finding of a rule.
type Issue struct {
	ID          string
	Severity    string
	Description string
	Debt        ir.Debt
}

// TypeDeclVisitor is implemented by rules that inspect type declarations.
// Implementations must be safe for concurrent use.
type TypeDeclVisitor interface {
	OnTypeDeclaration(decl *ir.TypeDecl, rep Reporter)
}

// Reporter receives findings emitted by a rule.
type Reporter interface {
	Report(f ir.Finding)
}

// NewFinding builds a finding for decl carrying the issue metadata.
func (i Issue) NewFinding(decl *ir.TypeDecl, message string) ir.Finding {
	return ir.Finding{
		RuleID:      i.ID,
		Severity:    i.Severity,
		Debt:        i.Debt,
		Entity:      decl.Entity(),
		Message:     message,
		Description: i.Description,
	}
}
