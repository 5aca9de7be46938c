package ir

import (
	"fmt"
	"go/token"
	"strings"
	"time"
)

const Version = "1.0"

type Run struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
	Source    string    `json:"source,omitempty"`
	IRVersion string    `json:"ir_version,omitempty"`

	Context  Context   `json:"context"`
	Units    []Unit    `json:"units"`
	Findings []Finding `json:"findings,omitempty"`
}

type Context struct {
	ForbiddenName string   `json:"forbidden_name,omitempty"`
	DisabledRules []string `json:"disabled_rules,omitempty"`
	RulePacks     []string `json:"rule_packs,omitempty"`
	Waived        int      `json:"waived,omitempty"`
}

// Unit is one parsed source file.
type Unit struct {
	Path    string     `json:"path"`
	Package string     `json:"package,omitempty"`
	Decls   []TypeDecl `json:"decls"`
}

// Declaration kinds.
const (
	KindStruct    = "struct"
	KindInterface = "interface"
	KindType      = "type"
	KindAlias     = "alias"
)

type TypeDecl struct {
	Kind      string   `json:"kind"`
	Name      string   `json:"name,omitempty"`
	Anonymous bool     `json:"anonymous,omitempty"`
	Signature string   `json:"signature,omitempty"`
	Location  Location `json:"location"`

	// Pos is the position in the FileSet the declaration was parsed with.
	Pos token.Pos `json:"-"`
}

// SimpleName returns the declared identifier, or "" for anonymous declarations.
func (d *TypeDecl) SimpleName() string {
	if d == nil || d.Anonymous {
		return ""
	}
	return d.Name
}

// Entity resolves the reportable entity for the declaration.
func (d *TypeDecl) Entity() Entity {
	name := d.SimpleName()
	if name == "" {
		name = "<anonymous " + d.Kind + ">"
	}
	sig := d.Signature
	if sig == "" {
		sig = strings.TrimSpace(d.Kind + " " + d.SimpleName())
	}
	return Entity{Name: name, Signature: sig, Location: d.Location}
}

type Location struct {
	File      string `json:"file"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	EndLine   int    `json:"end_line,omitempty"`
	EndColumn int    `json:"end_column,omitempty"`
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

type Entity struct {
	Name      string   `json:"name"`
	Signature string   `json:"signature,omitempty"`
	Location  Location `json:"location"`
}

// Debt is the estimated effort to fix a finding.
type Debt struct {
	Days  int `json:"days,omitempty"`
	Hours int `json:"hours,omitempty"`
	Mins  int `json:"mins,omitempty"`
}

// Minutes returns the debt expressed in minutes (24h days).
func (d Debt) Minutes() int { return d.Days*24*60 + d.Hours*60 + d.Mins }

func (d Debt) String() string {
	var parts []string
	if d.Days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", d.Days))
	}
	if d.Hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", d.Hours))
	}
	if d.Mins > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%dmin", d.Mins))
	}
	return strings.Join(parts, " ")
}

// Severity classes.
const (
	SeverityCodeSmell       = "CodeSmell"
	SeverityStyle           = "Style"
	SeverityWarning         = "Warning"
	SeverityDefect          = "Defect"
	SeverityMinor           = "Minor"
	SeverityMaintainability = "Maintainability"
	SeveritySecurity        = "Security"
	SeverityPerformance     = "Performance"
)

type Finding struct {
	ID          string         `json:"id"`
	RuleID      string         `json:"rule_id"`
	Severity    string         `json:"severity"`
	Debt        Debt           `json:"debt"`
	Entity      Entity         `json:"entity"`
	Message     string         `json:"message"`
	Description string         `json:"description,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}
