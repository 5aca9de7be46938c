package rulesdsl

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/codewithboateng/namelint/internal/debt"
	"github.com/codewithboateng/namelint/internal/ir"
	"github.com/codewithboateng/namelint/internal/rules"
)

const pack = `
rules:
  - id: INTERFACE-ER-SUFFIX
    summary: Single-method style interfaces should end in -er.
    severity: Style
    message: "Interface {name} does not follow the -er naming convention"
    debt_mins: 10
    where:
      kind: interface
      name_regex: '^[A-Z][A-Za-z]*[^r]$'
  - id: NO-UNDERSCORE-TYPES
    severity: CodeSmell
    message: "Type {name} contains an underscore"
    where:
      name_regex: '_'
`

func TestParseAndRegister(t *testing.T) {
	n, err := ParseAndRegister([]byte(pack))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if n != 2 {
		t.Fatalf("want 2 rules, got %d", n)
	}
	r, ok := rules.Get("INTERFACE-ER-SUFFIX")
	if !ok || r.Debt != debt.TenMins {
		t.Fatalf("rule not registered as expected: %+v", r)
	}

	v := r.New(rules.RuleConfig{})
	var c rules.Collector
	v.OnTypeDeclaration(&ir.TypeDecl{Kind: ir.KindInterface, Name: "Store"}, &c)
	v.OnTypeDeclaration(&ir.TypeDecl{Kind: ir.KindInterface, Name: "Reader"}, &c)
	v.OnTypeDeclaration(&ir.TypeDecl{Kind: ir.KindStruct, Name: "Store"}, &c)
	v.OnTypeDeclaration(&ir.TypeDecl{Kind: ir.KindInterface, Anonymous: true}, &c)
	fs := c.Findings()
	if len(fs) != 1 {
		t.Fatalf("want 1 finding, got %+v", fs)
	}
	if fs[0].Message != "Interface Store does not follow the -er naming convention" || fs[0].Severity != "Style" {
		t.Fatalf("unexpected finding %+v", fs[0])
	}

	u, _ := rules.Get("NO-UNDERSCORE-TYPES")
	if u.Debt != debt.FiveMins {
		t.Fatalf("default debt = %+v", u.Debt)
	}
}

func TestLoadAndRegister_Errors(t *testing.T) {
	if _, err := LoadAndRegister(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected read error")
	}
	tests := map[string]string{
		"missing fields": "rules:\n  - id: X\n",
		"bad regex":      "rules:\n  - id: BAD\n    severity: Style\n    message: m\n    where:\n      name_regex: '('\n",
		"bad yaml":       "rules: [",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			p := filepath.Join(t.TempDir(), "pack.yaml")
			if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := LoadAndRegister(p)
			if err == nil {
				t.Fatal("expected error")
			}
			if name == "bad regex" && !strings.Contains(err.Error(), `"BAD"`) {
				t.Fatalf("error should name the rule: %v", err)
			}
		})
	}
}

func TestLoadAndRegister_ShippedPack(t *testing.T) {
	n, err := LoadAndRegister(filepath.Join("..", "..", "configs", "naming-pack.yaml"))
	if err != nil {
		t.Fatalf("shipped pack: %v", err)
	}
	if n != 2 {
		t.Fatalf("want 2 rules, got %d", n)
	}
	r, _ := rules.Get("INTERFACE-I-PREFIX")
	var c rules.Collector
	r.New(rules.RuleConfig{}).OnTypeDeclaration(&ir.TypeDecl{Kind: ir.KindInterface, Name: "IStore"}, &c)
	if c.Len() != 1 {
		t.Fatalf("IStore should be reported")
	}
}
