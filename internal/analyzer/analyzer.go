// Package analyzer exposes the naming rule as a golang.org/x/tools/go/analysis
// Analyzer so it can run under go vet, gopls or any multichecker.
package analyzer

import (
	"reflect"

	"golang.org/x/tools/go/analysis"

	"github.com/codewithboateng/namelint/internal/ir"
	"github.com/codewithboateng/namelint/internal/parser"
	"github.com/codewithboateng/namelint/internal/rules"
)

const Doc = `report type names containing forbidden fragments

The namelint analyzer flags struct, interface and other type declarations
whose name contains one of the comma separated fragments given with
-forbidden-name, e.g. -forbidden-name=Manager,Helper. Without the flag the
analyzer reports nothing.`

// New returns an Analyzer with its own flags, so several instances can be
// configured independently.
func New() *analysis.Analyzer {
	var forbidden string
	a := &analysis.Analyzer{
		Name:             "namelint",
		Doc:              Doc,
		RunDespiteErrors: true,
		ResultType:       reflect.TypeOf([]ir.Finding(nil)),
	}
	a.Flags.StringVar(&forbidden, "forbidden-name", "", "comma separated forbidden type name fragments")
	a.Run = func(pass *analysis.Pass) (any, error) {
		rule := rules.NewForbiddenClassName(rules.RuleConfig{rules.ForbiddenNameKey: forbidden})
		return run(pass, rule), nil
	}
	return a
}

// Analyzer is the default instance used by cmd/namelint-vet.
var Analyzer = New()

// run reports every finding as a diagnostic and returns them as the pass result.
func run(pass *analysis.Pass, v rules.TypeDeclVisitor) []ir.Finding {
	var c rules.Collector
	for _, file := range pass.Files {
		for _, decl := range parser.Declarations(pass.Fset, file) {
			v.OnTypeDeclaration(&decl, rules.ReporterFunc(func(f ir.Finding) {
				c.Report(f)
				pass.Report(analysis.Diagnostic{
					Pos:      decl.Pos,
					Category: f.RuleID,
					Message:  f.Message,
				})
			}))
		}
	}
	return c.Findings()
}
