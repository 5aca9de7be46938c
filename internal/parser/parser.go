package parser

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/codewithboateng/namelint/internal/ir"
)

type Diagnostics struct {
	Warnings []string
}

// Parse walks path (a directory or a single .go file) and collects the type
// declarations of every Go source file found.
func Parse(path string) (ir.Run, Diagnostics) {
	var run ir.Run
	run.IRVersion = ir.Version
	run.Source = filepath.Clean(path)
	diags := Diagnostics{}
	fset := token.NewFileSet()

	_ = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			diags.Warnings = append(diags.Warnings, fmt.Sprintf("%s: %v", p, err))
			return nil
		}
		if d.IsDir() {
			if p != path && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".go") {
			return nil
		}
		unit, perr := ParseFile(fset, p, nil)
		if perr != nil {
			diags.Warnings = append(diags.Warnings, perr.Error())
			return nil
		}
		run.Units = append(run.Units, unit)
		return nil
	})

	sort.Slice(run.Units, func(i, j int) bool { return run.Units[i].Path < run.Units[j].Path })
	if len(run.Units) == 0 {
		diags.Warnings = append(diags.Warnings, "no Go source files found")
	}
	return run, diags
}

func skipDir(name string) bool {
	return name == "vendor" || name == "testdata" || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

// ParseFile parses one file. src may be nil, in which case the file is read from disk.
func ParseFile(fset *token.FileSet, path string, src any) (ir.Unit, error) {
	f, err := parser.ParseFile(fset, path, src, parser.SkipObjectResolution)
	if err != nil {
		return ir.Unit{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return ir.Unit{
		Path:    filepath.ToSlash(path),
		Package: f.Name.Name,
		Decls:   Declarations(fset, f),
	}, nil
}

// Declarations returns every type declaration of f in source order: named type
// specs and anonymous struct or interface literals appearing elsewhere.
func Declarations(fset *token.FileSet, f *ast.File) []ir.TypeDecl {
	var out []ir.TypeDecl
	// type literals that are the direct body of a named spec
	owned := map[ast.Expr]bool{}

	ast.Inspect(f, func(n ast.Node) bool {
		switch x := n.(type) {
		case *ast.TypeSpec:
			owned[x.Type] = true
			d := ir.TypeDecl{
				Kind:      kindOf(x),
				Name:      x.Name.Name,
				Signature: signatureOf(x),
				Location:  location(fset, x.Name.Pos(), x.End()),
				Pos:       x.Name.Pos(),
			}
			out = append(out, d)
		case *ast.StructType:
			if !owned[x] {
				out = append(out, anonymous(fset, ir.KindStruct, x))
			}
		case *ast.InterfaceType:
			// empty interfaces are the "any" idiom, not a declaration
			if !owned[x] && x.Methods != nil && len(x.Methods.List) > 0 {
				out = append(out, anonymous(fset, ir.KindInterface, x))
			}
		}
		return true
	})
	return out
}

func kindOf(ts *ast.TypeSpec) string {
	if ts.Assign.IsValid() {
		return ir.KindAlias
	}
	switch ts.Type.(type) {
	case *ast.StructType:
		return ir.KindStruct
	case *ast.InterfaceType:
		return ir.KindInterface
	default:
		return ir.KindType
	}
}

func signatureOf(ts *ast.TypeSpec) string {
	var sb strings.Builder
	sb.WriteString("type ")
	sb.WriteString(ts.Name.Name)
	if ts.TypeParams != nil && len(ts.TypeParams.List) > 0 {
		var params []string
		for _, fld := range ts.TypeParams.List {
			for _, n := range fld.Names {
				params = append(params, n.Name)
			}
		}
		sb.WriteString("[" + strings.Join(params, ", ") + "]")
	}
	if ts.Assign.IsValid() {
		sb.WriteString(" =")
	}
	switch ts.Type.(type) {
	case *ast.StructType:
		sb.WriteString(" struct")
	case *ast.InterfaceType:
		sb.WriteString(" interface")
	}
	return sb.String()
}

func anonymous(fset *token.FileSet, kind string, n ast.Node) ir.TypeDecl {
	return ir.TypeDecl{
		Kind:      kind,
		Anonymous: true,
		Location:  location(fset, n.Pos(), n.End()),
		Pos:       n.Pos(),
	}
}

func location(fset *token.FileSet, start, end token.Pos) ir.Location {
	s := fset.Position(start)
	e := fset.Position(end)
	return ir.Location{
		File:      filepath.ToSlash(s.Filename),
		Line:      s.Line,
		Column:    s.Column,
		EndLine:   e.Line,
		EndColumn: e.Column,
	}
}
