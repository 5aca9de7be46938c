package parser

import (
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/codewithboateng/namelint/internal/ir"
)

const sampleSource = `package app

type UserManager struct {
	store interface {
		Get(id string) string
	}
}

type Store interface {
	Load() error
}

type ID string

type Alias = UserManager

type Cache[K comparable, V any] struct{}

func handler() any {
	cfg := struct{ Name string }{Name: "x"}
	var _ interface{} = cfg
	return cfg
}
`

func TestDeclarations(t *testing.T) {
	fset := token.NewFileSet()
	unit, err := ParseFile(fset, "app/user.go", sampleSource)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if unit.Package != "app" {
		t.Fatalf("package = %q", unit.Package)
	}

	type lite struct {
		Kind      string
		Name      string
		Anonymous bool
		Line      int
	}
	var got []lite
	for _, d := range unit.Decls {
		got = append(got, lite{d.Kind, d.Name, d.Anonymous, d.Location.Line})
	}
	want := []lite{
		{ir.KindStruct, "UserManager", false, 3},
		{ir.KindInterface, "", true, 4},
		{ir.KindInterface, "Store", false, 9},
		{ir.KindType, "ID", false, 13},
		{ir.KindAlias, "Alias", false, 15},
		{ir.KindStruct, "Cache", false, 17},
		{ir.KindStruct, "", true, 20},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("declarations mismatch (-want +got):\n%s", diff)
	}

	if sig := unit.Decls[5].Signature; sig != "type Cache[K, V] struct" {
		t.Fatalf("generic signature = %q", sig)
	}
	if loc := unit.Decls[0].Location; loc.Column != 6 || loc.File != "app/user.go" {
		t.Fatalf("location = %+v", loc)
	}
}

func TestParse_WalksDirectory(t *testing.T) {
	dir := t.TempDir()
	write := func(rel, content string) {
		p := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
	write("a.go", "package a\n\ntype TaskHelper struct{}\n")
	write("sub/b.go", "package sub\n\ntype Repo interface{ Get() }\n")
	write("vendor/v.go", "package v\n\ntype VendorManager struct{}\n")
	write("testdata/t.go", "package t\n\ntype FixtureManager struct{}\n")
	write("broken.go", "package broken\n\ntype {\n")
	write("notes.txt", "type NotGo struct{}")

	run, diags := Parse(dir)
	if len(run.Units) != 2 {
		t.Fatalf("want 2 units, got %d: %+v", len(run.Units), run.Units)
	}
	if len(diags.Warnings) != 1 {
		t.Fatalf("want 1 warning for broken.go, got %v", diags.Warnings)
	}
	if run.IRVersion != ir.Version {
		t.Fatalf("ir version = %q", run.IRVersion)
	}
	if run.Units[0].Decls[0].Name != "TaskHelper" {
		t.Fatalf("first unit decl = %+v", run.Units[0].Decls[0])
	}
}

func TestParse_Empty(t *testing.T) {
	run, diags := Parse(t.TempDir())
	if len(run.Units) != 0 || len(diags.Warnings) != 1 {
		t.Fatalf("units=%d warnings=%v", len(run.Units), diags.Warnings)
	}
}

// Fuzz the parser with arbitrary content to ensure we never panic.
func FuzzDeclarationsNoPanic(f *testing.F) {
	seeds := []string{
		"type A struct{}",
		"type B interface{ M() }\nvar x = struct{}{}",
		"garbage-but-should-not-panic",
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, body string) {
		fset := token.NewFileSet()
		_, _ = ParseFile(fset, "fuzz.go", "package fz\n"+body) // we only assert "no panic"
	})
}
