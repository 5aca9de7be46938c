package analyzer

import (
	"testing"

	"golang.org/x/tools/go/analysis/analysistest"
)

func TestAnalyzer_ForbiddenNames(t *testing.T) {
	a := New()
	if err := a.Flags.Set("forbidden-name", "Manager, Helper"); err != nil {
		t.Fatal(err)
	}
	analysistest.Run(t, analysistest.TestData(), a, "a")
}

func TestAnalyzer_DisabledByDefault(t *testing.T) {
	// package b has no want comments: nothing may be reported.
	analysistest.Run(t, analysistest.TestData(), New(), "b")
}
