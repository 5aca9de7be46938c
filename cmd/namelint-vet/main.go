// Command namelint-vet runs the namelint analyzer standalone or as a vet tool:
//
//	namelint-vet -forbidden-name=Manager,Helper ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/codewithboateng/namelint/internal/analyzer"
)

func main() { singlechecker.Main(analyzer.Analyzer) }
