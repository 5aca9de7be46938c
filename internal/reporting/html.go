package reporting

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"sort"

	"github.com/codewithboateng/namelint/internal/debt"
	"github.com/codewithboateng/namelint/internal/ir"
)

func WriteHTML(runID, outDir string, run *ir.Run) (string, error) {
	path := filepath.Join(outDir, runID+".html")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	decls := 0
	for _, u := range run.Units {
		decls += len(u.Decls)
	}

	// Head + styles
	fmt.Fprintf(f, "<!doctype html><html><head><meta charset='utf-8'><title>%s</title>", html.EscapeString(runID))
	fmt.Fprint(f, "<style>body{font-family:system-ui,Arial,sans-serif;padding:20px;line-height:1.4} table{border-collapse:collapse;margin:8px 0} td,th{border:1px solid #ddd;padding:6px} h1,h2{margin:6px 0 4px} .dim{color:#666} .mono{font-family:ui-monospace,Menlo,Consolas,monospace}</style>")
	fmt.Fprint(f, "</head><body>")

	// Title + summary
	fmt.Fprintf(f, "<h1>namelint report – <span class='mono'>%s</span></h1>", html.EscapeString(runID))
	fmt.Fprintf(f, "<p>Files: %d &nbsp; Type declarations: %d &nbsp; Findings: %d</p>", len(run.Units), decls, len(run.Findings))
	fmt.Fprintf(f, "<p><b>Technical debt</b>: %s</p>", html.EscapeString(debt.Sum(run.Findings).String()))

	if run.Context.ForbiddenName != "" {
		fmt.Fprintf(f, "<p class='dim'>Forbidden names: <span class='mono'>%s</span></p>", html.EscapeString(run.Context.ForbiddenName))
	}
	if n := len(run.Context.DisabledRules); n > 0 || run.Context.Waived > 0 {
		fmt.Fprintf(f, "<p class='dim'>Disabled rules: %d &nbsp; Waived findings: %d</p>", n, run.Context.Waived)
	}

	// Debt per rule
	if len(run.Findings) > 0 {
		by := debt.ByRule(run.Findings)
		ids := make([]string, 0, len(by))
		for id := range by {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		fmt.Fprint(f, "<h2>Debt by Rule</h2><table><tr><th>Rule</th><th>Debt</th></tr>")
		for _, id := range ids {
			fmt.Fprintf(f, "<tr><td>%s</td><td>%s</td></tr>", html.EscapeString(id), html.EscapeString(by[id].String()))
		}
		fmt.Fprint(f, "</table>")
	}

	// All findings
	if len(run.Findings) > 0 {
		fmt.Fprint(f, "<h2>All Findings</h2><table><tr><th>Severity</th><th>Rule</th><th>Location</th><th>Entity</th><th>Message</th></tr>")
		for _, fd := range run.Findings {
			fmt.Fprintf(f, "<tr><td>%s</td><td>%s</td><td class='mono'>%s</td><td class='mono'>%s</td><td>%s</td></tr>",
				html.EscapeString(fd.Severity),
				html.EscapeString(fd.RuleID),
				html.EscapeString(fd.Entity.Location.String()),
				html.EscapeString(fd.Entity.Name),
				html.EscapeString(fd.Message),
			)
		}
		fmt.Fprint(f, "</table>")
	} else {
		fmt.Fprint(f, "<h2>All Findings</h2><p class='dim'>No findings.</p>")
	}

	fmt.Fprint(f, "</body></html>")
	return path, nil
}
