package rules

import (
	"strings"

	"github.com/codewithboateng/namelint/internal/ir"
	"github.com/codewithboateng/namelint/internal/storage"
)

// ApplyWaivers filters out findings that match any active waiver.
// Returns (kept, waivedCount)
func ApplyWaivers(in []ir.Finding, waivers []storage.Waiver) ([]ir.Finding, int) {
	if len(waivers) == 0 || len(in) == 0 {
		return in, 0
	}
	var out []ir.Finding
	waived := 0
nextFinding:
	for _, f := range in {
		for _, w := range waivers {
			if !eqCI(f.RuleID, w.RuleID) {
				continue
			}
			if w.File != "" && !pathMatch(f.Entity.Location.File, w.File) {
				continue
			}
			if w.Decl != "" && strings.TrimSpace(w.Decl) != f.Entity.Name {
				continue
			}
			if w.PatternSub != "" && !strings.Contains(f.Message, w.PatternSub) {
				continue
			}
			// matched → waive it
			waived++
			continue nextFinding
		}
		out = append(out, f)
	}
	return out, waived
}

func eqCI(a, b string) bool { return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b)) }

// pathMatch accepts an exact path or a trailing path suffix ("pkg/user.go").
func pathMatch(file, want string) bool {
	file = strings.ReplaceAll(file, "\\", "/")
	want = strings.ReplaceAll(strings.TrimSpace(want), "\\", "/")
	return file == want || strings.HasSuffix(file, "/"+want)
}
