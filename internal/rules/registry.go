package rules

import (
	"fmt"
	"hash/crc32"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/codewithboateng/namelint/internal/ir"
)

var (
	mu        sync.RWMutex
	registry  []Rule
	ruleIndex = map[string]int{} // UPPER(ruleID) -> index
)

// Register adds r to the registry. A rule registered twice under the same ID replaces the earlier one.
func Register(r Rule) {
	mu.Lock()
	defer mu.Unlock()
	key := strings.ToUpper(strings.TrimSpace(r.ID))
	if idx, ok := ruleIndex[key]; ok {
		registry[idx] = r
		return
	}
	registry = append(registry, r)
	ruleIndex[key] = len(registry) - 1
}

// List returns the enabled rules sorted by ID.
func List() []Rule {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Rule, 0, len(registry))
	for _, r := range registry {
		if rsettings.Disabled[strings.ToUpper(r.ID)] {
			continue
		}
		if !configFor(rsettings, r.ID).Active() {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Get returns a rule by ID if registered.
func Get(id string) (Rule, bool) {
	mu.RLock()
	defer mu.RUnlock()
	idx, ok := ruleIndex[strings.ToUpper(strings.TrimSpace(id))]
	if !ok || idx < 0 || idx >= len(registry) {
		return Rule{}, false
	}
	return registry[idx], true
}

type boundRule struct {
	id      string
	visitor TypeDeclVisitor
}

// Visitors builds one visitor per enabled rule from the current settings.
func Visitors() []TypeDeclVisitor {
	bs := bind(rsettings)
	out := make([]TypeDeclVisitor, 0, len(bs))
	for _, b := range bs {
		out = append(out, b.visitor)
	}
	return out
}

func bind(s Settings) []boundRule {
	var out []boundRule
	for _, r := range List() {
		if r.New == nil {
			continue
		}
		out = append(out, boundRule{id: r.ID, visitor: r.New(configFor(s, r.ID))})
	}
	return out
}

// Visit dispatches every declaration of unit, in source order, to each visitor.
func Visit(unit *ir.Unit, visitors []TypeDeclVisitor, rep Reporter) {
	for i := range unit.Decls {
		for _, v := range visitors {
			v.OnTypeDeclaration(&unit.Decls[i], rep)
		}
	}
}

// Evaluate runs every enabled rule over all units of run and returns the
// findings with run-unique IDs in a stable order.
func Evaluate(run *ir.Run) []ir.Finding {
	s := rsettings
	bound := bind(s)

	results := make([][]ir.Finding, len(run.Units))
	var g errgroup.Group
	g.SetLimit(s.Workers)
	for i := range run.Units {
		unit := &run.Units[i]
		g.Go(func() error {
			var c Collector
			for j := range unit.Decls {
				for _, b := range bound {
					b.visitor.OnTypeDeclaration(&unit.Decls[j], &c)
				}
			}
			results[i] = c.Findings()
			return nil
		})
	}
	_ = g.Wait()

	var all []ir.Finding
	for _, fs := range results {
		all = append(all, fs...)
	}
	assignIDs(all)

	// Stable order for reproducible outputs
	sort.SliceStable(all, func(i, j int) bool {
		a, b := all[i].Entity.Location, all[j].Entity.Location
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		return all[i].RuleID < all[j].RuleID
	})
	return all
}

func assignIDs(all []ir.Finding) {
	seen := make(map[string]struct{})
	seq := 0
	put := func(id string) bool {
		if _, ok := seen[id]; ok {
			return false
		}
		seen[id] = struct{}{}
		return true
	}
	for k := range all {
		f := &all[k]
		id := f.ID
		if id == "" {
			id = makeID(f.RuleID, f.Entity.Location, f.Message)
		}
		if !put(id) {
			// Assign a fresh, run-local unique id
			for {
				seq++
				candidate := fmt.Sprintf("%s-%06d", f.RuleID, seq)
				if put(candidate) {
					id = candidate
					break
				}
			}
		}
		f.ID = id
	}
}

func makeID(ruleID string, loc ir.Location, message string) string {
	data := fmt.Sprintf("%s|%s|%d|%d|%s", ruleID, loc.File, loc.Line, loc.Column, message)
	sum := crc32.ChecksumIEEE([]byte(data))
	return fmt.Sprintf("%s-%08x", ruleID, sum)
}
