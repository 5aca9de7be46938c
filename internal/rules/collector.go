package rules

import (
	"sync"

	"github.com/codewithboateng/namelint/internal/ir"
)

// Collector is a Reporter that accumulates findings. It is safe for concurrent use.
type Collector struct {
	mu       sync.Mutex
	findings []ir.Finding
}

func (c *Collector) Report(f ir.Finding) {
	c.mu.Lock()
	c.findings = append(c.findings, f)
	c.mu.Unlock()
}

// Findings returns a copy of everything reported so far.
func (c *Collector) Findings() []ir.Finding {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ir.Finding, len(c.findings))
	copy(out, c.findings)
	return out
}

func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.findings)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(f ir.Finding)

func (fn ReporterFunc) Report(f ir.Finding) { fn(f) }
