package debt

import "github.com/codewithboateng/namelint/internal/ir"

var (
	FiveMins   = ir.Debt{Mins: 5}
	TenMins    = ir.Debt{Mins: 10}
	TwentyMins = ir.Debt{Mins: 20}
)

// FromMinutes normalises a minute count into days/hours/mins.
func FromMinutes(m int) ir.Debt {
	if m <= 0 {
		return ir.Debt{}
	}
	d := ir.Debt{Days: m / (24 * 60)}
	m %= 24 * 60
	d.Hours = m / 60
	d.Mins = m % 60
	return d
}

// Add returns the normalised sum of a and b.
func Add(a, b ir.Debt) ir.Debt {
	return FromMinutes(a.Minutes() + b.Minutes())
}

// Sum totals the debt of all findings.
func Sum(findings []ir.Finding) ir.Debt {
	total := 0
	for _, f := range findings {
		total += f.Debt.Minutes()
	}
	return FromMinutes(total)
}

// ByRule totals debt per rule id.
func ByRule(findings []ir.Finding) map[string]ir.Debt {
	mins := map[string]int{}
	for _, f := range findings {
		mins[f.RuleID] += f.Debt.Minutes()
	}
	out := make(map[string]ir.Debt, len(mins))
	for id, m := range mins {
		out[id] = FromMinutes(m)
	}
	return out
}
