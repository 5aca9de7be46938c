package storage

import (
	"database/sql"
	"errors"
	"time"

	"github.com/codewithboateng/namelint/internal/debt"
	"github.com/codewithboateng/namelint/internal/ir"
)

// ListRuns returns a lightweight list of runs with counts.
func (db *DB) ListRuns(limit, offset int) ([]RunRow, error) {
	const q = `
		SELECT r.id, r.started_at, r.source, r.ir_version,
		       (SELECT COUNT(1) FROM findings f WHERE f.run_id = r.id) AS findings,
		       (SELECT COALESCE(SUM(f.debt_mins), 0) FROM findings f WHERE f.run_id = r.id) AS debt
		  FROM runs r
		 ORDER BY r.started_at DESC, r.id DESC
		 LIMIT ? OFFSET ?`
	rows, err := db.conn.Query(q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var rr RunRow
		var startedAtStr string
		var mins int
		if err := rows.Scan(&rr.ID, &startedAtStr, &rr.Source, &rr.IRVersion, &rr.Findings, &mins); err != nil {
			return nil, err
		}
		// Parse RFC3339Nano first, fallback to RFC3339
		if t, err := time.Parse(time.RFC3339Nano, startedAtStr); err == nil {
			rr.StartedAt = t
		} else if t2, err2 := time.Parse(time.RFC3339, startedAtStr); err2 == nil {
			rr.StartedAt = t2
		}
		rr.Debt = debt.FromMinutes(mins).String()
		out = append(out, rr)
	}
	return out, rows.Err()
}

// ListFindings returns findings for a run, optionally restricted to one rule.
func (db *DB) ListFindings(runID, ruleID string) ([]ir.Finding, error) {
	const q = `
		SELECT id, rule_id, severity, debt_mins, file, line, col, entity, message
		  FROM findings
		 WHERE run_id = ?
		   AND (? = '' OR rule_id = ? COLLATE NOCASE)
		 ORDER BY file, line, col, rule_id, id`
	rows, err := db.conn.Query(q, runID, ruleID, ruleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ir.Finding
	for rows.Next() {
		var f ir.Finding
		var mins int
		if err := rows.Scan(&f.ID, &f.RuleID, &f.Severity, &mins, &f.Entity.Location.File,
			&f.Entity.Location.Line, &f.Entity.Location.Column, &f.Entity.Name, &f.Message); err != nil {
			return nil, err
		}
		f.Debt = debt.FromMinutes(mins)
		out = append(out, f)
	}
	return out, rows.Err()
}

func (db *DB) HasRun(id string) (bool, error) {
	const q = `SELECT 1 FROM runs WHERE id = ? LIMIT 1`
	var one int
	err := db.conn.QueryRow(q, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}
