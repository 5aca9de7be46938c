package storage

import (
	"database/sql"
	"fmt"
	"time"
)

type Waiver struct {
	ID         int64      `json:"id"`
	RuleID     string     `json:"rule_id"`
	File       string     `json:"file,omitempty"`
	Decl       string     `json:"decl,omitempty"`
	PatternSub string     `json:"pattern_sub,omitempty"`
	Reason     string     `json:"reason"`
	ExpiresAt  time.Time  `json:"expires_at"`
	CreatedBy  string     `json:"created_by"`
	CreatedAt  time.Time  `json:"created_at"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
}

// WaiverSpec holds the caller supplied fields of a new waiver.
type WaiverSpec struct {
	RuleID     string
	File       string
	Decl       string
	PatternSub string
	Reason     string
	ExpiresAt  time.Time
}

func (db *DB) CreateWaiver(w WaiverSpec, createdBy string) (int64, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := db.conn.Exec(`
INSERT INTO waivers(rule_id, file, decl, pattern_sub, reason, expires_at, created_by, created_at)
VALUES(?,?,?,?,?,?,?,?)`,
		w.RuleID, nz(w.File), nz(w.Decl), nz(w.PatternSub), w.Reason, w.ExpiresAt.UTC().Format(time.RFC3339Nano), createdBy, now)
	if err != nil {
		return 0, fmt.Errorf("create waiver: %w", err)
	}
	return res.LastInsertId()
}

// RevokeWaiver marks a waiver revoked; the revoker is recorded in the audit log by the caller.
func (db *DB) RevokeWaiver(id int64) error {
	return execOne(db.conn, `UPDATE waivers SET revoked_at=? WHERE id=? AND revoked_at IS NULL`,
		time.Now().UTC().Format(time.RFC3339Nano), id)
}

func (db *DB) ListWaivers(activeOnly bool) ([]Waiver, error) {
	q := `
SELECT id, rule_id, COALESCE(file,''), COALESCE(decl,''), COALESCE(pattern_sub,''),
       reason, expires_at, created_by, created_at, revoked_at
FROM waivers`
	args := []any{}
	if activeOnly {
		q += ` WHERE (revoked_at IS NULL) AND (expires_at > ?)`
		args = append(args, time.Now().UTC().Format(time.RFC3339Nano))
	}
	q += ` ORDER BY id DESC`
	rows, err := db.conn.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Waiver
	for rows.Next() {
		var (
			w           Waiver
			exp, ca, ra sql.NullString
		)
		if err := rows.Scan(&w.ID, &w.RuleID, &w.File, &w.Decl, &w.PatternSub, &w.Reason, &exp, &w.CreatedBy, &ca, &ra); err != nil {
			return nil, err
		}
		if t, ok := parseTS(exp); ok {
			w.ExpiresAt = t
		}
		if t, ok := parseTS(ca); ok {
			w.CreatedAt = t
		}
		if t, ok := parseTS(ra); ok {
			w.RevokedAt = &t
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func parseTS(s sql.NullString) (time.Time, bool) {
	if !s.Valid {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, s.String)
	return t, err == nil
}

func nz(s string) any {
	if s == "" {
		return nil
	}
	return s
}
