package history

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// Selection is one recorded pick
type Selection struct {
	ID        int64
	Timestamp time.Time
	Picker    string
	Items     []string
}

// SettingCount pairs an identifier with how often it has been picked
type SettingCount struct {
	Name  string
	Count int
}

// Recorder reads and writes selection history
type Recorder struct {
	db *sql.DB
}

// NewRecorder creates a Recorder on an open history database
func NewRecorder(db *sql.DB) *Recorder {
	return &Recorder{db: db}
}

// Record stores one confirmed, non-empty selection. Items are stored
// with their given positions.
func (r *Recorder) Record(ctx context.Context, picker string, items []string) error {
	if len(items) == 0 {
		return fmt.Errorf("refusing to record empty selection")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO selections (timestamp, picker, item_count) VALUES (?, ?, ?)",
		time.Now().Unix(), picker, len(items))
	if err != nil {
		return fmt.Errorf("failed to insert selection: %w", err)
	}

	selectionID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get selection id: %w", err)
	}

	for pos, name := range items {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO selection_items (selection_id, position, name) VALUES (?, ?, ?)",
			selectionID, pos, name)
		if err != nil {
			return fmt.Errorf("failed to insert selection item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit selection: %w", err)
	}

	slog.Debug("selection recorded", "selection_id", selectionID, "items", len(items), "picker", picker)
	return nil
}

// Recent returns recorded selections, newest first
func (r *Recorder) Recent(ctx context.Context, filter QueryFilter) ([]Selection, error) {
	whereClause, args, err := filter.BuildWhereClause(time.Now())
	if err != nil {
		return nil, err
	}

	query := "SELECT id, timestamp, picker FROM selections"
	if whereClause != "" {
		query += " WHERE " + whereClause
	}
	query += " ORDER BY timestamp DESC, id DESC LIMIT ?"
	args = append(args, filter.EffectiveLimit())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query selections: %w", err)
	}
	defer rows.Close()

	var selections []Selection
	for rows.Next() {
		var sel Selection
		var ts int64
		if err := rows.Scan(&sel.ID, &ts, &sel.Picker); err != nil {
			return nil, fmt.Errorf("failed to scan selection: %w", err)
		}
		sel.Timestamp = time.Unix(ts, 0)
		selections = append(selections, sel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read selections: %w", err)
	}

	for i := range selections {
		items, err := r.selectionItems(ctx, selections[i].ID)
		if err != nil {
			return nil, err
		}
		selections[i].Items = items
	}

	return selections, nil
}

// TopSettings returns the most frequently picked identifiers
func (r *Recorder) TopSettings(ctx context.Context, filter QueryFilter) ([]SettingCount, error) {
	whereClause, args, err := filter.BuildWhereClause(time.Now())
	if err != nil {
		return nil, err
	}

	query := `SELECT i.name, COUNT(*) AS uses
FROM selection_items i
JOIN selections s ON s.id = i.selection_id`
	if whereClause != "" {
		query += " WHERE " + whereClause
	}
	query += `
GROUP BY i.name
ORDER BY uses DESC, i.name ASC
LIMIT ?`
	args = append(args, filter.EffectiveLimit())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query top settings: %w", err)
	}
	defer rows.Close()

	var counts []SettingCount
	for rows.Next() {
		var sc SettingCount
		if err := rows.Scan(&sc.Name, &sc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan setting count: %w", err)
		}
		counts = append(counts, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read setting counts: %w", err)
	}

	return counts, nil
}

// selectionItems loads the items of one selection in stored order
func (r *Recorder) selectionItems(ctx context.Context, selectionID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT name FROM selection_items WHERE selection_id = ? ORDER BY position ASC",
		selectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query selection items: %w", err)
	}
	defer rows.Close()

	var items []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan selection item: %w", err)
		}
		items = append(items, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read selection items: %w", err)
	}

	return items, nil
}
