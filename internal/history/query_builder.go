package history

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tj/go-naturaldate"
)

const defaultLimit = 20

// QueryFilter narrows history queries by time and size
type QueryFilter struct {
	Days  int    // Convenience: last N days
	Since string // Natural language lower bound ("yesterday", "2 days ago")
	Limit int    // Maximum results (default: 20)
}

// TimeBounds converts the filter's time options to Unix timestamps.
// Since takes priority over Days; with neither set there is no lower
// bound.
func (q *QueryFilter) TimeBounds(now time.Time) (startUnix, endUnix int64, err error) {
	endUnix = now.Unix()

	if q.Since != "" {
		start, parseErr := naturaldate.Parse(q.Since, now)
		if parseErr != nil {
			slog.Warn("failed to parse natural language date", "input", q.Since, "error", parseErr)
			return 0, 0, fmt.Errorf("failed to parse date '%s': %w", q.Since, parseErr)
		}
		return start.Unix(), endUnix, nil
	}

	if q.Days > 0 {
		return now.AddDate(0, 0, -q.Days).Unix(), endUnix, nil
	}

	return 0, endUnix, nil
}

// BuildWhereClause constructs the SQL WHERE clause and arguments for
// this filter. Simple string building, matching the schema's
// selections table.
func (q *QueryFilter) BuildWhereClause(now time.Time) (string, []interface{}, error) {
	var clauses []string
	var args []interface{}

	if q.Since != "" || q.Days > 0 {
		startUnix, endUnix, err := q.TimeBounds(now)
		if err != nil {
			return "", nil, err
		}

		clauses = append(clauses, "timestamp >= ?")
		args = append(args, startUnix)
		clauses = append(clauses, "timestamp <= ?")
		args = append(args, endUnix)
	}

	whereClause := ""
	if len(clauses) > 0 {
		whereClause = strings.Join(clauses, " AND ")
	}

	slog.Debug("built where clause", "clause", whereClause, "arg_count", len(args))

	return whereClause, args, nil
}

// EffectiveLimit returns the row limit to apply for this filter
func (q *QueryFilter) EffectiveLimit() int {
	if q.Limit > 0 {
		return q.Limit
	}
	return defaultLimit
}
