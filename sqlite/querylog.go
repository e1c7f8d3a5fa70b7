package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/sitesearch"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ sitesearch.QueryLog = (*QueryLogService)(nil)

// QueryLogService implements sitesearch.QueryLog using SQLite.
type QueryLogService struct {
	db *DB
}

// NewQueryLogService creates a new QueryLogService.
func NewQueryLogService(db *DB) *QueryLogService {
	return &QueryLogService{db: db}
}

// RecordQuery stores a settled query.
func (s *QueryLogService) RecordQuery(ctx context.Context, entry *sitesearch.QueryLogEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	entry.ID = uuid.New().String()
	entry.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO queries (id, session_id, term, page, status, results, total_pages, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.SessionID, entry.Term, entry.Page, entry.Status.String(),
		entry.Results, entry.TotalPages, formatTime(entry.CreatedAt))

	return err
}

// FindQueries retrieves recorded queries matching the filter, newest first.
func (s *QueryLogService) FindQueries(ctx context.Context, filter sitesearch.QueryLogFilter) ([]*sitesearch.QueryLogEntry, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, session_id, term, page, status, results, total_pages, created_at FROM queries WHERE 1=1")

	if filter.Term != nil {
		query.WriteString(" AND term = ?")
		args = append(args, *filter.Term)
	}
	if filter.SessionID != nil {
		query.WriteString(" AND session_id = ?")
		args = append(args, *filter.SessionID)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*sitesearch.QueryLogEntry
	for rows.Next() {
		var entry sitesearch.QueryLogEntry
		var status, createdAt string

		if err := rows.Scan(&entry.ID, &entry.SessionID, &entry.Term, &entry.Page, &status,
			&entry.Results, &entry.TotalPages, &createdAt); err != nil {
			return nil, err
		}

		if entry.Status, err = sitesearch.ParseStatus(status); err != nil {
			return nil, err
		}
		if entry.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}

		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
