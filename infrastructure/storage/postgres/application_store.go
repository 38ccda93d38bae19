package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/felixgeelhaar/launchpad/domain/admission"
)

// ApplicationStore is a PostgreSQL-backed implementation of admission.Store.
// The audit trail is stored as a JSONB column; everything the graph and the
// review processor key on is a plain column.
type ApplicationStore struct {
	pool   *pgxpool.Pool
	schema string
}

// NewApplicationStore creates a new PostgreSQL application store.
func NewApplicationStore(pool *pgxpool.Pool, schema string) *ApplicationStore {
	if schema == "" {
		schema = "public"
	}
	return &ApplicationStore{pool: pool, schema: schema}
}

func (s *ApplicationStore) tableName() string {
	return fmt.Sprintf("%s.applications", s.schema)
}

// Save persists a new application. A partial unique index on user_id
// (WHERE status <> 'withdrawn') enforces one active application per user.
func (s *ApplicationStore) Save(ctx context.Context, app *admission.Application) error {
	if app.ID == "" {
		return admission.ErrInvalidID
	}

	audit, err := json.Marshal(app.Audit)
	if err != nil {
		return fmt.Errorf("marshal audit: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, status, review_notes, reviewed_by, reviewed_at, audit, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, s.tableName())

	var reviewedAt *time.Time
	if !app.ReviewedAt.IsZero() {
		reviewedAt = &app.ReviewedAt
	}

	_, err = s.pool.Exec(ctx, query,
		app.ID,
		app.UserID,
		string(app.Status),
		app.ReviewNotes,
		app.ReviewedBy,
		reviewedAt,
		audit,
		app.Version,
		app.CreatedAt,
		app.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return admission.ErrAlreadyApplied
		}
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

// Get retrieves an application by ID.
func (s *ApplicationStore) Get(ctx context.Context, id string) (*admission.Application, error) {
	if id == "" {
		return nil, admission.ErrInvalidID
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, status, review_notes, reviewed_by, reviewed_at, audit, version, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, s.tableName())

	return s.scanOne(s.pool.QueryRow(ctx, query, id))
}

// GetByUser retrieves the user's current non-withdrawn application.
func (s *ApplicationStore) GetByUser(ctx context.Context, userID string) (*admission.Application, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, status, review_notes, reviewed_by, reviewed_at, audit, version, created_at, updated_at
		FROM %s
		WHERE user_id = $1 AND status <> $2
	`, s.tableName())

	return s.scanOne(s.pool.QueryRow(ctx, query, userID, string(admission.StatusWithdrawn)))
}

// Update writes the application only when the stored version matches the
// one the caller read.
func (s *ApplicationStore) Update(ctx context.Context, app *admission.Application) error {
	if app.ID == "" {
		return admission.ErrInvalidID
	}

	audit, err := json.Marshal(app.Audit)
	if err != nil {
		return fmt.Errorf("marshal audit: %w", err)
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET status = $1, review_notes = $2, reviewed_by = $3, reviewed_at = $4, audit = $5, version = $6, updated_at = $7
		WHERE id = $8 AND version = $9
	`, s.tableName())

	var reviewedAt *time.Time
	if !app.ReviewedAt.IsZero() {
		reviewedAt = &app.ReviewedAt
	}

	tag, err := s.pool.Exec(ctx, query,
		string(app.Status),
		app.ReviewNotes,
		app.ReviewedBy,
		reviewedAt,
		audit,
		app.Version,
		app.UpdatedAt,
		app.ID,
		app.Version-1,
	)
	if err != nil {
		return fmt.Errorf("update application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		checkQuery := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, s.tableName())
		if err := s.pool.QueryRow(ctx, checkQuery, app.ID).Scan(&exists); err != nil {
			return fmt.Errorf("check application: %w", err)
		}
		if !exists {
			return admission.ErrNotFound
		}
		return admission.ErrVersionConflict
	}
	return nil
}

// List returns applications matching the filter.
func (s *ApplicationStore) List(ctx context.Context, filter admission.ListFilter) ([]*admission.Application, error) {
	var conditions []string
	var args []any

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, st := range filter.Statuses {
			statuses[i] = string(st)
		}
		args = append(args, statuses)
		conditions = append(conditions, fmt.Sprintf("status = ANY($%d)", len(args)))
	}
	if filter.ReviewedBy != "" {
		args = append(args, filter.ReviewedBy)
		conditions = append(conditions, fmt.Sprintf("reviewed_by = $%d", len(args)))
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, status, review_notes, reviewed_by, reviewed_at, audit, version, created_at, updated_at
		FROM %s
	`, s.tableName())
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var apps []*admission.Application
	for rows.Next() {
		app, err := s.scanRow(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return apps, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *ApplicationStore) scanOne(row pgx.Row) (*admission.Application, error) {
	app, err := s.scanRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, admission.ErrNotFound
		}
		return nil, err
	}
	return app, nil
}

func (s *ApplicationStore) scanRow(row rowScanner) (*admission.Application, error) {
	var app admission.Application
	var status string
	var reviewedAt *time.Time
	var audit []byte

	err := row.Scan(
		&app.ID,
		&app.UserID,
		&status,
		&app.ReviewNotes,
		&app.ReviewedBy,
		&reviewedAt,
		&audit,
		&app.Version,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	app.Status = admission.Status(status)
	if reviewedAt != nil {
		app.ReviewedAt = *reviewedAt
	}
	if len(audit) > 0 {
		if err := json.Unmarshal(audit, &app.Audit); err != nil {
			return nil, fmt.Errorf("unmarshal audit: %w", err)
		}
	}
	return &app, nil
}
