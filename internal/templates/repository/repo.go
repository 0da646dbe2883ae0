package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/docmerge-svc/docmerge-backend/internal/templates/domain"
)

// TemplateRepository provides persistence operations for templates. Template
// metadata and file content are read separately so the content path can be
// served from the cache layer.
type TemplateRepository struct {
	db *pgxpool.Pool

	// restrictGroups enables group-scoped visibility: a template is
	// visible when its group is NULL or among the caller's groups.
	restrictGroups bool
}

func New(db *pgxpool.Pool, restrictGroups bool) *TemplateRepository {
	return &TemplateRepository{db: db, restrictGroups: restrictGroups}
}

const templateColumns = `slug, description, engine, "group", file_name, octet_length(content), created_at, updated_at`

func scanTemplate(row pgx.Row) (*domain.Template, error) {
	var t domain.Template
	err := row.Scan(&t.Slug, &t.Description, &t.Engine, &t.Group, &t.FileName, &t.FileSize, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts a new template.
func (r *TemplateRepository) Create(ctx context.Context, t *domain.Template) (*domain.Template, error) {
	const q = `
INSERT INTO templates (slug, description, engine, "group", file_name, content)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + templateColumns + `;
`
	created, err := scanTemplate(r.db.QueryRow(ctx, q, t.Slug, t.Description, t.Engine, t.Group, t.FileName, t.Content))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrTemplateAlreadyExists
		}
		return nil, fmt.Errorf("insert template: %w", err)
	}
	return created, nil
}

// GetBySlug returns the template with the given slug visible to the caller.
func (r *TemplateRepository) GetBySlug(ctx context.Context, slug string, groups []string) (*domain.Template, error) {
	q := `SELECT ` + templateColumns + ` FROM templates WHERE slug = $1`
	args := []any{slug}
	if r.restrictGroups {
		q += ` AND ("group" IS NULL OR "group" = ANY($2))`
		args = append(args, groups)
	}

	t, err := scanTemplate(r.db.QueryRow(ctx, q, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get template: %w", err)
	}
	return t, nil
}

// GetByFileName resolves a template by its stored file name, for the raw
// download path.
func (r *TemplateRepository) GetByFileName(ctx context.Context, fileName string, groups []string) (*domain.Template, error) {
	q := `SELECT ` + templateColumns + ` FROM templates WHERE file_name = $1`
	args := []any{fileName}
	if r.restrictGroups {
		q += ` AND ("group" IS NULL OR "group" = ANY($2))`
		args = append(args, groups)
	}

	t, err := scanTemplate(r.db.QueryRow(ctx, q, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get template by file: %w", err)
	}
	return t, nil
}

// Content loads the stored file bytes for a template.
func (r *TemplateRepository) Content(ctx context.Context, slug string) ([]byte, error) {
	const q = `SELECT content FROM templates WHERE slug = $1;`

	var content []byte
	err := r.db.QueryRow(ctx, q, slug).Scan(&content)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get template content: %w", err)
	}
	return content, nil
}

// List returns visible templates matching the filter, ordered by slug.
func (r *TemplateRepository) List(ctx context.Context, filter domain.ListFilter, groups []string) ([]domain.Template, error) {
	q := `SELECT ` + templateColumns + ` FROM templates WHERE 1=1`
	args := []any{}

	if r.restrictGroups {
		args = append(args, groups)
		q += fmt.Sprintf(` AND ("group" IS NULL OR "group" = ANY($%d))`, len(args))
	}
	if filter.Slug != "" {
		args = append(args, filter.Slug)
		q += fmt.Sprintf(` AND slug = $%d`, len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		q += fmt.Sprintf(` AND description ILIKE $%d`, len(args))
	}
	q += ` ORDER BY slug;`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Template, 0, 16)
	for rows.Next() {
		var t domain.Template
		if err := rows.Scan(&t.Slug, &t.Description, &t.Engine, &t.Group, &t.FileName, &t.FileSize, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites the template's metadata and, when t.Content is non-nil,
// its stored file. The visibility filter applies to the pre-update row.
func (r *TemplateRepository) Update(ctx context.Context, t *domain.Template, groups []string) (*domain.Template, error) {
	q := `
UPDATE templates
SET description = $2,
    engine = $3,
    "group" = $4,
    file_name = CASE WHEN $5::bytea IS NULL THEN file_name ELSE $6 END,
    content = COALESCE($5, content),
    updated_at = now()
WHERE slug = $1`
	args := []any{t.Slug, t.Description, t.Engine, t.Group, t.Content, t.FileName}
	if r.restrictGroups {
		q += ` AND ("group" IS NULL OR "group" = ANY($7))`
		args = append(args, groups)
	}
	q += ` RETURNING ` + templateColumns + `;`

	updated, err := scanTemplate(r.db.QueryRow(ctx, q, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update template: %w", err)
	}
	return updated, nil
}

// Delete removes a template.
func (r *TemplateRepository) Delete(ctx context.Context, slug string, groups []string) error {
	q := `DELETE FROM templates WHERE slug = $1`
	args := []any{slug}
	if r.restrictGroups {
		q += ` AND ("group" IS NULL OR "group" = ANY($2))`
		args = append(args, groups)
	}

	tag, err := r.db.Exec(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTemplateNotFound
	}
	return nil
}
