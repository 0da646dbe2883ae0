package integration

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docmerge-svc/docmerge-backend/internal/templates/domain"
	"github.com/docmerge-svc/docmerge-backend/internal/templates/repository"
)

// setupTestPostgres connects to the test database.
// Skips the test when TEST_DB_DSN is not set.
func setupTestPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set, skipping PostgreSQL integration test")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	require.NoError(t, pool.Ping(context.Background()))

	t.Cleanup(pool.Close)
	return pool
}

func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(), `
CREATE TABLE IF NOT EXISTS templates (
    slug        TEXT PRIMARY KEY,
    description TEXT NOT NULL DEFAULT '',
    engine      TEXT NOT NULL,
    "group"     TEXT,
    file_name   TEXT NOT NULL,
    content     BYTEA NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`)
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM templates WHERE slug LIKE 'it-%';`)
	})
}

func TestTemplateRepository_CRUD(t *testing.T) {
	pool := setupTestPostgres(t)
	createSchema(t, pool)
	ctx := context.Background()

	repo := repository.New(pool, false)

	created, err := repo.Create(ctx, &domain.Template{
		Slug:        "it-letter",
		Description: "integration test letter",
		Engine:      "html-template",
		FileName:    "letter.html",
		Content:     []byte("<p>{{ name }}</p>"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(len("<p>{{ name }}</p>")), created.FileSize)

	_, err = repo.Create(ctx, &domain.Template{
		Slug: "it-letter", Engine: "html-template", FileName: "x.html", Content: []byte("x"),
	})
	assert.ErrorIs(t, err, domain.ErrTemplateAlreadyExists)

	got, err := repo.GetBySlug(ctx, "it-letter", nil)
	require.NoError(t, err)
	assert.Equal(t, "letter.html", got.FileName)

	content, err := repo.Content(ctx, "it-letter")
	require.NoError(t, err)
	assert.Equal(t, []byte("<p>{{ name }}</p>"), content)

	byFile, err := repo.GetByFileName(ctx, "letter.html", nil)
	require.NoError(t, err)
	assert.Equal(t, "it-letter", byFile.Slug)

	listed, err := repo.List(ctx, domain.ListFilter{Search: "integration"}, nil)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "it-letter", listed[0].Slug)

	got.Description = "updated"
	_, err = repo.Update(ctx, got, nil)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, "it-letter", nil))
	_, err = repo.GetBySlug(ctx, "it-letter", nil)
	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)
}

func TestTemplateRepository_GroupVisibility(t *testing.T) {
	pool := setupTestPostgres(t)
	createSchema(t, pool)
	ctx := context.Background()

	restricted := repository.New(pool, true)
	group := "it-finance"

	_, err := restricted.Create(ctx, &domain.Template{
		Slug:     "it-invoice",
		Engine:   "html-template",
		Group:    &group,
		FileName: "invoice.html",
		Content:  []byte("<p>{{ total }}</p>"),
	})
	require.NoError(t, err)

	_, err = restricted.GetBySlug(ctx, "it-invoice", []string{"it-hr"})
	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)

	got, err := restricted.GetBySlug(ctx, "it-invoice", []string{"it-finance"})
	require.NoError(t, err)
	assert.Equal(t, "it-invoice", got.Slug)

	// templates without a group stay visible to everyone
	_, err = restricted.Create(ctx, &domain.Template{
		Slug: "it-public", Engine: "html-template", FileName: "public.html", Content: []byte("x"),
	})
	require.NoError(t, err)

	_, err = restricted.GetBySlug(ctx, "it-public", nil)
	assert.NoError(t, err)
}
