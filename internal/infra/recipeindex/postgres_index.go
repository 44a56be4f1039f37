package recipeindex

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"github.com/calvarezg/recipe-search/internal/domain/search"
)

// PostgresIndex implements search.RecipeIndex on Postgres with pgvector.
type PostgresIndex struct {
	pool *pgxpool.Pool
}

// NewPostgresIndex constructs the index.
func NewPostgresIndex(pool *pgxpool.Pool) *PostgresIndex {
	return &PostgresIndex{pool: pool}
}

// Search returns the closest recipes ordered by vector distance.
func (r *PostgresIndex) Search(ctx context.Context, vector []float32, limit int) ([]search.RecipeResult, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT title, link, embedding <-> $1 AS distance
		FROM recipes
		ORDER BY embedding <-> $1
		LIMIT $2
	`, pgvector.NewVector(vector), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []search.RecipeResult
	for rows.Next() {
		var result search.RecipeResult
		if err := rows.Scan(&result.Title, &result.Link, &result.Score); err != nil {
			return nil, err
		}
		out = append(out, result)
	}
	return out, rows.Err()
}

// Upsert inserts or refreshes recipe rows keyed by link.
func (r *PostgresIndex) Upsert(ctx context.Context, docs []search.Document, vectors [][]float32) error {
	if len(docs) != len(vectors) {
		return errVectorCountMismatch
	}
	batch := &pgx.Batch{}
	for i, doc := range docs {
		batch.Queue(`
			INSERT INTO recipes (recipe_id, title, link, description, embedding)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (link) DO UPDATE
			SET recipe_id = EXCLUDED.recipe_id,
			    title = EXCLUDED.title,
			    description = EXCLUDED.description,
			    embedding = EXCLUDED.embedding
		`, doc.ID, doc.Title, doc.Link, doc.Description, pgvector.NewVector(vectors[i]))
	}
	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()
	for range docs {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// Count reports how many recipes are indexed.
func (r *PostgresIndex) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM recipes`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

var _ search.RecipeIndex = (*PostgresIndex)(nil)
