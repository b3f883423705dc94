package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go-portfolio-console/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type portfolioRepository struct {
	db *pgxpool.Pool
}

func NewPortfolioRepository(db *pgxpool.Pool) domain.PortfolioRepository {
	return &portfolioRepository{db: db}
}

func (r *portfolioRepository) GetAll(ctx context.Context) (domain.PortfolioDocument, error) {
	query := `SELECT name, payload FROM portfolio_sections`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load portfolio sections: %w", err)
	}
	defer rows.Close()

	doc := domain.PortfolioDocument{}
	for rows.Next() {
		var name string
		var payload []byte
		if err := rows.Scan(&name, &payload); err != nil {
			return nil, err
		}
		doc[name] = json.RawMessage(payload)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return doc, nil
}

func (r *portfolioRepository) GetSection(ctx context.Context, name string) (json.RawMessage, error) {
	query := `SELECT payload FROM portfolio_sections WHERE name = $1`

	var payload []byte
	err := r.db.QueryRow(ctx, query, name).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSectionNotFound
		}
		return nil, err
	}
	return json.RawMessage(payload), nil
}

func (r *portfolioRepository) UpsertSection(ctx context.Context, name string, payload json.RawMessage) error {
	query := `
		INSERT INTO portfolio_sections (name, payload, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (name) DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()`

	_, err := r.db.Exec(ctx, query, name, []byte(payload))
	return err
}

// ReplaceAll swaps the stored document for the given one inside a single
// transaction so readers never observe a half-written document.
func (r *portfolioRepository) ReplaceAll(ctx context.Context, doc domain.PortfolioDocument) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM portfolio_sections`); err != nil {
		return err
	}

	query := `INSERT INTO portfolio_sections (name, payload, updated_at) VALUES ($1, $2, NOW())`
	for _, name := range domain.SectionNames {
		payload, ok := doc[name]
		if !ok {
			continue
		}
		if _, err := tx.Exec(ctx, query, name, []byte(payload)); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
