package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"go-portfolio-console/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type skillsRepository struct {
	db *pgxpool.Pool
}

func NewSkillsRepository(db *pgxpool.Pool) domain.SkillsRepository {
	return &skillsRepository{db: db}
}

func (r *skillsRepository) GetStructure(ctx context.Context) (domain.SkillsStructure, error) {
	query := `SELECT name, subcategories FROM skill_structure ORDER BY position`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return domain.SkillsStructure{}, err
	}
	defer rows.Close()

	var structure domain.SkillsStructure
	for rows.Next() {
		var cat domain.StructureCategory
		var subs []string
		if err := rows.Scan(&cat.Name, pq.Array(&subs)); err != nil {
			return domain.SkillsStructure{}, err
		}
		cat.Subcategories = subs
		structure.Categories = append(structure.Categories, cat)
	}
	if err := rows.Err(); err != nil {
		return domain.SkillsStructure{}, err
	}
	return structure, nil
}

func (r *skillsRepository) GetCategorization(ctx context.Context) (domain.CategorizationSettings, error) {
	query := `SELECT use_subcategories, min_skills_for_subcategory, overrides FROM categorization_settings WHERE id = 1`

	var settings domain.CategorizationSettings
	var overrides []byte
	err := r.db.QueryRow(ctx, query).Scan(
		&settings.UseSubcategories, &settings.MinSkillsForSubcategory, &overrides,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.CategorizationSettings{}, domain.ErrSettingsNotFound
		}
		return domain.CategorizationSettings{}, err
	}

	settings.CategoryOverrides = map[string]domain.CategorizationMode{}
	if len(overrides) > 0 {
		if err := json.Unmarshal(overrides, &settings.CategoryOverrides); err != nil {
			return domain.CategorizationSettings{}, err
		}
	}
	return settings, nil
}

func (r *skillsRepository) SaveCategorization(ctx context.Context, settings domain.CategorizationSettings) error {
	overrides, err := json.Marshal(settings.CategoryOverrides)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO categorization_settings (id, use_subcategories, min_skills_for_subcategory, overrides, updated_at)
		VALUES (1, $1, $2, $3, NOW())
		ON CONFLICT (id) DO UPDATE SET
			use_subcategories = EXCLUDED.use_subcategories,
			min_skills_for_subcategory = EXCLUDED.min_skills_for_subcategory,
			overrides = EXCLUDED.overrides,
			updated_at = NOW()`

	_, err = r.db.Exec(ctx, query, settings.UseSubcategories, settings.MinSkillsForSubcategory, overrides)
	return err
}
