package usecase

import (
	"context"
	"encoding/json"
	"errors"

	"go-portfolio-console/internal/domain"
	"go-portfolio-console/internal/skills"
	"go-portfolio-console/pkg/apperror"
)

type skillsUsecase struct {
	skillsRepo    domain.SkillsRepository
	portfolioRepo domain.PortfolioRepository
}

func NewSkillsUsecase(skillsRepo domain.SkillsRepository, portfolioRepo domain.PortfolioRepository) domain.SkillsUsecase {
	return &skillsUsecase{skillsRepo: skillsRepo, portfolioRepo: portfolioRepo}
}

func (u *skillsUsecase) Structure(ctx context.Context) (domain.SkillsStructure, error) {
	structure, err := u.skillsRepo.GetStructure(ctx)
	if err != nil {
		return domain.SkillsStructure{}, err
	}
	if len(structure.Categories) == 0 {
		return domain.DefaultSkillsStructure(), nil
	}
	return structure, nil
}

// Flattened serves the skills section with hierarchical categories collapsed,
// for consumers that predate subcategories.
func (u *skillsUsecase) Flattened(ctx context.Context) (domain.SkillCategoryMap, error) {
	payload, err := u.portfolioRepo.GetSection(ctx, domain.SectionSkills)
	if err != nil {
		if errors.Is(err, domain.ErrSectionNotFound) {
			return domain.SkillCategoryMap{}, nil
		}
		return nil, err
	}
	var categories domain.SkillCategoryMap
	if err := json.Unmarshal(payload, &categories); err != nil {
		return nil, apperror.Internal(err)
	}
	return skills.Flatten(categories), nil
}

func (u *skillsUsecase) Categorization(ctx context.Context) (domain.CategorizationSettings, error) {
	settings, err := u.skillsRepo.GetCategorization(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrSettingsNotFound) {
			return domain.CategorizationSettings{}, apperror.NotFound("No categorization settings stored")
		}
		return domain.CategorizationSettings{}, err
	}
	return settings, nil
}

func (u *skillsUsecase) Configure(ctx context.Context, settings domain.CategorizationSettings) error {
	if err := domain.ValidateStruct(settings); err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return apperror.Validation(verr.Messages)
		}
		return apperror.BadRequest(err.Error())
	}
	if settings.CategoryOverrides == nil {
		settings.CategoryOverrides = map[string]domain.CategorizationMode{}
	}
	return u.skillsRepo.SaveCategorization(ctx, settings)
}
