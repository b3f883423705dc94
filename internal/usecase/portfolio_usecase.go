package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go-portfolio-console/internal/domain"
	"go-portfolio-console/pkg/apperror"
)

type portfolioUsecase struct {
	repo domain.PortfolioRepository
}

func NewPortfolioUsecase(repo domain.PortfolioRepository) domain.PortfolioUsecase {
	return &portfolioUsecase{repo: repo}
}

func (u *portfolioUsecase) GetDocument(ctx context.Context) (domain.PortfolioDocument, error) {
	return u.repo.GetAll(ctx)
}

func (u *portfolioUsecase) GetSection(ctx context.Context, name string) (json.RawMessage, error) {
	if !domain.KnownSection(name) {
		return nil, apperror.NotFound(fmt.Sprintf("Unknown section %q", name))
	}
	payload, err := u.repo.GetSection(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrSectionNotFound) {
			return nil, apperror.NotFound(fmt.Sprintf("Section %q has no data", name))
		}
		return nil, err
	}
	return payload, nil
}

// ReplaceSection validates and stores the full replacement payload for one
// section. The document is patched per section, never merged field by field.
func (u *portfolioUsecase) ReplaceSection(ctx context.Context, name string, payload json.RawMessage) error {
	if !domain.KnownSection(name) {
		return apperror.NotFound(fmt.Sprintf("Unknown section %q", name))
	}
	if err := domain.ValidateSection(name, payload); err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return apperror.Validation(verr.Messages)
		}
		return apperror.BadRequest(err.Error())
	}
	return u.repo.UpsertSection(ctx, name, payload)
}

func (u *portfolioUsecase) ReplaceDocument(ctx context.Context, doc domain.PortfolioDocument) error {
	var messages []string
	for name, payload := range doc {
		if !domain.KnownSection(name) {
			messages = append(messages, fmt.Sprintf("unknown section %q", name))
			continue
		}
		if err := domain.ValidateSection(name, payload); err != nil {
			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				messages = append(messages, verr.Messages...)
			} else {
				messages = append(messages, err.Error())
			}
		}
	}
	if len(messages) > 0 {
		return apperror.Validation(messages)
	}
	return u.repo.ReplaceAll(ctx, doc)
}

// Reset reinstalls the starter document, discarding all current content.
func (u *portfolioUsecase) Reset(ctx context.Context) error {
	return u.repo.ReplaceAll(ctx, domain.DefaultDocument())
}
