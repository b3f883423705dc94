package usecase_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"go-portfolio-console/internal/domain"
	"go-portfolio-console/internal/usecase"
	"go-portfolio-console/pkg/apperror"
)

// Mock Repositories
type MockPortfolioRepo struct {
	mock.Mock
}

func (m *MockPortfolioRepo) GetAll(ctx context.Context) (domain.PortfolioDocument, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.PortfolioDocument), args.Error(1)
}

func (m *MockPortfolioRepo) GetSection(ctx context.Context, name string) (json.RawMessage, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockPortfolioRepo) UpsertSection(ctx context.Context, name string, payload json.RawMessage) error {
	return m.Called(ctx, name, payload).Error(0)
}

func (m *MockPortfolioRepo) ReplaceAll(ctx context.Context, doc domain.PortfolioDocument) error {
	return m.Called(ctx, doc).Error(0)
}

type MockSkillsRepo struct {
	mock.Mock
}

func (m *MockSkillsRepo) GetStructure(ctx context.Context) (domain.SkillsStructure, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.SkillsStructure), args.Error(1)
}

func (m *MockSkillsRepo) GetCategorization(ctx context.Context) (domain.CategorizationSettings, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.CategorizationSettings), args.Error(1)
}

func (m *MockSkillsRepo) SaveCategorization(ctx context.Context, settings domain.CategorizationSettings) error {
	return m.Called(ctx, settings).Error(0)
}

func TestReplaceSectionValidation(t *testing.T) {
	mockRepo := new(MockPortfolioRepo)
	uc := usecase.NewPortfolioUsecase(mockRepo)

	t.Run("Should reject invalid payload without touching the repo", func(t *testing.T) {
		err := uc.ReplaceSection(context.Background(), domain.SectionPersonalInfo, json.RawMessage(`{"title":"Engineer"}`))
		assert.Error(t, err)

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
		assert.NotEmpty(t, appErr.Details)
		mockRepo.AssertNotCalled(t, "UpsertSection", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should reject unknown section names", func(t *testing.T) {
		err := uc.ReplaceSection(context.Background(), "resume", json.RawMessage(`{}`))
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})

	t.Run("Should store a valid payload", func(t *testing.T) {
		payload := json.RawMessage(`{"name":"Dana","title":"Engineer"}`)
		mockRepo.On("UpsertSection", mock.Anything, domain.SectionPersonalInfo, payload).Return(nil).Once()

		err := uc.ReplaceSection(context.Background(), domain.SectionPersonalInfo, payload)
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestGetSection(t *testing.T) {
	mockRepo := new(MockPortfolioRepo)
	uc := usecase.NewPortfolioUsecase(mockRepo)

	t.Run("Should map missing rows to 404", func(t *testing.T) {
		mockRepo.On("GetSection", mock.Anything, domain.SectionAbout).Return(nil, domain.ErrSectionNotFound).Once()

		_, err := uc.GetSection(context.Background(), domain.SectionAbout)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})
}

func TestAuthLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	assert.NoError(t, err)

	uc := usecase.NewAuthUsecase(string(hash), "test-secret", time.Hour)

	t.Run("Should reject a wrong password with a generic message", func(t *testing.T) {
		_, err := uc.Login(context.Background(), "letmein")
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 401, appErr.Code)
		assert.Equal(t, "Invalid password", appErr.Message)
	})

	t.Run("Should issue a signed token with an expiry claim", func(t *testing.T) {
		token, err := uc.Login(context.Background(), "hunter2")
		assert.NoError(t, err)

		parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		assert.NoError(t, err)
		assert.True(t, parsed.Valid)

		exp, err := parsed.Claims.GetExpirationTime()
		assert.NoError(t, err)
		assert.True(t, exp.After(time.Now()))
	})

	t.Run("Should reject when no hash is configured", func(t *testing.T) {
		empty := usecase.NewAuthUsecase("", "test-secret", time.Hour)
		_, err := empty.Login(context.Background(), "anything")
		assert.Error(t, err)
	})
}

func TestSkillsConfigure(t *testing.T) {
	mockSkills := new(MockSkillsRepo)
	mockPortfolio := new(MockPortfolioRepo)
	uc := usecase.NewSkillsUsecase(mockSkills, mockPortfolio)

	t.Run("Should reject an out-of-range threshold", func(t *testing.T) {
		err := uc.Configure(context.Background(), domain.CategorizationSettings{
			UseSubcategories:        true,
			MinSkillsForSubcategory: 0,
		})
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
		mockSkills.AssertNotCalled(t, "SaveCategorization", mock.Anything, mock.Anything)
	})

	t.Run("Should normalize nil overrides before saving", func(t *testing.T) {
		mockSkills.On("SaveCategorization", mock.Anything, mock.MatchedBy(func(s domain.CategorizationSettings) bool {
			return s.CategoryOverrides != nil
		})).Return(nil).Once()

		err := uc.Configure(context.Background(), domain.CategorizationSettings{
			UseSubcategories:        true,
			MinSkillsForSubcategory: 3,
		})
		assert.NoError(t, err)
		mockSkills.AssertExpectations(t)
	})

	t.Run("Should map missing settings to 404", func(t *testing.T) {
		mockSkills.On("GetCategorization", mock.Anything).Return(domain.CategorizationSettings{}, domain.ErrSettingsNotFound).Once()

		_, err := uc.Categorization(context.Background())
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})
}

func TestSkillsFlattened(t *testing.T) {
	mockSkills := new(MockSkillsRepo)
	mockPortfolio := new(MockPortfolioRepo)
	uc := usecase.NewSkillsUsecase(mockSkills, mockPortfolio)

	t.Run("Should collapse hierarchical categories", func(t *testing.T) {
		payload := json.RawMessage(`{"Languages":{"Systems":[{"name":"Go","level":"advanced"}],"Web":[{"name":"TypeScript","level":"intermediate"}]}}`)
		mockPortfolio.On("GetSection", mock.Anything, domain.SectionSkills).Return(payload, nil).Once()

		flat, err := uc.Flattened(context.Background())
		assert.NoError(t, err)

		langs, ok := flat.Get("Languages")
		assert.True(t, ok)
		assert.Equal(t, domain.CategoryFlat, langs.Kind)
		assert.Len(t, langs.Skills, 2)
	})

	t.Run("Should return an empty map when no skills are stored", func(t *testing.T) {
		mockPortfolio.On("GetSection", mock.Anything, domain.SectionSkills).Return(nil, domain.ErrSectionNotFound).Once()

		flat, err := uc.Flattened(context.Background())
		assert.NoError(t, err)
		assert.Len(t, flat, 0)
	})
}
