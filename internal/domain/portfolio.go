package domain

import (
	"context"
	"encoding/json"
	"errors"
)

// Section names are the fixed top-level keys of the portfolio document. The
// set is extensible server-side by adding a name here; consumers treat any
// unknown key as opaque payload.
const (
	SectionPersonalInfo = "personalInfo"
	SectionAbout        = "about"
	SectionSkills       = "skills"
	SectionExperience   = "experience"
	SectionProjects     = "projects"
	SectionContact      = "contact"
)

var SectionNames = []string{
	SectionPersonalInfo,
	SectionAbout,
	SectionSkills,
	SectionExperience,
	SectionProjects,
	SectionContact,
}

var (
	ErrSectionNotFound  = errors.New("section not found")
	ErrSettingsNotFound = errors.New("categorization settings not found")
)

func KnownSection(name string) bool {
	for _, s := range SectionNames {
		if s == name {
			return true
		}
	}
	return false
}

// PortfolioDocument maps section names to their JSON payloads. The whole
// document is replaced or section-patched, never partially mutated in place
// from outside the data store.
type PortfolioDocument map[string]json.RawMessage

func (d PortfolioDocument) Clone() PortfolioDocument {
	if d == nil {
		return nil
	}
	out := make(PortfolioDocument, len(d))
	for name, payload := range d {
		cp := make(json.RawMessage, len(payload))
		copy(cp, payload)
		out[name] = cp
	}
	return out
}

type PersonalInfo struct {
	Name     string `json:"name" validate:"required"`
	Title    string `json:"title"`
	Location string `json:"location"`
	Bio      string `json:"bio"`
}

type About struct {
	Content string `json:"content" validate:"required"`
}

// Job identity is positional. There is no stable id, so reordering or
// concurrent edits can silently merge the wrong records; the admin console is
// a single-editor tool and accepts that.
type Job struct {
	Title        string   `json:"title" validate:"required"`
	Company      string   `json:"company" validate:"required"`
	Location     string   `json:"location"`
	City         string   `json:"city"`
	Country      string   `json:"country"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	IsCurrent    bool     `json:"isCurrent"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements"`
	Skills       []string `json:"skills"`
}

type Project struct {
	Name         string   `json:"name" validate:"required"`
	Description  string   `json:"description" validate:"required"`
	Technologies []string `json:"technologies"`
	Link         string   `json:"link" validate:"omitempty,url"`
	GitHub       string   `json:"github" validate:"omitempty,url"`
}

type SocialLink struct {
	Platform string `json:"platform" validate:"required"`
	URL      string `json:"url" validate:"required,url"`
}

type Contact struct {
	Email       string       `json:"email" validate:"required,email"`
	Phone       string       `json:"phone"`
	SocialLinks []SocialLink `json:"socialLinks" validate:"dive"`
}

type PortfolioRepository interface {
	GetAll(ctx context.Context) (PortfolioDocument, error)
	GetSection(ctx context.Context, name string) (json.RawMessage, error)
	UpsertSection(ctx context.Context, name string, payload json.RawMessage) error
	ReplaceAll(ctx context.Context, doc PortfolioDocument) error
}

type PortfolioUsecase interface {
	GetDocument(ctx context.Context) (PortfolioDocument, error)
	GetSection(ctx context.Context, name string) (json.RawMessage, error)
	ReplaceSection(ctx context.Context, name string, payload json.RawMessage) error
	ReplaceDocument(ctx context.Context, doc PortfolioDocument) error
	Reset(ctx context.Context) error
}

type AuthUsecase interface {
	Login(ctx context.Context, password string) (string, error)
}
