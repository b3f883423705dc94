// Package skills holds the pure operations over the skills taxonomy: shape
// inspection, flattening and the flat-to-hierarchical conversions used by the
// display layer and the categorization settings editor. Nothing here does I/O.
package skills

import (
	"errors"
	"strings"

	"go-portfolio-console/internal/domain"
)

var (
	ErrNotFlat              = errors.New("category is not flat")
	ErrNotHierarchical      = errors.New("category is not hierarchical")
	ErrEmptySubcategoryName = errors.New("subcategory name is empty")
	ErrDuplicateSubcategory = errors.New("subcategory already exists")
	ErrUnknownSubcategory   = errors.New("subcategory does not exist")
)

// FlattenCategory returns a category's skills as one sequence. Hierarchical
// categories concatenate their subcategories in insertion order.
func FlattenCategory(v domain.CategoryValue) []domain.Skill {
	if !v.IsHierarchical() {
		return append([]domain.Skill(nil), v.Skills...)
	}
	var out []domain.Skill
	for _, sub := range v.Subcategories {
		out = append(out, sub.Skills...)
	}
	return out
}

// Flatten forces every category flat, preserving category order.
func Flatten(m domain.SkillCategoryMap) domain.SkillCategoryMap {
	out := make(domain.SkillCategoryMap, 0, len(m))
	for _, c := range m {
		out = append(out, domain.Category{
			Name:  c.Name,
			Value: domain.FlatCategory(FlattenCategory(c.Value)...),
		})
	}
	return out
}

// AllSkills concatenates every category's skills in category order.
func AllSkills(m domain.SkillCategoryMap) []domain.Skill {
	var out []domain.Skill
	for _, c := range m {
		out = append(out, FlattenCategory(c.Value)...)
	}
	return out
}

// ConvertFlatToHierarchical wraps the entire flat skill list under a single
// new subcategory. The reverse conversion does not exist: a hierarchical
// category never silently becomes flat again.
func ConvertFlatToHierarchical(v domain.CategoryValue, subcategory string) (domain.CategoryValue, error) {
	if v.IsHierarchical() {
		return domain.CategoryValue{}, ErrNotFlat
	}
	if strings.TrimSpace(subcategory) == "" {
		return domain.CategoryValue{}, ErrEmptySubcategoryName
	}
	return domain.HierarchicalCategory(domain.Subcategory{
		Name:   subcategory,
		Skills: append([]domain.Skill(nil), v.Skills...),
	}), nil
}

// AddSubcategory appends an empty subcategory. Duplicate names are rejected
// and the input is returned unchanged.
func AddSubcategory(v domain.CategoryValue, name string) (domain.CategoryValue, error) {
	if !v.IsHierarchical() {
		return v, ErrNotHierarchical
	}
	if strings.TrimSpace(name) == "" {
		return v, ErrEmptySubcategoryName
	}
	if _, exists := v.Subcategory(name); exists {
		return v, ErrDuplicateSubcategory
	}
	subs := append([]domain.Subcategory(nil), v.Subcategories...)
	subs = append(subs, domain.Subcategory{Name: name, Skills: []domain.Skill{}})
	return domain.HierarchicalCategory(subs...), nil
}

// RemoveSubcategory drops a subcategory and its skills. Removing the last one
// leaves an empty hierarchical category; the taxonomy never auto-flattens.
func RemoveSubcategory(v domain.CategoryValue, name string) (domain.CategoryValue, error) {
	if !v.IsHierarchical() {
		return v, ErrNotHierarchical
	}
	subs := make([]domain.Subcategory, 0, len(v.Subcategories))
	found := false
	for _, sub := range v.Subcategories {
		if sub.Name == name {
			found = true
			continue
		}
		subs = append(subs, sub)
	}
	if !found {
		return v, ErrUnknownSubcategory
	}
	return domain.HierarchicalCategory(subs...), nil
}

// ApplyCategorization decides the stored shape of an imported category. The
// importer proposes subcategory groups; the settings decide whether to keep
// them or collapse to a flat list. An explicit flat or subcategories override
// bypasses the size threshold; auto respects it.
func ApplyCategorization(settings domain.CategorizationSettings, category string, groups []domain.Subcategory) domain.CategoryValue {
	mode := domain.ModeAuto
	if override, ok := settings.CategoryOverrides[category]; ok {
		mode = override
	}

	total := 0
	for _, g := range groups {
		total += len(g.Skills)
	}

	keep := false
	switch mode {
	case domain.ModeFlat:
		keep = false
	case domain.ModeSubcategories:
		keep = true
	default:
		keep = settings.UseSubcategories && total >= settings.MinSkillsForSubcategory
	}

	if keep {
		return domain.HierarchicalCategory(append([]domain.Subcategory(nil), groups...)...)
	}

	var flat []domain.Skill
	for _, g := range groups {
		flat = append(flat, g.Skills...)
	}
	return domain.FlatCategory(flat...)
}
