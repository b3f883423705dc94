package domain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

type SkillLevel string

const (
	LevelBeginner     SkillLevel = "beginner"
	LevelIntermediate SkillLevel = "intermediate"
	LevelAdvanced     SkillLevel = "advanced"
	LevelExpert       SkillLevel = "expert"
)

type Skill struct {
	Name  string     `json:"name" validate:"required"`
	Level SkillLevel `json:"level" validate:"required,oneof=beginner intermediate advanced expert"`
}

// CategoryKind discriminates flat and hierarchical skill categories. The wire
// format carries no discriminator: a JSON array is flat, a JSON object is
// hierarchical, and the codec below derives the kind from the shape.
type CategoryKind int

const (
	CategoryFlat CategoryKind = iota
	CategoryHierarchical
)

type Subcategory struct {
	Name   string
	Skills []Skill
}

// CategoryValue is one skills category: either a flat skill list or a keyed
// set of subcategories. Subcategory order is insertion order and survives a
// JSON round trip.
type CategoryValue struct {
	Kind          CategoryKind
	Skills        []Skill       // populated when Kind == CategoryFlat
	Subcategories []Subcategory // populated when Kind == CategoryHierarchical
}

func FlatCategory(skills ...Skill) CategoryValue {
	return CategoryValue{Kind: CategoryFlat, Skills: skills}
}

func HierarchicalCategory(subs ...Subcategory) CategoryValue {
	return CategoryValue{Kind: CategoryHierarchical, Subcategories: subs}
}

func (v CategoryValue) IsHierarchical() bool {
	return v.Kind == CategoryHierarchical
}

// Subcategory returns the named subcategory's skills.
func (v CategoryValue) Subcategory(name string) ([]Skill, bool) {
	for _, sub := range v.Subcategories {
		if sub.Name == name {
			return sub.Skills, true
		}
	}
	return nil, false
}

func (v CategoryValue) MarshalJSON() ([]byte, error) {
	if v.Kind == CategoryFlat {
		skills := v.Skills
		if skills == nil {
			skills = []Skill{}
		}
		return json.Marshal(skills)
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, sub := range v.Subcategories {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(sub.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		skills := sub.Skills
		if skills == nil {
			skills = []Skill{}
		}
		b, err := json.Marshal(skills)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (v *CategoryValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return fmt.Errorf("skill category: empty value")
	}

	switch trimmed[0] {
	case '[':
		var skills []Skill
		if err := json.Unmarshal(data, &skills); err != nil {
			return err
		}
		*v = CategoryValue{Kind: CategoryFlat, Skills: skills}
		return nil

	case '{':
		dec := json.NewDecoder(bytes.NewReader(data))
		if _, err := dec.Token(); err != nil {
			return err
		}
		subs := []Subcategory{}
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return err
			}
			name, ok := tok.(string)
			if !ok {
				return fmt.Errorf("skill category: unexpected key token %v", tok)
			}
			var skills []Skill
			if err := dec.Decode(&skills); err != nil {
				return fmt.Errorf("subcategory %q: %w", name, err)
			}
			subs = append(subs, Subcategory{Name: name, Skills: skills})
		}
		*v = CategoryValue{Kind: CategoryHierarchical, Subcategories: subs}
		return nil

	default:
		return fmt.Errorf("skill category: expected array or object")
	}
}

type Category struct {
	Name  string
	Value CategoryValue
}

// SkillCategoryMap is the skills section payload: category name to flat or
// hierarchical value. It is a slice rather than a map so that category
// iteration order is the document's key order, as display and flattening
// depend on it.
type SkillCategoryMap []Category

func (m SkillCategoryMap) Get(name string) (CategoryValue, bool) {
	for _, c := range m {
		if c.Name == name {
			return c.Value, true
		}
	}
	return CategoryValue{}, false
}

// Set upserts a category, keeping its position when it already exists.
func (m SkillCategoryMap) Set(name string, value CategoryValue) SkillCategoryMap {
	for i, c := range m {
		if c.Name == name {
			m[i].Value = value
			return m
		}
	}
	return append(m, Category{Name: name, Value: value})
}

func (m SkillCategoryMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(c.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		b, err := json.Marshal(c.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (m *SkillCategoryMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("skills: expected object of categories")
	}

	out := SkillCategoryMap{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("skills: unexpected key token %v", tok)
		}
		var value CategoryValue
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("category %q: %w", name, err)
		}
		out = append(out, Category{Name: name, Value: value})
	}
	*m = out
	return nil
}

type CategorizationMode string

const (
	ModeAuto          CategorizationMode = "auto"
	ModeFlat          CategorizationMode = "flat"
	ModeSubcategories CategorizationMode = "subcategories"
)

// CategorizationSettings governs how imports shape new skill categories. It
// is persisted independently from the skills data itself.
type CategorizationSettings struct {
	UseSubcategories        bool                          `json:"useSubcategories"`
	MinSkillsForSubcategory int                           `json:"minSkillsForSubcategory" validate:"gte=1,lte=10"`
	CategoryOverrides       map[string]CategorizationMode `json:"categoryOverrides" validate:"dive,oneof=auto flat subcategories"`
}

// DefaultCategorizationSettings are used when the server holds no settings
// yet (a 404 on read is "use defaults", not an error).
func DefaultCategorizationSettings() CategorizationSettings {
	return CategorizationSettings{
		UseSubcategories:        true,
		MinSkillsForSubcategory: 3,
		CategoryOverrides:       map[string]CategorizationMode{},
	}
}

// StructureCategory is one entry of the predefined category catalogue.
type StructureCategory struct {
	Name          string   `json:"name"`
	Subcategories []string `json:"subcategories"`
}

// SkillsStructure is the read-only reference catalogue of well-known
// categories and their suggested subcategories.
type SkillsStructure struct {
	Categories []StructureCategory `json:"categories"`
}

type SkillsRepository interface {
	GetStructure(ctx context.Context) (SkillsStructure, error)
	GetCategorization(ctx context.Context) (CategorizationSettings, error)
	SaveCategorization(ctx context.Context, settings CategorizationSettings) error
}

type SkillsUsecase interface {
	Structure(ctx context.Context) (SkillsStructure, error)
	Flattened(ctx context.Context) (SkillCategoryMap, error)
	Categorization(ctx context.Context) (CategorizationSettings, error)
	Configure(ctx context.Context, settings CategorizationSettings) error
}
