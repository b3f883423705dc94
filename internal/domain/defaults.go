package domain

import "encoding/json"

func mustJSON(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

// DefaultDocument is the starter content installed by a data reset. Every
// known section is present so the public page renders immediately after a
// fresh install.
func DefaultDocument() PortfolioDocument {
	return PortfolioDocument{
		SectionPersonalInfo: mustJSON(PersonalInfo{
			Name:  "Your Name",
			Title: "Software Engineer",
			Bio:   "A short introduction about yourself.",
		}),
		SectionAbout: mustJSON(About{
			Content: "Tell visitors about your background, interests and what you are working on.",
		}),
		SectionSkills: mustJSON(SkillCategoryMap{
			{Name: "Languages", Value: FlatCategory(
				Skill{Name: "Go", Level: LevelAdvanced},
				Skill{Name: "JavaScript", Level: LevelIntermediate},
			)},
			{Name: "Tools", Value: FlatCategory(
				Skill{Name: "PostgreSQL", Level: LevelIntermediate},
				Skill{Name: "Docker", Level: LevelIntermediate},
			)},
		}),
		SectionExperience: mustJSON([]Job{}),
		SectionProjects:   mustJSON([]Project{}),
		SectionContact: mustJSON(Contact{
			Email:       "you@example.com",
			SocialLinks: []SocialLink{},
		}),
	}
}

// DefaultSkillsStructure is the fallback catalogue served when the database
// holds no structure rows.
func DefaultSkillsStructure() SkillsStructure {
	return SkillsStructure{Categories: []StructureCategory{
		{Name: "Languages", Subcategories: []string{"Systems", "Scripting", "Web"}},
		{Name: "Frameworks", Subcategories: []string{"Frontend", "Backend"}},
		{Name: "Tools", Subcategories: []string{"Databases", "Infrastructure", "Cloud"}},
		{Name: "Soft Skills", Subcategories: nil},
	}}
}
