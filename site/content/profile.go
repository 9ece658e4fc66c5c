package content

import "github.com/dmitrymomot/portfolio/pkg/prefs"

// Localized is a string written separately for each language.
type Localized map[prefs.Language]string

// In returns the text for lang, or the default language's text.
func (l Localized) In(lang prefs.Language) string {
	if s, ok := l[lang]; ok {
		return s
	}
	return l[prefs.DefaultLanguage]
}

// SkillCategory groups skills under a translated heading.
type SkillCategory struct {
	// TitleKey is the translation key of the heading.
	TitleKey string
	Items    []string
}

// SpokenLanguage is one entry of the languages section.
type SpokenLanguage struct {
	NameKey     string
	LevelKey    string
	Proficiency int // percent
}

// NavItem is an in-page navigation anchor.
type NavItem struct {
	LabelKey string
	Anchor   string
}

// Profile is everything the home page shows that is not a translation key.
type Profile struct {
	Name        Localized
	Brand       Localized
	Title       string
	Description string
	Photo       string
	Resume      string
	Skills      []SkillCategory
	Languages   []SpokenLanguage
	Nav         []NavItem
}

// DefaultProfile returns the site owner's profile.
func DefaultProfile() Profile {
	return Profile{
		Name:        Localized{prefs.English: "Haian Ibrahim", prefs.Arabic: "حيان ابراهيم"},
		Brand:       Localized{prefs.English: "Haian", prefs.Arabic: "حيان"},
		Title:       "Haian Ibrahim - Fullstack Developer",
		Description: "Portfolio of Haian Ibrahim, a passionate Fullstack Developer",
		Photo:       "photo.jpg",
		Resume:      "resume.pdf",
		Skills: []SkillCategory{
			{TitleKey: "skills.frontend", Items: []string{"React", "Next.js", "TypeScript", "Tailwind CSS", "HTML/CSS"}},
			{TitleKey: "skills.backend", Items: []string{"PHP", "Laravel", "Node.js", "Express", "Python", "SQL", "MongoDB"}},
			{TitleKey: "skills.mobile", Items: []string{"Android Development", "Java", "Kotlin"}},
			{TitleKey: "skills.tools", Items: []string{"Git", "Docker", "AWS", "CI/CD", "Agile"}},
		},
		Languages: []SpokenLanguage{
			{NameKey: "languages.arabic", LevelKey: "languages.native", Proficiency: 100},
			{NameKey: "languages.english", LevelKey: "languages.professional", Proficiency: 90},
			{NameKey: "languages.german", LevelKey: "languages.a1", Proficiency: 30},
		},
		Nav: []NavItem{
			{LabelKey: "nav.about", Anchor: "about"},
			{LabelKey: "nav.skills", Anchor: "skills"},
			{LabelKey: "nav.languages", Anchor: "languages"},
			{LabelKey: "nav.contact", Anchor: "contact"},
		},
	}
}
