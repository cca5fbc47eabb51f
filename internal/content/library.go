package content

import (
	"html/template"
	"strings"

	"github.com/folio/internal/media"
)

// Section ids, also used as anchors and URL segments.
const (
	SectionHero       = "hero"
	SectionAbout      = "about"
	SectionEducation  = "education"
	SectionExperience = "experience"
	SectionSkills     = "skills"
	SectionPortfolio  = "portfolio"
	SectionPictures   = "pictures"
	SectionReferences = "references"
)

// Skill tab ids.
const (
	TabTechnical = "technical"
	TabSoft      = "soft"
	TabLanguages = "languages"
)

// SectionDef describes how a paged section is laid out.
type SectionDef struct {
	ID           string
	Title        string
	Intro        string
	Threshold    float64
	PageSize     int
	InitialCount int
	Modal        bool
}

// Tab is one switchable collection of a section.
type Tab struct {
	ID    string
	Label string
	Cards []Card
}

// Definitions lists every paged section in page order.
var Definitions = []SectionDef{
	{ID: SectionEducation, Title: "Education", Intro: "My academic journey", Threshold: 0.1, PageSize: 4, InitialCount: 3},
	{ID: SectionExperience, Title: "Experience", Intro: "Where I have worked", Threshold: 0.1, PageSize: 4, InitialCount: 3},
	{ID: SectionSkills, Title: "Skills", Intro: "What I bring to the table", Threshold: 0.2, PageSize: 8, InitialCount: 6},
	{ID: SectionPortfolio, Title: "Portfolio", Intro: "Selected projects", Threshold: 0.2, PageSize: 6, InitialCount: 3, Modal: true},
	{ID: SectionPictures, Title: "Pictures", Intro: "Moments I captured", Threshold: 0.2, PageSize: 6, InitialCount: 3, Modal: true},
	{ID: SectionReferences, Title: "References", Intro: "What people say", Threshold: 0.2, PageSize: 3, InitialCount: 2},
}

// Definition returns the layout for a section id.
func Definition(id string) (SectionDef, bool) {
	for _, def := range Definitions {
		if def.ID == id {
			return def, true
		}
	}
	return SectionDef{}, false
}

// Data is the raw content of the data directory.
type Data struct {
	Hero       Hero
	About      About
	Education  []Education
	Experience []Experience
	Skills     Skills
	Projects   []Project
	Pictures   []Picture
	References []Reference
	Footer     Footer
	Media      MediaConfig
}

// Library is an immutable, render-ready view of the loaded content.
type Library struct {
	Hero       Hero
	HeroImage  media.Chain
	About      About
	AboutImage media.Chain
	AboutBio   template.HTML
	Footer     Footer

	tabs map[string][]Tab
}

// NewLibrary converts raw data into cards.
func NewLibrary(d Data) *Library {
	lib := &Library{
		Hero:       d.Hero,
		HeroImage:  d.Media.Chain(SectionHero, "profile", d.Hero.ProfileImageURL),
		About:      d.About,
		AboutImage: d.Media.Chain(SectionAbout, "profile", d.About.Image),
		AboutBio:   renderOrEscape(strings.Join(Paragraphs(d.About.Bio), "\n\n")),
		Footer:     d.Footer,
		tabs:       make(map[string][]Tab),
	}
	if lib.Footer.Name == "" {
		lib.Footer.Name = d.Hero.FullName()
	}
	if lib.Footer.SocialLinks == (SocialLinks{}) {
		lib.Footer.SocialLinks = d.Hero.PersonalInfo.SocialLinks
	}

	lib.setSingle(SectionEducation, educationCards(d.Education))
	lib.setSingle(SectionExperience, experienceCards(d.Experience))
	lib.setSingle(SectionPortfolio, projectCards(d.Projects, d.Media))
	lib.setSingle(SectionPictures, pictureCards(d.Pictures, d.Media))
	lib.setSingle(SectionReferences, referenceCards(d.References, d.Media))

	var skillTabs []Tab
	if len(d.Skills.Technical) > 0 {
		skillTabs = append(skillTabs, Tab{ID: TabTechnical, Label: "Technical Skills", Cards: skillCards(d.Skills.Technical)})
	}
	if len(d.Skills.Soft) > 0 {
		skillTabs = append(skillTabs, Tab{ID: TabSoft, Label: "Soft Skills", Cards: skillCards(d.Skills.Soft)})
	}
	if len(d.Skills.Languages) > 0 {
		skillTabs = append(skillTabs, Tab{ID: TabLanguages, Label: "Languages", Cards: skillCards(d.Skills.Languages)})
	}
	if len(skillTabs) > 0 {
		lib.tabs[SectionSkills] = skillTabs
	}
	return lib
}

func (l *Library) setSingle(section string, cards []Card) {
	if len(cards) == 0 {
		return
	}
	l.tabs[section] = []Tab{{ID: section, Cards: cards}}
}

// Sections returns the definitions of all non-empty sections in page order.
func (l *Library) Sections() []SectionDef {
	var out []SectionDef
	for _, def := range Definitions {
		if _, ok := l.tabs[def.ID]; ok {
			out = append(out, def)
		}
	}
	return out
}

// HasSection reports whether a section has anything to show.
func (l *Library) HasSection(id string) bool {
	_, ok := l.tabs[id]
	return ok
}

// Tabs returns the tabs of a section; single-collection sections have one.
func (l *Library) Tabs(section string) []Tab {
	return l.tabs[section]
}

// Cards returns the cards of a section tab. An empty tab id selects the
// first tab.
func (l *Library) Cards(section, tab string) ([]Card, bool) {
	tabs := l.tabs[section]
	if len(tabs) == 0 {
		return nil, false
	}
	if tab == "" {
		return tabs[0].Cards, true
	}
	for _, t := range tabs {
		if t.ID == tab {
			return t.Cards, true
		}
	}
	return nil, false
}

// Find looks a card up by key across every tab of a section.
func (l *Library) Find(section, key string) (Card, bool) {
	for _, t := range l.tabs[section] {
		for _, c := range t.Cards {
			if c.Key == key {
				return c, true
			}
		}
	}
	return Card{}, false
}

// HasAbout reports whether the about block has anything to show.
func (l *Library) HasAbout() bool {
	return l.About.Name != "" || l.AboutBio != "" || !l.AboutImage.Empty()
}

// Image returns the image chain of a card, or of the hero and about
// portraits when key is "profile".
func (l *Library) Image(section, key string) (media.Chain, bool) {
	switch section {
	case SectionHero:
		return l.HeroImage, key == "profile" && !l.HeroImage.Empty()
	case SectionAbout:
		return l.AboutImage, key == "profile" && !l.AboutImage.Empty()
	}
	card, ok := l.Find(section, key)
	if !ok || card.Image.Empty() {
		return media.Chain{}, false
	}
	return card.Image, true
}

// HasContact reports whether the hero contact modal has anything to show.
func (l *Library) HasContact() bool {
	info := l.Hero.PersonalInfo
	return info.Email != "" || info.Phone != "" || info.Location != "" || info.SocialLinks != (SocialLinks{})
}

// Counts returns the number of cards per non-empty section.
func (l *Library) Counts() map[string]int {
	out := make(map[string]int, len(l.tabs))
	for id, tabs := range l.tabs {
		for _, t := range tabs {
			out[id] += len(t.Cards)
		}
	}
	return out
}
