package content

import (
	"html/template"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/folio/internal/media"
)

// Link is an outbound action on a card.
type Link struct {
	Label string
	URL   string
	Icon  string
}

// Card is the uniform view of one content item inside a section grid.
type Card struct {
	Key        string
	Index      int
	Title      string
	Subtitle   string
	Meta       string
	Category   string
	Summary    string
	Body       template.HTML
	Image      media.Chain
	Icon       string
	Level      string
	LevelLabel string
	LevelHint  string
	Tags       []string
	Links      []Link
}

// HasImage reports whether the card resolves any image source.
func (c Card) HasImage() bool {
	return !c.Image.Empty()
}

var levelDescriptions = map[string]string{
	"beginner":     "Basic knowledge with some practical experience",
	"elementary":   "Good working knowledge with limited experience",
	"intermediate": "Solid understanding with regular application",
	"advanced":     "Deep knowledge with extensive practical experience",
	"expert":       "Mastery level with the ability to teach others",
	"native":       "Native proficiency",
}

var titleCaser = cases.Title(language.English)

// LevelLabel capitalizes a skill level for display.
func LevelLabel(level string) string {
	return titleCaser.String(strings.TrimSpace(level))
}

// LevelDescription explains a skill level, or returns "".
func LevelDescription(level string) string {
	return levelDescriptions[strings.ToLower(strings.TrimSpace(level))]
}

// Slugify converts a title to a URL-safe key.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// keyer hands out unique display keys within one collection. Titles that
// slugify to nothing fall back to the array position.
type keyer struct {
	used  map[string]int
	taken map[string]bool
}

func newKeyer() *keyer {
	return &keyer{used: make(map[string]int), taken: make(map[string]bool)}
}

func (k *keyer) next(title string, index int) string {
	base := Slugify(title)
	if base == "" {
		base = "item-" + strconv.Itoa(index+1)
	}
	n := k.used[base]
	key := suffixed(base, n)
	// A title can slugify to an earlier generated suffix, e.g. "Go 2".
	for k.taken[key] {
		n++
		key = suffixed(base, n)
	}
	k.used[base] = n + 1
	k.taken[key] = true
	return key
}

func suffixed(base string, n int) string {
	if n == 0 {
		return base
	}
	return base + "-" + strconv.Itoa(n+1)
}

// SplitTechnologies splits a comma separated technology list.
func SplitTechnologies(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func educationCards(items []Education) []Card {
	keys := newKeyer()
	cards := make([]Card, 0, len(items))
	for i, edu := range items {
		cards = append(cards, Card{
			Key:      keys.next(edu.Degree+" "+edu.Institution, i),
			Index:    i,
			Title:    edu.Degree,
			Subtitle: edu.Institution,
			Meta:     joinNonEmpty(" | ", edu.Location, edu.Period),
			Summary:  edu.Description,
			Body:     renderOrEscape(edu.Description),
		})
	}
	return cards
}

func experienceCards(items []Experience) []Card {
	keys := newKeyer()
	cards := make([]Card, 0, len(items))
	for i, exp := range items {
		cards = append(cards, Card{
			Key:      keys.next(exp.Title+" "+exp.Company, i),
			Index:    i,
			Title:    joinNonEmpty(" – ", exp.Title, exp.Role),
			Subtitle: exp.Company,
			Meta:     joinNonEmpty(" | ", exp.Location, exp.Period),
			Summary:  exp.Description,
			Body:     renderOrEscape(exp.Description),
		})
	}
	return cards
}

func skillCards(items []Skill) []Card {
	keys := newKeyer()
	cards := make([]Card, 0, len(items))
	for i, skill := range items {
		icon := strings.TrimSpace(skill.Icon)
		if icon == "" {
			icon = "fas fa-code"
		}
		cards = append(cards, Card{
			Key:        keys.next(skill.Name, i),
			Index:      i,
			Title:      skill.Name,
			Category:   skill.Category,
			Summary:    skill.Description,
			Body:       renderOrEscape(skill.Description),
			Icon:       icon,
			Level:      strings.ToLower(strings.TrimSpace(skill.Level)),
			LevelLabel: LevelLabel(skill.Level),
			LevelHint:  LevelDescription(skill.Level),
		})
	}
	return cards
}

func projectCards(items []Project, m MediaConfig) []Card {
	keys := newKeyer()
	cards := make([]Card, 0, len(items))
	for i, p := range items {
		var links []Link
		if p.DemoURL != "" {
			links = append(links, Link{Label: "Live Demo", URL: p.DemoURL, Icon: "fas fa-external-link-alt"})
		}
		if p.RepoURL != "" {
			links = append(links, Link{Label: "Source Code", URL: p.RepoURL, Icon: "fab fa-github"})
		}
		cards = append(cards, Card{
			Key:      keys.next(p.Title, i),
			Index:    i,
			Title:    p.Title,
			Category: p.Category,
			Summary:  p.Description,
			Body:     renderOrEscape(p.Description),
			Image:    m.Chain(SectionPortfolio, p.Title, p.Image),
			Tags:     SplitTechnologies(p.Technologies),
			Links:    links,
		})
	}
	return cards
}

// pictureCards keeps only pictures that have an image of their own; the
// shared placeholder alone is not enough to show a photograph.
func pictureCards(items []Picture, m MediaConfig) []Card {
	keys := newKeyer()
	cards := make([]Card, 0, len(items))
	for i, pic := range items {
		if !m.hasOwnImage(SectionPictures, pic.Title, pic.Image) {
			continue
		}
		var links []Link
		if pic.Link != "" {
			links = append(links, Link{Label: "View Full Size", URL: pic.Link, Icon: "fa-solid fa-up-right-from-square"})
		}
		cards = append(cards, Card{
			Key:      keys.next(pic.Title, i),
			Index:    i,
			Title:    pic.Title,
			Category: pic.Category,
			Summary:  pic.Description,
			Body:     renderOrEscape(pic.Description),
			Image:    m.Chain(SectionPictures, pic.Title, pic.Image),
			Links:    links,
		})
	}
	return cards
}

func referenceCards(items []Reference, m MediaConfig) []Card {
	keys := newKeyer()
	cards := make([]Card, 0, len(items))
	for i, ref := range items {
		var links []Link
		if ref.Email != "" {
			links = append(links, Link{Label: "Email " + ref.Name, URL: "mailto:" + ref.Email, Icon: "email"})
		}
		if ref.LinkedIn != "" {
			links = append(links, Link{Label: "LinkedIn of " + ref.Name, URL: ref.LinkedIn, Icon: "linkedin"})
		}
		var companyLinks []Link
		if ref.CompanyURL != "" {
			companyLinks = append(companyLinks, Link{Label: ref.Company, URL: ref.CompanyURL, Icon: "website"})
		}
		cards = append(cards, Card{
			Key:      keys.next(ref.Name, i),
			Index:    i,
			Title:    ref.Name,
			Subtitle: ref.Position,
			Meta:     ref.Company,
			Summary:  ref.Quote,
			Body:     renderOrEscape(ref.Quote),
			Image:    m.Chain(SectionReferences, ref.Name, ref.Image),
			Links:    append(companyLinks, links...),
		})
	}
	return cards
}

// Chain resolves the image chain for a titled item of a section.
func (m MediaConfig) Chain(section, title, dataPath string) media.Chain {
	sm := m.Sections[section]
	return media.NewChain(sm.Overrides[title], dataPath, sm.Fallbacks[title], m.Placeholder)
}

func (m MediaConfig) hasOwnImage(section, title, dataPath string) bool {
	sm := m.Sections[section]
	return strings.TrimSpace(sm.Overrides[title]) != "" ||
		strings.TrimSpace(dataPath) != "" ||
		strings.TrimSpace(sm.Fallbacks[title]) != ""
}
