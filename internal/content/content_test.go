package content

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func sampleDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, HeroFile, `{
		"greeting": "Hello, I'm",
		"name": "Ada",
		"lastName": "Lovelace",
		"profileImageUrl": "/assets/home.jpg",
		"personalInfo": {"email": "ada@example.com", "socialLinks": {"github": "https://github.com/ada"}}
	}`)
	writeFile(t, dir, EducationFile, `[
		{"degree": "BSc Mathematics", "institution": "London", "period": "1830 - 1833"},
		{"degree": "MSc Engines", "institution": "Cambridge"}
	]`)
	writeFile(t, dir, SkillsFile, `{
		"technical": [{"name": "Go", "level": "advanced"}, {"name": "SQL", "level": "intermediate", "icon": "fas fa-database"}],
		"soft": [{"name": "Writing", "level": "expert"}]
	}`)
	writeFile(t, dir, ProjectsFile, `[
		{"title": "Crime Map", "image": "https://cdn.example.com/crime.jpg", "technologies": "Go, htmx , ,SQLite", "demoUrl": "https://demo.example.com"},
		{"title": "Crime Map", "technologies": ""}
	]`)
	writeFile(t, dir, PicturesFile, `[
		{"title": "Urban Architecture"},
		{"title": "Lost Photo"}
	]`)
	writeFile(t, dir, MediaFile, `{
		"placeholder": "/assets/placeholder.jpeg",
		"sections": {
			"portfolio": {"fallbacks": {"Crime Map": "/assets/projects/crime.jpg"}},
			"pictures": {"overrides": {"Urban Architecture": "/assets/pictures/urban.jpg"}}
		}
	}`)
	return dir
}

func TestLoadLibraryBuildsSections(t *testing.T) {
	lib, err := LoadLibrary(sampleDir(t))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	var ids []string
	for _, def := range lib.Sections() {
		ids = append(ids, def.ID)
	}
	want := "education,skills,portfolio,pictures"
	if got := strings.Join(ids, ","); got != want {
		t.Fatalf("expected sections %s, got %s", want, got)
	}
	if lib.HasSection(SectionReferences) {
		t.Fatalf("references should be omitted when empty")
	}
	if lib.Footer.Name != "Ada Lovelace" {
		t.Fatalf("footer name should default to hero name, got %q", lib.Footer.Name)
	}
	if lib.HeroImage.Primary() != "/assets/home.jpg" {
		t.Fatalf("unexpected hero image %q", lib.HeroImage.Primary())
	}
	if !lib.HasContact() {
		t.Fatalf("expected contact info")
	}
}

func TestProjectCards(t *testing.T) {
	lib, err := LoadLibrary(sampleDir(t))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	cards, ok := lib.Cards(SectionPortfolio, "")
	if !ok || len(cards) != 2 {
		t.Fatalf("expected 2 project cards, got %d", len(cards))
	}

	first := cards[0]
	if first.Key != "crime-map" || cards[1].Key != "crime-map-2" {
		t.Fatalf("expected unique keys, got %q and %q", first.Key, cards[1].Key)
	}
	if strings.Join(first.Tags, "|") != "Go|htmx|SQLite" {
		t.Fatalf("unexpected tags %v", first.Tags)
	}
	if len(first.Links) != 1 || first.Links[0].URL != "https://demo.example.com" {
		t.Fatalf("unexpected links %+v", first.Links)
	}

	sources := first.Image.Sources()
	want := []string{"https://cdn.example.com/crime.jpg", "/assets/projects/crime.jpg", "/assets/placeholder.jpeg"}
	if strings.Join(sources, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected chain %v", sources)
	}
	if cards[1].Image.Primary() != "/assets/projects/crime.jpg" {
		t.Fatalf("expected fallback first when the data has no image, got %q", cards[1].Image.Primary())
	}

	found, ok := lib.Find(SectionPortfolio, "crime-map-2")
	if !ok || found.Index != 1 {
		t.Fatalf("find failed: %+v", found)
	}
}

func TestPicturesWithoutImageAreDropped(t *testing.T) {
	lib, err := LoadLibrary(sampleDir(t))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	cards, _ := lib.Cards(SectionPictures, "")
	if len(cards) != 1 || cards[0].Title != "Urban Architecture" {
		t.Fatalf("expected only the picture with an image, got %+v", cards)
	}
}

func TestSkillTabs(t *testing.T) {
	lib, err := LoadLibrary(sampleDir(t))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	tabs := lib.Tabs(SectionSkills)
	if len(tabs) != 2 || tabs[0].ID != TabTechnical || tabs[1].ID != TabSoft {
		t.Fatalf("languages tab should be absent without data, got %+v", tabs)
	}

	technical, ok := lib.Cards(SectionSkills, "")
	if !ok || len(technical) != 2 {
		t.Fatalf("empty tab should select technical skills")
	}
	if technical[0].LevelLabel != "Advanced" || technical[0].LevelHint == "" {
		t.Fatalf("unexpected level rendering %+v", technical[0])
	}
	if technical[0].Icon != "fas fa-code" || technical[1].Icon != "fas fa-database" {
		t.Fatalf("unexpected icons %q %q", technical[0].Icon, technical[1].Icon)
	}
	if _, ok := lib.Cards(SectionSkills, TabLanguages); ok {
		t.Fatalf("languages tab should not resolve")
	}
	if _, ok := lib.Find(SectionSkills, "writing"); !ok {
		t.Fatalf("find should search every tab")
	}
}

func TestLoadReportsMalformedJSON(t *testing.T) {
	dir := sampleDir(t)
	writeFile(t, dir, ExperienceFile, `[{"title": "broken"`)

	if _, err := LoadLibrary(dir); err == nil || !strings.Contains(err.Error(), ExperienceFile) {
		t.Fatalf("expected parse error naming %s, got %v", ExperienceFile, err)
	}
}

func TestLoadMissingDir(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

func TestAboutMarkdownWins(t *testing.T) {
	dir := sampleDir(t)
	writeFile(t, dir, AboutFile, `{"name": "From JSON", "bio": "json bio"}`)
	writeFile(t, dir, AboutMarkdown, "---\nname: Ada\nimage: /assets/about.jpg\nsocialLinks:\n  github: https://github.com/ada\n---\nFirst paragraph.\nSecond *paragraph*.\n")

	lib, err := LoadLibrary(dir)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if lib.About.Name != "Ada" || lib.About.SocialLinks.GitHub != "https://github.com/ada" {
		t.Fatalf("frontmatter not applied: %+v", lib.About)
	}
	bio := string(lib.AboutBio)
	if strings.Count(bio, "<p>") != 2 || !strings.Contains(bio, "<em>paragraph</em>") {
		t.Fatalf("expected two rendered paragraphs, got %q", bio)
	}
}

func TestRenderMarkdownSanitizes(t *testing.T) {
	out, err := RenderMarkdown("hello <script>alert(1)</script>")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if strings.Contains(string(out), "<script>") {
		t.Fatalf("script tag survived: %q", out)
	}
	if empty, _ := RenderMarkdown("   "); empty != "" {
		t.Fatalf("expected empty output, got %q", empty)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Beautiful Mosque – Night View": "beautiful-mosque-night-view",
		"  Go & SQL  ":                  "go-sql",
		"C++":                           "c",
		"---":                           "",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCardKeysAreUnique(t *testing.T) {
	cases := [][]string{
		{"Go", "Go", "Go 2"},
		{"Go 2", "Go", "Go"},
		{"C", "C++", "C 2"},
		{"", "Item 1", "---"},
	}
	for _, names := range cases {
		skills := make([]Skill, 0, len(names))
		for _, name := range names {
			skills = append(skills, Skill{Name: name})
		}
		seen := make(map[string]bool)
		for _, card := range skillCards(skills) {
			if seen[card.Key] {
				t.Fatalf("%q: duplicate key %q", names, card.Key)
			}
			seen[card.Key] = true
		}
	}

	cards := skillCards([]Skill{{Name: "Go"}, {Name: "Go"}, {Name: "Go 2"}})
	if cards[0].Key != "go" || cards[1].Key != "go-2" || cards[2].Key != "go-2-2" {
		t.Fatalf("unexpected keys %q %q %q", cards[0].Key, cards[1].Key, cards[2].Key)
	}
}

func TestStoreKeepsPreviousLibraryOnFailure(t *testing.T) {
	dir := sampleDir(t)
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("store failed: %v", err)
	}
	before := store.Library()

	writeFile(t, dir, EducationFile, `not json`)
	if err := store.Reload(); err == nil {
		t.Fatalf("expected reload error")
	}
	if store.Library() != before {
		t.Fatalf("library should not change on failed reload")
	}
}

func TestWatchReloadsOnChange(t *testing.T) {
	dir := sampleDir(t)
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("store failed: %v", err)
	}
	before := store.Library()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- store.Watch(ctx, 20*time.Millisecond) }()

	time.Sleep(50 * time.Millisecond)
	writeFile(t, dir, ReferencesFile, `[{"name": "Charles Babbage", "quote": "Remarkable."}]`)

	deadline := time.Now().Add(3 * time.Second)
	for store.Library() == before && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("watch returned error: %v", err)
	}
	if !store.Library().HasSection(SectionReferences) {
		t.Fatalf("expected references after reload")
	}
}
