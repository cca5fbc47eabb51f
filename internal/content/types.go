package content

// SocialLinks groups the profile links shown in the hero, about and footer.
type SocialLinks struct {
	LinkedIn  string `json:"linkedin" yaml:"linkedin"`
	GitHub    string `json:"github" yaml:"github"`
	Twitter   string `json:"twitter" yaml:"twitter"`
	Instagram string `json:"instagram" yaml:"instagram"`
}

// Stat is a headline number in the hero.
type Stat struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// PersonalInfo is shown in the hero contact modal.
type PersonalInfo struct {
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	Location    string      `json:"location"`
	SocialLinks SocialLinks `json:"socialLinks"`
}

// Hero is the landing block (heroData.json).
type Hero struct {
	Greeting        string       `json:"greeting"`
	Name            string       `json:"name"`
	LastName        string       `json:"lastName"`
	Description     string       `json:"description"`
	JobTitle        string       `json:"jobTitle"`
	Stats           []Stat       `json:"stats"`
	ButtonText      string       `json:"buttonText"`
	CVButtonText    string       `json:"cvButtonText"`
	CVLink          string       `json:"cvLink"`
	ProfileImageURL string       `json:"profileImageUrl"`
	PersonalInfo    PersonalInfo `json:"personalInfo"`
}

// FullName joins first and last name.
func (h Hero) FullName() string {
	switch {
	case h.Name == "":
		return h.LastName
	case h.LastName == "":
		return h.Name
	default:
		return h.Name + " " + h.LastName
	}
}

// About is the biography block (aboutData.json or about.md).
type About struct {
	Name        string      `json:"name" yaml:"name"`
	Image       string      `json:"image" yaml:"image"`
	Bio         string      `json:"bio" yaml:"-"`
	SocialLinks SocialLinks `json:"socialLinks" yaml:"socialLinks"`
}

// Education is one entry of educationData.json.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Location    string `json:"location"`
	Period      string `json:"period"`
	Description string `json:"description"`
}

// Experience is one entry of experienceData.json.
type Experience struct {
	Title       string `json:"title"`
	Role        string `json:"role"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Period      string `json:"period"`
	Description string `json:"description"`
}

// Skill is one entry of a skillsData.json tab.
type Skill struct {
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Level       string `json:"level"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// Skills groups skills by tab.
type Skills struct {
	Technical []Skill `json:"technical"`
	Soft      []Skill `json:"soft"`
	Languages []Skill `json:"languages"`
}

// Project is one entry of projectsData.json.
type Project struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	Image        string `json:"image"`
	DemoURL      string `json:"demoUrl"`
	RepoURL      string `json:"repoUrl"`
	Technologies string `json:"technologies"`
}

// Picture is one entry of picturesData.json.
type Picture struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Image       string `json:"image"`
	Link        string `json:"link"`
}

// Reference is one entry of referencesData.json.
type Reference struct {
	Name       string `json:"name"`
	Position   string `json:"position"`
	Company    string `json:"company"`
	CompanyURL string `json:"companyUrl"`
	Quote      string `json:"quote"`
	Image      string `json:"image"`
	Email      string `json:"email"`
	LinkedIn   string `json:"linkedin"`
}

// Footer is the optional footerData.json.
type Footer struct {
	Name        string      `json:"name"`
	SocialLinks SocialLinks `json:"socialLinks"`
}

// SectionMedia holds per-title image overrides and fallbacks for a section.
type SectionMedia struct {
	Overrides map[string]string `json:"overrides"`
	Fallbacks map[string]string `json:"fallbacks"`
}

// MediaConfig is the optional media.json.
type MediaConfig struct {
	Placeholder string                  `json:"placeholder"`
	Sections    map[string]SectionMedia `json:"sections"`
}
