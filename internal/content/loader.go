// Package content loads the portfolio data directory and turns it into
// render-ready cards.
package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/frontmatter"
)

// Data file names inside the data directory.
const (
	HeroFile       = "heroData.json"
	AboutFile      = "aboutData.json"
	AboutMarkdown  = "about.md"
	EducationFile  = "educationData.json"
	ExperienceFile = "experienceData.json"
	SkillsFile     = "skillsData.json"
	ProjectsFile   = "projectsData.json"
	PicturesFile   = "picturesData.json"
	ReferencesFile = "referencesData.json"
	FooterFile     = "footerData.json"
	MediaFile      = "media.json"
)

// ErrDataDir is returned when the data directory itself cannot be read.
var ErrDataDir = errors.New("data directory is not readable")

// Load reads every data file in dir. Missing files leave their section
// empty; unparseable files are reported.
func Load(dir string) (Data, error) {
	var d Data

	info, err := os.Stat(dir)
	if err != nil {
		return d, fmt.Errorf("%w: %v", ErrDataDir, err)
	}
	if !info.IsDir() {
		return d, fmt.Errorf("%w: %s is not a directory", ErrDataDir, dir)
	}

	targets := []struct {
		name string
		dst  any
	}{
		{HeroFile, &d.Hero},
		{EducationFile, &d.Education},
		{ExperienceFile, &d.Experience},
		{SkillsFile, &d.Skills},
		{ProjectsFile, &d.Projects},
		{PicturesFile, &d.Pictures},
		{ReferencesFile, &d.References},
		{FooterFile, &d.Footer},
		{MediaFile, &d.Media},
	}

	var errs []error
	for _, t := range targets {
		if err := readJSON(filepath.Join(dir, t.name), t.dst); err != nil {
			errs = append(errs, err)
		}
	}

	about, err := loadAbout(dir)
	if err != nil {
		errs = append(errs, err)
	}
	d.About = about

	return d, errors.Join(errs...)
}

// LoadLibrary loads dir and builds a Library from it.
func LoadLibrary(dir string) (*Library, error) {
	d, err := Load(dir)
	if err != nil {
		return nil, err
	}
	return NewLibrary(d), nil
}

func readJSON(path string, dst any) error {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

// loadAbout prefers about.md (YAML frontmatter plus a markdown bio) over
// aboutData.json.
func loadAbout(dir string) (About, error) {
	var about About

	raw, err := os.ReadFile(filepath.Join(dir, AboutMarkdown))
	switch {
	case err == nil:
		body, err := frontmatter.Parse(bytes.NewReader(raw), &about)
		if err != nil {
			return About{}, fmt.Errorf("parse %s: %w", AboutMarkdown, err)
		}
		about.Bio = string(bytes.TrimSpace(body))
		return about, nil
	case !errors.Is(err, fs.ErrNotExist):
		return About{}, fmt.Errorf("read %s: %w", AboutMarkdown, err)
	}

	if err := readJSON(filepath.Join(dir, AboutFile), &about); err != nil {
		return About{}, err
	}
	return about, nil
}
