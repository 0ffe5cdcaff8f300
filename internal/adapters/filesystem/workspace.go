// Package filesystem implements the workspace port over a local directory tree.
//
// A course directory holds numbered section directories ("<n>-<title>"),
// each holding numbered lesson directories ("<n>-<name>"). Directories
// without a leading numeric token are ignored. An optional course.yaml at
// the root overrides section titles per directory name.
package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/example/cutroom/internal/core/lessonpath"
	"github.com/example/cutroom/internal/ports/secondary"
)

const manifestName = "course.yaml"

// Workspace implements secondary.Workspace over the local filesystem.
type Workspace struct{}

// NewWorkspace creates a filesystem workspace.
func NewWorkspace() *Workspace {
	return &Workspace{}
}

// Exists reports whether a path exists on the filesystem.
func (w *Workspace) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// manifest is the optional course.yaml layout.
type manifest struct {
	Sections []manifestSection `yaml:"sections"`
}

type manifestSection struct {
	Dir   string `yaml:"dir"`
	Title string `yaml:"title"`
}

// ParseRepo reads a course directory tree into sections with lessons.
func (w *Workspace) ParseRepo(path string) ([]secondary.ParsedSection, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read course directory: %w", err)
	}

	titles, err := loadManifestTitles(filepath.Join(path, manifestName))
	if err != nil {
		return nil, err
	}

	type numberedDir struct {
		number int
		name   string
	}
	var sectionDirs []numberedDir
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		number, err := lessonpath.Number(entry.Name())
		if err != nil {
			continue
		}
		sectionDirs = append(sectionDirs, numberedDir{number: number, name: entry.Name()})
	}
	sort.Slice(sectionDirs, func(i, j int) bool { return sectionDirs[i].number < sectionDirs[j].number })

	var sections []secondary.ParsedSection
	for _, dir := range sectionDirs {
		section := secondary.ParsedSection{Title: sectionTitle(dir.name, titles)}

		lessonEntries, err := os.ReadDir(filepath.Join(path, dir.name))
		if err != nil {
			return nil, fmt.Errorf("failed to read section directory %s: %w", dir.name, err)
		}
		for _, entry := range lessonEntries {
			if !entry.IsDir() {
				continue
			}
			number, err := lessonpath.Number(entry.Name())
			if err != nil {
				continue
			}
			section.Lessons = append(section.Lessons, secondary.ParsedLesson{
				Path:   entry.Name(),
				Number: number,
			})
		}
		sort.Slice(section.Lessons, func(i, j int) bool {
			return section.Lessons[i].Number < section.Lessons[j].Number
		})

		sections = append(sections, section)
	}
	return sections, nil
}

// loadManifestTitles reads course.yaml title overrides, keyed by directory
// name. A missing manifest is not an error.
func loadManifestTitles(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", manifestName, err)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", manifestName, err)
	}

	titles := make(map[string]string, len(m.Sections))
	for _, s := range m.Sections {
		if s.Dir != "" && s.Title != "" {
			titles[s.Dir] = s.Title
		}
	}
	return titles, nil
}

// sectionTitle resolves a section directory name to its display title: the
// manifest override if present, otherwise the humanized remainder after the
// numeric token ("2-getting-started" -> "Getting Started").
func sectionTitle(dirName string, overrides map[string]string) string {
	if title, ok := overrides[dirName]; ok {
		return title
	}
	_, rest, _ := strings.Cut(dirName, "-")
	words := strings.Split(rest, "-")
	for i, word := range words {
		if word == "" {
			continue
		}
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// Ensure Workspace implements the interface
var _ secondary.Workspace = (*Workspace)(nil)
