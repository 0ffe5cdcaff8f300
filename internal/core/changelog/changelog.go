// Package changelog derives a human-readable diff between version snapshots.
//
// Project is a pure function: no store access, no clock, no randomness.
// Given the same snapshots it always produces the same entries, which is
// what makes the output safe to cache and to golden-test.
package changelog

import (
	"fmt"
	"sort"
	"strings"
)

// Snapshot is one version's full section/lesson structure.
type Snapshot struct {
	VersionID   string
	VersionName string
	Seq         int
	Sections    []Section
}

// Section is a section within a snapshot.
type Section struct {
	Title   string
	Ord     string
	Lessons []Lesson
}

// Lesson is a lesson within a section snapshot.
type Lesson struct {
	Path   string
	Number int
}

// Entry describes the changes between two consecutive versions.
type Entry struct {
	FromVersion string
	ToVersion   string
	Changes     []string
}

// Project produces one entry per consecutive version pair, oldest to newest.
// Versions are ordered by Seq; the input slice is not modified.
func Project(snapshots []Snapshot) []Entry {
	ordered := append([]Snapshot(nil), snapshots...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Seq < ordered[j].Seq })

	var entries []Entry
	for i := 1; i < len(ordered); i++ {
		from, to := ordered[i-1], ordered[i]
		entries = append(entries, Entry{
			FromVersion: from.VersionName,
			ToVersion:   to.VersionName,
			Changes:     diff(from, to),
		})
	}
	return entries
}

// diff compares two snapshots. Sections are matched by title; lessons within
// a matched section are matched by lesson number, so a path change with a
// stable number reads as a rename.
func diff(from, to Snapshot) []string {
	fromSections := sectionsByTitle(from)
	toSections := sectionsByTitle(to)

	var changes []string

	for _, title := range sortedTitles(toSections) {
		if _, ok := fromSections[title]; !ok {
			changes = append(changes, fmt.Sprintf("section added: %q", title))
		}
	}
	for _, title := range sortedTitles(fromSections) {
		if _, ok := toSections[title]; !ok {
			changes = append(changes, fmt.Sprintf("section removed: %q", title))
		}
	}

	for _, title := range sortedTitles(fromSections) {
		toSec, ok := toSections[title]
		if !ok {
			continue
		}
		changes = append(changes, diffLessons(title, fromSections[title], toSec)...)
	}

	if len(changes) == 0 {
		changes = append(changes, "no structural changes")
	}
	return changes
}

func diffLessons(sectionTitle string, from, to Section) []string {
	fromLessons := lessonsByNumber(from)
	toLessons := lessonsByNumber(to)

	var changes []string

	for _, n := range sortedNumbers(toLessons) {
		old, ok := fromLessons[n]
		switch {
		case !ok:
			changes = append(changes, fmt.Sprintf("lesson added: %q (section %q)", toLessons[n].Path, sectionTitle))
		case old.Path != toLessons[n].Path:
			changes = append(changes, fmt.Sprintf("lesson renamed: %q → %q (section %q)", old.Path, toLessons[n].Path, sectionTitle))
		}
	}
	for _, n := range sortedNumbers(fromLessons) {
		if _, ok := toLessons[n]; !ok {
			changes = append(changes, fmt.Sprintf("lesson removed: %q (section %q)", fromLessons[n].Path, sectionTitle))
		}
	}

	return changes
}

// Render formats entries as a plain-text changelog.
func Render(entries []Entry) string {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s → %s\n", e.FromVersion, e.ToVersion)
		for _, c := range e.Changes {
			fmt.Fprintf(&b, "  - %s\n", c)
		}
	}
	return b.String()
}

func sectionsByTitle(s Snapshot) map[string]Section {
	m := make(map[string]Section, len(s.Sections))
	for _, sec := range s.Sections {
		m[sec.Title] = sec
	}
	return m
}

func lessonsByNumber(s Section) map[int]Lesson {
	m := make(map[int]Lesson, len(s.Lessons))
	for _, l := range s.Lessons {
		m[l.Number] = l
	}
	return m
}

func sortedTitles(m map[string]Section) []string {
	titles := make([]string, 0, len(m))
	for t := range m {
		titles = append(titles, t)
	}
	sort.Strings(titles)
	return titles
}

func sortedNumbers(m map[int]Lesson) []int {
	numbers := make([]int, 0, len(m))
	for n := range m {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	return numbers
}
