// Package timeline contains the pure rules of a video's clip timeline.
package timeline

import "github.com/example/cutroom/internal/errs"

// InsertionPointType selects how a new clip section is positioned.
type InsertionPointType string

const (
	// InsertAtStart places the section before everything on the timeline.
	InsertAtStart InsertionPointType = "start"

	// InsertAfterClip places the section directly after a given clip.
	InsertAfterClip InsertionPointType = "after-clip"
)

// InsertionPoint describes where a new clip section goes without renumbering
// its siblings.
type InsertionPoint struct {
	Type   InsertionPointType
	ClipID string // required for InsertAfterClip
}

// Direction is a one-step reorder direction.
type Direction string

const (
	// DirectionUp moves toward the start of the timeline.
	DirectionUp Direction = "up"
	// DirectionDown moves toward the end of the timeline.
	DirectionDown Direction = "down"
)

// CanArchiveVideo evaluates whether a video's archived flag may be set.
// Videos bound to a lesson live and die with the lesson and cannot be
// archived independently.
func CanArchiveVideo(videoID, lessonID string) error {
	if lessonID != "" {
		return errs.CannotArchiveLessonVideo(videoID)
	}
	return nil
}

// ValidClipSpan reports whether a clip's source span is well-formed.
func ValidClipSpan(start, end float64) bool {
	return end > start
}
