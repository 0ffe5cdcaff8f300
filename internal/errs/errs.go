// Package errs defines the closed set of failure kinds the engine can return.
//
// Every engine operation either succeeds or fails with one of these kinds.
// Validation failures and invariant violations are expected, recoverable
// outcomes; only CodeUnknown wraps a genuinely unexpected lower-level error.
// Callers match with errors.As / CodeOf rather than string comparison.
package errs

import (
	"errors"
	"fmt"
)

// Code categorizes engine failures.
type Code string

const (
	// CodeNotFound indicates a referenced entity is absent.
	CodeNotFound Code = "NOT_FOUND"

	// CodeNotLatestVersion indicates a structural mutation targeted a
	// version that is not the repo's latest.
	CodeNotLatestVersion Code = "NOT_LATEST_VERSION"

	// CodeCannotDeleteOnlyVersion indicates a delete targeted a repo's
	// sole remaining version.
	CodeCannotDeleteOnlyVersion Code = "CANNOT_DELETE_ONLY_VERSION"

	// CodeCannotDeleteNonLatestVersion indicates a delete targeted a
	// version with newer versions above it.
	CodeCannotDeleteNonLatestVersion Code = "CANNOT_DELETE_NON_LATEST_VERSION"

	// CodeAmbiguousRepoUpdate indicates a file path update could not
	// disambiguate which repo was meant.
	CodeAmbiguousRepoUpdate Code = "AMBIGUOUS_REPO_UPDATE"

	// CodeCannotArchiveLessonVideo indicates an archive attempt on a
	// video that is bound to a lesson.
	CodeCannotArchiveLessonVideo Code = "CANNOT_ARCHIVE_LESSON_VIDEO"

	// CodeInvalidOrder indicates a lesson path whose leading order token
	// failed to parse as a number.
	CodeInvalidOrder Code = "INVALID_ORDER"

	// CodeUnknown wraps an unexpected lower-level failure.
	CodeUnknown Code = "UNKNOWN_DB_SERVICE"
)

// Error is a typed engine failure.
type Error struct {
	// Code identifies the failure kind.
	Code Code

	// Message is a human-readable description.
	Message string

	// EntityKind names the missing entity for CodeNotFound.
	EntityKind string

	// FilePath is set for CodeAmbiguousRepoUpdate.
	FilePath string

	// RepoCount is the number of repos sharing FilePath for
	// CodeAmbiguousRepoUpdate.
	RepoCount int

	// Params carries additional lookup context.
	Params map[string]string

	// Err is the wrapped cause for CodeUnknown.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// CodeOf returns the failure code of err, or "" if err is not an engine failure.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsNotFound reports whether err is a not-found failure.
func IsNotFound(err error) bool {
	return CodeOf(err) == CodeNotFound
}

// NotFound creates a failure for an absent entity.
func NotFound(entityKind string, params map[string]string) *Error {
	return &Error{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", entityKind),
		EntityKind: entityKind,
		Params:     params,
	}
}

// NotFoundID creates a failure for an absent entity looked up by id.
func NotFoundID(entityKind, id string) *Error {
	return NotFound(entityKind, map[string]string{"id": id})
}

// NotLatestVersion creates a failure for a structural mutation on a stale version.
func NotLatestVersion(versionID string) *Error {
	return &Error{
		Code:    CodeNotLatestVersion,
		Message: fmt.Sprintf("version %s is not the latest version of its repo", versionID),
		Params:  map[string]string{"versionId": versionID},
	}
}

// CannotDeleteOnlyVersion creates a failure for deleting a repo's sole version.
func CannotDeleteOnlyVersion(versionID string) *Error {
	return &Error{
		Code:    CodeCannotDeleteOnlyVersion,
		Message: fmt.Sprintf("version %s is the only version of its repo and cannot be deleted", versionID),
		Params:  map[string]string{"versionId": versionID},
	}
}

// CannotDeleteNonLatestVersion creates a failure for deleting a superseded version.
func CannotDeleteNonLatestVersion(versionID string) *Error {
	return &Error{
		Code:    CodeCannotDeleteNonLatestVersion,
		Message: fmt.Sprintf("version %s has newer versions and cannot be deleted", versionID),
		Params:  map[string]string{"versionId": versionID},
	}
}

// AmbiguousRepoUpdate creates a failure for a path update that matches several repos.
func AmbiguousRepoUpdate(filePath string, repoCount int) *Error {
	return &Error{
		Code:      CodeAmbiguousRepoUpdate,
		Message:   fmt.Sprintf("%d repos share path %s; cannot determine which to update", repoCount, filePath),
		FilePath:  filePath,
		RepoCount: repoCount,
	}
}

// CannotArchiveLessonVideo creates a failure for archiving a lesson-bound video.
func CannotArchiveLessonVideo(videoID string) *Error {
	return &Error{
		Code:    CodeCannotArchiveLessonVideo,
		Message: fmt.Sprintf("video %s is attached to a lesson and cannot be archived independently", videoID),
		Params:  map[string]string{"videoId": videoID},
	}
}

// InvalidOrder creates a failure for a lesson path without a numeric leading token.
func InvalidOrder(path string) *Error {
	return &Error{
		Code:    CodeInvalidOrder,
		Message: fmt.Sprintf("lesson path %q does not start with a numeric order token", path),
		Params:  map[string]string{"path": path},
	}
}

// Unknown wraps an unexpected lower-level failure.
func Unknown(err error) *Error {
	return &Error{
		Code:    CodeUnknown,
		Message: "unexpected storage failure",
		Err:     err,
	}
}
