// Package lessonpath parses lesson paths of the form "<n>-<name>".
//
// The leading numeric token is the lesson's order number and must stay in
// sync with the stored lesson_number on every rename.
package lessonpath

import (
	"strconv"
	"strings"

	"github.com/example/cutroom/internal/errs"
)

// Number extracts the leading numeric order token from a lesson path.
// Returns an InvalidOrder failure when the token is missing or non-numeric.
func Number(path string) (int, error) {
	token, _, found := strings.Cut(path, "-")
	if !found {
		token = path
	}
	n, err := strconv.Atoi(token)
	if err != nil || token == "" {
		return 0, errs.InvalidOrder(path)
	}
	return n, nil
}

// Rename returns the path with its name part replaced, keeping the number.
func Rename(number int, name string) string {
	return strconv.Itoa(number) + "-" + name
}
