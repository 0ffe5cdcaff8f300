// Package app implements the primary service ports on top of the secondary
// repository and tool ports.
//
// Services validate input, evaluate guards from the core packages, delegate
// mutations to the repositories and refetch the authoritative state. Typed
// failures pass through untouched; anything else is logged and wrapped as an
// Unknown failure so callers always see a closed error set.
package app

import (
	"log/slog"

	"github.com/example/cutroom/internal/errs"
)

// wrapUnexpected passes typed failures through and converts anything else to
// an Unknown failure, logging it once at the point of wrapping.
func wrapUnexpected(logger *slog.Logger, op string, err error) error {
	if err == nil {
		return nil
	}
	if errs.CodeOf(err) != "" {
		return err
	}
	logger.Error("unexpected failure", "op", op, "error", err)
	return errs.Unknown(err)
}
