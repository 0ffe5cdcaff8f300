// Package verchain contains the pure rules of the linear version chain.
//
// A repo's versions form an append-only chain; exactly one version is the
// latest (greatest sequence number). Structural mutation is only permitted
// on the latest version. Guards are pure functions evaluated against a
// snapshot of the chain; callers must re-evaluate them inside the same
// transaction that performs the mutation.
package verchain

import "github.com/example/cutroom/internal/errs"

// ChainView is the minimal snapshot a guard needs.
type ChainView struct {
	VersionID    string
	VersionSeq   int
	LatestSeq    int
	VersionCount int
}

// CanCopyStructure evaluates whether a version may serve as the source of a
// copy-on-branch. Only the latest version may be branched, keeping history
// linear.
func CanCopyStructure(v ChainView) error {
	if v.VersionSeq != v.LatestSeq {
		return errs.NotLatestVersion(v.VersionID)
	}
	return nil
}

// CanDeleteVersion evaluates whether a version may be deleted.
// Rules:
//   - a repo keeps at least one version
//   - only the latest version may be deleted
func CanDeleteVersion(v ChainView) error {
	if v.VersionCount <= 1 {
		return errs.CannotDeleteOnlyVersion(v.VersionID)
	}
	if v.VersionSeq != v.LatestSeq {
		return errs.CannotDeleteNonLatestVersion(v.VersionID)
	}
	return nil
}
