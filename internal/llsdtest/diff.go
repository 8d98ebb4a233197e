package llsdtest

import "github.com/google/go-cmp/cmp"

// Diff returns a human-readable structural diff between two snapshotted
// Values (see Dump's snapshot helper), or "" if they're identical. Used
// by llsdpath's filter test where a plain require.Equal failure only says
// "not equal" and leaves the caller re-deriving which key diverged.
func Diff(want, got any) string {
	return cmp.Diff(want, got)
}
