package exec

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"

	"github.com/boxmux/boxmux/internal/boxmodel"
)

// Key identifies a worker for the at-most-one-outstanding rule of
// spec.md §5: a box may have at most one live worker per (stream kind,
// command fingerprint) — starting the same script twice on the same
// stream replaces the old run rather than stacking a second one.
type Key struct {
	BoxID        string
	StreamKind   boxmodel.StreamKind
	StreamID     string
	Fingerprint  string
}

// Fingerprint derives a stable identity for a command so that identical
// scripts dedupe (re-running the same box's refresh doesn't spawn a
// second worker) while distinct scripts on the same stream kind don't
// collide.
func Fingerprint(script []string) string {
	h := sha1.New()
	h.Write([]byte(strings.Join(script, "\x00")))
	return hex.EncodeToString(h.Sum(nil))
}
