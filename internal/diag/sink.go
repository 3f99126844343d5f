package diag

import "zenc/internal/source"

// Sink is the structural contract the borrow and move analyzers share:
// report(token, message, hints[]) appends a diagnostic and increments an
// error counter. *Bag satisfies it directly.
type Sink interface {
	Report(code Code, pos source.Pos, message string, hints ...string) *Diagnostic
}
