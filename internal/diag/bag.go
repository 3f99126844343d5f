package diag

import (
	"sort"

	"zenc/internal/source"
)

// Bag accumulates diagnostics for one analysis run. Diagnostics are never
// thrown; every analysis keeps walking past an error and reports as much as
// possible, per the spec's propagation policy.
type Bag struct {
	items []*Diagnostic
}

// NewBag creates an empty Bag.
func NewBag() *Bag {
	return &Bag{}
}

// Report appends a new error-severity diagnostic and returns it so the
// caller can still attach notes.
func (b *Bag) Report(code Code, pos source.Pos, message string, hints ...string) *Diagnostic {
	d := &Diagnostic{
		Severity: SevError,
		Code:     code,
		Message:  message,
		Primary:  pos,
		Hints:    hints,
	}
	b.items = append(b.items, d)
	return d
}

// Len returns the number of diagnostics collected.
func (b *Bag) Len() int {
	return len(b.items)
}

// HasErrors reports whether any diagnostic reaches error severity.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity >= SevError {
			return true
		}
	}
	return false
}

// Items returns a read-only view of the collected diagnostics.
func (b *Bag) Items() []*Diagnostic {
	return b.items
}

// Sort orders diagnostics by position then code, for deterministic output.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.Line != dj.Primary.Line {
			return di.Primary.Line < dj.Primary.Line
		}
		if di.Primary.Col != dj.Primary.Col {
			return di.Primary.Col < dj.Primary.Col
		}
		return di.Code < dj.Code
	})
}
