package diag

import (
	"cmp"
	"slices"

	"fortio.org/safecast"

	"jlite/internal/source"
)

// Bag collects the diagnostics of one file. Jlite phases stop at the first
// error, so a bag usually holds one entry; the limit guards the lexer, which
// keeps scanning after a bad character.
type Bag struct {
	items   []Diagnostic
	limit   uint16
	dropped int
}

// NewBag returns a bag that keeps at most limit entries. Non-positive or
// out-of-range limits mean "as many as uint16 allows".
func NewBag(limit int) *Bag {
	l, err := safecast.Conv[uint16](limit)
	if err != nil || l == 0 {
		l = ^uint16(0)
	}
	return &Bag{limit: l}
}

// Add stores d and reports whether it fit under the limit.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.limit) {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Len() int { return len(b.items) }

// Dropped counts entries rejected by the limit.
func (b *Bag) Dropped() int { return b.dropped }

// Items отдаёт внутренний срез, менять его нельзя.
func (b *Bag) Items() []Diagnostic { return b.items }

func (b *Bag) HasErrors() bool {
	_, ok := b.FirstError()
	return ok
}

// FirstError returns the earliest added error-severity entry.
func (b *Bag) FirstError() (Diagnostic, bool) {
	for _, d := range b.items {
		if d.Severity >= SevError {
			return d, true
		}
	}
	return Diagnostic{}, false
}

// Sort orders entries by primary position; on a tie errors go before
// warnings, then lower codes first.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}

// Dedup drops entries that repeat the code and primary span of an earlier one.
func (b *Bag) Dedup() {
	type key struct {
		code Code
		span source.Span
	}
	seen := make(map[key]struct{}, len(b.items))
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool {
		k := key{d.Code, d.Primary}
		if _, dup := seen[k]; dup {
			return true
		}
		seen[k] = struct{}{}
		return false
	})
}
