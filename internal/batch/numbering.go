package batch

import "strconv"

// NumberAllocator hands out check numbers for a batch. When disabled it passes
// the item's own declared number through unchanged. When enabled it yields a
// strictly increasing sequence, one number per attempted item: an item whose
// print fails still consumes its number, so printed numbers stay synchronized
// with physically spoiled check stock.
type NumberAllocator struct {
	enabled bool
	next    int
}

// NewNumberAllocator constructs an allocator starting at start when enabled.
func NewNumberAllocator(enabled bool, start int) *NumberAllocator {
	return &NumberAllocator{enabled: enabled, next: start}
}

// Next returns the check number for the next attempted item.
func (a *NumberAllocator) Next(declared string) string {
	if !a.enabled {
		return declared
	}
	number := strconv.Itoa(a.next)
	a.next++
	return number
}

// Enabled reports whether auto-numbering is active.
func (a *NumberAllocator) Enabled() bool {
	return a.enabled
}
