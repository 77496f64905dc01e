package plan

import "sort"

// minSlots keeps the "opção" selector offering at least this many slot
// numbers even on a near-empty plan.
const minSlots = 10

// SlotRange computes the selectable slot numbers 1..upper for the option
// index field. The upper bound always leaves room for one slot beyond the
// current row count and one beyond the highest index already in use, so
// sparse, out-of-order indices left behind by prior edits stay addressable.
func SlotRange(options map[int]Option) []int {
	maxUsed := 0
	for i := range options {
		if i > maxUsed {
			maxUsed = i
		}
	}

	upper := maxUsed + 1
	if n := len(options) + 1; n > upper {
		upper = n
	}
	if upper < minSlots {
		upper = minSlots
	}

	out := make([]int, 0, upper)
	for i := 1; i <= upper; i++ {
		out = append(out, i)
	}
	return out
}

// NextSlot returns the lowest free slot number within SlotRange. The range is
// built to always contain a free slot; the last value is returned as a
// fallback should every slot be taken.
func NextSlot(options map[int]Option) int {
	rng := SlotRange(options)
	for _, i := range rng {
		if _, used := options[i]; !used {
			return i
		}
	}
	return rng[len(rng)-1]
}

func sortedIndices(options map[int]Option) []int {
	out := make([]int, 0, len(options))
	for i := range options {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}
