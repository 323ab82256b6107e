package booking

import (
	"fmt"
	"sort"
	"strings"
)

// ValidateDuration applies the activity's configured duration rule. The
// package hint is used to resolve the base duration for multiple-of-base
// activities; if the package is unknown no base can be resolved and the
// check is skipped, matching how partially collected drafts behave.
func ValidateDuration(cfg ActivityConfig, durationMin int, packageHint string) error {
	if durationMin <= 0 {
		return NewInvalidDurationError("duration must be a positive number of minutes")
	}
	switch cfg.Rule {
	case DurationMultiple:
		base := cfg.BaseForPackage(packageHint)
		if base == 0 {
			return nil
		}
		if durationMin%base != 0 {
			return NewInvalidDurationError(fmt.Sprintf(
				"invalid duration for %s: must be a multiple of %d minutes", packageHint, base))
		}
	case DurationComposite:
		if !Decomposable(durationMin, cfg.CompositeBases) {
			return NewInvalidDurationError(fmt.Sprintf(
				"that duration cannot be built from the available tour legs (%s minutes)",
				joinBases(cfg.CompositeBases)))
		}
	}
	return nil
}

// Decomposable reports whether target minutes can be expressed as a
// non-negative integer combination of the bases. It is a breadth-first
// reachability search over remainders, bounded by the target.
func Decomposable(target int, bases []int) bool {
	if target <= 0 || len(bases) == 0 {
		return false
	}
	seen := make(map[int]bool, target/bases[len(bases)-1]+1)
	queue := []int{target}
	seen[target] = true
	for len(queue) > 0 {
		rem := queue[0]
		queue = queue[1:]
		for _, b := range bases {
			next := rem - b
			if next == 0 {
				return true
			}
			if next > 0 && !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return false
}

// GreedyBreakdown returns the canonical largest-first decomposition of
// target over the bases: the count of the largest base is maximized first,
// then the next, backtracking only as far as needed to land exactly on zero.
// The second return is false when no combination exists.
func GreedyBreakdown(target int, bases []int) ([]BaseCount, bool) {
	if target <= 0 || len(bases) == 0 {
		return nil, false
	}
	sorted := make([]int, len(bases))
	copy(sorted, bases)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	counts := make([]int, len(sorted))
	if !greedyFill(target, sorted, counts, 0) {
		return nil, false
	}
	var out []BaseCount
	for i, c := range counts {
		if c > 0 {
			out = append(out, BaseCount{BaseMin: sorted[i], Count: c})
		}
	}
	return out, true
}

// BaseCount is one leg of a composite-duration breakdown.
type BaseCount struct {
	BaseMin int `json:"base_min"`
	Count   int `json:"count"`
}

func (bc BaseCount) String() string {
	return fmt.Sprintf("%dx%dmin", bc.Count, bc.BaseMin)
}

func greedyFill(rem int, bases, counts []int, i int) bool {
	if rem == 0 {
		return true
	}
	if i >= len(bases) {
		return false
	}
	for n := rem / bases[i]; n >= 0; n-- {
		counts[i] = n
		if greedyFill(rem-n*bases[i], bases, counts, i+1) {
			return true
		}
	}
	counts[i] = 0
	return false
}

func joinBases(bases []int) string {
	parts := make([]string, len(bases))
	for i, b := range bases {
		parts[i] = fmt.Sprintf("%d", b)
	}
	return strings.Join(parts, "/")
}
