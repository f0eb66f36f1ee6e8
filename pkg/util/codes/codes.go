package codes

import (
	"fmt"
	"strconv"
	"strings"
)

// NextSequence scans existing ids of the form prefix+digits, ignoring any
// that do not match, and returns prefix followed by max+1 zero-padded to
// width. Numbers wider than width are written in full.
func NextSequence(existing []string, prefix string, width int) string {
	max := 0
	for _, id := range existing {
		n, ok := parseSuffix(id, prefix)
		if ok && n > max {
			max = n
		}
	}
	return FormatSequence(prefix, max+1, width)
}

// NextNumber returns the largest existing id plus one, or start when there
// are none.
func NextNumber(existing []int, start int) int {
	if len(existing) == 0 {
		return start
	}
	max := existing[0]
	for _, n := range existing[1:] {
		if n > max {
			max = n
		}
	}
	return max + 1
}

// FormatSequence renders prefix+n padded to width digits, e.g. ("A", 6, 3) -> "A006".
func FormatSequence(prefix string, n, width int) string {
	return fmt.Sprintf("%s%0*d", prefix, width, n)
}

func parseSuffix(id, prefix string) (int, bool) {
	if !strings.HasPrefix(id, prefix) {
		return 0, false
	}
	digits := id[len(prefix):]
	if digits == "" {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}
