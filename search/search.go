// Package search implements byte pattern matching with optional wildcard
// masks over in-memory buffers.
package search

// Match returns every offset in data where pattern matches. A zero byte in
// mask makes the corresponding pattern byte a wildcard; a nil mask means an
// exact match. Mask, when non-nil, must be the same length as pattern.
func Match(data, pattern, mask []byte) []int {
	if len(pattern) == 0 || len(data) < len(pattern) {
		return nil
	}

	var matches []int
	for i := 0; i <= len(data)-len(pattern); i++ {
		if matchesAt(data[i:], pattern, mask) {
			matches = append(matches, i)
		}
	}
	return matches
}

// MatchFirst returns the first offset in data where pattern matches, or
// false when it does not occur.
func MatchFirst(data, pattern, mask []byte) (int, bool) {
	if len(pattern) == 0 || len(data) < len(pattern) {
		return 0, false
	}

	for i := 0; i <= len(data)-len(pattern); i++ {
		if matchesAt(data[i:], pattern, mask) {
			return i, true
		}
	}
	return 0, false
}

func matchesAt(data, pattern, mask []byte) bool {
	for j := 0; j < len(pattern); j++ {
		if mask != nil && mask[j] == 0 {
			continue
		}
		m := byte(0xFF)
		if mask != nil {
			m = mask[j]
		}
		if data[j]&m != pattern[j]&m {
			return false
		}
	}
	return true
}
