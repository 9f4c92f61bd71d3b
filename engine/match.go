package engine

import "strings"

// truncLimit is the name length at which some kernels cut off the reported
// executable name (comm is 15 chars + NUL on Linux, ps -c behaves the same
// way on macOS). The truncation rules below only fire at or past this limit.
const truncLimit = 15

// execSuffixes are the executable extensions stripped during basename
// comparison. All four are exactly 4 characters; stripSuffix removes a fixed
// 4 bytes, so variable-length entries must not be added here.
var execSuffixes = []string{".exe", ".app", ".bin", ".run"}

// Matches reports whether a captured process name plausibly corresponds to
// the query. Comparison is case-insensitive and accepts truncated names,
// prefix matches in either direction, path/extension differences, and
// display names with spaces ("App Name" vs "appname").
func Matches(candidate, query string) bool {
	cand := strings.ToLower(candidate)
	q := strings.ToLower(query)

	// Name truncated by the OS: the query carries the full spelling.
	if len(cand) >= truncLimit && strings.HasPrefix(q, cand) {
		return true
	}
	// Query longer than the limit: compare against its truncated form.
	if len(q) > truncLimit && strings.HasPrefix(cand, q[:truncLimit]) {
		return true
	}

	if cand == q {
		return true
	}

	// Prefix either direction.
	if strings.HasPrefix(q, cand) || strings.HasPrefix(cand, q) {
		return true
	}

	if stripSuffix(basename(cand)) == stripSuffix(basename(q)) {
		return true
	}

	// "App Name" display names map to a space-free process name.
	if strings.ContainsRune(query, ' ') {
		if cand == strings.ReplaceAll(q, " ", "") {
			return true
		}
	}

	return false
}

// basename drops everything up to the last path separator.
func basename(s string) string {
	if i := strings.LastIndexByte(s, '/'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// stripSuffix removes one known executable extension, if present.
func stripSuffix(s string) string {
	for _, suf := range execSuffixes {
		if strings.HasSuffix(s, suf) {
			return s[:len(s)-4]
		}
	}
	return s
}
