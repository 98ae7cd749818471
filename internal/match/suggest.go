package match

// MinSimilarity is the lowest score Suggest accepts.
const MinSimilarity = 0.5

// Suggest returns the candidate most similar to name. ok is false when no
// candidate reaches MinSimilarity. Ties keep the earlier candidate.
func Suggest(name string, candidates []string) (best string, ok bool) {
	score := MinSimilarity

	for _, c := range candidates {
		if c == "" {
			continue
		}

		if s := Similarity(name, c); s > score || (s == score && !ok) {
			best, score, ok = c, s, true
		}
	}

	return best, ok
}

// Hint renders a " (did you mean %q?)" suffix, or "" without a suggestion.
func Hint(name string, candidates []string) string {
	if best, ok := Suggest(name, candidates); ok {
		return ` (did you mean "` + best + `"?)`
	}

	return ""
}
