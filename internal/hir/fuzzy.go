package hir

// fuzzySimilarity reports the normalized Damerau-Levenshtein similarity
// of a and b in [0,1]: 1 for identical strings, 0 for two strings with
// nothing in common. Used to suggest a likely-intended name for an
// unresolved reference.
func fuzzySimilarity(a, b string) float64 {
	maxLen := maxInt(len(a), len(b))
	if maxLen == 0 {
		return 1.0
	}
	dist := damerauLevenshtein(a, b)
	score := 1.0 - float64(dist)/float64(maxLen)
	if score < 0 {
		return 0
	}
	return score
}

// damerauLevenshtein computes the optimal string alignment distance
// between a and b: insertion, deletion, substitution, and adjacent
// transposition each cost 1.
func damerauLevenshtein(a, b string) int {
	la, lb := len(a), len(b)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	d := make([][]int, la+1)
	for i := range d {
		d[i] = make([]int, lb+1)
		d[i][0] = i
	}
	for j := 0; j <= lb; j++ {
		d[0][j] = j
	}

	for i := 1; i <= la; i++ {
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			d[i][j] = minInt3(
				d[i-1][j]+1,      // deletion
				d[i][j-1]+1,      // insertion
				d[i-1][j-1]+cost, // substitution
			)
			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				if t := d[i-2][j-2] + 1; t < d[i][j] {
					d[i][j] = t // transposition
				}
			}
		}
	}
	return d[la][lb]
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// fuzzySimilarityThreshold is the minimum normalized similarity a
// candidate must reach to be offered as a suggestion for an unresolved
// name, per §4.7.
const fuzzySimilarityThreshold = 0.5

// SuggestName looks among candidates for the one most similar to name,
// returning it (and true) only if its similarity clears
// fuzzySimilarityThreshold. Ties keep the first candidate encountered.
func SuggestName(name string, candidates []string) (string, bool) {
	best := ""
	bestScore := -1.0
	for _, cand := range candidates {
		if cand == name {
			continue
		}
		score := fuzzySimilarity(name, cand)
		if score > bestScore {
			best, bestScore = cand, score
		}
	}
	if bestScore < fuzzySimilarityThreshold {
		return "", false
	}
	return best, true
}

// SuggestForReference looks among the names visible from an unresolved
// bare reference's position for the closest match, used to populate an
// UnresolvedReference error's suggestion field.
func (h *Hir) SuggestForReference(sh SymbolHandle) (string, bool) {
	sym, ok := h.SymbolOK(sh)
	if !ok {
		return "", false
	}
	ref, ok := sym.AsReference()
	if !ok {
		return "", false
	}
	seen := map[string]struct{}{}
	var candidates []string
	for _, cand := range h.VisibleSymbolsFromSymbol(sh) {
		candSym, ok := h.SymbolOK(cand)
		if !ok {
			continue
		}
		if candSym.Kind != SymbolFn && candSym.Kind != SymbolDecl && candSym.Kind != SymbolVirtualModule {
			continue
		}
		name := candSym.Name()
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		candidates = append(candidates, name)
	}
	return SuggestName(ref.Name, candidates)
}
