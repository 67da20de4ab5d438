// Package levenshtein computes edit distances for the typo-suggestion
// diagnostic.
package levenshtein

// Distance returns the Levenshtein edit distance between a and b,
// using a single reusable row of O(len(b)) memory.
func Distance(a, b string) int {
	ar := []rune(a)
	br := []rune(b)

	if len(ar) == 0 {
		return len(br)
	}
	if len(br) == 0 {
		return len(ar)
	}

	row := make([]int, len(br)+1)
	for j := range row {
		row[j] = j
	}

	for i, ac := range ar {
		diag := row[0]
		row[0] = i + 1
		for j, bc := range br {
			up := row[j+1]
			cost := 1
			if ac == bc {
				cost = 0
			}
			row[j+1] = min(
				row[j]+1,  // deletion
				up+1,      // insertion
				diag+cost, // substitution
			)
			diag = up
		}
	}

	return row[len(br)]
}
