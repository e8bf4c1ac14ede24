package fuzzy

// Ratio returns similarity of a and b in [0, 1] as 2*M/(len(a)+len(b)) where M
// is the number of runes covered by matching blocks. Blocks are found by taking
// the longest common substring and repeating on what is left to its left and right.
//
// Arguments are put in a canonical order first: with several longest blocks of the
// same size the choice depends on which string is scanned, and Ratio(a, b) must
// equal Ratio(b, a).
func Ratio(a, b string) float64 {
	if b < a {
		a, b = b, a
	}
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}
	return 2 * float64(matchingRunes(ra, rb)) / float64(total)
}

type span struct {
	alo, ahi int
	blo, bhi int
}

func matchingRunes(a, b []rune) int {
	matched := 0
	queue := []span{{alo: 0, ahi: len(a), blo: 0, bhi: len(b)}}
	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		i, j, size := longestMatch(a, b, s)
		if size == 0 {
			continue
		}
		matched += size
		if s.alo < i && s.blo < j {
			queue = append(queue, span{alo: s.alo, ahi: i, blo: s.blo, bhi: j})
		}
		if i+size < s.ahi && j+size < s.bhi {
			queue = append(queue, span{alo: i + size, ahi: s.ahi, blo: j + size, bhi: s.bhi})
		}
	}
	return matched
}

// longestMatch finds the longest common block of a[alo:ahi] and b[blo:bhi].
// Of equally long blocks the one that ends first in a wins, then the one that
// starts first in b.
func longestMatch(a, b []rune, s span) (besti, bestj, bestSize int) {
	besti, bestj = s.alo, s.blo
	width := s.bhi - s.blo + 1
	prev := make([]int, width)
	cur := make([]int, width)
	for i := s.alo; i < s.ahi; i++ {
		for j := s.blo; j < s.bhi; j++ {
			if a[i] != b[j] {
				cur[j-s.blo+1] = 0
				continue
			}
			size := prev[j-s.blo] + 1
			cur[j-s.blo+1] = size
			if size > bestSize {
				besti, bestj, bestSize = i-size+1, j-size+1, size
			}
		}
		prev, cur = cur, prev
	}
	return besti, bestj, bestSize
}
