package similarity

// popularMinLen is the length of b from which runes occurring in more than 1%
// of positions stop seeding matches.
const popularMinLen = 200

type matcher struct {
	a, b []rune
	// b2j maps each rune of b to its ascending positions.
	b2j map[rune][]int
}

func newMatcher(a, b []rune) *matcher {
	m := &matcher{a: a, b: b, b2j: make(map[rune][]int)}
	for j, r := range b {
		m.b2j[r] = append(m.b2j[r], j)
	}
	if n := len(b); n >= popularMinLen {
		limit := n/100 + 1
		for r, positions := range m.b2j {
			if len(positions) > limit {
				delete(m.b2j, r)
			}
		}
	}
	return m
}

type block struct {
	i, j, size int
}

// longestMatch finds the longest block a[i:i+size] == b[j:j+size] inside
// a[alo:ahi] and b[blo:bhi], preferring the earliest start in a, then in b.
func (m *matcher) longestMatch(alo, ahi, blo, bhi int) block {
	best := block{i: alo, j: blo}
	j2len := map[int]int{}
	for i := alo; i < ahi; i++ {
		next := map[int]int{}
		for _, j := range m.b2j[m.a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			next[j] = k
			if k > best.size {
				best = block{i: i - k + 1, j: j - k + 1, size: k}
			}
		}
		j2len = next
	}

	// Popular runes were dropped from b2j; grow the block across them.
	for best.i > alo && best.j > blo && m.a[best.i-1] == m.b[best.j-1] {
		best.i--
		best.j--
		best.size++
	}
	for best.i+best.size < ahi && best.j+best.size < bhi && m.a[best.i+best.size] == m.b[best.j+best.size] {
		best.size++
	}
	return best
}

// matchedRunes sums the sizes of all matching blocks.
func (m *matcher) matchedRunes() int {
	type span struct{ alo, ahi, blo, bhi int }
	queue := []span{{0, len(m.a), 0, len(m.b)}}
	total := 0
	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		blk := m.longestMatch(s.alo, s.ahi, s.blo, s.bhi)
		if blk.size == 0 {
			continue
		}
		total += blk.size
		if s.alo < blk.i && s.blo < blk.j {
			queue = append(queue, span{s.alo, blk.i, s.blo, blk.j})
		}
		if blk.i+blk.size < s.ahi && blk.j+blk.size < s.bhi {
			queue = append(queue, span{blk.i + blk.size, s.ahi, blk.j + blk.size, s.bhi})
		}
	}
	return total
}
