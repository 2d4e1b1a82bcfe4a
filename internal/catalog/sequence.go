package catalog

import "slices"

// ranked is satisfied by catalog records carrying an ID and a manual sort
// rank.
type ranked interface {
	recordID() int
	rank() int
	setRank(int)
}

func (c *Category) recordID() int { return c.ID }
func (c *Category) rank() int     { return c.Sort }
func (c *Category) setRank(n int) { c.Sort = n }

func (s *Stream) recordID() int { return s.ID }
func (s *Stream) rank() int     { return s.Sort }
func (s *Stream) setRank(n int) { s.Sort = n }

// Resequence applies a caller-submitted ordering of IDs to rows: every row
// whose ID appears in orderedIDs gets sort = position+1, rows absent from the
// ordering keep their prior sort. If any rank changed, the slice is re-sorted
// by sort ascending (stable with respect to prior order on ties). Reports
// whether anything changed, so callers can skip a redundant write.
//
// orderedIDs may be a partial permutation; unknown IDs are ignored.
func Resequence[T ranked](rows []T, orderedIDs []int) bool {
	rankByID := make(map[int]int, len(orderedIDs))
	for i, id := range orderedIDs {
		rankByID[id] = i + 1
	}

	changed := false
	for _, row := range rows {
		if r, ok := rankByID[row.recordID()]; ok && row.rank() != r {
			row.setRank(r)
			changed = true
		}
	}

	if changed {
		slices.SortStableFunc(rows, func(a, b T) int {
			return a.rank() - b.rank()
		})
	}
	return changed
}
