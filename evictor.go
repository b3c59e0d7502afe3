package vmem

import "github.com/NebulousLabs/Sia/build"

// evictionState threads the DFS's running path-weight sum and the
// reconstructed page number through the recursion, alongside the
// best-scoring page found so far.
type evictionState struct {
	sum         int64
	pageNumber  uint64
	haveBest    bool
	bestSum     int64
	victimPage  uint64
	victimFrame Frame
}

func weightOf(n uint64, even, odd int64) int64 {
	if n%2 == 0 {
		return even
	}
	return odd
}

// selectVictim performs a depth-first traversal of the table tree from
// frame 0, scoring every resident data page by the sum of even/odd
// weights along its root-to-page path (the data-page frame's own weight
// included), and returns the page with the maximum score, breaking ties
// by the smaller page number.
func (m *Manager) selectVictim() (PageNumber, Frame, error) {
	st := &evictionState{}
	if err := m.evictDFS(0, 0, st); err != nil {
		return 0, 0, err
	}
	return PageNumber(st.victimPage), st.victimFrame, nil
}

func (m *Manager) evictDFS(frame Frame, depth uint, st *evictionState) error {
	frameWeight := weightOf(uint64(frame), m.geom.WeightEven, m.geom.WeightOdd)
	st.sum += frameWeight
	defer func() { st.sum -= frameWeight }()

	if depth == m.geom.TablesDepth {
		pageWeight := weightOf(st.pageNumber, m.geom.WeightEven, m.geom.WeightOdd)
		st.sum += pageWeight
		if !st.haveBest || st.sum > st.bestSum ||
			(st.sum == st.bestSum && st.pageNumber < st.victimPage) {
			st.haveBest = true
			st.bestSum = st.sum
			st.victimPage = st.pageNumber
			st.victimFrame = frame
		}
		st.sum -= pageWeight
		return nil
	}

	start := uint64(frame) * m.geom.PageSize()
	for i := uint64(0); i < m.geom.PageSize(); i++ {
		child, err := m.pm.ReadWord(start + i)
		if err != nil {
			return build.ExtendErr("failed to read table slot during eviction scan", err)
		}
		if child == 0 {
			continue
		}
		st.pageNumber = (st.pageNumber << m.geom.OffsetWidth) | i
		err = m.evictDFS(Frame(child), depth+1, st)
		st.pageNumber = (st.pageNumber - i) >> m.geom.OffsetWidth
		if err != nil {
			return err
		}
	}
	return nil
}
