package vmem

import "github.com/NebulousLabs/Sia/build"

// maxFrameInUse walks the tree from frame 0 through exactly TablesDepth
// levels, returning the highest frame index found in any slot, or 0 if
// the tree has no children yet.
func (m *Manager) maxFrameInUse() (Frame, error) {
	return m.maxFrameAt(0, 0)
}

func (m *Manager) maxFrameAt(frame Frame, depth uint) (Frame, error) {
	if depth == m.geom.TablesDepth {
		return 0, nil
	}
	var max Frame
	start := uint64(frame) * m.geom.PageSize()
	for i := uint64(0); i < m.geom.PageSize(); i++ {
		child, err := m.pm.ReadWord(start + i)
		if err != nil {
			return 0, build.ExtendErr("failed to read table slot", err)
		}
		if child == 0 {
			continue
		}
		cf := Frame(child)
		if cf > max {
			max = cf
		}
		sub, err := m.maxFrameAt(cf, depth+1)
		if err != nil {
			return 0, err
		}
		if sub > max {
			max = sub
		}
	}
	return max, nil
}

// pruneEmpty walks the tree from frame 0, recursing into each nonzero
// child before re-checking whether that child is now empty; if it is, and
// it is not lastFrameUsed, its parent slot is zeroed. Recursion never
// descends into a leaf table's entries (its children are data pages, not
// further tables) -- a leaf table itself can still be reclaimed from its
// own parent once all its page slots are gone, but its page slots are
// never inspected or cleared here.
func (m *Manager) pruneEmpty(lastFrameUsed Frame) error {
	return m.pruneAt(0, 0, lastFrameUsed)
}

func (m *Manager) pruneAt(frame Frame, depth uint, lastFrameUsed Frame) error {
	if depth == m.geom.TablesDepth-1 {
		return nil
	}
	start := uint64(frame) * m.geom.PageSize()
	for i := uint64(0); i < m.geom.PageSize(); i++ {
		child, err := m.pm.ReadWord(start + i)
		if err != nil {
			return build.ExtendErr("failed to read table slot", err)
		}
		if child == 0 {
			continue
		}
		cf := Frame(child)
		if err := m.pruneAt(cf, depth+1, lastFrameUsed); err != nil {
			return err
		}
		empty, err := m.isEmpty(cf)
		if err != nil {
			return err
		}
		if empty && cf != lastFrameUsed {
			if err := m.pm.WriteWord(start+i, 0); err != nil {
				return build.ExtendErr("failed to prune empty table slot", err)
			}
		}
	}
	return nil
}
