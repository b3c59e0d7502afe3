package vmem

import "github.com/NebulousLabs/Sia/build"

// isEmpty reports whether every word in frame reads as zero.
func (m *Manager) isEmpty(f Frame) (bool, error) {
	start := uint64(f) * m.geom.PageSize()
	for i := uint64(0); i < m.geom.PageSize(); i++ {
		w, err := m.pm.ReadWord(start + i)
		if err != nil {
			return false, build.ExtendErr("failed to read frame for emptiness check", err)
		}
		if w != 0 {
			return false, nil
		}
	}
	return true, nil
}

// isLeaf reports whether f is currently serving as a data page: whether
// the tree rooted at frame 0 contains a slot at depth TablesDepth whose
// value is f. An empty frame that is also a leaf (an all-zero data page)
// must not be treated as free -- its address is live in some leaf-table
// slot -- which is exactly why the allocator consults isLeaf in addition
// to isEmpty.
func (m *Manager) isLeaf(f Frame) (bool, error) {
	return m.isLeafAt(0, 0, f)
}

func (m *Manager) isLeafAt(frame Frame, depth uint, target Frame) (bool, error) {
	if depth == m.geom.TablesDepth {
		return frame == target, nil
	}
	start := uint64(frame) * m.geom.PageSize()
	for i := uint64(0); i < m.geom.PageSize(); i++ {
		child, err := m.pm.ReadWord(start + i)
		if err != nil {
			return false, build.ExtendErr("failed to read table slot", err)
		}
		if child == 0 {
			continue
		}
		found, err := m.isLeafAt(Frame(child), depth+1, target)
		if err != nil {
			return false, err
		}
		if found {
			return true, nil
		}
	}
	return false, nil
}
