package vmem

import "github.com/NebulousLabs/Sia/build"

// translate walks the table tree for virtual address v, installing any
// missing tables or data page along the way, then reads or writes the
// addressed word in place. write selects which of the two *value is used
// for: on a read, the word found is stored into *value; on a write, *value
// is stored into the word found.
func (m *Manager) translate(v uint64, value *Word, write bool) error {
	indices, offset, pageNumber := m.geom.decode(v)

	frame := Frame(0)
	var lastFrameUsed Frame
	needsRestore := false

	for level := uint(0); level < m.geom.TablesDepth; level++ {
		slot := uint64(frame)*m.geom.PageSize() + indices[level]
		w, err := m.pm.ReadWord(slot)
		if err != nil {
			return build.ExtendErr("failed to read table slot during translation", err)
		}

		if w == 0 {
			newFrame, err := m.findFrame(lastFrameUsed)
			if err != nil {
				return err
			}
			if err := m.pm.WriteWord(slot, Word(newFrame)); err != nil {
				return build.ExtendErr("failed to link new frame", err)
			}
			if level == m.geom.TablesDepth-1 {
				needsRestore = true
			} else if err := m.clearFrame(newFrame); err != nil {
				return err
			}
			lastFrameUsed = newFrame
			frame = newFrame
		} else {
			frame = Frame(w)
			lastFrameUsed = frame
		}
	}

	if needsRestore {
		if err := m.pm.Restore(frame, PageNumber(pageNumber)); err != nil {
			return build.ExtendErr("failed to restore data page", err)
		}
	}

	word := uint64(frame)*m.geom.PageSize() + offset
	if write {
		if err := m.pm.WriteWord(word, *value); err != nil {
			return build.ExtendErr("failed to write word", err)
		}
		return nil
	}
	w, err := m.pm.ReadWord(word)
	if err != nil {
		return build.ExtendErr("failed to read word", err)
	}
	*value = w
	return nil
}

// clearFrame zero-fills a newly allocated interior or leaf table so none
// of its slots appear to already link to a child.
func (m *Manager) clearFrame(f Frame) error {
	start := uint64(f) * m.geom.PageSize()
	for i := uint64(0); i < m.geom.PageSize(); i++ {
		if err := m.pm.WriteWord(start+i, 0); err != nil {
			return build.ExtendErr("failed to clear frame", err)
		}
	}
	return nil
}
