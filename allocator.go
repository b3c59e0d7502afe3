package vmem

import "github.com/NebulousLabs/Sia/build"

// findFrame returns a frame the caller may repurpose as the next table or
// data page to install along a translation path, trying three strategies
// in order:
//
//  1. Prune interior tables left empty by earlier eviction, then rescan:
//     pruning may free up a frame that reuse-or-grow can pick up directly.
//  2. Reuse the highest-numbered frame that is currently empty and not
//     itself serving as a data page, or, failing that, grow by handing
//     out the frame one past the highest frame in use.
//  3. Evict a resident data page to free its frame.
//
// lastFrameUsed is the frame this same translation reached at the previous
// level, whether it was just installed or already linked; it is never
// considered free, so a translator can never cannibalize its own freshly
// linked table.
func (m *Manager) findFrame(lastFrameUsed Frame) (Frame, error) {
	if err := m.pruneEmpty(lastFrameUsed); err != nil {
		return 0, err
	}

	maxUsed, err := m.maxFrameInUse()
	if err != nil {
		return 0, err
	}

	for f := maxUsed; f >= 1; f-- {
		frame := Frame(f)
		if frame == lastFrameUsed {
			continue
		}
		empty, err := m.isEmpty(frame)
		if err != nil {
			return 0, err
		}
		if !empty {
			continue
		}
		leaf, err := m.isLeaf(frame)
		if err != nil {
			return 0, err
		}
		if leaf {
			continue
		}
		return frame, nil
	}

	if uint64(maxUsed)+1 < m.geom.NumFrames {
		return maxUsed + 1, nil
	}

	victimPage, victimFrame, err := m.selectVictim()
	if err != nil {
		return 0, err
	}
	if victimFrame == 0 {
		panic("vmem: eviction selected frame 0 as victim")
	}
	if err := m.pm.Evict(victimFrame, victimPage); err != nil {
		return 0, build.ExtendErr("failed to evict victim page", err)
	}
	if err := m.unlinkFrame(victimFrame); err != nil {
		return 0, err
	}
	return victimFrame, nil
}

// unlinkFrame scans every table slot in physical memory and zeroes any
// that still points at frame, severing the one link the tree held to it.
// A frame is installed in exactly one parent slot, but the scan does not
// assume that invariant holds during recovery from an inconsistent state.
func (m *Manager) unlinkFrame(frame Frame) error {
	total := m.geom.NumFrames * m.geom.PageSize()
	target := Word(frame)
	for i := uint64(0); i < total; i++ {
		w, err := m.pm.ReadWord(i)
		if err != nil {
			return build.ExtendErr("failed to read physical word during unlink", err)
		}
		if w == target {
			if err := m.pm.WriteWord(i, 0); err != nil {
				return build.ExtendErr("failed to unlink frame", err)
			}
		}
	}
	return nil
}
