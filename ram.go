package vmem

import "fmt"

// RAM is an in-process, word-addressed PhysicalMemory backed by a plain
// slice. Its Evict is a true no-op -- a RAM with nowhere to swap pages to
// simply discards them -- and its Restore always zero-fills the target
// frame, which is the conventional content for a page RAM has no record
// of. Callers that need pages to actually survive an Evict/Restore cycle
// should use BoltStore instead.
type RAM struct {
	words    []Word
	pageSize uint64
}

// NewRAM allocates a RAM sized for geom: NumFrames frames of PageSize
// words each, all initially zero.
func NewRAM(geom Geometry) *RAM {
	return &RAM{
		words:    make([]Word, geom.NumFrames*geom.PageSize()),
		pageSize: geom.PageSize(),
	}
}

// ReadWord implements PhysicalMemory.
func (r *RAM) ReadWord(word uint64) (Word, error) {
	if word >= uint64(len(r.words)) {
		return 0, fmt.Errorf("vmem: physical word %d out of range [0,%d)", word, len(r.words))
	}
	return r.words[word], nil
}

// WriteWord implements PhysicalMemory.
func (r *RAM) WriteWord(word uint64, value Word) error {
	if word >= uint64(len(r.words)) {
		return fmt.Errorf("vmem: physical word %d out of range [0,%d)", word, len(r.words))
	}
	r.words[word] = value
	return nil
}

// Evict implements PhysicalMemory. RAM has no backing store of its own,
// so the page's contents are simply discarded; the frame itself is left
// untouched until its caller clears or restores it.
func (r *RAM) Evict(frame Frame, page PageNumber) error {
	return nil
}

// Restore implements PhysicalMemory by zero-filling frame, since RAM
// cannot recover any content for a page it never durably stored.
func (r *RAM) Restore(frame Frame, page PageNumber) error {
	return r.zeroFrame(frame)
}

func (r *RAM) zeroFrame(frame Frame) error {
	start := uint64(frame) * r.pageSize
	if start+r.pageSize > uint64(len(r.words)) {
		return fmt.Errorf("vmem: frame %d out of range", frame)
	}
	for i := uint64(0); i < r.pageSize; i++ {
		r.words[start+i] = 0
	}
	return nil
}
