package vmem

import (
	"errors"
	"sync"

	"github.com/NebulousLabs/Sia/build"
)

// Manager translates virtual addresses to physical words over a
// caller-supplied PhysicalMemory, paging tables and data in and out of
// frames on demand. A Manager is safe for concurrent use; all operations
// hold a single coarse-grained lock for their duration.
type Manager struct {
	geom Geometry
	pm   PhysicalMemory
	mu   sync.Mutex
}

// New returns a Manager over pm, sized according to geom. pm is assumed
// to be freshly zeroed; callers should follow New with Initialize before
// issuing any Read or Write.
func New(geom Geometry, pm PhysicalMemory) (*Manager, error) {
	if pm == nil {
		return nil, errors.New("vmem: PhysicalMemory must not be nil")
	}
	return &Manager{geom: geom, pm: pm}, nil
}

// Initialize clears frame 0, establishing it as an empty root table. It
// must be called once before the first Read or Write.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clearFrame(0)
}

// Read returns the word at virtual address v, installing any tables or
// data page along the path that do not yet exist.
func (m *Manager) Read(v uint64) (Word, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if v >= m.geom.VirtualMemorySize {
		return 0, ErrAddressOutOfRange
	}
	var value Word
	if err := m.translate(v, &value, false); err != nil {
		return 0, build.ExtendErr("failed to read virtual address", err)
	}
	return value, nil
}

// Write stores value at virtual address v, installing any tables or data
// page along the path that do not yet exist.
func (m *Manager) Write(v uint64, value Word) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if v >= m.geom.VirtualMemorySize {
		return ErrAddressOutOfRange
	}
	if err := m.translate(v, &value, true); err != nil {
		return build.ExtendErr("failed to write virtual address", err)
	}
	return nil
}
