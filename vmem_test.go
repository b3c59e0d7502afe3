package vmem

import "testing"

// testGeometry returns the small geometry used throughout the test suite:
// 4-bit offsets (16-word pages), 4 table levels, 16 frames, even/odd
// weights of 2 and 1.
func testGeometry(t testing.TB) Geometry {
	t.Helper()
	geom, err := NewGeometry(4, 4, 16, 1<<20, 2, 1)
	if err != nil {
		t.Fatalf("failed to build test geometry: %v", err)
	}
	return geom
}

// newTestManager returns a Manager over a fresh in-memory RAM, already
// initialized and ready for Read/Write.
func newTestManager(t testing.TB, geom Geometry) *Manager {
	t.Helper()
	m, err := New(geom, NewRAM(geom))
	if err != nil {
		t.Fatalf("failed to construct manager: %v", err)
	}
	if err := m.Initialize(); err != nil {
		t.Fatalf("failed to initialize manager: %v", err)
	}
	return m
}
