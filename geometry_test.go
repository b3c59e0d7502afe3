package vmem

import "testing"

func TestNewGeometryValidation(t *testing.T) {
	tests := []struct {
		name                                  string
		offsetWidth, tablesDepth              uint
		numFrames, vmSize                     uint64
		weightEven, weightOdd                 int64
		wantErr                               bool
	}{
		{"valid", 4, 4, 16, 1 << 20, 2, 1, false},
		{"zero offset width", 0, 4, 16, 1 << 20, 2, 1, true},
		{"zero tables depth", 4, 0, 16, 1 << 20, 2, 1, true},
		{"too few frames", 4, 4, 4, 1 << 20, 2, 1, true},
		{"exactly depth+1 frames", 4, 4, 5, 1 << 20, 2, 1, false},
		{"negative even weight", 4, 4, 16, 1 << 20, -1, 1, true},
		{"negative odd weight", 4, 4, 16, 1 << 20, 2, -1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGeometry(tt.offsetWidth, tt.tablesDepth, tt.numFrames, tt.vmSize, tt.weightEven, tt.weightOdd)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewGeometry() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGeometryPageSize(t *testing.T) {
	geom := testGeometry(t)
	if got := geom.PageSize(); got != 16 {
		t.Errorf("PageSize() = %v, want 16", got)
	}
}

func TestGeometryDecode(t *testing.T) {
	geom := testGeometry(t)

	// With OffsetWidth=4 and TablesDepth=4, a virtual address is 20 bits:
	// four 4-bit table indices followed by a 4-bit offset.
	v := uint64(0)
	v |= 3 << 16 // level 0 index
	v |= 5 << 12 // level 1 index
	v |= 7 << 8  // level 2 index
	v |= 9 << 4  // level 3 index
	v |= 2       // offset

	indices, offset, pageNumber := geom.decode(v)
	want := []uint64{3, 5, 7, 9}
	if len(indices) != len(want) {
		t.Fatalf("decode() returned %d indices, want %d", len(indices), len(want))
	}
	for i := range want {
		if indices[i] != want[i] {
			t.Errorf("indices[%d] = %v, want %v", i, indices[i], want[i])
		}
	}
	if offset != 2 {
		t.Errorf("offset = %v, want 2", offset)
	}
	if pageNumber != v>>geom.OffsetWidth {
		t.Errorf("pageNumber = %v, want %v", pageNumber, v>>geom.OffsetWidth)
	}
}
