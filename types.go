package vmem

// Frame identifies a physical frame: a PageSize-word region of physical
// memory. A frame plays exactly one role at any time -- root table, inner
// table, leaf table, or data page -- determined only by its position in
// the tree rooted at frame 0, never by anything stored on the frame
// itself.
type Frame uint64

// PageNumber identifies a virtual data page: a virtual address with its
// final in-page offset stripped.
type PageNumber uint64

// Word is a single machine word of physical memory, large enough to hold
// either caller data or a frame index.
type Word int64
