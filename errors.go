package vmem

import "errors"

// ErrAddressOutOfRange is returned by Read and Write when the virtual
// address is not smaller than the Geometry's VirtualMemorySize. No RAM or
// backing-store state is touched before this check runs.
var ErrAddressOutOfRange = errors.New("vmem: virtual address out of range")
