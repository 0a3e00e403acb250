package process

import (
	"memprobe/process/memory_map"
)

// Process is the interface that defines operations for interacting with the
// memory of a running process.
//
// A Process value is not safe for concurrent use: the underlying memory
// handle performs positioned I/O, so concurrent readers and writers of the
// same Process must be serialized by the caller. Independent Process values
// for different pids may be used concurrently.
type Process interface {
	// Open binds the process with the given PID for memory operations.
	// It fails with ErrProcessNotFound if the pid is not alive.
	Open(pid ProcessID) error

	// Close releases the memory handle. The target process is unaffected.
	Close() error

	// GetPID returns the process ID
	GetPID() ProcessID

	// UpdateMemoryMap replaces the current region snapshot with a freshly
	// parsed one. The snapshot never refreshes implicitly.
	UpdateMemoryMap() error

	// GetMemoryMap returns a copy of the current region snapshot
	GetMemoryMap() ([]memory_map.MemoryRegion, error)

	// FindRegion returns the first region of the current snapshot whose
	// path contains nameFilter (when non-empty) and whose permissions are
	// a superset of perms (when non-zero).
	FindRegion(nameFilter string, perms memory_map.Permissions) (memory_map.MemoryRegion, error)

	// RegionAt returns the region of the current snapshot containing addr
	RegionAt(addr MemoryAddress) (memory_map.MemoryRegion, error)

	// IsValidAddress checks if addr falls inside a readable region of the
	// current snapshot
	IsValidAddress(addr MemoryAddress) bool

	// ReadMemory reads exactly size bytes at addr in the target process
	ReadMemory(addr MemoryAddress, size MemorySize) ([]byte, error)

	// WriteMemory writes all of data at addr in the target process. The
	// target's memory changes immediately; there is no rollback.
	WriteMemory(addr MemoryAddress, data []byte) error

	// ReadMemoryVM reads exactly size bytes at addr using the
	// process_vm_readv syscall instead of the memory handle
	ReadMemoryVM(addr MemoryAddress, size MemorySize) ([]byte, error)

	// WriteMemoryVM writes all of data at addr using the
	// process_vm_writev syscall instead of the memory handle
	WriteMemoryVM(addr MemoryAddress, data []byte) error

	// Memory scanning operations
	MemoryScanner

	// Typed memory reading operations
	ProcessRead
}

// MemoryScanner defines operations for searching patterns in process memory
type MemoryScanner interface {
	// Scan searches all readable regions for a pattern and returns every
	// matching address
	Scan(aob AOB) ([]MemoryAddress, error)

	// ScanFirst searches for the first occurrence of a pattern
	ScanFirst(aob AOB) (MemoryAddress, error)
}

// ProcessRead defines typed read operations for process memory. All integer
// and float reads are little-endian.
type ProcessRead interface {
	// ReadUINT8 reads an unsigned 8-bit integer from the specified address
	ReadUINT8(addr MemoryAddress) (uint8, error)

	// ReadUINT16 reads an unsigned 16-bit integer from the specified address
	ReadUINT16(addr MemoryAddress) (uint16, error)

	// ReadUINT32 reads an unsigned 32-bit integer from the specified address
	ReadUINT32(addr MemoryAddress) (uint32, error)

	// ReadUINT64 reads an unsigned 64-bit integer from the specified address
	ReadUINT64(addr MemoryAddress) (uint64, error)

	// ReadINT32 reads a signed 32-bit integer from the specified address
	ReadINT32(addr MemoryAddress) (int32, error)

	// ReadINT64 reads a signed 64-bit integer from the specified address
	ReadINT64(addr MemoryAddress) (int64, error)

	// ReadFLOAT32 reads a 32-bit floating point number from the specified address
	ReadFLOAT32(addr MemoryAddress) (float32, error)

	// ReadFLOAT64 reads a 64-bit floating point number from the specified address
	ReadFLOAT64(addr MemoryAddress) (float64, error)

	// ReadPOINTER reads a pointer value from the specified address
	ReadPOINTER(addr MemoryAddress) (MemoryAddress, error)

	// ReadNTS reads a null-terminated string from the specified address
	// with a maximum length
	ReadNTS(addr MemoryAddress, maxLength MemorySize) (string, error)
}
