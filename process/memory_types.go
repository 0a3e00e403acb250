package process

import (
	"fmt"
)

// MemoryAddress represents a memory address within a process
type MemoryAddress uint64

func (a MemoryAddress) String() string {
	return fmt.Sprintf("0x%X", uint64(a))
}

// MemorySize represents a size of a memory range in bytes
type MemorySize uint

func (s MemorySize) String() string {
	return fmt.Sprintf("%d bytes", uint(s))
}

// AOB (Array of Bytes) represents a pattern to search for in memory
type AOB struct {
	Pattern []byte // The byte pattern to search for
	Mask    []byte // Optional mask where 0xFF means exact match and 0x00 means wildcard
}

// NewAOB builds a pattern with an explicit mask. Pattern and mask must be of
// the same length.
func NewAOB(pattern, mask []byte) (AOB, error) {
	if len(pattern) != len(mask) {
		return AOB{}, fmt.Errorf("pattern and mask must be of the same length")
	}
	return AOB{Pattern: pattern, Mask: mask}, nil
}
