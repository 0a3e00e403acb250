// Package memory_map models the per-process memory map exposed by the
// kernel through /proc/[pid]/maps and provides lookups over a parsed
// snapshot of it.
package memory_map

import (
	"fmt"
	"sort"
	"strings"
)

// MemoryRegion represents one contiguous virtual memory mapping in a
// process's address space, one line of /proc/[pid]/maps:
//
//	address           perms offset  dev   inode   pathname
//	08048000-08056000 r-xp 00000000 03:0c 64593   /usr/sbin/gpm
type MemoryRegion struct {
	Start uint64 // First address of the region
	End   uint64 // One past the last address of the region
	Perms Permissions

	// Offset is the file offset the mapping begins at, zero for
	// anonymous mappings.
	Offset uint64

	// DevMajor and DevMinor identify the device of the backing file
	DevMajor uint32
	DevMinor uint32

	// Inode is the inode of the backing file, zero for anonymous mappings
	Inode uint64

	// Path is the backing file path, or a special label such as "[heap]"
	// or "[stack]". Empty for anonymous mappings.
	Path string
}

// Size returns the length of the region in bytes
func (r MemoryRegion) Size() uint64 {
	return r.End - r.Start
}

// Contains reports whether addr falls within [Start, End)
func (r MemoryRegion) Contains(addr uint64) bool {
	return addr >= r.Start && addr < r.End
}

// String renders the region in the maps line format it was parsed from
func (r MemoryRegion) String() string {
	return fmt.Sprintf("%08x-%08x %s %08x %02x:%02x %d %s",
		r.Start, r.End, r.Perms, r.Offset, r.DevMajor, r.DevMinor, r.Inode, r.Path)
}

// FindRegion returns the first region whose path contains nameFilter as a
// substring (when non-empty) and whose permissions are a superset of perms
// (when non-zero). With both filters zero it returns the first region.
// The second return value is false when nothing matches.
//
// Only the first match is reported; callers needing every match should scan
// the slice themselves.
func FindRegion(regions []MemoryRegion, nameFilter string, perms Permissions) (MemoryRegion, bool) {
	for _, r := range regions {
		if nameFilter != "" && !strings.Contains(r.Path, nameFilter) {
			continue
		}
		if !r.Perms.Contains(perms) {
			continue
		}
		return r, true
	}
	return MemoryRegion{}, false
}

// RegionAt returns the region containing addr, using binary search over the
// snapshot, which /proc guarantees is sorted by ascending start address.
func RegionAt(regions []MemoryRegion, addr uint64) (MemoryRegion, bool) {
	i := sort.Search(len(regions), func(i int) bool {
		return regions[i].End > addr
	})
	if i < len(regions) && regions[i].Contains(addr) {
		return regions[i], true
	}
	return MemoryRegion{}, false
}
