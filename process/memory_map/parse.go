package memory_map

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrMalformedEntry is returned when a maps line does not match the
// expected field layout. A corrupt entry means the format assumption is
// violated, so the whole read is aborted rather than the line skipped.
var ErrMalformedEntry = errors.New("malformed memory map entry")

// ParseRegions parses the text of a /proc/[pid]/maps file into regions in
// file order, which the kernel keeps ascending by start address. It fails
// on the first malformed line with an error wrapping ErrMalformedEntry,
// returning no regions.
func ParseRegions(r io.Reader) ([]MemoryRegion, error) {
	var regions []MemoryRegion

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for line := 1; scanner.Scan(); line++ {
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		region, err := parseRegionLine(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %q: %w", line, text, err)
		}
		regions = append(regions, region)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read memory map: %w", err)
	}

	return regions, nil
}

// parseRegionLine parses one maps line:
//
//	00400000-00452000 r-xp 00000000 08:01 123456 /usr/bin/example
//
// The trailing path is optional; when absent the region is anonymous.
func parseRegionLine(line string) (MemoryRegion, error) {
	fields := strings.Fields(line)
	if len(fields) < 5 {
		return MemoryRegion{}, fmt.Errorf("%w: %d fields, want at least 5", ErrMalformedEntry, len(fields))
	}

	addrs := strings.SplitN(fields[0], "-", 2)
	if len(addrs) != 2 {
		return MemoryRegion{}, fmt.Errorf("%w: address range %q", ErrMalformedEntry, fields[0])
	}
	start, err := strconv.ParseUint(addrs[0], 16, 64)
	if err != nil {
		return MemoryRegion{}, fmt.Errorf("%w: start address %q", ErrMalformedEntry, addrs[0])
	}
	end, err := strconv.ParseUint(addrs[1], 16, 64)
	if err != nil {
		return MemoryRegion{}, fmt.Errorf("%w: end address %q", ErrMalformedEntry, addrs[1])
	}
	if start >= end {
		return MemoryRegion{}, fmt.Errorf("%w: empty address range %q", ErrMalformedEntry, fields[0])
	}

	perms, err := ParsePermissions(fields[1])
	if err != nil {
		return MemoryRegion{}, fmt.Errorf("%w: %v", ErrMalformedEntry, err)
	}

	offset, err := strconv.ParseUint(fields[2], 16, 64)
	if err != nil {
		return MemoryRegion{}, fmt.Errorf("%w: offset %q", ErrMalformedEntry, fields[2])
	}

	dev := strings.SplitN(fields[3], ":", 2)
	if len(dev) != 2 {
		return MemoryRegion{}, fmt.Errorf("%w: device %q", ErrMalformedEntry, fields[3])
	}
	devMajor, err := strconv.ParseUint(dev[0], 16, 32)
	if err != nil {
		return MemoryRegion{}, fmt.Errorf("%w: device major %q", ErrMalformedEntry, dev[0])
	}
	devMinor, err := strconv.ParseUint(dev[1], 16, 32)
	if err != nil {
		return MemoryRegion{}, fmt.Errorf("%w: device minor %q", ErrMalformedEntry, dev[1])
	}

	inode, err := strconv.ParseUint(fields[4], 10, 64)
	if err != nil {
		return MemoryRegion{}, fmt.Errorf("%w: inode %q", ErrMalformedEntry, fields[4])
	}

	// The pathname column may itself contain spaces
	var path string
	if len(fields) > 5 {
		path = strings.Join(fields[5:], " ")
	}

	return MemoryRegion{
		Start:    start,
		End:      end,
		Perms:    perms,
		Offset:   offset,
		DevMajor: uint32(devMajor),
		DevMinor: uint32(devMinor),
		Inode:    inode,
		Path:     path,
	}, nil
}
