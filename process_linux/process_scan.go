//go:build linux

package process_linux

import (
	"bytes"
	"fmt"

	"memprobe/process"
	"memprobe/search"
)

// Scan searches every readable region of the current snapshot for the given
// pattern and returns all matching addresses. Regions that fail to read
// (racing unmaps, special mappings) are skipped, not fatal.
func (p *LinuxProcess) Scan(aob process.AOB) ([]process.MemoryAddress, error) {
	regions, err := p.GetMemoryMap()
	if err != nil {
		return nil, err
	}

	if len(aob.Pattern) == 0 {
		return nil, fmt.Errorf("empty pattern")
	}
	if aob.Mask == nil {
		aob.Mask = bytes.Repeat([]byte{0xFF}, len(aob.Pattern))
	} else if len(aob.Mask) != len(aob.Pattern) {
		return nil, fmt.Errorf("mask length (%d) doesn't match pattern length (%d)",
			len(aob.Mask), len(aob.Pattern))
	}

	p.log.Infoln("Starting memory scan for pattern of length", len(aob.Pattern))

	var results []process.MemoryAddress
	for _, region := range regions {
		if !region.Perms.IsReadable() {
			continue
		}

		data, err := p.ReadMemory(process.MemoryAddress(region.Start), process.MemorySize(region.Size()))
		if err != nil {
			p.log.Debugln("Failed to read memory region at", fmt.Sprintf("%x", region.Start), err)
			continue
		}

		for _, offset := range search.Match(data, aob.Pattern, aob.Mask) {
			results = append(results, process.MemoryAddress(region.Start+uint64(offset)))
		}
	}

	p.log.Infoln("Scan complete, found", len(results), "matches")
	return results, nil
}

// ScanFirst searches for the first occurrence of the pattern, stopping at
// the first region that contains a match.
func (p *LinuxProcess) ScanFirst(aob process.AOB) (process.MemoryAddress, error) {
	regions, err := p.GetMemoryMap()
	if err != nil {
		return 0, err
	}

	if len(aob.Pattern) == 0 {
		return 0, fmt.Errorf("empty pattern")
	}
	if aob.Mask != nil && len(aob.Mask) != len(aob.Pattern) {
		return 0, fmt.Errorf("mask length (%d) doesn't match pattern length (%d)",
			len(aob.Mask), len(aob.Pattern))
	}

	for _, region := range regions {
		if !region.Perms.IsReadable() {
			continue
		}

		data, err := p.ReadMemory(process.MemoryAddress(region.Start), process.MemorySize(region.Size()))
		if err != nil {
			p.log.Debugln("Failed to read memory region at", fmt.Sprintf("%x", region.Start), err)
			continue
		}

		if offset, ok := search.MatchFirst(data, aob.Pattern, aob.Mask); ok {
			return process.MemoryAddress(region.Start + uint64(offset)), nil
		}
	}

	return 0, fmt.Errorf("pattern not found")
}
