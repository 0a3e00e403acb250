//go:build linux

package process_linux

import (
	"bytes"
	"encoding/binary"
	"math"

	"memprobe/process"
)

// Typed reads on top of ReadMemory. All multi-byte values are read
// little-endian, matching the architectures this package targets.

func (p *LinuxProcess) ReadUINT8(addr process.MemoryAddress) (uint8, error) {
	data, err := p.ReadMemory(addr, 1)
	if err != nil {
		return 0, err
	}
	return data[0], nil
}

func (p *LinuxProcess) ReadUINT16(addr process.MemoryAddress) (uint16, error) {
	data, err := p.ReadMemory(addr, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(data), nil
}

func (p *LinuxProcess) ReadUINT32(addr process.MemoryAddress) (uint32, error) {
	data, err := p.ReadMemory(addr, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(data), nil
}

func (p *LinuxProcess) ReadUINT64(addr process.MemoryAddress) (uint64, error) {
	data, err := p.ReadMemory(addr, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(data), nil
}

func (p *LinuxProcess) ReadINT32(addr process.MemoryAddress) (int32, error) {
	v, err := p.ReadUINT32(addr)
	return int32(v), err
}

func (p *LinuxProcess) ReadINT64(addr process.MemoryAddress) (int64, error) {
	v, err := p.ReadUINT64(addr)
	return int64(v), err
}

func (p *LinuxProcess) ReadFLOAT32(addr process.MemoryAddress) (float32, error) {
	v, err := p.ReadUINT32(addr)
	return math.Float32frombits(v), err
}

func (p *LinuxProcess) ReadFLOAT64(addr process.MemoryAddress) (float64, error) {
	v, err := p.ReadUINT64(addr)
	return math.Float64frombits(v), err
}

func (p *LinuxProcess) ReadPOINTER(addr process.MemoryAddress) (process.MemoryAddress, error) {
	v, err := p.ReadUINT64(addr)
	return process.MemoryAddress(v), err
}

// ReadNTS reads a NUL-terminated string starting at addr, giving up after
// maxLength bytes. It reads in small chunks so a string near the end of a
// mapping does not fault on bytes past the terminator.
func (p *LinuxProcess) ReadNTS(addr process.MemoryAddress, maxLength process.MemorySize) (string, error) {
	const chunkSize = 64

	var out []byte
	for process.MemorySize(len(out)) < maxLength {
		size := process.MemorySize(chunkSize)
		if remaining := maxLength - process.MemorySize(len(out)); remaining < size {
			size = remaining
		}

		chunk, err := p.ReadMemory(addr+process.MemoryAddress(len(out)), size)
		if err != nil {
			return "", err
		}
		if i := bytes.IndexByte(chunk, 0); i >= 0 {
			return string(append(out, chunk[:i]...)), nil
		}
		out = append(out, chunk...)
	}
	return string(out), nil
}
