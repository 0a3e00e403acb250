//go:build linux

package process_linux

import (
	"errors"
	"fmt"
	"io"
	"syscall"

	"memprobe/process"
)

// ReadMemory reads exactly size bytes at addr through the /proc/[pid]/mem
// handle. Short kernel reads are accumulated until the full length is
// obtained or an error occurs; on error nothing is returned.
//
// The address is not checked against the region snapshot: the caller is
// expected to supply addresses obtained from region lookups, and an
// unmapped range surfaces as process.ErrInvalidAddress.
func (p *LinuxProcess) ReadMemory(addr process.MemoryAddress, size process.MemorySize) ([]byte, error) {
	if p.mem == nil {
		return nil, process.ErrProcessNotOpen
	}

	buf := make([]byte, size)
	read := 0
	for read < len(buf) {
		n, err := p.mem.ReadAt(buf[read:], int64(addr)+int64(read))
		read += n
		if err != nil {
			return nil, fmt.Errorf("read %s at %s: %w", size, addr, translateMemError(err))
		}
		if n == 0 {
			return nil, fmt.Errorf("read %s at %s: %d of %d bytes: %w",
				size, addr, read, len(buf), process.ErrPartialTransfer)
		}
	}
	return buf, nil
}

// WriteMemory writes all of data at addr through the /proc/[pid]/mem
// handle, accumulating short kernel writes the same way ReadMemory does.
// The write takes effect in the target immediately and irreversibly.
func (p *LinuxProcess) WriteMemory(addr process.MemoryAddress, data []byte) error {
	if p.mem == nil {
		return process.ErrProcessNotOpen
	}

	written := 0
	for written < len(data) {
		n, err := p.mem.WriteAt(data[written:], int64(addr)+int64(written))
		written += n
		if err != nil {
			return fmt.Errorf("write %d bytes at %s: %w", len(data), addr, translateMemError(err))
		}
		if n == 0 {
			return fmt.Errorf("write at %s: %d of %d bytes: %w",
				addr, written, len(data), process.ErrPartialTransfer)
		}
	}
	return nil
}

// translateMemError maps kernel I/O failures on the memory handle onto the
// package sentinel errors. Reads on /proc/[pid]/mem report unmapped ranges
// as EIO or EOF depending on where the range sits relative to the mapped
// address space.
func translateMemError(err error) error {
	switch {
	case errors.Is(err, io.EOF):
		return process.ErrInvalidAddress
	case errors.Is(err, syscall.EIO), errors.Is(err, syscall.EFAULT), errors.Is(err, syscall.ENXIO):
		return process.ErrInvalidAddress
	case errors.Is(err, syscall.ESRCH):
		return process.ErrProcessNotFound
	case errors.Is(err, syscall.EPERM), errors.Is(err, syscall.EACCES):
		return process.ErrPermissionDenied
	default:
		return err
	}
}
