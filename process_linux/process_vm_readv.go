//go:build linux

package process_linux

import (
	"fmt"
	"unsafe"

	"memprobe/process"

	"golang.org/x/sys/unix"
)

// processVMReadv performs one process_vm_readv transfer into buf from
// remoteAddr, returning the number of bytes moved. The syscall transfers
// whole iovec elements where it can but may still stop short at a region
// boundary.
func processVMReadv(pid process.ProcessID, buf []byte, remoteAddr process.MemoryAddress) (int, error) {
	localIov := unix.Iovec{
		Base: &buf[0],
		Len:  uint64(len(buf)),
	}
	remoteIov := unix.RemoteIovec{
		Base: uintptr(remoteAddr),
		Len:  len(buf),
	}

	n, _, errno := unix.Syscall6(
		unix.SYS_PROCESS_VM_READV,
		uintptr(pid),
		uintptr(unsafe.Pointer(&localIov)),
		uintptr(1),
		uintptr(unsafe.Pointer(&remoteIov)),
		uintptr(1),
		uintptr(0), // flags, reserved
	)
	if errno != 0 {
		return 0, translateMemError(errno)
	}
	return int(n), nil
}

// ReadMemoryVM reads exactly size bytes at addr using the process_vm_readv
// syscall instead of the memory handle. Same contract as ReadMemory: the
// full length or an error.
func (p *LinuxProcess) ReadMemoryVM(addr process.MemoryAddress, size process.MemorySize) ([]byte, error) {
	if p.mem == nil {
		return nil, process.ErrProcessNotOpen
	}

	buf := make([]byte, size)
	read := 0
	for read < len(buf) {
		n, err := processVMReadv(p.pid, buf[read:], addr+process.MemoryAddress(read))
		if err != nil {
			return nil, fmt.Errorf("process_vm_readv %s at %s: %w", size, addr, err)
		}
		if n == 0 {
			return nil, fmt.Errorf("process_vm_readv at %s: %d of %d bytes: %w",
				addr, read, len(buf), process.ErrPartialTransfer)
		}
		read += n
	}
	return buf, nil
}
