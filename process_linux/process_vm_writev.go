//go:build linux

package process_linux

import (
	"fmt"
	"unsafe"

	"memprobe/process"

	"golang.org/x/sys/unix"
)

// processVMWritev performs one process_vm_writev transfer of buf to
// remoteAddr, returning the number of bytes moved.
func processVMWritev(pid process.ProcessID, buf []byte, remoteAddr process.MemoryAddress) (int, error) {
	localIov := unix.Iovec{
		Base: &buf[0],
		Len:  uint64(len(buf)),
	}
	remoteIov := unix.RemoteIovec{
		Base: uintptr(remoteAddr),
		Len:  len(buf),
	}

	n, _, errno := unix.Syscall6(
		unix.SYS_PROCESS_VM_WRITEV,
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

// WriteMemoryVM writes all of data at addr using the process_vm_writev
// syscall instead of the memory handle. Same contract as WriteMemory: the
// full length or an error.
func (p *LinuxProcess) WriteMemoryVM(addr process.MemoryAddress, data []byte) error {
	if p.mem == nil {
		return process.ErrProcessNotOpen
	}

	written := 0
	for written < len(data) {
		n, err := processVMWritev(p.pid, data[written:], addr+process.MemoryAddress(written))
		if err != nil {
			return fmt.Errorf("process_vm_writev %d bytes at %s: %w", len(data), addr, err)
		}
		if n == 0 {
			return fmt.Errorf("process_vm_writev at %s: %d of %d bytes: %w",
				addr, written, len(data), process.ErrPartialTransfer)
		}
		written += n
	}
	return nil
}
