// Package process provides the interfaces, types and errors shared by the
// platform-specific implementations of external process memory access.
package process

import "errors"

var (
	// ErrProcessNotFound is returned when a process cannot be located by
	// name, or when the target process has exited.
	ErrProcessNotFound = errors.New("process not found")

	// ErrPermissionDenied is returned when the kernel refuses access to a
	// process entry or its memory (missing CAP_SYS_PTRACE, yama
	// ptrace_scope, or a hidepid procfs mount).
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInvalidAddress is returned when the kernel reports that the
	// requested address range is unmapped or otherwise inaccessible.
	ErrInvalidAddress = errors.New("invalid memory address")

	// ErrPartialTransfer is returned when a memory transfer stalls before
	// the requested number of bytes has moved and the kernel reports no
	// other error.
	ErrPartialTransfer = errors.New("partial memory transfer")

	// ErrRegionNotFound is returned when no memory region matches the
	// requested filters or contains the requested address.
	ErrRegionNotFound = errors.New("memory region not found")

	// ErrProcessNotOpen is returned when an operation requiring an open
	// process is attempted before the process has been opened or after it
	// has been closed.
	ErrProcessNotOpen = errors.New("process not open")
)
