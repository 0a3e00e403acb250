//go:build linux

package process_linux

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"syscall"

	"memprobe/process"
)

// FindPIDByName returns the pid of the first process whose /proc/[pid]/comm
// value equals name exactly (case-sensitive, newline trimmed). Directory
// enumeration order is whatever the kernel hands back, so with duplicate
// names the winner is "first found", not a stable choice.
//
// Entries that cannot be read are skipped; if the whole pass finds no match
// and at least one entry was unreadable for access control reasons, the
// error is process.ErrPermissionDenied, otherwise process.ErrProcessNotFound.
func FindPIDByName(name string) (process.ProcessID, error) {
	if name == "" {
		return 0, errors.New("empty name")
	}

	entries, err := os.ReadDir("/proc")
	if err != nil {
		return 0, fmt.Errorf("read /proc: %w", err)
	}

	denied := false
	for _, e := range entries {
		pid, ok := pidOfEntry(e)
		if !ok {
			continue
		}

		comm, err := readComm(pid)
		if err != nil {
			// Processes exit mid-scan all the time; only remember
			// access control refusals.
			if errors.Is(err, fs.ErrPermission) {
				denied = true
			}
			continue
		}
		if comm == name {
			return pid, nil
		}
	}

	if denied {
		return 0, fmt.Errorf("find %q: %w", name, process.ErrPermissionDenied)
	}
	return 0, fmt.Errorf("find %q: %w", name, process.ErrProcessNotFound)
}

// ListByName returns every process whose comm value equals name, in
// enumeration order. An empty result is not an error.
func ListByName(name string) ([]process.ProcessInfo, error) {
	if name == "" {
		return nil, errors.New("empty name")
	}

	entries, err := os.ReadDir("/proc")
	if err != nil {
		return nil, fmt.Errorf("read /proc: %w", err)
	}

	var out []process.ProcessInfo
	for _, e := range entries {
		pid, ok := pidOfEntry(e)
		if !ok {
			continue
		}
		comm, err := readComm(pid)
		if err != nil || comm != name {
			continue
		}
		out = append(out, processInfo(pid, comm))
	}
	return out, nil
}

// FindAll returns information about every process currently visible in /proc
func FindAll() ([]process.ProcessInfo, error) {
	entries, err := os.ReadDir("/proc")
	if err != nil {
		return nil, fmt.Errorf("read /proc: %w", err)
	}

	var out []process.ProcessInfo
	for _, e := range entries {
		pid, ok := pidOfEntry(e)
		if !ok {
			continue
		}
		comm, err := readComm(pid)
		if err != nil {
			continue
		}
		out = append(out, processInfo(pid, comm))
	}
	return out, nil
}

func pidOfEntry(e fs.DirEntry) (process.ProcessID, bool) {
	if !e.IsDir() {
		return 0, false
	}
	pid, err := strconv.Atoi(e.Name())
	if err != nil || pid <= 0 {
		return 0, false // not a PID dir
	}
	return process.ProcessID(pid), true
}

func readComm(pid process.ProcessID) (string, error) {
	comm, err := os.ReadFile(filepath.Join("/proc", strconv.Itoa(int(pid)), "comm"))
	if err != nil {
		return "", err
	}
	return string(bytesTrimNL(comm)), nil
}

func processInfo(pid process.ProcessID, comm string) process.ProcessInfo {
	// Resolving exe may fail for zombies or foreign-user processes;
	// the field stays empty then.
	exe, _ := os.Readlink(filepath.Join("/proc", strconv.Itoa(int(pid)), "exe"))
	return process.ProcessInfo{PID: pid, Name: comm, Exe: exe}
}

func procExists(pid process.ProcessID) bool {
	// Fast path: stat /proc/<pid>
	_, err := os.Stat(filepath.Join("/proc", strconv.Itoa(int(pid))))
	if err == nil {
		return true
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false
	}
	// For transient errors (permission, EIO): fall back to kill 0
	return syscall.Kill(int(pid), 0) == nil
}

func bytesTrimNL(b []byte) []byte {
	// Trim trailing '\n' if present (comm has a newline).
	for len(b) > 0 {
		switch b[len(b)-1] {
		case '\n', '\r', ' ', '\t':
			b = b[:len(b)-1]
		default:
			return b
		}
	}
	return b
}
