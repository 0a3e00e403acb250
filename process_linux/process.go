//go:build linux

package process_linux

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"memprobe/process"
	"memprobe/process/memory_map"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
)

// LinuxProcess implements the process.Process interface on top of procfs.
// It owns the /proc/[pid]/mem handle for the lifetime of the open process
// and a snapshot of the parsed memory map.
//
// A LinuxProcess is not safe for concurrent use; see process.Process.
type LinuxProcess struct {
	pid process.ProcessID
	mem *os.File
	mm  []memory_map.MemoryRegion
	log *logger.Logger
}

// New creates a new, unopened LinuxProcess instance
func New() process.Process {
	return &LinuxProcess{
		log: logger.NewLogger(coloransi.Color(coloransi.Red, coloransi.ColorOrange, "process-not-open")),
	}
}

// NewWithPID creates a new LinuxProcess instance and opens it with the given PID
func NewWithPID(pid process.ProcessID) (process.Process, error) {
	p := &LinuxProcess{}
	if err := p.Open(pid); err != nil {
		return nil, err
	}
	return p, nil
}

// Open binds p to pid. It fails with process.ErrProcessNotFound when the
// pid is already dead, rather than deferring the failure to the first
// read or write.
func (p *LinuxProcess) Open(pid process.ProcessID) error {
	if p.mem != nil {
		return fmt.Errorf("process %d already open", p.pid)
	}
	if !procExists(pid) {
		return fmt.Errorf("open pid %d: %w", pid, process.ErrProcessNotFound)
	}

	mem, err := os.OpenFile(fmt.Sprintf("/proc/%d/mem", pid), os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("open pid %d memory: %w", pid, translateProcError(err))
	}

	p.pid = pid
	p.mem = mem
	p.log = logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, fmt.Sprintf("memprobe-%d", pid)))

	if err := p.UpdateMemoryMap(); err != nil {
		p.mem.Close()
		p.mem = nil
		p.pid = 0
		return fmt.Errorf("initialize memory map: %w", err)
	}

	p.log.Infoln("Process opened")
	return nil
}

// Close releases the memory handle. The target process keeps running.
func (p *LinuxProcess) Close() error {
	if p.mem == nil {
		return nil
	}

	err := p.mem.Close()
	p.mem = nil
	p.pid = 0
	p.mm = nil

	p.log.Infoln("Process closed")
	p.log = logger.NewLogger(coloransi.Color(coloransi.Red, coloransi.ColorOrange, "process-not-open"))

	if err != nil {
		return fmt.Errorf("close memory handle: %w", err)
	}
	return nil
}

// GetPID returns the process ID
func (p *LinuxProcess) GetPID() process.ProcessID {
	return p.pid
}

// UpdateMemoryMap replaces the region snapshot with a freshly parsed one.
// Regions never refresh implicitly: a caller that wants to observe mapping
// changes calls this before querying again.
func (p *LinuxProcess) UpdateMemoryMap() error {
	if p.mem == nil {
		return process.ErrProcessNotOpen
	}

	mm, err := ReadMemoryMap(p.pid)
	if err != nil {
		return err
	}
	p.mm = mm
	return nil
}

// GetMemoryMap returns a copy of the current region snapshot
func (p *LinuxProcess) GetMemoryMap() ([]memory_map.MemoryRegion, error) {
	if p.mem == nil {
		return nil, process.ErrProcessNotOpen
	}

	result := make([]memory_map.MemoryRegion, len(p.mm))
	copy(result, p.mm)
	return result, nil
}

// FindRegion returns the first snapshot region whose path contains
// nameFilter (when non-empty) and whose permissions include every flag of
// perms. Both filters zero returns the first region of the snapshot.
func (p *LinuxProcess) FindRegion(nameFilter string, perms memory_map.Permissions) (memory_map.MemoryRegion, error) {
	if p.mem == nil {
		return memory_map.MemoryRegion{}, process.ErrProcessNotOpen
	}

	region, ok := memory_map.FindRegion(p.mm, nameFilter, perms)
	if !ok {
		return memory_map.MemoryRegion{}, fmt.Errorf("filter name=%q perms=%q: %w", nameFilter, perms, process.ErrRegionNotFound)
	}
	return region, nil
}

// RegionAt returns the snapshot region containing addr
func (p *LinuxProcess) RegionAt(addr process.MemoryAddress) (memory_map.MemoryRegion, error) {
	if p.mem == nil {
		return memory_map.MemoryRegion{}, process.ErrProcessNotOpen
	}

	region, ok := memory_map.RegionAt(p.mm, uint64(addr))
	if !ok {
		return memory_map.MemoryRegion{}, fmt.Errorf("address %s: %w", addr, process.ErrRegionNotFound)
	}
	return region, nil
}

// IsValidAddress reports whether addr falls inside a readable region of the
// current snapshot. The snapshot may be stale; a true result is a hint, not
// a guarantee that a read will succeed.
func (p *LinuxProcess) IsValidAddress(addr process.MemoryAddress) bool {
	region, ok := memory_map.RegionAt(p.mm, uint64(addr))
	return ok && region.Perms.IsReadable()
}

// ReadMemoryMap reads and parses /proc/[pid]/maps, returning a fresh
// snapshot in file order (ascending start address per kernel guarantee).
// A pid that no longer exists yields process.ErrProcessNotFound.
func ReadMemoryMap(pid process.ProcessID) ([]memory_map.MemoryRegion, error) {
	f, err := os.Open(fmt.Sprintf("/proc/%d/maps", pid))
	if err != nil {
		return nil, fmt.Errorf("open maps of pid %d: %w", pid, translateProcError(err))
	}
	defer f.Close()

	regions, err := memory_map.ParseRegions(f)
	if err != nil {
		return nil, fmt.Errorf("parse maps of pid %d: %w", pid, err)
	}
	return regions, nil
}

// translateProcError maps procfs open/stat failures onto the package
// sentinel errors.
func translateProcError(err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return process.ErrProcessNotFound
	case errors.Is(err, fs.ErrPermission):
		return process.ErrPermissionDenied
	default:
		return err
	}
}
