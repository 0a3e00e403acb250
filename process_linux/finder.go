//go:build linux

package process_linux

import (
	"memprobe/process"
)

// LinuxProcessFinder implements the process.ProcessFinder interface
type LinuxProcessFinder struct{}

// NewProcessFinder creates a new LinuxProcessFinder
func NewProcessFinder() process.ProcessFinder {
	return &LinuxProcessFinder{}
}

func (f *LinuxProcessFinder) FindPIDByName(name string) (process.ProcessID, error) {
	return FindPIDByName(name)
}

func (f *LinuxProcessFinder) ListByName(name string) ([]process.ProcessInfo, error) {
	return ListByName(name)
}

func (f *LinuxProcessFinder) FindAll() ([]process.ProcessInfo, error) {
	return FindAll()
}
