//go:build linux

package process_linux

import (
	"memprobe/process"
)

// LinuxProcessHelper implements the process.ProcessHelper interface
type LinuxProcessHelper struct{}

// NewHelper creates a new LinuxProcessHelper
func NewHelper() process.ProcessHelper {
	return &LinuxProcessHelper{}
}

// New creates a new, unopened Process instance
func (h *LinuxProcessHelper) New() process.Process {
	return New()
}

// NewWithPID creates a new Process instance and opens it with the given PID
func (h *LinuxProcessHelper) NewWithPID(pid process.ProcessID) (process.Process, error) {
	return NewWithPID(pid)
}

// OpenProcessByName opens the first process whose command name equals name
func (h *LinuxProcessHelper) OpenProcessByName(name string) (process.Process, error) {
	pid, err := FindPIDByName(name)
	if err != nil {
		return nil, err
	}
	return NewWithPID(pid)
}
