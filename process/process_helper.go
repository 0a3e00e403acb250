package process

// ProcessHelper provides utility functions for opening processes
type ProcessHelper interface {
	// New creates a new, unopened Process instance
	New() Process

	// NewWithPID creates a new Process instance and opens it with the given PID
	NewWithPID(pid ProcessID) (Process, error)

	// OpenProcessByName opens a process by its command name (first match)
	OpenProcessByName(name string) (Process, error)
}
