package process

// ProcessFinder defines operations for discovering processes by name
type ProcessFinder interface {
	// FindPIDByName returns the pid of the first process whose command
	// name equals name exactly. "First" follows process table enumeration
	// order, which the OS does not keep stable: with duplicate names the
	// result may differ across calls.
	FindPIDByName(name string) (ProcessID, error)

	// ListByName returns every process whose command name equals name
	ListByName(name string) ([]ProcessInfo, error)

	// FindAll returns information about all running processes
	FindAll() ([]ProcessInfo, error)
}
