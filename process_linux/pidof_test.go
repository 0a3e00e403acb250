//go:build linux

package process_linux

import (
	"errors"
	"os"
	"testing"

	"memprobe/process"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// selfComm returns the command name of the test process itself
func selfComm(t *testing.T) string {
	t.Helper()
	comm, err := os.ReadFile("/proc/self/comm")
	require.NoError(t, err)
	return string(bytesTrimNL(comm))
}

// unusedPID returns a pid that currently has no process behind it
func unusedPID(t *testing.T) process.ProcessID {
	t.Helper()
	for pid := process.ProcessID(1<<22 - 3); pid > 1<<21; pid-- {
		if !procExists(pid) {
			return pid
		}
	}
	t.Fatal("no unused pid found")
	return 0
}

func TestFindPIDByName(t *testing.T) {
	name := selfComm(t)

	pid, err := FindPIDByName(name)
	require.NoError(t, err)
	assert.Positive(t, int(pid))

	// The match is "first found": with a unique test binary name it must
	// be this very process.
	comm, err := readComm(pid)
	require.NoError(t, err)
	assert.Equal(t, name, comm)
}

func TestFindPIDByNameNotFound(t *testing.T) {
	_, err := FindPIDByName("no-such-process-zzz")
	assert.ErrorIs(t, err, process.ErrProcessNotFound)
}

func TestFindPIDByNameEmpty(t *testing.T) {
	_, err := FindPIDByName("")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, process.ErrProcessNotFound))
}

func TestListByName(t *testing.T) {
	name := selfComm(t)

	infos, err := ListByName(name)
	require.NoError(t, err)

	self := process.ProcessID(os.Getpid())
	found := false
	for _, info := range infos {
		assert.Equal(t, name, info.Name)
		if info.PID == self {
			found = true
		}
	}
	assert.True(t, found, "ListByName(%q) did not include the test process", name)
}

func TestListByNameNoMatches(t *testing.T) {
	infos, err := ListByName("no-such-process-zzz")
	require.NoError(t, err)
	assert.Empty(t, infos, "no matches is an empty list, not an error")
}

func TestFindAllIncludesSelf(t *testing.T) {
	infos, err := FindAll()
	require.NoError(t, err)

	self := process.ProcessID(os.Getpid())
	found := false
	for _, info := range infos {
		if info.PID == self {
			found = true
			break
		}
	}
	assert.True(t, found)
}

func TestProcExists(t *testing.T) {
	assert.True(t, procExists(process.ProcessID(os.Getpid())))
	assert.False(t, procExists(unusedPID(t)))
}
