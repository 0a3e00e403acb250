package memory_map

import "fmt"

// Permissions describes how pages in a region can be accessed. The four
// flags mirror the four characters of the /proc/[pid]/maps permission
// column: read, write, execute, and private-or-shared.
type Permissions uint8

const (
	PermRead Permissions = 1 << iota
	PermWrite
	PermExec
	PermPrivate
	PermShared
)

// ParsePermissions parses a 4-character maps permission string such as
// "r-xp". Each position maps to one flag, '-' meaning absent; the fourth
// character is 'p' for a private (copy-on-write) mapping or 's' for shared.
func ParsePermissions(s string) (Permissions, error) {
	if len(s) != 4 {
		return 0, fmt.Errorf("permission string %q: want 4 characters", s)
	}

	var perms Permissions
	for i, want := range [4]struct {
		set  byte
		flag Permissions
	}{
		{'r', PermRead},
		{'w', PermWrite},
		{'x', PermExec},
		{'p', PermPrivate},
	} {
		switch s[i] {
		case want.set:
			perms |= want.flag
		case '-':
		case 's':
			if i != 3 {
				return 0, fmt.Errorf("permission string %q: unexpected %q at position %d", s, s[i], i)
			}
			perms |= PermShared
		default:
			return 0, fmt.Errorf("permission string %q: unexpected %q at position %d", s, s[i], i)
		}
	}
	return perms, nil
}

// Contains reports whether p includes every flag of q
func (p Permissions) Contains(q Permissions) bool {
	return p&q == q
}

func (p Permissions) IsReadable() bool   { return p&PermRead != 0 }
func (p Permissions) IsWritable() bool   { return p&PermWrite != 0 }
func (p Permissions) IsExecutable() bool { return p&PermExec != 0 }
func (p Permissions) IsShared() bool     { return p&PermShared != 0 }
func (p Permissions) IsPrivate() bool    { return p&PermPrivate != 0 }

// String renders the 4-character maps form, e.g. "rw-p"
func (p Permissions) String() string {
	b := []byte{'-', '-', '-', '-'}
	if p.IsReadable() {
		b[0] = 'r'
	}
	if p.IsWritable() {
		b[1] = 'w'
	}
	if p.IsExecutable() {
		b[2] = 'x'
	}
	if p.IsPrivate() {
		b[3] = 'p'
	}
	if p.IsShared() {
		b[3] = 's'
	}
	return string(b)
}
