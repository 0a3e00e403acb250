package memory_map

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRegionLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want MemoryRegion
	}{
		{
			name: "file backed mapping",
			line: "00400000-00452000 r-xp 00000000 08:01 123456 /usr/bin/example",
			want: MemoryRegion{
				Start:    0x00400000,
				End:      0x00452000,
				Perms:    PermRead | PermExec | PermPrivate,
				Offset:   0,
				DevMajor: 8,
				DevMinor: 1,
				Inode:    123456,
				Path:     "/usr/bin/example",
			},
		},
		{
			name: "anonymous mapping",
			line: "7f8a14000000-7f8a14021000 rw-p 00000000 00:00 0",
			want: MemoryRegion{
				Start: 0x7f8a14000000,
				End:   0x7f8a14021000,
				Perms: PermRead | PermWrite | PermPrivate,
			},
		},
		{
			name: "heap",
			line: "01e05000-01e26000 rw-p 00000000 00:00 0                                  [heap]",
			want: MemoryRegion{
				Start: 0x01e05000,
				End:   0x01e26000,
				Perms: PermRead | PermWrite | PermPrivate,
				Path:  "[heap]",
			},
		},
		{
			name: "shared mapping with offset",
			line: "7f8a14a00000-7f8a14a10000 rw-s 00010000 fd:02 42 /dev/shm/seg",
			want: MemoryRegion{
				Start:    0x7f8a14a00000,
				End:      0x7f8a14a10000,
				Perms:    PermRead | PermWrite | PermShared,
				Offset:   0x10000,
				DevMajor: 0xfd,
				DevMinor: 2,
				Inode:    42,
				Path:     "/dev/shm/seg",
			},
		},
		{
			name: "path with spaces",
			line: "00400000-00452000 r--p 00000000 08:01 99 /tmp/with space",
			want: MemoryRegion{
				Start:    0x00400000,
				End:      0x00452000,
				Perms:    PermRead | PermPrivate,
				DevMajor: 8,
				DevMinor: 1,
				Inode:    99,
				Path:     "/tmp/with space",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRegionLine(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRegionLineMalformed(t *testing.T) {
	lines := []string{
		"",
		"00400000-00452000 r-xp 00000000 08:01",           // missing inode
		"00400000-00452000 00000000 08:01 123456",          // missing permissions
		"00400000 r-xp 00000000 08:01 123456",              // no address range
		"0040zz00-00452000 r-xp 00000000 08:01 123456",     // bad start
		"00400000-0045zz00 r-xp 00000000 08:01 123456",     // bad end
		"00452000-00400000 r-xp 00000000 08:01 123456",     // start >= end
		"00400000-00452000 rwxpq 00000000 08:01 123456",    // 5-char perms
		"00400000-00452000 q-xp 00000000 08:01 123456",     // bad perm char
		"00400000-00452000 rs-p 00000000 08:01 123456",     // 's' outside position 4
		"00400000-00452000 r-xp zz 08:01 123456",           // bad offset
		"00400000-00452000 r-xp 00000000 0801 123456",      // bad device
		"00400000-00452000 r-xp 00000000 08:01 notanumber", // bad inode
	}

	for _, line := range lines {
		_, err := parseRegionLine(line)
		if line != "" {
			assert.ErrorIs(t, err, ErrMalformedEntry, "line %q", line)
		} else {
			assert.Error(t, err, "line %q", line)
		}
	}
}

func TestParseRegionsOrderedAndDisjoint(t *testing.T) {
	input := strings.Join([]string{
		"00400000-00452000 r-xp 00000000 08:01 123456 /usr/bin/example",
		"00652000-00653000 r--p 00052000 08:01 123456 /usr/bin/example",
		"00653000-00654000 rw-p 00053000 08:01 123456 /usr/bin/example",
		"01e05000-01e26000 rw-p 00000000 00:00 0      [heap]",
		"7ffc8f0e0000-7ffc8f101000 rw-p 00000000 00:00 0 [stack]",
	}, "\n")

	regions, err := ParseRegions(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, regions, 5)

	for i := 1; i < len(regions); i++ {
		assert.Less(t, regions[i-1].Start, regions[i].Start, "regions not ascending")
		assert.LessOrEqual(t, regions[i-1].End, regions[i].Start, "regions overlap")
	}
}

func TestParseRegionsFailFast(t *testing.T) {
	input := strings.Join([]string{
		"00400000-00452000 r-xp 00000000 08:01 123456 /usr/bin/example",
		"garbage entry",
		"01e05000-01e26000 rw-p 00000000 00:00 0 [heap]",
	}, "\n")

	regions, err := ParseRegions(strings.NewReader(input))
	assert.ErrorIs(t, err, ErrMalformedEntry)
	assert.Nil(t, regions, "no partial result on malformed input")
}

func TestParseStringRoundTrip(t *testing.T) {
	line := "00400000-00452000 r-xp 00000000 08:01 123456 /usr/bin/example"
	region, err := parseRegionLine(line)
	require.NoError(t, err)

	again, err := parseRegionLine(region.String())
	require.NoError(t, err)
	assert.Equal(t, region, again)
}
