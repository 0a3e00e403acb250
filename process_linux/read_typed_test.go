//go:build linux

package process_linux

import (
	"encoding/binary"
	"math"
	"runtime"
	"testing"

	"memprobe/process"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypedReads(t *testing.T) {
	p := openSelf(t)

	buf := make([]byte, 32)
	binary.LittleEndian.PutUint16(buf[0:], 0xBEEF)
	binary.LittleEndian.PutUint32(buf[4:], 1337)
	binary.LittleEndian.PutUint64(buf[8:], 0xDEADC0DECAFE)
	binary.LittleEndian.PutUint32(buf[16:], math.Float32bits(3.5))
	binary.LittleEndian.PutUint64(buf[24:], math.Float64bits(-1.25))
	addr := addrOf(buf)

	u8, err := p.ReadUINT8(addr)
	require.NoError(t, err)
	assert.Equal(t, uint8(0xEF), u8)

	u16, err := p.ReadUINT16(addr)
	require.NoError(t, err)
	assert.Equal(t, uint16(0xBEEF), u16)

	u32, err := p.ReadUINT32(addr + 4)
	require.NoError(t, err)
	assert.Equal(t, uint32(1337), u32)

	i32, err := p.ReadINT32(addr + 4)
	require.NoError(t, err)
	assert.Equal(t, int32(1337), i32)

	u64, err := p.ReadUINT64(addr + 8)
	require.NoError(t, err)
	assert.Equal(t, uint64(0xDEADC0DECAFE), u64)

	i64, err := p.ReadINT64(addr + 8)
	require.NoError(t, err)
	assert.Equal(t, int64(0xDEADC0DECAFE), i64)

	f32, err := p.ReadFLOAT32(addr + 16)
	require.NoError(t, err)
	assert.Equal(t, float32(3.5), f32)

	f64, err := p.ReadFLOAT64(addr + 24)
	require.NoError(t, err)
	assert.Equal(t, float64(-1.25), f64)

	runtime.KeepAlive(buf)
}

func TestReadPOINTER(t *testing.T) {
	p := openSelf(t)

	target := make([]byte, 8)
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, uint64(addrOf(target)))

	ptr, err := p.ReadPOINTER(addrOf(buf))
	require.NoError(t, err)
	assert.Equal(t, addrOf(target), ptr)

	runtime.KeepAlive(buf)
	runtime.KeepAlive(target)
}

func TestReadNTS(t *testing.T) {
	p := openSelf(t)

	buf := append([]byte("hello, memory"), 0x00)
	buf = append(buf, []byte("trailing junk")...)
	addr := addrOf(buf)

	s, err := p.ReadNTS(addr, 256)
	require.NoError(t, err)
	assert.Equal(t, "hello, memory", s)

	// Cap shorter than the string truncates without error
	s, err = p.ReadNTS(addr, 5)
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	runtime.KeepAlive(buf)
}

func TestScanFindsPlantedPattern(t *testing.T) {
	p := openSelf(t)

	pattern := []byte{0x5A, 0x17, 0xC3, 0x99, 0x42, 0xEE, 0x01, 0xD7, 0x5A, 0x17, 0xC3, 0x99}
	planted := make([]byte, len(pattern))
	copy(planted, pattern)

	// The snapshot predates the allocation
	require.NoError(t, p.UpdateMemoryMap())

	results, err := p.Scan(process.AOB{Pattern: pattern})
	require.NoError(t, err)
	assert.Contains(t, results, addrOf(planted))

	runtime.KeepAlive(planted)
	runtime.KeepAlive(pattern)
}

func TestScanEmptyPattern(t *testing.T) {
	p := openSelf(t)

	_, err := p.Scan(process.AOB{})
	assert.Error(t, err)
	_, err = p.ScanFirst(process.AOB{})
	assert.Error(t, err)
}

func TestScanFirstWithMask(t *testing.T) {
	p := openSelf(t)

	planted := []byte{0xA1, 0xB2, 0xC3, 0xD4, 0xE5, 0xF6, 0x07, 0x18}
	require.NoError(t, p.UpdateMemoryMap())

	aob, err := process.NewAOB(
		[]byte{0xA1, 0x00, 0xC3, 0xD4, 0xE5, 0xF6, 0x07, 0x18},
		[]byte{0xFF, 0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
	)
	require.NoError(t, err)

	addr, err := p.ScanFirst(aob)
	require.NoError(t, err)
	assert.True(t, p.IsValidAddress(addr))

	runtime.KeepAlive(planted)
}
