//go:build linux

// Demonstrates the read/write round trip against the example's own
// process: locate the process by name, read a variable through the memory
// handle, overwrite it, and read it back.
package main

import (
	"encoding/binary"
	"fmt"
	"os"
	"unsafe"

	"memprobe/process"
	"memprobe/process_linux"
)

func main() {
	comm, err := os.ReadFile("/proc/self/comm")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	name := string(comm[:len(comm)-1]) // trim newline

	pid, err := process_linux.FindPIDByName(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println("example process id:", pid)

	p, err := process_linux.NewWithPID(pid)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer p.Close()

	// The heap region every process has
	heap, err := p.FindRegion("[heap]", 0)
	if err == nil {
		fmt.Printf("heap (start -> end): (0x%x -> 0x%x)\n", heap.Start, heap.End)
	}

	kindOfRemoteVar := int32(1337)
	addr := process.MemoryAddress(uintptr(unsafe.Pointer(&kindOfRemoteVar)))

	fmt.Println("kindOfRemoteVar before write:", kindOfRemoteVar)

	data, err := p.ReadMemory(addr, 4)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println("read bytes:", data)

	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, 10)
	if err := p.WriteMemory(addr, buf); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println("kindOfRemoteVar after write:", kindOfRemoteVar)
}
