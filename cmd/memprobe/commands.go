package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"

	"memprobe/hexdump"
	"memprobe/process"
	"memprobe/process/memory_map"
	"memprobe/process_linux"

	"github.com/spf13/cobra"
)

var (
	// targetName selects the process by command name instead of pid
	targetName string
	// permFilter restricts `maps` output to regions with these permissions
	permFilter string
)

func rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "memprobe",
		Short: "Inspect and modify the memory of running processes",
		Long: `memprobe locates running processes by name, lists their memory
regions, and reads or writes arbitrary byte ranges of their address space
through /proc. Access is gated by the same permissions as ptrace: run as
the target's user with unprivileged debugging enabled, or with
CAP_SYS_PTRACE.`,
		SilenceUsage: true,
	}

	root.AddCommand(pidofCommand())
	root.AddCommand(mapsCommand())
	root.AddCommand(readCommand())
	root.AddCommand(writeCommand())
	root.AddCommand(scanCommand())
	return root
}

func pidofCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pidof <name>",
		Short: "Print the pids of all processes with the given command name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			infos, err := process_linux.ListByName(args[0])
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				return fmt.Errorf("%q: %w", args[0], process.ErrProcessNotFound)
			}
			for _, info := range infos {
				fmt.Printf("%d\t%s\t%s\n", info.PID, info.Name, info.Exe)
			}
			return nil
		},
	}
}

func mapsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "maps <pid|-n name>",
		Short: "List the memory regions of a process",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := resolveTarget(args)
			if err != nil {
				return err
			}

			var perms memory_map.Permissions
			if permFilter != "" {
				if perms, err = memory_map.ParsePermissions(permFilter); err != nil {
					return err
				}
			}

			regions, err := process_linux.ReadMemoryMap(pid)
			if err != nil {
				return err
			}
			for _, region := range regions {
				if !region.Perms.Contains(perms) {
					continue
				}
				fmt.Println(region)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&permFilter, "perms", "p", "", "only show regions with these permissions, e.g. rw-p")
	addNameFlag(cmd)
	return cmd
}

func readCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read <pid|-n name> <address> <length>",
		Short: "Read a byte range from a process and hexdump it",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := resolveTarget(args[:len(args)-2])
			if err != nil {
				return err
			}
			addr, err := parseAddress(args[len(args)-2])
			if err != nil {
				return err
			}
			length, err := strconv.ParseUint(args[len(args)-1], 0, 32)
			if err != nil {
				return fmt.Errorf("length %q: %w", args[len(args)-1], err)
			}

			p, err := process_linux.NewWithPID(pid)
			if err != nil {
				return err
			}
			defer p.Close()

			data, err := p.ReadMemory(addr, process.MemorySize(length))
			if err != nil {
				return err
			}

			opts := hexdump.DefaultOptions()
			opts.StartOffset = uint64(addr)
			opts.OffsetWidth = 12
			hexdump.DumpToWriter(os.Stdout, data, opts)
			return nil
		},
	}
	addNameFlag(cmd)
	return cmd
}

func writeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "write <pid|-n name> <address> <hexbytes>",
		Short: "Write bytes into a process's memory",
		Long: `Write bytes into a process's memory. The bytes are given as a hex
string, e.g. "deadbeef". The write takes effect immediately and cannot be
rolled back.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := resolveTarget(args[:len(args)-2])
			if err != nil {
				return err
			}
			addr, err := parseAddress(args[len(args)-2])
			if err != nil {
				return err
			}
			data, err := hex.DecodeString(strings.TrimPrefix(args[len(args)-1], "0x"))
			if err != nil {
				return fmt.Errorf("hex bytes %q: %w", args[len(args)-1], err)
			}
			if len(data) == 0 {
				return fmt.Errorf("empty write")
			}

			p, err := process_linux.NewWithPID(pid)
			if err != nil {
				return err
			}
			defer p.Close()

			if err := p.WriteMemory(addr, data); err != nil {
				return err
			}
			fmt.Printf("wrote %d bytes at %s\n", len(data), addr)
			return nil
		},
	}
	addNameFlag(cmd)
	return cmd
}

func scanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <pid|-n name> <hexpattern>",
		Short: "Search all readable regions for a byte pattern",
		Long: `Search all readable regions for a byte pattern. The pattern is a hex
string; "??" marks a wildcard byte, e.g. "488b??c3".`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := resolveTarget(args[:len(args)-1])
			if err != nil {
				return err
			}
			aob, err := parsePattern(args[len(args)-1])
			if err != nil {
				return err
			}

			p, err := process_linux.NewWithPID(pid)
			if err != nil {
				return err
			}
			defer p.Close()

			results, err := p.Scan(aob)
			if err != nil {
				return err
			}
			for _, addr := range results {
				fmt.Println(addr)
			}
			fmt.Printf("%d matches\n", len(results))
			return nil
		},
	}
	addNameFlag(cmd)
	return cmd
}

func addNameFlag(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&targetName, "name", "n", "", "select the target process by command name instead of pid")
}

// resolveTarget turns the positional pid argument or the --name flag into a
// pid. Exactly one of the two must be present.
func resolveTarget(args []string) (process.ProcessID, error) {
	if targetName != "" {
		if len(args) > 0 {
			return 0, fmt.Errorf("give either a pid or --name, not both")
		}
		return process_linux.FindPIDByName(targetName)
	}
	if len(args) == 0 {
		return 0, fmt.Errorf("no target: give a pid or --name")
	}
	pid, err := strconv.ParseInt(args[0], 10, 32)
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("pid %q is not a positive integer", args[0])
	}
	return process.ProcessID(pid), nil
}

func parseAddress(s string) (process.MemoryAddress, error) {
	addr, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("address %q: %w", s, err)
	}
	return process.MemoryAddress(addr), nil
}

// parsePattern decodes a hex pattern where "??" is a wildcard byte
func parsePattern(s string) (process.AOB, error) {
	s = strings.TrimPrefix(s, "0x")
	if len(s) == 0 || len(s)%2 != 0 {
		return process.AOB{}, fmt.Errorf("pattern %q: want an even number of hex digits", s)
	}

	pattern := make([]byte, len(s)/2)
	mask := make([]byte, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		if s[i:i+2] == "??" {
			continue // wildcard: pattern and mask byte stay zero
		}
		b, err := hex.DecodeString(s[i : i+2])
		if err != nil {
			return process.AOB{}, fmt.Errorf("pattern %q: %w", s, err)
		}
		pattern[i/2] = b[0]
		mask[i/2] = 0xFF
	}
	return process.NewAOB(pattern, mask)
}
