// Package hexdump formats byte slices in the classic offset/hex/ASCII
// layout for display.
package hexdump

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// Options defines options for customizing the hexdump output
type Options struct {
	// BytesPerLine defines the number of bytes to display per line
	BytesPerLine int

	// GroupSize defines the grouping of bytes (usually 1, 2, 4, or 8)
	GroupSize int

	// ShowASCII determines whether to show the ASCII representation
	ShowASCII bool

	// ShowOffset determines whether to show the offset/address column
	ShowOffset bool

	// StartOffset is the address displayed for the first byte
	StartOffset uint64

	// OffsetWidth is the width of the offset column in hex digits
	OffsetWidth int

	// MaxLines is the maximum number of lines to show (0 for no limit)
	MaxLines int
}

// DefaultOptions returns the default hexdump options
func DefaultOptions() Options {
	return Options{
		BytesPerLine: 16,
		GroupSize:    1,
		ShowASCII:    true,
		ShowOffset:   true,
		OffsetWidth:  8,
	}
}

// Dump creates a hex dump of the given data with specified options
func Dump(data []byte, options Options) string {
	var buffer bytes.Buffer
	DumpToWriter(&buffer, data, options)
	return buffer.String()
}

// DumpToWriter writes a hex dump of the given data to the specified writer
func DumpToWriter(writer io.Writer, data []byte, options Options) {
	if options.BytesPerLine <= 0 {
		options.BytesPerLine = 16
	}
	if options.GroupSize <= 0 {
		options.GroupSize = 1
	}
	if options.OffsetWidth <= 0 {
		options.OffsetWidth = 8
	}

	lineCount := 0
	for offset := 0; offset < len(data); offset += options.BytesPerLine {
		if options.MaxLines > 0 && lineCount >= options.MaxLines {
			fmt.Fprintf(writer, "... %d more bytes\n", len(data)-offset)
			break
		}

		end := offset + options.BytesPerLine
		if end > len(data) {
			end = len(data)
		}

		formatLine(writer, data[offset:end], uint64(offset)+options.StartOffset, options)
		lineCount++
	}
}

// formatLine formats a single line of the hex dump
func formatLine(writer io.Writer, data []byte, offset uint64, options Options) {
	if options.ShowOffset {
		fmt.Fprintf(writer, "%0"+strconv.Itoa(options.OffsetWidth)+"x  ", offset)
	}

	var groups []string
	for i := 0; i < len(data); i += options.GroupSize {
		end := i + options.GroupSize
		if end > len(data) {
			end = len(data)
		}
		groups = append(groups, fmt.Sprintf("%x", data[i:end]))
	}
	hex := strings.Join(groups, " ")
	fmt.Fprint(writer, hex)

	if options.ShowASCII {
		// Pad out short final lines so the ASCII column stays aligned
		groupsPerLine := options.BytesPerLine / options.GroupSize
		if options.BytesPerLine%options.GroupSize != 0 {
			groupsPerLine++
		}
		fullWidth := groupsPerLine*(2*options.GroupSize+1) - 1
		if pad := fullWidth - len(hex); pad > 0 {
			fmt.Fprint(writer, strings.Repeat(" ", pad))
		}

		fmt.Fprint(writer, "  |")
		for _, b := range data {
			if b < 128 && unicode.IsPrint(rune(b)) {
				fmt.Fprintf(writer, "%c", b)
			} else {
				fmt.Fprint(writer, ".")
			}
		}
		fmt.Fprint(writer, "|")
	}

	fmt.Fprintln(writer)
}
