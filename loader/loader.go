// Package loader parses the binary image format the REPL's load command
// and the -l CLI flag both consume: a 2-byte little-endian origin followed
// by the program bytes to place there.
package loader

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/hejops/mos6502/mem"
)

// A LoadError reports why an image could not be loaded. It is always fatal
// to the load attempt, but never touches the Machine State the caller was
// previously running — the caller is expected to leave prior state intact
// on error.
type LoadError struct {
	Reason string
}

func (e *LoadError) Error() string { return "load failed: " + e.Reason }

// Parse splits data into its little-endian origin word and payload,
// rejecting images shorter than the 2-byte header or whose payload would
// overrun the 64 KiB address space.
func Parse(data []byte) (origin uint16, payload []byte, err error) {
	if len(data) < 2 {
		return 0, nil, &LoadError{Reason: "image shorter than 2-byte origin header"}
	}

	origin = binary.LittleEndian.Uint16(data[:2])
	payload = data[2:]

	if int(origin)+len(payload) > mem.Size {
		return 0, nil, &LoadError{
			Reason: fmt.Sprintf("payload of %d bytes at origin $%04X overruns the 64 KiB address space", len(payload), origin),
		}
	}

	return origin, payload, nil
}

// LoadFile reads path and parses it as an image. A file that cannot be
// opened is reported the same way as a malformed image: both are
// LoadFailure as far as the REPL's load command is concerned.
func LoadFile(path string) (origin uint16, payload []byte, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, nil, &LoadError{Reason: err.Error()}
	}
	return Parse(data)
}
