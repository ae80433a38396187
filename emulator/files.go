package emulator

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/ezrec/reti/cpu"
	"github.com/ezrec/reti/isa"
)

// FileAccessor abstracts the host filesystem.
type FileAccessor interface {
	IsWindows() bool
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
}

// OsFiles accesses the host filesystem.
type OsFiles struct{}

func (OsFiles) IsWindows() bool {
	return runtime.GOOS == "windows"
}

func (OsFiles) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (OsFiles) WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

// NormalizePath makes paths from different sources comparable. Windows
// paths use backslashes and a lower case drive letter.
func NormalizePath(files FileAccessor, path string) string {
	if files == nil || !files.IsWindows() {
		return filepath.Clean(path)
	}

	path = strings.ReplaceAll(path, "/", `\`)
	if len(path) >= 2 && path[1] == ':' {
		path = strings.ToLower(path[:1]) + path[1:]
	}

	return path
}

// SaveMemory writes count data words starting at addr to a memory file,
// one word per line.
func (emu *Emulator) SaveMemory(path string, addr uint32, count int) (err error) {
	words, err := emu.ReadMemory(addr, count)
	if err != nil {
		return
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "; %d words at 0x%08x\n", count, addr)
	for _, word := range words {
		fmt.Fprintf(&buf, "0x%08x\n", word)
	}

	return emu.Files.WriteFile(path, buf.Bytes())
}

// LoadMemory reads a memory file into the initial data segment used by
// the next start.
func (emu *Emulator) LoadMemory(path string) (data []uint32, err error) {
	text, err := emu.Files.ReadFile(path)
	if err != nil {
		return
	}

	scanner := bufio.NewScanner(bytes.NewReader(text))
	lineno := 0
	for scanner.Scan() {
		lineno++
		for _, word := range strings.Fields(cpu.StripComment(scanner.Text())) {
			value, perr := isa.ParseNumber(word)
			if perr != nil {
				err = &ErrRuntime{Path: path, LineNo: lineno, Err: ErrMemoryFile}
				return
			}
			data = append(data, uint32(value))
		}
	}

	if err = scanner.Err(); err != nil {
		return
	}

	emu.Data = data

	return
}
