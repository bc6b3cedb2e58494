package source

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"fortio.org/safecast"
)

// File is a source text together with the data needed to render positions.
// Content is kept byte for byte as supplied, so span offsets index the
// caller's text. "\r\n" counts as a single line break.
type File struct {
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of '\n'
}

// BOM is the UTF-8 byte order mark. It is not part of the program text.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}

// NewFile builds a File from in-memory content.
func NewFile(path string, content []byte) *File {
	return &File{
		Path:    filepath.ToSlash(path),
		Content: content,
		LineIdx: buildLineIndex(content),
	}
}

// LoadFile reads a file from disk without altering its bytes.
func LoadFile(path string) (*File, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return NewFile(path, content), nil
}

// Text returns the content as a string.
func (f *File) Text() string {
	return string(f.Content)
}

// Slice returns the text covered by sp, clamped to the file bounds.
func (f *File) Slice(sp Span) string {
	n := f.len()
	start, end := min(sp.Start, n), min(sp.End, n)
	if start > end {
		return ""
	}
	return string(f.Content[start:end])
}

// Resolve converts a span into line and column positions.
func (f *File) Resolve(sp Span) (start, end LineCol) {
	return toLineCol(f.LineIdx, sp.Start), toLineCol(f.LineIdx, sp.End)
}

// GetLine возвращает строку с номером lineNum (1-based) без "\n" и "\r\n".
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}
	lenLineIdx, err := safecast.Conv[uint32](len(f.LineIdx))
	if err != nil {
		panic(fmt.Errorf("line index length overflow: %w", err))
	}
	n := f.len()

	var start, end uint32
	switch {
	case lineNum == 1:
		start = 0
	case lineNum-2 < lenLineIdx:
		start = f.LineIdx[lineNum-2] + 1
	default:
		return ""
	}
	if lineNum-1 < lenLineIdx {
		end = f.LineIdx[lineNum-1]
	} else {
		end = n
	}
	if start >= n {
		return ""
	}
	line := f.Content[start:min(end, n)]
	return string(bytes.TrimSuffix(line, []byte{'\r'}))
}

func (f *File) len() uint32 {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	return n
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, 16)
	for i, b := range content {
		if b == '\n' {
			off, err := safecast.Conv[uint32](i)
			if err != nil {
				panic(fmt.Errorf("line offset overflow: %w", err))
			}
			out = append(out, off)
		}
	}
	return out
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// бинпоиск: число переводов строки строго до off
	line, _ := slices.BinarySearch(lineIdx, off)
	if line == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}
	lineStart := lineIdx[line-1] + 1
	l, err := safecast.Conv[uint32](line)
	if err != nil {
		panic(fmt.Errorf("line number overflow: %w", err))
	}
	return LineCol{Line: l + 1, Col: off - lineStart + 1}
}
