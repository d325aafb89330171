package store

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ErrInvalidSnapshot marks a file whose contents fail the integrity check:
// empty, missing the length line, or a body shorter or longer than declared.
// A write interrupted at any byte offset produces exactly this condition.
var ErrInvalidSnapshot = errors.New("snapshot failed integrity check")

// frameChunkSize bounds the buffer used while streaming the body, so large
// settings documents never need a second full-size allocation.
const frameChunkSize = 4096

// writeFrame truncates f and writes the framed snapshot: a decimal length
// line followed by the UTF-8 body, streamed in fixed-size chunks and synced
// to storage before returning. The declared length counts UTF-16 code units
// of the body text.
func writeFrame(f *os.File, text string) error {
	if err := truncate(f); err != nil {
		return fmt.Errorf("failed to truncate target file: %w", err)
	}

	w := bufio.NewWriterSize(f, frameChunkSize)
	if _, err := w.WriteString(strconv.Itoa(utf16Len(text))); err != nil {
		return err
	}
	if err := w.WriteByte('\n'); err != nil {
		return err
	}
	for len(text) > 0 {
		n := frameChunkSize
		if n > len(text) {
			n = len(text)
		}
		if _, err := w.WriteString(text[:n]); err != nil {
			return err
		}
		text = text[n:]
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Sync()
}

// readFrame reads a framed snapshot from the start of f and verifies the
// declared length against the body's character length.
func readFrame(f *os.File) (string, error) {
	if _, err := f.Seek(0, 0); err != nil {
		return "", err
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty file", ErrInvalidSnapshot)
	}

	nl := bytes.IndexByte(data, '\n')
	if nl < 0 {
		return "", fmt.Errorf("%w: no length line", ErrInvalidSnapshot)
	}
	declared, err := strconv.Atoi(string(data[:nl]))
	if err != nil || declared < 0 {
		return "", fmt.Errorf("%w: bad length line %q", ErrInvalidSnapshot, data[:nl])
	}

	body := string(data[nl+1:])
	if got := utf16Len(body); got != declared {
		return "", fmt.Errorf("%w: declared %d characters, found %d", ErrInvalidSnapshot, declared, got)
	}
	return body, nil
}

// utf16Len counts the UTF-16 code units of s. Runes outside the basic plane
// count as a surrogate pair.
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if r > 0xFFFF {
			n += 2
		} else {
			n++
		}
	}
	return n
}
