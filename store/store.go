// Package store implements the dual-file snapshot store. Two alternating
// files are kept so that an interrupted write can never destroy the last
// complete snapshot: the new snapshot is fully written and flushed to one
// file before the other file is emptied.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"snapkeep/log"
)

// On-disk file names inside an auto-save directory.
const (
	FileName1 = ".autosave1"
	FileName2 = ".autosave2"
)

// DualFile owns the auto-save file pair. It is not safe for concurrent use;
// the persistence loop is its only caller.
type DualFile struct {
	files [2]*os.File
	// last is the index of the file holding the current snapshot. The next
	// write targets the other file.
	last int
}

// Open opens (creating if needed) both snapshot files in dir. No recovery is
// attempted; call Load once before the first Write.
func Open(dir string) (*DualFile, error) {
	f1, err := os.OpenFile(filepath.Join(dir, FileName1), os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", FileName1, err)
	}
	f2, err := os.OpenFile(filepath.Join(dir, FileName2), os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		_ = f1.Close()
		return nil, fmt.Errorf("failed to open %s: %w", FileName2, err)
	}
	// With nothing recovered yet the second file counts as current, so the
	// first write lands in the first file.
	return &DualFile{files: [2]*os.File{f1, f2}, last: 1}, nil
}

// Load performs startup recovery: prefer the first file if it is non-empty,
// fall back to the other on any integrity failure. ok is false when neither
// file holds a valid snapshot; the next successful Write repopulates the pair.
func (d *DualFile) Load() (text string, ok bool) {
	empty1, err1 := d.isEmpty(0)
	empty2, err2 := d.isEmpty(1)
	if err1 == nil && err2 == nil && empty1 && empty2 {
		// Nothing was ever saved.
		return "", false
	}

	candidate := 0
	if err1 == nil && empty1 {
		candidate = 1
	}

	if body, err := readFrame(d.files[candidate]); err == nil {
		d.last = candidate
		return body, true
	} else {
		log.WarningLog.Printf("snapshot file %d rejected: %v", candidate+1, err)
	}

	other := 1 - candidate
	if body, err := readFrame(d.files[other]); err == nil {
		d.last = other
		return body, true
	} else {
		log.WarningLog.Printf("snapshot file %d rejected: %v", other+1, err)
	}

	return "", false
}

// Write stores a new snapshot using the alternating protocol: truncate the
// stale file, write and flush the framed snapshot into it, and only then
// truncate the file holding the previous snapshot. If the write fails the
// previous snapshot file is left untouched and remains current, so the next
// attempt targets the same (already stale) file again.
func (d *DualFile) Write(text string) error {
	target := 1 - d.last

	if err := writeFrame(d.files[target], text); err != nil {
		return err
	}

	if err := truncate(d.files[d.last]); err != nil {
		// The new snapshot is durable; losing the truncation only means both
		// files are momentarily valid, which recovery tolerates.
		log.WarningLog.Printf("failed to clear stale snapshot file: %v", err)
	}

	d.last = target
	return nil
}

// Close closes both file handles.
func (d *DualFile) Close() error {
	var firstErr error
	for i, f := range d.files {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		d.files[i] = nil
	}
	return firstErr
}

func (d *DualFile) isEmpty(i int) (bool, error) {
	info, err := d.files[i].Stat()
	if err != nil {
		return false, err
	}
	return info.Size() == 0, nil
}

func truncate(f *os.File) error {
	if err := f.Truncate(0); err != nil {
		return err
	}
	_, err := f.Seek(0, 0)
	return err
}
