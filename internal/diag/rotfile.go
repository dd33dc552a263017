package diag

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// RotatingFile writes log lines to a directory, rotating a segment when
// either its byte size would exceed maxBytes or the number of pipeline
// records attributed to it exceeds maxRecords, whichever comes first.
// Record-count rotation exists because a single finish event can report
// millions of parsed or formatted matrix entries in one small JSON line:
// byte-size rotation alone would leave one segment open for an entire
// multi-gigabyte run, so segment boundaries would stop tracking how much
// of the file had actually been processed.
//
// runID ties a run's segments together: the active file is named
// mm-<runID>-current.txt, and on rotation it is renamed to
// mm-<runID>-<timestamp>.txt before a fresh current file is opened. This
// keeps concurrent or successive mmpipe invocations sharing a log
// directory from silently interleaving into the same file.
type RotatingFile struct {
	dir        string
	runID      string
	maxBytes   int64
	maxRecords int64

	mu         sync.Mutex
	f          *os.File
	curSize    int64
	curRecords int64
}

func NewRotatingFile(dir, runID string, maxBytes, maxRecords int64) *RotatingFile {
	if maxBytes <= 0 {
		maxBytes = 10 * 1024 * 1024
	}
	if maxRecords <= 0 {
		maxRecords = 1 << 20
	}
	if runID == "" {
		runID = "run"
	}
	return &RotatingFile{dir: dir, runID: runID, maxBytes: maxBytes, maxRecords: maxRecords}
}

// WriteLine appends b plus a newline to the active segment, attributing
// recordCount pipeline records to it before deciding whether to rotate.
func (w *RotatingFile) WriteLine(b []byte, recordCount int64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	lineLen := int64(len(b) + 1)
	if err := w.ensureOpen(); err != nil {
		return err
	}
	if w.curSize+lineLen > w.maxBytes || w.curRecords+recordCount > w.maxRecords {
		if err := w.rotate(); err != nil {
			return err
		}
	}
	n, err := w.f.Write(append(b, '\n'))
	if err != nil {
		return err
	}
	w.curSize += int64(n)
	w.curRecords += recordCount
	return nil
}

func (w *RotatingFile) currentName() string {
	return fmt.Sprintf("mm-%s-current.txt", w.runID)
}

func (w *RotatingFile) ensureOpen() error {
	if w.f != nil {
		return nil
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return err
	}
	name := filepath.Join(w.dir, w.currentName())
	f, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	w.f = f
	if st, err := f.Stat(); err == nil {
		w.curSize = st.Size()
	} else {
		w.curSize = 0
	}
	w.curRecords = 0
	return nil
}

func (w *RotatingFile) rotate() error {
	if w.f == nil {
		return w.ensureOpen()
	}
	oldPath := w.f.Name()
	_ = w.f.Close()
	w.f = nil
	ts := time.Now().UTC().Format("20060102-150405.000000000")
	rotated := filepath.Join(filepath.Dir(oldPath), fmt.Sprintf("mm-%s-%s.txt", w.runID, ts))
	if err := os.Rename(oldPath, rotated); err != nil {
		return fmt.Errorf("rename rotated file: %w", err)
	}
	return w.ensureOpen()
}

// Close closes the currently open file handle, if any.
func (w *RotatingFile) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.f != nil {
		err := w.f.Close()
		w.f = nil
		return err
	}
	return nil
}
