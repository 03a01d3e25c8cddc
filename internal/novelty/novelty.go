// Package novelty tracks which batches and files have already been
// announced, so repeat runs only decorate genuinely new items.
package novelty

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xlordnoro/postar/internal/logging"
)

// ErrMissingFilename is returned when a per-file mark is requested with
// a label but no filename. The filename is the dedup key; calling
// without it is a programming error, not a recoverable condition.
var ErrMissingFilename = errors.New("novelty: per-file mark requires a filename")

// Entry is one previously announced file. Filename is nil only for
// entries migrated from the legacy label-only store shape.
type Entry struct {
	Label    string  `json:"label"`
	Filename *string `json:"filename"`
}

// FolderState holds the two independent novelty flags for one folder:
// a monotonic batch-announced bit and the set of announced files.
type FolderState struct {
	Episodes []Entry `json:"episodes"`
	Batch    bool    `json:"batch"`
}

// Tracker owns the persisted novelty state. Every successful mutation
// is written through immediately so a crash after a call cannot lose
// the "already announced" guarantee.
type Tracker struct {
	path    string
	log     *logging.Logger
	folders map[string]*FolderState
}

// Open loads the tracker state from path. A missing file starts empty;
// an unreadable or invalid file is treated as empty rather than
// failing the run, trading duplicate "New" badges for availability.
// Legacy label-only entries are upgraded in place on load.
func Open(path string, log *logging.Logger) *Tracker {
	if log == nil {
		log = logging.Nop()
	}
	t := &Tracker{path: path, log: log, folders: map[string]*FolderState{}}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn("novelty", "state file unreadable, starting empty", logging.F("path", path), logging.F("error", err))
		}
		return t
	}

	folders, err := decodeState(data)
	if err != nil {
		log.Warn("novelty", "state file invalid, starting empty", logging.F("path", path), logging.F("error", err))
		return t
	}
	t.folders = folders
	return t
}

// MarkBatch records the batch announcement for a folder. It returns
// true exactly once per folder, on the first call; the flag is
// monotonic and never resets.
func (t *Tracker) MarkBatch(folder string) (bool, error) {
	state := t.folder(folder)
	if state.Batch {
		return false, nil
	}
	state.Batch = true
	if err := t.save(); err != nil {
		state.Batch = false
		return false, err
	}
	return true, nil
}

// MarkFile records one announced file. It returns true only when no
// existing entry carries the same filename; the label is display-only
// and never part of the uniqueness key, so a relabeled file with the
// same filename is still "seen".
func (t *Tracker) MarkFile(folder, label, filename string) (bool, error) {
	if filename == "" {
		return false, ErrMissingFilename
	}

	state := t.folder(folder)
	for _, e := range state.Episodes {
		if e.Filename != nil && *e.Filename == filename {
			return false, nil
		}
	}

	name := filename
	state.Episodes = append(state.Episodes, Entry{Label: label, Filename: &name})
	if err := t.save(); err != nil {
		state.Episodes = state.Episodes[:len(state.Episodes)-1]
		return false, err
	}
	return true, nil
}

// Seen reports whether a filename was already announced, without
// mutating state.
func (t *Tracker) Seen(folder, filename string) bool {
	state, ok := t.folders[folder]
	if !ok {
		return false
	}
	for _, e := range state.Episodes {
		if e.Filename != nil && *e.Filename == filename {
			return true
		}
	}
	return false
}

// folder returns the state for a folder, creating it on first
// reference. Folders are never deleted automatically.
func (t *Tracker) folder(name string) *FolderState {
	if state, ok := t.folders[name]; ok {
		return state
	}
	state := &FolderState{}
	t.folders[name] = state
	return state
}

// save writes the canonical state document atomically: marshal to a
// temp file in the same directory, then rename over the target, so an
// interrupted write cannot corrupt previously persisted state.
func (t *Tracker) save() error {
	data, err := encodeState(t.folders)
	if err != nil {
		return fmt.Errorf("encode novelty state: %w", err)
	}

	dir := filepath.Dir(t.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".processed-*.json")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close state file: %w", err)
	}
	if err := os.Rename(tmpName, t.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}
