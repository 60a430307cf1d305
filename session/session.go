package session

// An editing session over one user file.
//
// The session keeps the bytes the profile was loaded from, a decoded snapshot of them, and the live
// copy being edited.  Dirty compares the two decoded trees; Save re-encodes over the loaded bytes.

import (
	"bufio"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"pvzedit/profile"
	"pvzedit/types"
	"pvzedit/utils"
)

var ErrNoStash = errors.New("nothing loaded")

type Session struct {
	Handle   types.ProfileHandle
	Original []byte         // file contents as loaded (or as last saved)
	Saved    *types.Profile // decoded Original; never edited
	Current  *types.Profile // the copy being edited
}

// New starts a session over data, which came from handle's file.
func New(handle types.ProfileHandle, data []byte) (*Session, error) {
	saved, err := profile.Decode(data, handle)
	if err != nil {
		return nil, errors.Wrap(err, handle.FilePath)
	}
	return &Session{handle, data, saved, saved.Clone()}, nil
}

// Open reads and decodes handle's file.
func Open(handle types.ProfileHandle) (*Session, error) {
	data, err := os.ReadFile(handle.FilePath)
	if err != nil {
		return nil, err
	}
	return New(handle, data)
}

// Dirty reports whether there are unsaved edits.
func (s *Session) Dirty() bool {
	return !utils.DeepEqual(s.Saved, s.Current)
}

// Revert throws away all edits.
func (s *Session) Revert() {
	s.Current = s.Saved.Clone()
}

// Reload re-reads the file from disk, throwing away all edits.
func (s *Session) Reload() error {
	fresh, err := Open(s.Handle)
	if err != nil {
		return err
	}
	*s = *fresh
	return nil
}

// Encode is what Save would write.
func (s *Session) Encode() ([]byte, error) {
	return profile.Encode(s.Original, s.Current)
}

// BackupName is where Save moves the previous file: user1.dat becomes user1.old
func BackupName(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".old"
}

// Save writes the edited profile back over its file.
//
// The new file is built completely in memory and written to a temporary file next to the target
// before anything is renamed, so a failed encode or a full disk never touches the old file.  The
// old file is kept as BackupName(path).
func (s *Session) Save() error {
	data, err := s.Encode()
	if err != nil {
		return err
	}

	path := s.Handle.FilePath
	if err := writeAtomic(path, data); err != nil {
		return err
	}

	saved, err := profile.Decode(data, s.Handle)
	if err != nil {
		return errors.Wrap(err, "re-reading saved file")
	}
	s.Original = data
	s.Saved = saved
	s.Current = saved.Clone()
	return nil
}

func writeAtomic(path string, data []byte) error {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp) // no-op once renamed

	w := bufio.NewWriter(f)
	_, err = w.Write(data)
	if err == nil {
		err = w.Flush()
	}
	if err == nil {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return errors.Wrapf(err, "writing %v", tmp)
	}

	// Back up the old file.  A tool that can trash save files had better keep the last good one.
	backedUp := false
	if _, err := os.Stat(path); err == nil {
		if err := rename(path, BackupName(path)); err != nil {
			return err
		}
		backedUp = true
	}
	if err := rename(tmp, path); err != nil {
		if backedUp {
			// Put the old file back rather than leave no userN.dat at all
			if rerr := rename(BackupName(path), path); rerr != nil {
				return errors.Wrapf(err, "and restoring %v also failed (%v)", BackupName(path), rerr)
			}
		}
		return errors.Wrapf(err, "replacing %v", path)
	}
	return nil
}

// rename is os.Rename, swappable so tests can make it fail
var rename = os.Rename

// stashed is what goes into a stash file: enough to rebuild the session exactly.
// Edits are kept as an encoded file, so anything Save would reject is rejected at stash time.
type stashed struct {
	Handle   types.ProfileHandle
	Original []byte
	Edited   []byte
}

// Stash writes the session to filename, so that the next invocation of a command-line tool can
// carry on where this one stopped.
func (s *Session) Stash(filename string) error {
	edited, err := s.Encode()
	if err != nil {
		return err
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	err = gob.NewEncoder(w).Encode(stashed{s.Handle, s.Original, edited})
	if err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Sync()
}

// Retrieve loads a session written by Stash.
func Retrieve(filename string) (*Session, error) {
	f, err := os.Open(filename)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(ErrNoStash, "load a profile first")
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	st := stashed{}
	if err := gob.NewDecoder(bufio.NewReader(f)).Decode(&st); err != nil {
		return nil, errors.Wrapf(err, "reading %v", filename)
	}

	s, err := New(st.Handle, st.Original)
	if err != nil {
		return nil, err
	}
	current, err := profile.Decode(st.Edited, st.Handle)
	if err != nil {
		return nil, errors.Wrap(err, "stashed edits")
	}
	s.Current = current
	return s, nil
}

// Describe is a one-line summary for status output.
func (s *Session) Describe() string {
	state := "no unsaved changes"
	if s.Dirty() {
		state = "unsaved changes"
	}
	return fmt.Sprintf("%v (%v): %v", s.Handle.Name, s.Handle.FilePath, state)
}
