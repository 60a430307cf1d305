package users

// users.dat lists the profiles in a userdata directory.  Each entry names a user{N}.dat file.

import (
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"pvzedit/readers"
	"pvzedit/tables"
	"pvzedit/types"
)

const (
	IndexFileName = "users.dat"
	indexMagic    = 0x0E
)

var (
	ErrMissingFile = errors.New("users.dat not found")
	ErrNotAFile    = errors.New("users.dat is not a regular file")
)

// Decode parses the contents of users.dat.  dir is where the user files live.
//
// A file that doesn't start with the expected marker holds no profiles, and is not an error.
func Decode(data []byte, dir string) ([]types.ProfileHandle, error) {
	r := readers.New(data)
	out := []types.ProfileHandle{}

	magic, err := r.ReadU32()
	if err != nil || magic != indexMagic {
		log.Printf("%v: no version marker (got %#x), treating as empty", IndexFileName, magic)
		return out, nil
	}

	count, err := r.ReadU16()
	if err != nil {
		return out, errors.Wrap(err, "user count")
	}

	for i := 0; i < int(count); i++ {
		name, err := r.ReadString()
		if err != nil {
			return out, errors.Wrapf(err, "user %v name", i)
		}
		reserved, err := r.ReadU32()
		if err != nil {
			return out, errors.Wrapf(err, "user %v (%v)", i, name)
		}
		index, err := r.ReadU32()
		if err != nil {
			return out, errors.Wrapf(err, "user %v (%v) index", i, name)
		}
		out = append(out, types.NewHandle(dir, name, reserved, index))
	}

	return out, nil
}

// Load reads dir/users.dat.  A missing index is reported with ErrMissingFile alongside an empty
// list, so callers can show "no profiles" and still log why.
func Load(dir string) ([]types.ProfileHandle, error) {
	path := filepath.Join(dir, IndexFileName)
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return []types.ProfileHandle{}, errors.Wrap(ErrMissingFile, dir)
	}
	if err != nil {
		return []types.ProfileHandle{}, err
	}
	if !info.Mode().IsRegular() {
		return []types.ProfileHandle{}, errors.Wrap(ErrNotAFile, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return []types.ProfileHandle{}, err
	}
	return Decode(data, dir)
}

// Find picks a profile by name (fuzzily) or by its user index.
func Find(handles []types.ProfileHandle, what string) (types.ProfileHandle, error) {
	names := make([]string, len(handles))
	for i, h := range handles {
		names[i] = h.Name
	}
	for _, h := range handles {
		if types.FileName(h.UserIndex) == what {
			return h, nil
		}
	}
	i, _, err := tables.Lookup(names, what, "profile")
	if err != nil {
		return types.ProfileHandle{}, err
	}
	return handles[i], nil
}
