package profile

import (
	"github.com/pkg/errors"

	"pvzedit/readers"
	"pvzedit/types"
)

// Decode parses a user file.  The handle supplies the name and index, which live in users.dat
// rather than in the user file itself.
//
// Fails with readers.ErrOutOfBounds if the file is too short for the plant count it claims.
func Decode(data []byte, handle types.ProfileHandle) (*types.Profile, error) {
	r := readers.New(data)

	// The count decides where everything after the plant table is, so it comes first
	count, err := r.PeekU32(OffsetPlantCount)
	if err != nil {
		return nil, errors.Wrap(err, "plant count")
	}
	if err := r.Require(0, MinFileSize(count)); err != nil {
		return nil, errors.Wrapf(err, "file too short for %v plants", count)
	}

	p := &types.Profile{Handle: handle}
	p.General.Name = handle.Name

	for i := range Fields {
		f := &Fields[i]
		raw, err := readRaw(r, f, count)
		if err != nil {
			return nil, errors.Wrap(err, f.Name)
		}
		f.load(p, raw)
	}

	p.ZenGarden.Plants = make([]types.Plant, 0, count)
	for i := 0; i < int(count); i++ {
		rec, err := r.PeekBytes(PlantOffset(i), PlantRecordSize)
		if err != nil {
			return nil, errors.Wrapf(err, "plant %v", i)
		}
		plant, err := DecodePlant(rec)
		if err != nil {
			return nil, errors.Wrapf(err, "plant %v", i)
		}
		p.ZenGarden.Plants = append(p.ZenGarden.Plants, plant)
	}

	// No known source for these
	p.ZenGarden.Tree = types.Tree{}
	p.Zombatar.Zombatars = []types.ZombatarEntry{}

	return p, nil
}

func readRaw(r *readers.Reader, f *Field, plantCount uint32) (uint32, error) {
	at := f.At(plantCount)
	if f.Width == 2 {
		v, err := r.PeekU16(at)
		return uint32(v), err
	}
	return r.PeekU32(at)
}
