package profile

import (
	"bytes"
	"math"

	"github.com/pkg/errors"

	"pvzedit/readers"
	"pvzedit/types"
	"pvzedit/writers"
)

// Encode writes p back over original, the bytes p was decoded from.
//
// The new file is: original up to the plant count, the new count, the plant table, then the rest
// of original (shifted if the count changed).  Known fields are then patched in, but only where the
// model disagrees with what original says; a flag stored as 2, for instance, stays 2 unless it was
// actually edited.  Unknown bytes therefore survive, and an unedited profile encodes to exactly
// original.
func Encode(original []byte, p *types.Profile) ([]byte, error) {
	r := readers.New(original)
	oldCount, err := r.PeekU32(OffsetPlantCount)
	if err != nil {
		return nil, errors.Wrap(err, "original plant count")
	}
	if err := r.Require(0, MinFileSize(oldCount)); err != nil {
		return nil, errors.Wrapf(err, "original too short for %v plants", oldCount)
	}
	if uint64(len(p.ZenGarden.Plants)) > math.MaxUint32 {
		return nil, errors.Wrapf(ErrValueOutOfRange, "%v plants", len(p.ZenGarden.Plants))
	}
	newCount := uint32(len(p.ZenGarden.Plants))

	buf := &bytes.Buffer{}
	buf.Grow(len(original) + (int(newCount)-int(oldCount))*PlantRecordSize)
	w := writers.New(buf)
	if err := w.WriteBytes(original[:OffsetPlantCount]); err != nil {
		return nil, err
	}
	if err := w.WriteU32(newCount); err != nil {
		return nil, errors.Wrap(err, "plant count")
	}
	for i := range p.ZenGarden.Plants {
		if err := w.WriteBytes(EncodePlant(&p.ZenGarden.Plants[i])); err != nil {
			return nil, errors.Wrapf(err, "plant %v", i)
		}
	}
	if err := w.WriteBytes(original[AchievementOffset(oldCount):]); err != nil {
		return nil, err
	}
	out := buf.Bytes()

	before := &types.Profile{}
	for i := range Fields {
		f := &Fields[i]
		raw, err := readRaw(r, f, oldCount)
		if err != nil {
			return nil, errors.Wrap(err, f.Name)
		}
		f.load(before, raw)
		if f.value(before) == f.value(p) {
			continue
		}

		v, err := f.store(p)
		if err != nil {
			return nil, errors.Wrap(err, f.Name)
		}
		if err := put(out, f.At(newCount), f.Width, v); err != nil {
			return nil, errors.Wrap(err, f.Name)
		}
	}

	return out, nil
}

func put(buf []byte, at int, width int, v uint32) error {
	if width == 2 {
		if v > math.MaxUint16 {
			return errors.Wrapf(writers.ErrValueTooLarge, "%v in 16 bits", v)
		}
		return writers.PutU16(buf, at, uint16(v))
	}
	return writers.PutU32(buf, at, v)
}
