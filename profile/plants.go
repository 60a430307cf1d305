package profile

import (
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"pvzedit/tables"
	"pvzedit/types"
)

// PlantField is one known u32 inside a plant record.  The gaps between them (mostly the high
// halves of 64-bit times) are unknown and stay as they were.
type PlantField struct {
	Name   string
	Offset int

	get func(pl *types.Plant) uint32
	set func(pl *types.Plant, v uint32)
	// names, if set, is the enum table used for display and fuzzy parsing
	names []string
}

func plantNumber[T ~uint32](name string, offset int, ptr func(pl *types.Plant) *T) PlantField {
	return PlantField{
		Name:   name,
		Offset: offset,
		get:    func(pl *types.Plant) uint32 { return uint32(*ptr(pl)) },
		set:    func(pl *types.Plant, v uint32) { *ptr(pl) = T(v) },
	}
}

func plantEnum[T ~uint32](name string, offset int, names []string, ptr func(pl *types.Plant) *T) PlantField {
	f := plantNumber(name, offset, ptr)
	f.names = names
	return f
}

var PlantFields = []PlantField{
	plantEnum("type", 0x00, tables.PlantTypes, func(pl *types.Plant) *types.PlantType { return &pl.Type }),
	plantEnum("location", 0x04, tables.Locations, func(pl *types.Plant) *types.Location { return &pl.Location }),
	plantNumber("column", 0x08, func(pl *types.Plant) *uint32 { return &pl.Column }),
	plantNumber("row", 0x0C, func(pl *types.Plant) *uint32 { return &pl.Row }),
	plantEnum("direction", 0x10, tables.Directions, func(pl *types.Plant) *types.Direction { return &pl.Direction }),
	plantNumber("last_watered", 0x18, func(pl *types.Plant) *types.Timestamp { return &pl.LastWatered }),
	plantEnum("color", 0x20, tables.Colors, func(pl *types.Plant) *types.Color { return &pl.Color }),
	plantNumber("fertilized_amount", 0x24, func(pl *types.Plant) *uint32 { return &pl.FertilizedAmount }),
	plantNumber("watered_amount", 0x28, func(pl *types.Plant) *uint32 { return &pl.WateredAmount }),
	plantNumber("watered_need_amount", 0x2C, func(pl *types.Plant) *uint32 { return &pl.WateredNeedAmount }),
	plantEnum("happiness_need", 0x30, tables.Needs, func(pl *types.Plant) *types.Need { return &pl.HappinessNeed }),
	plantNumber("last_phonograph", 0x38, func(pl *types.Plant) *types.Timestamp { return &pl.LastPhonograph }),
	plantNumber("last_fertilized", 0x40, func(pl *types.Plant) *types.Timestamp { return &pl.LastFertilized }),
	plantNumber("last_chocolate", 0x48, func(pl *types.Plant) *types.Timestamp { return &pl.LastChocolate }),
}

// PlantOffset is where record i of the plant table starts.
func PlantOffset(i int) int {
	return OffsetPlantTable + i*PlantRecordSize
}

// DecodePlant reads one record.  The record is kept as the plant's Raw.
func DecodePlant(rec []byte) (types.Plant, error) {
	if len(rec) != PlantRecordSize {
		return types.Plant{}, errors.Errorf("plant record is %v bytes, expected %v", len(rec), PlantRecordSize)
	}
	pl := types.Plant{Raw: append([]byte{}, rec...)}
	for _, f := range PlantFields {
		f.set(&pl, binary.LittleEndian.Uint32(rec[f.Offset:]))
	}
	return pl, nil
}

// EncodePlant builds a record from the plant's Raw bytes (or zeroes, for a new plant) with every
// known field overwritten.
func EncodePlant(pl *types.Plant) []byte {
	rec := make([]byte, PlantRecordSize)
	if len(pl.Raw) == PlantRecordSize {
		copy(rec, pl.Raw)
	}
	for _, f := range PlantFields {
		binary.LittleEndian.PutUint32(rec[f.Offset:], f.get(pl))
	}
	return rec
}

// SetPlantField sets one plant attribute from text.  Enum attributes take (fuzzy) names as well
// as numbers.
func SetPlantField(pl *types.Plant, name string, value string) error {
	value = strings.TrimSpace(value)
	for _, f := range PlantFields {
		if f.Name != name {
			continue
		}
		if n, err := strconv.ParseUint(value, 0, 32); err == nil {
			f.set(pl, uint32(n))
			return nil
		}
		if f.names == nil {
			return errors.Wrapf(ErrValueOutOfRange, "%v: %q is not a number", name, value)
		}
		i, _, err := tables.Lookup(f.names, value, f.Name)
		if err != nil {
			return err
		}
		f.set(pl, uint32(i))
		return nil
	}
	return errors.Errorf("plants have no %q", name)
}

// PlantFieldNames lists what SetPlantField accepts.
func PlantFieldNames() []string {
	out := []string{}
	for _, f := range PlantFields {
		out = append(out, f.Name)
	}
	return out
}
