package types

import "pvzedit/tables"

type PlantType uint32

func (t PlantType) String() string { return tables.SafeName(tables.PlantTypeName, int(t)) }

type Color uint32

func (c Color) String() string { return tables.SafeName(tables.ColorName, int(c)) }

type Location uint32

const (
	LocZenGarden Location = iota
	LocMushroomGarden
	LocWheelBarrow
	LocAquariumGarden
)

func (l Location) String() string { return tables.SafeName(tables.LocationName, int(l)) }

type Direction uint32

const (
	FacingRight Direction = iota
	FacingLeft
)

func (d Direction) String() string { return tables.SafeName(tables.DirectionName, int(d)) }

type Need uint32

func (n Need) String() string { return tables.SafeName(tables.NeedName, int(n)) }
