package profile

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"pvzedit/types"
)

var ErrValueOutOfRange = errors.New("value out of range")

// Rule is how the integer stored for a field maps to its model value.
type Rule int

const (
	RuleRaw        Rule = iota // the number as stored
	RuleNonZero                // bool: anything but 0 is true
	RuleExactlyOne             // bool: only 1 is true, 2 is false
	RuleMoney                  // stored in tens
	RuleSlots                  // stored as slots beyond the starting 6
	RuleConsumable             // 0: never bought, else 1000+remaining
)

func (r Rule) String() string {
	return [...]string{"raw", "!=0", "==1", "money", "slots", "consumable"}[r]
}

const (
	startingSlots    = 6
	consumableOffset = 1000
)

// Base says which origin a field offset is relative to.
type Base int

const (
	BaseFixed        Base = iota // start of file
	BaseAchievements             // 0x334 + plants*0x58
	BaseZombatar                 // 0x365 + plants*0x58
)

// Field is one entry of the user file layout: where it lives, how wide it is, how to interpret
// it, and where it goes in a Profile.
type Field struct {
	Name   string
	Base   Base
	Offset int
	Width  int
	Rule   Rule

	load  func(p *types.Profile, raw uint32)
	store func(p *types.Profile) (uint32, error)
	value func(p *types.Profile) interface{}
	show  func(p *types.Profile) string
	parse func(p *types.Profile, s string) error
}

// At is the absolute offset of the field in a file holding plantCount plants.
func (f *Field) At(plantCount uint32) int {
	switch f.Base {
	case BaseAchievements:
		return AchievementOffset(plantCount) + f.Offset
	case BaseZombatar:
		return ZombatarOffset(plantCount) + f.Offset
	}
	return f.Offset
}

func (f *Field) Show(p *types.Profile) string {
	if f.show != nil {
		return f.show(p)
	}
	return fmt.Sprint(f.value(p))
}

func (f *Field) Set(p *types.Profile, s string) error {
	return errors.Wrapf(f.parse(p, strings.TrimSpace(s)), "setting %v", f.Name)
}

func parseUint32(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, errors.Wrapf(ErrValueOutOfRange, "%q is not a number from 0 to %v", s, uint32(0xFFFFFFFF))
	}
	return uint32(n), nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "1", "t", "true", "y", "yes", "on":
		return true, nil
	case "0", "f", "false", "n", "no", "off":
		return false, nil
	}
	return false, errors.Errorf("%q is not yes or no", s)
}

// parseDate accepts "never", a YYYY-MM-DD date, or a raw day count.
func parseDate(s string) (types.GameDate, error) {
	if strings.EqualFold(s, "never") {
		return 0, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return types.DateOf(t), nil
	}
	n, err := parseUint32(s)
	return types.GameDate(n), err
}

func number[T ~uint32](name string, base Base, offset int, ptr func(p *types.Profile) *T) Field {
	f := Field{Name: name, Base: base, Offset: offset, Width: 4, Rule: RuleRaw}
	f.load = func(p *types.Profile, raw uint32) { *ptr(p) = T(raw) }
	f.store = func(p *types.Profile) (uint32, error) { return uint32(*ptr(p)), nil }
	f.value = func(p *types.Profile) interface{} { return *ptr(p) }
	f.parse = func(p *types.Profile, s string) error {
		var n uint32
		var err error
		if _, isDate := interface{}(T(0)).(types.GameDate); isDate {
			var d types.GameDate
			d, err = parseDate(s)
			n = uint32(d)
		} else {
			n, err = parseUint32(s)
		}
		if err != nil {
			return err
		}
		*ptr(p) = T(n)
		return nil
	}
	return f
}

func flag(name string, base Base, offset int, width int, rule Rule, ptr func(p *types.Profile) *bool) Field {
	f := Field{Name: name, Base: base, Offset: offset, Width: width, Rule: rule}
	f.load = func(p *types.Profile, raw uint32) {
		if rule == RuleExactlyOne {
			*ptr(p) = raw == 1
		} else {
			*ptr(p) = raw != 0
		}
	}
	f.store = func(p *types.Profile) (uint32, error) {
		if *ptr(p) {
			return 1, nil
		}
		return 0, nil
	}
	f.value = func(p *types.Profile) interface{} { return *ptr(p) }
	f.parse = func(p *types.Profile, s string) error {
		b, err := parseBool(s)
		if err != nil {
			return err
		}
		*ptr(p) = b
		return nil
	}
	return f
}

// money is shown in coins but stored in tens of coins.  Anything finer than 10 is dropped on save.
// Coins are held in 64 bits so that any stored value shows correctly.
func money(name string, offset int, ptr func(p *types.Profile) *uint64) Field {
	f := Field{Name: name, Base: BaseFixed, Offset: offset, Width: 4, Rule: RuleMoney}
	f.load = func(p *types.Profile, raw uint32) { *ptr(p) = uint64(raw) * 10 }
	f.store = func(p *types.Profile) (uint32, error) {
		tens := RoundMoney(*ptr(p)) / 10
		if tens > math.MaxUint32 {
			return 0, errors.Wrapf(ErrValueOutOfRange, "%v: %v coins (maximum %v)", name, *ptr(p), uint64(math.MaxUint32)*10)
		}
		return uint32(tens), nil
	}
	f.value = func(p *types.Profile) interface{} { return *ptr(p) }
	f.parse = func(p *types.Profile, s string) error {
		n, err := strconv.ParseUint(s, 0, 64)
		if err != nil {
			return errors.Wrapf(ErrValueOutOfRange, "%q is not a number of coins", s)
		}
		*ptr(p) = n
		return nil
	}
	return f
}

// RoundMoney rounds an amount down to what the file can hold.
func RoundMoney(m uint64) uint64 {
	return m / 10 * 10
}

func slots(name string, offset int, ptr func(p *types.Profile) *uint32) Field {
	f := number(name, BaseFixed, offset, ptr)
	f.Rule = RuleSlots
	f.load = func(p *types.Profile, raw uint32) { *ptr(p) = raw + startingSlots }
	f.store = func(p *types.Profile) (uint32, error) {
		if *ptr(p) < startingSlots {
			return 0, errors.Wrapf(ErrValueOutOfRange, "%v: %v slots (minimum %v)", name, *ptr(p), startingSlots)
		}
		return *ptr(p) - startingSlots, nil
	}
	return f
}

func consumable(name string, offset int, ptr func(p *types.Profile) *types.Consumable) Field {
	f := Field{Name: name, Base: BaseFixed, Offset: offset, Width: 4, Rule: RuleConsumable}
	f.load = func(p *types.Profile, raw uint32) {
		c := types.Consumable{Purchased: raw != 0}
		if raw > consumableOffset {
			c.Remaining = raw - consumableOffset
		}
		*ptr(p) = c
	}
	f.store = func(p *types.Profile) (uint32, error) {
		c := *ptr(p)
		if !c.Purchased {
			return 0, nil
		}
		if c.Remaining > 0xFFFFFFFF-consumableOffset {
			return 0, errors.Wrapf(ErrValueOutOfRange, "%v: %v remaining", name, c.Remaining)
		}
		return c.Remaining + consumableOffset, nil
	}
	f.value = func(p *types.Profile) interface{} { return *ptr(p) }
	f.show = func(p *types.Profile) string {
		c := *ptr(p)
		if !c.Purchased {
			return "not purchased"
		}
		return fmt.Sprintf("%v remaining", c.Remaining)
	}
	f.parse = func(p *types.Profile, s string) error {
		if strings.EqualFold(s, "none") || strings.EqualFold(s, "not purchased") {
			*ptr(p) = types.Consumable{}
			return nil
		}
		n, err := parseUint32(s)
		if err != nil {
			return err
		}
		*ptr(p) = types.Consumable{Purchased: true, Remaining: n}
		return nil
	}
	return f
}
