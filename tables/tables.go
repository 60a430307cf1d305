package tables

// These tables are in their own file because they are large.
// Everything here is indexed by the integer stored in a user file.

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

var ErrIndexOutOfRange = errors.New("index out of range")

var PlantTypes = []string{
	"Peashooter",
	"Sunflower",
	"Cherry Bomb",
	"Wall-nut",
	"Potato Mine",
	"Snow Pea",
	"Chomper",
	"Repeater",
	"Puff-shroom",
	"Sun-shroom",
	"Fume-shroom",
	"Grave Buster",
	"Hypno-shroom",
	"Scaredy-shroom",
	"Ice-shroom",
	"Doom-shroom",
	"Lily Pad",
	"Squash",
	"Threepeater",
	"Tangle Kelp",
	"Jalapeno",
	"Spikeweed",
	"Torchwood",
	"Tall-nut",
	"Sea-shroom",
	"Plantern",
	"Cactus",
	"Blover",
	"Split Pea",
	"Starfruit",
	"Pumpkin",
	"Magnet-shroom",
	"Cabbage-pult",
	"Flower Pot",
	"Kernel-pult",
	"Coffee Bean",
	"Garlic",
	"Umbrella Leaf",
	"Marigold",
	"Melon-pult",
	"Gatling Pea",
	"Twin Sunflower",
	"Gloom-shroom",
	"Cattail",
	"Winter Melon",
	"Gold Magnet",
	"Spikerock",
	"Cob Cannon",
	"Imitater",
	"Explode-o-nut",
	"Giant Wall-nut",
	"Sprout",
	"Left-facing Repeater",
}

// Colors is indexed by stored colour; see ColorName for the one exception.
var Colors = []string{
	"Low saturation",
	"None",
	"Magenta",
	"Orange",
	"Pink",
	"Cyan",
	"Red",
	"Blue",
	"Purple",
	"Light purple",
	"Yellow",
	"Light green",
}

var Locations = []string{
	"Zen Garden",
	"Mushroom Garden",
	"Wheel Barrow",
	"Aquarium Garden",
}

var Directions = []string{
	"Faces right",
	"Faces left",
}

// Needs is what a potted plant currently wants before it can grow.
var Needs = []string{
	"None",
	"Water",
	"Fertilizer",
	"Bug Spray",
	"Phonograph",
}

var Achievements = []string{
	"Home Lawn Security",
	"Nobel Peas Prize",
	"Better Off Dead",
	"China Shop",
	"SPUDOW!",
	"Explodonator",
	"Morticulturalist",
	"Don't Pea in the Pool",
	"Roll Some Heads",
	"Grounded",
	"Zombologist",
	"Penny Pincher",
	"Sunny Days",
	"Popcorn Party",
	"Good Morning",
	"No Fungus Among Us",
	"Beyond the Grave",
	"Immortal",
	"Towering Wisdom",
	"Mustache Mode",
}

var Minigames = []string{
	"ZomBotany",
	"Wall-nut Bowling",
	"Slot Machine",
	"It's Raining Seeds",
	"Beghouled",
	"Invisi-ghoul",
	"Seeing Stars",
	"Zombiquarium",
	"Beghouled Twist",
	"Big Trouble Little Zombie",
	"Portal Combat",
	"Column Like You See 'Em",
	"Bobsled Bonanza",
	"Zombie Nimble Zombie Quick",
	"Whack a Zombie",
	"Last Stand",
	"ZomBotany 2",
	"Wall-nut Bowling 2",
	"Pogo Party",
	"Dr. Zomboss's Revenge",
}

func lookup(table []string, i int, what string) (string, error) {
	if i < 0 || i >= len(table) {
		return "", errors.Wrapf(ErrIndexOutOfRange, "%v %v (have %v)", what, i, len(table))
	}
	return table[i], nil
}

func PlantTypeName(i int) (string, error) { return lookup(PlantTypes, i, "plant type") }
func LocationName(i int) (string, error)  { return lookup(Locations, i, "location") }
func DirectionName(i int) (string, error) { return lookup(Directions, i, "direction") }
func NeedName(i int) (string, error)      { return lookup(Needs, i, "need") }

// ColorName maps a stored colour to its name.  0 is shown as "None" rather than "Low saturation",
// so 0 and 1 read the same.
func ColorName(i int) (string, error) {
	if i == 0 {
		return Colors[1], nil
	}
	return lookup(Colors, i, "color")
}

// SafeName formats a lookup result for display, with out-of-table values shown as "Unknown (n)"
func SafeName(f func(int) (string, error), i int) string {
	name, err := f(i)
	if err != nil {
		return fmt.Sprintf("Unknown (%v)", i)
	}
	return name
}

// smash smashes "funny characters" (anything remotely tricky to type into a command line) into '_'
func smash(in string) string {
	out := []rune{}
	for _, c := range strings.ToUpper(in) {
		if unicode.IsLetter(c) || unicode.IsDigit(c) {
			out = append(out, c)
		} else {
			out = append(out, '_')
		}
	}
	return string(out)
}

// lastSegment is what follows the last dot of a dotted name: "money" for "general.money"
func lastSegment(name string) string {
	return name[strings.LastIndex(name, ".")+1:]
}

// string matching functions, in strictly increasing order of desperation
var fuzzy = []func(input string, candidate string) bool{
	func(i string, c string) bool { return i == c },
	func(i string, c string) bool { return strings.EqualFold(i, c) },
	func(i string, c string) bool { return smash(i) == smash(c) },
	func(i string, c string) bool { return smash(i) == smash(lastSegment(c)) },
	func(i string, c string) bool { return strings.HasPrefix(smash(c), smash(i)) },
	func(i string, c string) bool { return strings.Contains(smash(c), smash(i)) },
}

// Lookup finds input in names, fuzzily.  The first matcher with exactly one hit wins; a matcher
// with several hits is an ambiguity error.
//
// Returns the index and the full name that matched.
func Lookup(names []string, input string, what string) (int, string, error) {
	for _, match := range fuzzy {
		matches := []int{}
		for i, name := range names {
			if match(input, name) {
				matches = append(matches, i)
			}
		}
		if len(matches) == 0 {
			continue
		}
		if len(matches) > 1 {
			found := []string{}
			for _, m := range matches {
				found = append(found, names[m])
			}
			return 0, "", errors.Errorf("ambiguous %v %q could be anything from {%v}", what, input, strings.Join(found, ", "))
		}
		return matches[0], names[matches[0]], nil
	}

	return 0, "", errors.Errorf("%q could not be matched to a valid value for %v", input, what)
}
