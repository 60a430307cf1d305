package types

// The decoded contents of one user file.
//
// Every group is a plain value type except the plant list (and its per-record Raw bytes), so a
// copy made with Clone never aliases the original.

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

// ProfileHandle identifies one entry of users.dat.
type ProfileHandle struct {
	Name      string
	UserIndex uint32
	Reserved  uint32 // meaning unknown; carried as-is
	FilePath  string
}

// FileName is the per-user file name, e.g. user3.dat
func FileName(index uint32) string {
	return fmt.Sprintf("user%d.dat", index)
}

func NewHandle(dir string, name string, reserved uint32, index uint32) ProfileHandle {
	return ProfileHandle{name, index, reserved, filepath.Join(dir, FileName(index))}
}

var dateEpoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// GameDate is a day count since 2000-01-01.  0 means "never".
type GameDate uint32

func (d GameDate) Never() bool {
	return d == 0
}

func (d GameDate) Time() time.Time {
	return dateEpoch.AddDate(0, 0, int(d))
}

func DateOf(t time.Time) GameDate {
	days := t.UTC().Sub(dateEpoch).Hours() / 24
	if days < 1 {
		// Day 0 would read back as "never"
		return 1
	}
	return GameDate(days)
}

func (d GameDate) String() string {
	if d.Never() {
		return "never"
	}
	return d.Time().Format("2006-01-02")
}

// Timestamp is the low half of a unix time, as stored in plant records.
type Timestamp uint32

func (ts Timestamp) Time() time.Time {
	return time.Unix(int64(ts), 0).UTC()
}

func (ts Timestamp) String() string {
	if ts == 0 {
		return "never"
	}
	return ts.Time().Format(time.DateTime)
}

// Consumable is a zen garden item with a remaining-use counter (fertilizer, bug spray).
// The file stores 0 for "never bought" and 1000+remaining otherwise.
type Consumable struct {
	Purchased bool
	Remaining uint32
}

type ShopPlants struct {
	GatlingPea    bool
	TwinSunflower bool
	GloomShroom   bool
	Cattail       bool
	WinterMelon   bool
	GoldMagnet    bool
	Spikerock     bool
	CobCannon     bool
	Imitater      bool
	ExplodeONut   bool
}

// Flags lists the shop plants in file order.
func (s *ShopPlants) Flags() []*bool {
	return []*bool{
		&s.GatlingPea, &s.TwinSunflower, &s.GloomShroom, &s.Cattail, &s.WinterMelon,
		&s.GoldMagnet, &s.Spikerock, &s.CobCannon, &s.Imitater, &s.ExplodeONut,
	}
}

type Shop struct {
	Slots       uint32
	PoolCleaner bool
	RoofCleaner bool
	RakeUses    uint32
	Plants      ShopPlants
}

type General struct {
	Name              string
	Level             uint32
	Completed         uint32
	Money             uint64 // coins; the file holds tens of coins in 32 bits
	MinigamesUnlocked bool
	PuzzlesUnlocked   bool
	HasTaco           bool
	Shop              Shop
}

// LevelName renders the adventure level as area-stage, e.g. 50 is "5-10".
func (g *General) LevelName() string {
	if g.Level == 0 {
		return "none"
	}
	return fmt.Sprintf("%d-%d", (g.Level-1)/10+1, (g.Level-1)%10+1)
}

type Snail struct {
	LastAwoken    GameDate // 0: snail not bought
	LastChocolate uint32
	X             uint32
	Y             uint32
}

func (s *Snail) Purchased() bool {
	return !s.LastAwoken.Never()
}

// Tree is the Tree of Wisdom.  Nothing is known about where it lives in the file, so it is
// never decoded or written and always reads as zero.
type Tree struct {
	Purchased     bool
	Height        uint32
	PurchasedFood bool
	Food          uint32
}

type ZenGarden struct {
	Marigolds      [3]GameDate
	GoldenCan      bool
	Fertilizer     Consumable
	BugSpray       Consumable
	Phonograph     bool
	Glove          bool
	MushroomGarden bool
	WheelBarrow    bool
	AquariumGarden bool
	Snail          Snail
	Tree           Tree
	Plants         []Plant
}

type Plant struct {
	Type              PlantType
	Location          Location
	Column            uint32
	Row               uint32
	Direction         Direction
	LastWatered       Timestamp
	Color             Color
	FertilizedAmount  uint32
	WateredAmount     uint32
	WateredNeedAmount uint32
	HappinessNeed     Need
	LastPhonograph    Timestamp
	LastFertilized    Timestamp
	LastChocolate     Timestamp

	// Raw is the record this plant was decoded from, unknown bytes included.  Nil for new plants.
	Raw []byte `yaml:"-"`
}

type Achievements struct {
	HomeLawnSecurity bool
	NobelPeasPrize   bool
	BetterOffDead    bool
	ChinaShop        bool
	Spudow           bool
	Explodonator     bool
	Morticulturalist bool
	DontPeaInThePool bool
	RollSomeHeads    bool
	Grounded         bool
	Zombologist      bool
	PennyPincher     bool
	SunnyDays        bool
	PopcornParty     bool
	GoodMorning      bool
	NoFungusAmongUs  bool
	BeyondTheGrave   bool
	Immortal         bool
	ToweringWisdom   bool
	MustacheMode     bool
}

// Flags lists the achievements in file order.
func (a *Achievements) Flags() []*bool {
	return []*bool{
		&a.HomeLawnSecurity, &a.NobelPeasPrize, &a.BetterOffDead, &a.ChinaShop, &a.Spudow,
		&a.Explodonator, &a.Morticulturalist, &a.DontPeaInThePool, &a.RollSomeHeads, &a.Grounded,
		&a.Zombologist, &a.PennyPincher, &a.SunnyDays, &a.PopcornParty, &a.GoodMorning,
		&a.NoFungusAmongUs, &a.BeyondTheGrave, &a.Immortal, &a.ToweringWisdom, &a.MustacheMode,
	}
}

func (a *Achievements) SetAll(v bool) {
	for _, f := range a.Flags() {
		*f = v
	}
}

func (a *Achievements) Invert() {
	for _, f := range a.Flags() {
		*f = !*f
	}
}

func (a *Achievements) Count() int {
	n := 0
	for _, f := range a.Flags() {
		if *f {
			n++
		}
	}
	return n
}

// SurvivalSet is one high score per level type.
type SurvivalSet struct {
	Day   uint32
	Night uint32
	Pool  uint32
	Fog   uint32
	Roof  uint32
}

type Survivals struct {
	Normal  SurvivalSet
	Hard    SurvivalSet
	Endless uint32
}

type Minigames struct {
	ZomBotany               bool
	WallnutBowling          bool
	SlotMachine             bool
	ItsRainingSeeds         bool
	Beghouled               bool
	Invisighoul             bool
	SeeingStars             bool
	Zombiquarium            bool
	BeghouledTwist          bool
	BigTroubleLittleZombie  bool
	PortalCombat            bool
	ColumnLikeYouSeeEm      bool
	BobsledBonanza          bool
	ZombieNimbleZombieQuick bool
	WhackAZombie            bool
	LastStand               bool
	ZomBotany2              bool
	WallnutBowling2         bool
	PogoParty               bool
	DrZombossRevenge        bool
}

// Flags lists the minigames in file order.
func (m *Minigames) Flags() []*bool {
	return []*bool{
		&m.ZomBotany, &m.WallnutBowling, &m.SlotMachine, &m.ItsRainingSeeds, &m.Beghouled,
		&m.Invisighoul, &m.SeeingStars, &m.Zombiquarium, &m.BeghouledTwist, &m.BigTroubleLittleZombie,
		&m.PortalCombat, &m.ColumnLikeYouSeeEm, &m.BobsledBonanza, &m.ZombieNimbleZombieQuick, &m.WhackAZombie,
		&m.LastStand, &m.ZomBotany2, &m.WallnutBowling2, &m.PogoParty, &m.DrZombossRevenge,
	}
}

type Puzzles struct {
	Vasebreaker          bool
	ToTheLeft            bool
	ThirdVase            bool
	ChainReaction        bool
	MIsForMetal          bool
	ScaryPotter          bool
	HokeyPokey           bool
	AnotherChainReaction bool
	AceOfVases           bool
	VasebreakerEndless   uint32 // streak, not a flag
	IZombie              bool
	IZombieToo           bool
	CanYouDigIt          bool
	TotallyNuts          bool
	DeadZeppelin         bool
	MeSmash              bool
	ZomBoogie            bool
	ThreeHitWonder       bool
	AllYourBrainz        bool
	IZombieEndless       uint32 // streak, not a flag
}

type Challenges struct {
	Survivals Survivals
	Minigames Minigames
	Puzzles   Puzzles
}

// Limbo holds progress for levels that exist in the game data but are not normally reachable.
type Limbo struct {
	SurvivalEndless LimboSurvival
	Minigames       LimboMinigames
}

// LimboSurvival covers the endless variants other than pool (whose score is Survivals.Endless).
type LimboSurvival struct {
	Day   bool
	Night bool
	Fog   bool
	Roof  bool
}

type LimboMinigames struct {
	ArtWallnut   bool
	SunnyDay     bool
	Unsodded     bool
	BuyTime      bool
	ArtSunflower bool
	AirRaid      bool
	IceLevel     bool
	ZenGarden    bool
	HighGravity  bool
	GraveDanger  bool
	CanYouDigIt  bool
	DarkNight    bool
	BungeeBlitz  bool
	Intro        bool
	Tree         bool
	Upsell       bool
}

// Flags lists the limbo minigames in file order.
func (l *LimboMinigames) Flags() []*bool {
	return []*bool{
		&l.ArtWallnut, &l.SunnyDay, &l.Unsodded, &l.BuyTime, &l.ArtSunflower, &l.AirRaid, &l.IceLevel, &l.ZenGarden,
		&l.HighGravity, &l.GraveDanger, &l.CanYouDigIt, &l.DarkNight, &l.BungeeBlitz, &l.Intro, &l.Tree, &l.Upsell,
	}
}

// ZombatarEntry is a saved zombatar.  Where these live is not known; the list is always empty.
type ZombatarEntry struct{}

type Zombatar struct {
	License       bool
	CreatedBefore bool
	Zombatars     []ZombatarEntry
}

type Profile struct {
	Handle       ProfileHandle
	General      General
	ZenGarden    ZenGarden
	Achievements Achievements
	Challenges   Challenges
	Limbo        Limbo
	Zombatar     Zombatar
}

// Clone returns a deep copy sharing no memory with p.
func (p *Profile) Clone() *Profile {
	out := *p
	if p.ZenGarden.Plants != nil {
		out.ZenGarden.Plants = make([]Plant, len(p.ZenGarden.Plants))
		for i, plant := range p.ZenGarden.Plants {
			out.ZenGarden.Plants[i] = plant.Clone()
		}
	}
	if p.Zombatar.Zombatars != nil {
		out.Zombatar.Zombatars = append([]ZombatarEntry{}, p.Zombatar.Zombatars...)
	}
	return &out
}

func (p Plant) Clone() Plant {
	if p.Raw != nil {
		p.Raw = append([]byte{}, p.Raw...)
	}
	return p
}

// RemovePlant deletes plant i, keeping the order of the others.
func (z *ZenGarden) RemovePlant(i int) error {
	if i < 0 || i >= len(z.Plants) {
		return errors.Errorf("no plant %v (have %v)", i, len(z.Plants))
	}
	z.Plants = append(z.Plants[:i:i], z.Plants[i+1:]...)
	return nil
}
