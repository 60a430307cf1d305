package profile

// Layout of a user{N}.dat file.
//
// Everything up to the plant table sits at a fixed offset.  The plant table is a count followed by
// count 0x58-byte records, and everything after it (achievements, zombatar flags) moves with the
// count.  So: read the count first, then work out where anything after the table is.
//
// Offsets not mentioned here are unknown and are carried through a save untouched.

import (
	"fmt"

	"pvzedit/types"
)

const (
	OffsetPlantCount = 0x330
	OffsetPlantTable = 0x334
	PlantRecordSize  = 0x58

	achievementBase = 0x334
	zombatarBase    = 0x365 // not the same as achievementBase!
)

func AchievementOffset(plantCount uint32) int {
	return achievementBase + int(plantCount)*PlantRecordSize
}

func ZombatarOffset(plantCount uint32) int {
	return zombatarBase + int(plantCount)*PlantRecordSize
}

// MinFileSize is the smallest file that holds the plant table and every known field for
// plantCount plants.  int64 so that a garbage count cannot overflow it.
func MinFileSize(plantCount uint32) int64 {
	shift := int64(plantCount) * PlantRecordSize
	end := OffsetPlantTable + shift
	for i := range Fields {
		f := &Fields[i]
		e := int64(f.Offset + f.Width)
		switch f.Base {
		case BaseAchievements:
			e += achievementBase + shift
		case BaseZombatar:
			e += zombatarBase + shift
		}
		if e > end {
			end = e
		}
	}
	return end
}

var survivalKeys = []string{"day", "night", "pool", "fog", "roof"}

var minigameKeys = []string{
	"zombotany", "wallnut_bowling", "slot_machine", "its_raining_seeds", "beghouled",
	"invisighoul", "seeing_stars", "zombiquarium", "beghouled_twist", "big_trouble_little_zombie",
	"portal_combat", "column_like_you_see_em", "bobsled_bonanza", "zombie_nimble_zombie_quick", "whack_a_zombie",
	"last_stand", "zombotany2", "wallnut_bowling2", "pogo_party", "dr_zomboss_revenge",
}

var limboMinigameKeys = []string{
	"art_wallnut", "sunny_day", "unsodded", "buy_time", "art_sunflower", "air_raid", "ice_level", "zen_garden",
	"high_gravity", "grave_danger", "can_you_dig_it", "dark_night", "bungee_blitz", "intro", "tree", "upsell",
}

var shopPlantKeys = []string{
	"gatling_pea", "twin_sunflower", "gloom_shroom", "cattail", "winter_melon",
	"gold_magnet", "spikerock", "cob_cannon", "imitater", "explode_o_nut",
}

var achievementKeys = []string{
	"home_lawn_security", "nobel_peas_prize", "better_off_dead", "china_shop", "spudow",
	"explodonator", "morticulturalist", "dont_pea_in_the_pool", "roll_some_heads", "grounded",
	"zombologist", "penny_pincher", "sunny_days", "popcorn_party", "good_morning",
	"no_fungus_among_us", "beyond_the_grave", "immortal", "towering_wisdom", "mustache_mode",
}

// Fields is the whole known layout outside the plant table.
//
// Order matters in one place: limbo "upsell" and puzzle "vasebreaker" share 0x0D8.  Puzzles come
// later, so if both are edited the puzzle value is the one that gets saved.
var Fields = buildFields()

func buildFields() []Field {
	level := number("general.level", BaseFixed, 0x004, func(p *types.Profile) *uint32 { return &p.General.Level })
	level.show = func(p *types.Profile) string {
		return fmt.Sprintf("%v (%v)", p.General.Level, p.General.LevelName())
	}

	out := []Field{
		level,
		money("general.money", 0x008, func(p *types.Profile) *uint64 { return &p.General.Money }),
		number("general.completed", BaseFixed, 0x00C, func(p *types.Profile) *uint32 { return &p.General.Completed }),
	}

	for i, key := range survivalKeys {
		i := i
		out = append(out,
			number("challenges.survivals.normal."+key, BaseFixed, 0x010+4*i, func(p *types.Profile) *uint32 {
				return survivalSlot(&p.Challenges.Survivals.Normal, i)
			}),
			number("challenges.survivals.hard."+key, BaseFixed, 0x024+4*i, func(p *types.Profile) *uint32 {
				return survivalSlot(&p.Challenges.Survivals.Hard, i)
			}),
		)
	}

	out = append(out,
		flag("limbo.survival_endless.day", BaseFixed, 0x038, 4, RuleNonZero, func(p *types.Profile) *bool { return &p.Limbo.SurvivalEndless.Day }),
		flag("limbo.survival_endless.night", BaseFixed, 0x03C, 4, RuleNonZero, func(p *types.Profile) *bool { return &p.Limbo.SurvivalEndless.Night }),
		number("challenges.survivals.endless", BaseFixed, 0x040, func(p *types.Profile) *uint32 { return &p.Challenges.Survivals.Endless }),
		flag("limbo.survival_endless.fog", BaseFixed, 0x044, 4, RuleNonZero, func(p *types.Profile) *bool { return &p.Limbo.SurvivalEndless.Fog }),
		flag("limbo.survival_endless.roof", BaseFixed, 0x048, 4, RuleNonZero, func(p *types.Profile) *bool { return &p.Limbo.SurvivalEndless.Roof }),
	)

	for i, key := range minigameKeys {
		i := i
		out = append(out, flag("challenges.minigames."+key, BaseFixed, 0x04C+4*i, 4, RuleNonZero, func(p *types.Profile) *bool {
			return p.Challenges.Minigames.Flags()[i]
		}))
	}

	for i, key := range limboMinigameKeys {
		i := i
		out = append(out, flag("limbo.minigames."+key, BaseFixed, 0x09C+4*i, 4, RuleNonZero, func(p *types.Profile) *bool {
			return p.Limbo.Minigames.Flags()[i]
		}))
	}

	puzzle := func(key string, offset int, ptr func(z *types.Puzzles) *bool) Field {
		return flag("challenges.puzzles."+key, BaseFixed, offset, 4, RuleNonZero, func(p *types.Profile) *bool { return ptr(&p.Challenges.Puzzles) })
	}
	out = append(out,
		puzzle("vasebreaker", 0x0D8, func(z *types.Puzzles) *bool { return &z.Vasebreaker }),
		puzzle("to_the_left", 0x0DC, func(z *types.Puzzles) *bool { return &z.ToTheLeft }),
		puzzle("third_vase", 0x0E0, func(z *types.Puzzles) *bool { return &z.ThirdVase }),
		puzzle("chain_reaction", 0x0E4, func(z *types.Puzzles) *bool { return &z.ChainReaction }),
		puzzle("m_is_for_metal", 0x0E8, func(z *types.Puzzles) *bool { return &z.MIsForMetal }),
		puzzle("scary_potter", 0x0EC, func(z *types.Puzzles) *bool { return &z.ScaryPotter }),
		puzzle("hokey_pokey", 0x0F0, func(z *types.Puzzles) *bool { return &z.HokeyPokey }),
		puzzle("another_chain_reaction", 0x0F4, func(z *types.Puzzles) *bool { return &z.AnotherChainReaction }),
		puzzle("ace_of_vases", 0x0F8, func(z *types.Puzzles) *bool { return &z.AceOfVases }),
		number("challenges.puzzles.vasebreaker_endless", BaseFixed, 0x0FC, func(p *types.Profile) *uint32 { return &p.Challenges.Puzzles.VasebreakerEndless }),
		puzzle("izombie", 0x100, func(z *types.Puzzles) *bool { return &z.IZombie }),
		puzzle("izombie_too", 0x104, func(z *types.Puzzles) *bool { return &z.IZombieToo }),
		puzzle("can_you_dig_it", 0x108, func(z *types.Puzzles) *bool { return &z.CanYouDigIt }),
		puzzle("totally_nuts", 0x10C, func(z *types.Puzzles) *bool { return &z.TotallyNuts }),
		puzzle("dead_zeppelin", 0x110, func(z *types.Puzzles) *bool { return &z.DeadZeppelin }),
		puzzle("me_smash", 0x114, func(z *types.Puzzles) *bool { return &z.MeSmash }),
		puzzle("zomboogie", 0x118, func(z *types.Puzzles) *bool { return &z.ZomBoogie }),
		puzzle("three_hit_wonder", 0x11C, func(z *types.Puzzles) *bool { return &z.ThreeHitWonder }),
		puzzle("all_your_brainz", 0x120, func(z *types.Puzzles) *bool { return &z.AllYourBrainz }),
		number("challenges.puzzles.izombie_endless", BaseFixed, 0x124, func(p *types.Profile) *uint32 { return &p.Challenges.Puzzles.IZombieEndless }),
	)

	for i, key := range shopPlantKeys {
		i := i
		out = append(out, flag("general.shop.plants."+key, BaseFixed, 0x1A0+4*i, 4, RuleExactlyOne, func(p *types.Profile) *bool {
			return p.General.Shop.Plants.Flags()[i]
		}))
	}

	zen := func(key string, offset int, ptr func(z *types.ZenGarden) *bool) Field {
		return flag("zen_garden."+key, BaseFixed, offset, 4, RuleExactlyOne, func(p *types.Profile) *bool { return ptr(&p.ZenGarden) })
	}
	out = append(out,
		number("zen_garden.marigold1", BaseFixed, 0x1C8, func(p *types.Profile) *types.GameDate { return &p.ZenGarden.Marigolds[0] }),
		number("zen_garden.marigold2", BaseFixed, 0x1CC, func(p *types.Profile) *types.GameDate { return &p.ZenGarden.Marigolds[1] }),
		number("zen_garden.marigold3", BaseFixed, 0x1D0, func(p *types.Profile) *types.GameDate { return &p.ZenGarden.Marigolds[2] }),
		zen("golden_can", 0x1D4, func(z *types.ZenGarden) *bool { return &z.GoldenCan }),
		consumable("zen_garden.fertilizer", 0x1D8, func(p *types.Profile) *types.Consumable { return &p.ZenGarden.Fertilizer }),
		consumable("zen_garden.bug_spray", 0x1DC, func(p *types.Profile) *types.Consumable { return &p.ZenGarden.BugSpray }),
		zen("phonograph", 0x1E0, func(z *types.ZenGarden) *bool { return &z.Phonograph }),
		zen("glove", 0x1E4, func(z *types.ZenGarden) *bool { return &z.Glove }),
		zen("mushroom_garden", 0x1E8, func(z *types.ZenGarden) *bool { return &z.MushroomGarden }),
		zen("wheel_barrow", 0x1EC, func(z *types.ZenGarden) *bool { return &z.WheelBarrow }),
		number("zen_garden.snail.last_awoken", BaseFixed, 0x1F0, func(p *types.Profile) *types.GameDate { return &p.ZenGarden.Snail.LastAwoken }),
		slots("general.shop.slots", 0x1F4, func(p *types.Profile) *uint32 { return &p.General.Shop.Slots }),
		flag("general.shop.pool_cleaner", BaseFixed, 0x1F8, 4, RuleExactlyOne, func(p *types.Profile) *bool { return &p.General.Shop.PoolCleaner }),
		flag("general.shop.roof_cleaner", BaseFixed, 0x1FC, 4, RuleExactlyOne, func(p *types.Profile) *bool { return &p.General.Shop.RoofCleaner }),
		number("general.shop.rake_uses", BaseFixed, 0x200, func(p *types.Profile) *uint32 { return &p.General.Shop.RakeUses }),
		zen("aquarium_garden", 0x204, func(z *types.ZenGarden) *bool { return &z.AquariumGarden }),
		number("zen_garden.snail.last_chocolate", BaseFixed, 0x2F4, func(p *types.Profile) *uint32 { return &p.ZenGarden.Snail.LastChocolate }),
		number("zen_garden.snail.x", BaseFixed, 0x2F8, func(p *types.Profile) *uint32 { return &p.ZenGarden.Snail.X }),
		number("zen_garden.snail.y", BaseFixed, 0x2FC, func(p *types.Profile) *uint32 { return &p.ZenGarden.Snail.Y }),
		flag("general.minigames_unlocked", BaseFixed, 0x300, 4, RuleExactlyOne, func(p *types.Profile) *bool { return &p.General.MinigamesUnlocked }),
		flag("general.puzzles_unlocked", BaseFixed, 0x304, 4, RuleExactlyOne, func(p *types.Profile) *bool { return &p.General.PuzzlesUnlocked }),
		flag("general.has_taco", BaseFixed, 0x320, 4, RuleExactlyOne, func(p *types.Profile) *bool { return &p.General.HasTaco }),
	)

	for i, key := range achievementKeys {
		i := i
		out = append(out, flag("achievements."+key, BaseAchievements, 2*i, 2, RuleNonZero, func(p *types.Profile) *bool {
			return p.Achievements.Flags()[i]
		}))
	}

	out = append(out,
		flag("zombatar.license", BaseAchievements, 0x28, 4, RuleExactlyOne, func(p *types.Profile) *bool { return &p.Zombatar.License }),
		flag("zombatar.created_before", BaseZombatar, 0x28, 4, RuleExactlyOne, func(p *types.Profile) *bool { return &p.Zombatar.CreatedBefore }),
	)

	return out
}

func survivalSlot(s *types.SurvivalSet, i int) *uint32 {
	return []*uint32{&s.Day, &s.Night, &s.Pool, &s.Fog, &s.Roof}[i]
}

// FieldByName finds a layout field by its dotted name.
func FieldByName(name string) (*Field, bool) {
	for i := range Fields {
		if Fields[i].Name == name {
			return &Fields[i], true
		}
	}
	return nil, false
}
