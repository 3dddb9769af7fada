package caveset

import (
	"fmt"
	"sort"

	"github.com/vovakirdan/tui-caves/internal/cave"
)

// The engine section of a cave is a flat map of switches. Each key binds
// to one Definition field.

var boolSettings = map[string]func(d *cave.Definition) *bool{
	"lineshift":                     func(d *cave.Definition) *bool { return &d.Lineshift },
	"border_scan":                   func(d *cave.Definition) *bool { return &d.BorderScan },
	"diagonal_movements":            func(d *cave.Definition) *bool { return &d.DiagonalMovements },
	"short_explosions":              func(d *cave.Definition) *bool { return &d.ShortExplosions },
	"active_is_first_found":         func(d *cave.Definition) *bool { return &d.ActiveIsFirstFound },
	"pal_timing":                    func(d *cave.Definition) *bool { return &d.PALTiming },
	"magic_wall_stops_amoeba":       func(d *cave.Definition) *bool { return &d.MagicWallStopsAmoeba },
	"magic_timer_waits_hatch":       func(d *cave.Definition) *bool { return &d.MagicTimerWaitsHatch },
	"amoeba_timer_immediate":        func(d *cave.Definition) *bool { return &d.AmoebaTimerImmediate },
	"amoeba_timer_waits_hatch":      func(d *cave.Definition) *bool { return &d.AmoebaTimerWaitsHatch },
	"amoeba2_explodes_by_amoeba":    func(d *cave.Definition) *bool { return &d.Amoeba2ExplodesByAmoeba },
	"slime_predictable":             func(d *cave.Definition) *bool { return &d.SlimePredictable },
	"voodoo_collects_diamonds":      func(d *cave.Definition) *bool { return &d.VoodooCollectsDiamonds },
	"voodoo_dies_by_stone":          func(d *cave.Definition) *bool { return &d.VoodooDiesByStone },
	"voodoo_disappear_in_explosion": func(d *cave.Definition) *bool { return &d.VoodooDisappearInExplosion },
	"voodoo_any_hurt_kills_player":  func(d *cave.Definition) *bool { return &d.VoodooAnyHurtKillsPlayer },
	"creatures_backwards":           func(d *cave.Definition) *bool { return &d.CreaturesBackwards },
	"creatures_auto_turn_on_start":  func(d *cave.Definition) *bool { return &d.CreaturesAutoTurnOnStart },
	"expanding_wall_changed":        func(d *cave.Definition) *bool { return &d.ExpandingWallChanged },
	"conveyor_belts_active":         func(d *cave.Definition) *bool { return &d.ConveyorBeltsActive },
	"conveyor_belts_changed":        func(d *cave.Definition) *bool { return &d.ConveyorBeltsChanged },
	"replicators_active":            func(d *cave.Definition) *bool { return &d.ReplicatorsActive },
	"gravity_switch_active":         func(d *cave.Definition) *bool { return &d.GravitySwitchActive },
	"gravity_affects_all":           func(d *cave.Definition) *bool { return &d.GravityAffectsAll },
	"hammered_walls_reappear":       func(d *cave.Definition) *bool { return &d.HammeredWallsReappear },
	"mega_stones_pushable_with_sweet": func(d *cave.Definition) *bool {
		return &d.MegaStonesPushableWithSweet
	},
}

var intSettings = map[string]func(d *cave.Definition) *int{
	"max_time":                     func(d *cave.Definition) *int { return &d.MaxTime },
	"diamond_value":                func(d *cave.Definition) *int { return &d.DiamondValue },
	"extra_diamond_value":          func(d *cave.Definition) *int { return &d.ExtraDiamondValue },
	"amoeba_growth_prob":           func(d *cave.Definition) *int { return &d.AmoebaGrowthProb },
	"amoeba_fast_growth_prob":      func(d *cave.Definition) *int { return &d.AmoebaFastGrowthProb },
	"amoeba2_growth_prob":          func(d *cave.Definition) *int { return &d.Amoeba2GrowthProb },
	"amoeba2_fast_growth_prob":     func(d *cave.Definition) *int { return &d.Amoeba2FastGrowthProb },
	"acid_spread_ratio":            func(d *cave.Definition) *int { return &d.AcidSpreadRatio },
	"creatures_auto_turn_time":     func(d *cave.Definition) *int { return &d.CreaturesAutoTurnTime },
	"biter_delay_frame":            func(d *cave.Definition) *int { return &d.BiterDelayFrame },
	"replicator_delay_frame":       func(d *cave.Definition) *int { return &d.ReplicatorDelayFrame },
	"gravity_change_time":          func(d *cave.Definition) *int { return &d.GravityChangeTime },
	"pneumatic_hammer_frame":       func(d *cave.Definition) *int { return &d.PneumaticHammerFrame },
	"hammered_wall_reappear_frame": func(d *cave.Definition) *int { return &d.HammeredWallReappearFrame },
	"skeletons_needed_for_pot":     func(d *cave.Definition) *int { return &d.SkeletonsNeededForPot },
	"skeletons_worth_diamonds":     func(d *cave.Definition) *int { return &d.SkeletonsWorthDiamonds },
	"pushing_stone_prob":           func(d *cave.Definition) *int { return &d.PushingStoneProb },
	"pushing_stone_prob_sweet":     func(d *cave.Definition) *int { return &d.PushingStoneProbSweet },
}

var elementSettings = map[string]func(d *cave.Definition) *cave.Element{
	"explosion_effect":        func(d *cave.Definition) *cave.Element { return &d.ExplosionEffect },
	"diamond_birth_effect":    func(d *cave.Definition) *cave.Element { return &d.DiamondBirthEffect },
	"bomb_explosion_effect":   func(d *cave.Definition) *cave.Element { return &d.BombExplosionEffect },
	"nitro_explosion_effect":  func(d *cave.Definition) *cave.Element { return &d.NitroExplosionEffect },
	"amoeba2_explode_effect":  func(d *cave.Definition) *cave.Element { return &d.Amoeba2ExplodeEffect },
	"stone_bounce_effect":     func(d *cave.Definition) *cave.Element { return &d.StoneBounceEffect },
	"diamond_bounce_effect":   func(d *cave.Definition) *cave.Element { return &d.DiamondBounceEffect },
	"nut_crack_effect":        func(d *cave.Definition) *cave.Element { return &d.NutCrackEffect },
	"snap_element":            func(d *cave.Definition) *cave.Element { return &d.SnapElement },
	"magic_stone_to":          func(d *cave.Definition) *cave.Element { return &d.MagicStoneTo },
	"magic_diamond_to":        func(d *cave.Definition) *cave.Element { return &d.MagicDiamondTo },
	"magic_mega_stone_to":     func(d *cave.Definition) *cave.Element { return &d.MagicMegaStoneTo },
	"magic_nut_to":            func(d *cave.Definition) *cave.Element { return &d.MagicNutTo },
	"magic_flying_stone_to":   func(d *cave.Definition) *cave.Element { return &d.MagicFlyingStoneTo },
	"magic_flying_diamond_to": func(d *cave.Definition) *cave.Element { return &d.MagicFlyingDiamondTo },
	"amoeba_too_big_effect":   func(d *cave.Definition) *cave.Element { return &d.AmoebaTooBigEffect },
	"amoeba_enclosed_effect":  func(d *cave.Definition) *cave.Element { return &d.AmoebaEnclosedEffect },
	"amoeba2_too_big_effect":  func(d *cave.Definition) *cave.Element { return &d.Amoeba2TooBigEffect },
	"amoeba2_enclosed_effect": func(d *cave.Definition) *cave.Element { return &d.Amoeba2EnclosedEffect },
	"acid_eats_this":          func(d *cave.Definition) *cave.Element { return &d.AcidEatsThis },
	"acid_turns_to":           func(d *cave.Definition) *cave.Element { return &d.AcidTurnsTo },
	"biter_eats":              func(d *cave.Definition) *cave.Element { return &d.BiterEats },
	"bladder_converts_by":     func(d *cave.Definition) *cave.Element { return &d.BladderConvertsBy },
}

// applySettings writes the engine map into d.
func applySettings(d *cave.Definition, m map[string]any) error {
	for _, key := range sortedKeys(m) {
		v := m[key]
		switch {
		case boolSettings[key] != nil:
			b, ok := v.(bool)
			if !ok {
				return fmt.Errorf("engine.%s: want a boolean, got %v", key, v)
			}
			*boolSettings[key](d) = b
		case intSettings[key] != nil:
			n, ok := v.(int)
			if !ok {
				return fmt.Errorf("engine.%s: want an integer, got %v", key, v)
			}
			*intSettings[key](d) = n
		case elementSettings[key] != nil:
			e, err := elementValue(key, v)
			if err != nil {
				return err
			}
			*elementSettings[key](d) = e
		case key == "scheduling":
			s, _ := v.(string)
			sched, ok := cave.ParseScheduling(s)
			if !ok {
				return fmt.Errorf("engine.scheduling: unknown scheduling %v", v)
			}
			d.Scheduling = sched
		case key == "gravity":
			s, _ := v.(string)
			g, ok := cave.ParseDirection(s)
			if !ok {
				return fmt.Errorf("engine.gravity: unknown direction %v", v)
			}
			d.Gravity = g
		case key == "slime_eats" || key == "slime_converts":
			list, ok := v.([]any)
			if !ok || len(list) > 3 {
				return fmt.Errorf("engine.%s: want up to three elements", key)
			}
			dst := &d.SlimeEats
			if key == "slime_converts" {
				dst = &d.SlimeConverts
			}
			for i, item := range list {
				e, err := elementValue(key, item)
				if err != nil {
					return err
				}
				dst[i] = e
			}
		default:
			return fmt.Errorf("engine.%s: unknown setting", key)
		}
	}
	return nil
}

// exportSettings is the inverse of applySettings.
func exportSettings(d *cave.Definition) map[string]any {
	m := make(map[string]any, len(boolSettings)+len(intSettings)+len(elementSettings)+4)
	for key, f := range boolSettings {
		m[key] = *f(d)
	}
	for key, f := range intSettings {
		m[key] = *f(d)
	}
	for key, f := range elementSettings {
		m[key] = f(d).String()
	}
	m["scheduling"] = d.Scheduling.String()
	m["gravity"] = d.Gravity.String()
	eats := make([]any, 0, 3)
	converts := make([]any, 0, 3)
	for i := range d.SlimeEats {
		eats = append(eats, d.SlimeEats[i].String())
		converts = append(converts, d.SlimeConverts[i].String())
	}
	m["slime_eats"] = eats
	m["slime_converts"] = converts
	return m
}

func elementValue(key string, v any) (cave.Element, error) {
	s, ok := v.(string)
	if !ok {
		return cave.None, fmt.Errorf("engine.%s: want an element name, got %v", key, v)
	}
	e, ok := cave.ElementByName(s)
	if !ok {
		return cave.None, fmt.Errorf("engine.%s: unknown element %q", key, s)
	}
	return e, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
