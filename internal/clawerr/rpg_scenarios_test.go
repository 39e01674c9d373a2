package clawerr_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/MoJuiceX/clawcombat-sub000/internal/clawerr"
)

type RPGScenariosTestSuite struct {
	suite.Suite
}

func TestRPGScenariosSuite(t *testing.T) {
	suite.Run(t, new(RPGScenariosTestSuite))
}

// TestMeleeAttackOutOfRange shows how context accumulates through an attack attempt
func (s *RPGScenariosTestSuite) TestMeleeAttackOutOfRange() {
	// Combat system level
	ctx := context.Background()
	ctx = clawerr.WithMetadata(ctx,
		clawerr.Meta("encounter_id", "enc-001"),
		clawerr.Meta("round", 3),
		clawerr.Meta("turn", "fighter"),
	)

	// Attack action level
	ctx = clawerr.WithMetadata(ctx,
		clawerr.Meta("action_type", "attack"),
		clawerr.Meta("attacker_id", "fighter-001"),
		clawerr.Meta("target_id", "goblin-002"),
	)

	// Range validation level
	ctx = clawerr.WithMetadata(ctx,
		clawerr.Meta("attacker_position", "5,5"),
		clawerr.Meta("target_position", "15,15"),
		clawerr.Meta("weapon", "shortsword"),
		clawerr.Meta("weapon_reach", 5),
		clawerr.Meta("calculated_distance", 14.14),
	)

	// Create the error with full context
	err := clawerr.OutOfRangeCtx(ctx, "melee attack")

	// Verify the error tells the complete story
	meta := clawerr.GetMeta(err)
	s.Equal("enc-001", meta["encounter_id"])
	s.Equal(3, meta["round"])
	s.Equal("fighter", meta["turn"])
	s.Equal("shortsword", meta["weapon"])
	s.Equal(14.14, meta["calculated_distance"])
	s.Equal(5, meta["weapon_reach"])

	// The error message plus metadata tells us exactly why the attack failed
	s.Contains(err.Error(), "melee attack out of range")
}

// TestSpellcastingWithoutSlots shows resource exhaustion with full context
func (s *RPGScenariosTestSuite) TestSpellcastingWithoutSlots() {
	// Game session level
	ctx := context.Background()
	ctx = clawerr.WithMetadata(ctx,
		clawerr.Meta("session_id", "session-456"),
		clawerr.Meta("campaign", "lost_mines"),
	)

	// Character state level
	ctx = clawerr.WithMetadata(ctx,
		clawerr.Meta("character_id", "wizard-001"),
		clawerr.Meta("character_level", 5),
		clawerr.Meta("character_class", "wizard"),
	)

	// Spellcasting attempt level
	ctx = clawerr.WithMetadata(ctx,
		clawerr.Meta("spell", "fireball"),
		clawerr.Meta("spell_level", 3),
		clawerr.Meta("attempted_slot_level", 3),
		clawerr.Meta("slots_remaining", map[string]int{
			"1st": 4,
			"2nd": 3,
			"3rd": 0, // No 3rd level slots
			"4th": 0,
		}),
	)

	err := clawerr.ResourceExhaustedCtx(ctx, "spell slots")

	meta := clawerr.GetMeta(err)
	slots := meta["slots_remaining"].(map[string]int)
	s.Equal(0, slots["3rd"])
	s.Equal("fireball", meta["spell"])
	s.Equal(3, meta["spell_level"])
}

// TestConcentrationConflict shows conflicting game states
func (s *RPGScenariosTestSuite) TestConcentrationConflict() {
	ctx := context.Background()

	// Current state
	ctx = clawerr.WithMetadata(ctx,
		clawerr.Meta("character_id", "cleric-001"),
		clawerr.Meta("current_concentration", "bless"),
		clawerr.Meta("concentration_duration", "3 rounds"),
		clawerr.Meta("concentration_targets", []string{"fighter-001", "rogue-001"}),
	)

	// Attempted action
	ctx = clawerr.WithMetadata(ctx,
		clawerr.Meta("attempted_spell", "hold_person"),
		clawerr.Meta("requires_concentration", true),
		clawerr.Meta("target", "orc-001"),
	)

	err := clawerr.ConflictingStateCtx(ctx, "already concentrating on bless")

	meta := clawerr.GetMeta(err)
	s.Equal("bless", meta["current_concentration"])
	s.Equal("hold_person", meta["attempted_spell"])
	s.True(meta["requires_concentration"].(bool))
}

// TestNestedPipelineAttackFlow shows deep nesting with context accumulation
func (s *RPGScenariosTestSuite) TestNestedPipelineAttackFlow() {
	// Level 1: Attack Pipeline
	ctx := context.Background()
	ctx = clawerr.WithMetadata(ctx,
		clawerr.Meta("pipeline", "AttackPipeline"),
		clawerr.Meta("attacker", "barbarian-001"),
		clawerr.Meta("target", "dragon-001"),
		clawerr.Meta("weapon", "greataxe"),
	)

	// Level 2: Hit Calculation
	ctx = clawerr.WithMetadata(ctx,
		clawerr.Meta("pipeline", "HitCalculation"),
		clawerr.Meta("attack_roll", 18),
		clawerr.Meta("attack_bonus", 7),
		clawerr.Meta("total_attack", 25),
		clawerr.Meta("target_ac", 19),
		clawerr.Meta("hit", true),
	)

	// Level 3: Damage Pipeline
	damageCtx := clawerr.WithMetadata(ctx,
		clawerr.Meta("pipeline", "DamagePipeline"),
		clawerr.Meta("base_damage", "1d12"),
		clawerr.Meta("damage_roll", 8),
		clawerr.Meta("strength_bonus", 4),
		clawerr.Meta("rage_bonus", 2),
	)

	// Level 4: Damage Reduction
	reductionCtx := clawerr.WithMetadata(damageCtx,
		clawerr.Meta("pipeline", "DamageReduction"),
		clawerr.Meta("damage_type", "slashing"),
		clawerr.Meta("target_immunities", []string{"poison", "psychic"}),
		clawerr.Meta("target_resistances", []string{"slashing", "piercing", "bludgeoning"}),
	)

	// Dragon has resistance to non-magical weapons
	err := clawerr.NewCtx(reductionCtx, clawerr.CodeBlocked,
		"damage reduced by resistance to non-magical slashing")

	// Add call stack to show the execution path
	err.CallStack = []string{
		"AttackPipeline",
		"HitCalculation",
		"DamagePipeline",
		"DamageReduction",
	}

	meta := clawerr.GetMeta(err)
	s.Equal("barbarian-001", meta["attacker"])
	s.Equal("dragon-001", meta["target"])
	s.Equal("greataxe", meta["weapon"])
	s.Equal(true, meta["hit"])
	s.Equal("slashing", meta["damage_type"])

	resistances := meta["target_resistances"].([]string)
	s.Contains(resistances, "slashing")

	stack := clawerr.GetCallStack(err)
	s.Len(stack, 4)
	s.Equal("DamageReduction", stack[3])
}

// TestActionEconomyViolation shows timing restrictions with context
func (s *RPGScenariosTestSuite) TestActionEconomyViolation() {
	ctx := context.Background()

	// Turn tracking
	ctx = clawerr.WithMetadata(ctx,
		clawerr.Meta("round", 2),
		clawerr.Meta("current_turn", "rogue-001"),
		clawerr.Meta("phase", "action"),
	)

	// Character's action economy state
	ctx = clawerr.WithMetadata(ctx,
		clawerr.Meta("character_id", "rogue-001"),
		clawerr.Meta("action_used", true),
		clawerr.Meta("bonus_action_used", false),
		clawerr.Meta("movement_used", 15),
		clawerr.Meta("movement_total", 30),
		clawerr.Meta("reaction_used", false),
	)

	// Attempted action
	ctx = clawerr.WithMetadata(ctx,
		clawerr.Meta("attempted_action", "attack"),
		clawerr.Meta("action_type", "action"),
		clawerr.Meta("previous_action", "dash"),
	)

	err := clawerr.TimingRestrictionCtx(ctx, "action already used this turn")

	meta := clawerr.GetMeta(err)
	s.True(meta["action_used"].(bool))
	s.Equal("attack", meta["attempted_action"])
	s.Equal("dash", meta["previous_action"])
}

// TestPrerequisiteChain shows multiple prerequisite failures
func (s *RPGScenariosTestSuite) TestPrerequisiteChain() {
	ctx := context.Background()

	// Character attempting the action
	ctx = clawerr.WithMetadata(ctx,
		clawerr.Meta("character_id", "fighter-001"),
		clawerr.Meta("character_level", 3),
		clawerr.Meta("character_class", "fighter"),
		clawerr.Meta("subclass", "none"), // Haven't chosen archetype yet
	)

	// Ability being attempted
	ctx = clawerr.WithMetadata(ctx,
		clawerr.Meta("ability", "action_surge"),
		clawerr.Meta("ability_level_required", 2),
		clawerr.Meta("ability_uses_remaining", 0),
		clawerr.Meta("ability_recharge", "short_rest"),
		clawerr.Meta("last_rest", "long_rest_2_encounters_ago"),
	)

	err := clawerr.ResourceExhaustedCtx(ctx, "action surge uses")

	meta := clawerr.GetMeta(err)
	s.Equal(0, meta["ability_uses_remaining"])
	s.Equal("short_rest", meta["ability_recharge"])
	s.Equal(3, meta["character_level"]) // Has the level requirement
}

// TestImmunityContext shows immunity with full context
func (s *RPGScenariosTestSuite) TestImmunityContext() {
	ctx := context.Background()

	// Spell being cast
	ctx = clawerr.WithMetadata(ctx,
		clawerr.Meta("spell", "charm_person"),
		clawerr.Meta("spell_school", "enchantment"),
		clawerr.Meta("save_dc", 15),
		clawerr.Meta("caster", "bard-001"),
	)

	// Target information
	ctx = clawerr.WithMetadata(ctx,
		clawerr.Meta("target", "undead-skeleton-001"),
		clawerr.Meta("target_type", "undead"),
		clawerr.Meta("target_immunities", []string{
			"poison",
			"exhaustion",
			"charm",
			"frightened",
		}),
	)

	err := clawerr.ImmuneCtx(ctx, "charm effects (undead immunity)")

	meta := clawerr.GetMeta(err)
	s.Equal("charm_person", meta["spell"])
	s.Equal("undead", meta["target_type"])

	immunities := meta["target_immunities"].([]string)
	s.Contains(immunities, "charm")
}

// TestInterruptionChain shows how counterspell interrupts a spell
func (s *RPGScenariosTestSuite) TestInterruptionChain() {
	// Original spell cast
	ctx := context.Background()
	ctx = clawerr.WithMetadata(ctx,
		clawerr.Meta("pipeline", "SpellCastPipeline"),
		clawerr.Meta("caster", "wizard-001"),
		clawerr.Meta("spell", "disintegrate"),
		clawerr.Meta("spell_level", 6),
		clawerr.Meta("target", "fighter-001"),
		clawerr.Meta("phase", "casting"),
	)

	// Reaction triggered
	ctx = clawerr.WithMetadata(ctx,
		clawerr.Meta("interrupt_pipeline", "CounterspellPipeline"),
		clawerr.Meta("interruptor", "wizard-002"),
		clawerr.Meta("counterspell_level", 6),
		clawerr.Meta("automatic_success", true), // Same level = auto success
		clawerr.Meta("reaction_used", true),
	)

	err := clawerr.InterruptedCtx(ctx, "counterspell")
	err.CallStack = []string{
		"SpellCastPipeline.Begin",
		"SpellCastPipeline.DeclareTarget",
		"ReactionWindow.Open",
		"CounterspellPipeline.Trigger",
		"CounterspellPipeline.Resolve",
		"SpellCastPipeline.Cancelled",
	}

	meta := clawerr.GetMeta(err)
	s.Equal("disintegrate", meta["spell"])
	s.Equal("wizard-002", meta["interruptor"])
	s.True(meta["automatic_success"].(bool))

	stack := clawerr.GetCallStack(err)
	s.Contains(stack, "ReactionWindow.Open")
	s.Contains(stack, "SpellCastPipeline.Cancelled")
}
