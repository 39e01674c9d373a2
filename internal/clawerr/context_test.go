package clawerr_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/MoJuiceX/clawcombat-sub000/internal/clawerr"
)

type ContextTestSuite struct {
	suite.Suite
}

func TestContextSuite(t *testing.T) {
	suite.Run(t, new(ContextTestSuite))
}

func (s *ContextTestSuite) TestContextMetadataAccumulation() {
	// Start with base context
	ctx := context.Background()

	// Add game-level metadata
	ctx = clawerr.WithMetadata(ctx,
		clawerr.Meta("game_id", "game-123"),
		clawerr.Meta("turn", 5),
	)

	// Add player-level metadata
	ctx = clawerr.WithMetadata(ctx,
		clawerr.Meta("player_id", "player-456"),
		clawerr.Meta("character", "wizard"),
	)

	// Add action-level metadata
	ctx = clawerr.WithMetadata(ctx,
		clawerr.Meta("action", "cast_spell"),
		clawerr.Meta("spell", "fireball"),
	)

	// Create error with all accumulated context
	err := clawerr.ResourceExhaustedCtx(ctx, "spell slots")

	meta := clawerr.GetMeta(err)
	s.Equal("game-123", meta["game_id"])
	s.Equal(5, meta["turn"])
	s.Equal("player-456", meta["player_id"])
	s.Equal("wizard", meta["character"])
	s.Equal("cast_spell", meta["action"])
	s.Equal("fireball", meta["spell"])
}

func (s *ContextTestSuite) TestContextMetadataOverwrite() {
	ctx := context.Background()

	// Set initial value
	ctx = clawerr.WithMetadata(ctx,
		clawerr.Meta("phase", "main"),
		clawerr.Meta("priority", "normal"),
	)

	// Overwrite with new value
	ctx = clawerr.WithMetadata(ctx,
		clawerr.Meta("phase", "combat"),
		clawerr.Meta("priority", "urgent"),
	)

	err := clawerr.NewCtx(ctx, clawerr.CodeTimingRestriction, "wrong phase")

	meta := clawerr.GetMeta(err)
	s.Equal("combat", meta["phase"]) // Should be overwritten
	s.Equal("urgent", meta["priority"])
}

func (s *ContextTestSuite) TestWrapCtx() {
	ctx := context.Background()
	ctx = clawerr.WithMetadata(ctx,
		clawerr.Meta("pipeline", "AttackPipeline"),
		clawerr.Meta("attacker", "fighter"),
	)

	// Create a base error
	baseErr := clawerr.OutOfRange("melee attack",
		clawerr.WithMeta("distance", 30),
		clawerr.WithMeta("weapon_range", 5),
	)

	// Wrap with context
	wrapped := clawerr.WrapCtx(ctx, baseErr, "attack failed")

	meta := clawerr.GetMeta(wrapped)
	// Should have both original and context metadata
	s.Equal("AttackPipeline", meta["pipeline"])
	s.Equal("fighter", meta["attacker"])
	s.Equal(30, meta["distance"])
	s.Equal(5, meta["weapon_range"])
}

func (s *ContextTestSuite) TestNestedPipelineContext() {
	// Simulate nested pipeline execution with context accumulation

	// Outer pipeline
	ctx := context.Background()
	ctx = clawerr.WithMetadata(ctx,
		clawerr.Meta("pipeline", "SpellCastPipeline"),
		clawerr.Meta("spell", "fireball"),
		clawerr.Meta("caster", "wizard"),
	)

	// Inner pipeline (damage calculation)
	innerCtx := clawerr.WithMetadata(ctx,
		clawerr.Meta("pipeline", "DamagePipeline"),
		clawerr.Meta("damage_type", "fire"),
		clawerr.Meta("base_damage", 8*6), // 8d6
	)

	// Resistance check
	resistCtx := clawerr.WithMetadata(innerCtx,
		clawerr.Meta("stage", "ResistanceCheck"),
		clawerr.Meta("target", "fire_elemental"),
		clawerr.Meta("immunity", "fire"),
	)

	// Create error at deepest level
	err := clawerr.ImmuneCtx(resistCtx, "fire damage")

	meta := clawerr.GetMeta(err)
	// Should have metadata from all levels
	s.Equal("fireball", meta["spell"])
	s.Equal("wizard", meta["caster"])
	s.Equal("ResistanceCheck", meta["stage"])
	s.Equal("fire_elemental", meta["target"])
	s.Equal("fire", meta["immunity"])
}

func (s *ContextTestSuite) TestAllContextConstructors() {
	ctx := context.Background()
	ctx = clawerr.WithMetadata(ctx,
		clawerr.Meta("test_id", "test-123"),
	)

	tests := []struct {
		name        string
		constructor func() *clawerr.Error
		code        clawerr.Code
	}{
		{
			name:        "NotAllowedCtx",
			constructor: func() *clawerr.Error { return clawerr.NotAllowedCtx(ctx, "action") },
			code:        clawerr.CodeNotAllowed,
		},
		{
			name:        "PrerequisiteNotMetCtx",
			constructor: func() *clawerr.Error { return clawerr.PrerequisiteNotMetCtx(ctx, "level 5") },
			code:        clawerr.CodePrerequisiteNotMet,
		},
		{
			name:        "ResourceExhaustedCtx",
			constructor: func() *clawerr.Error { return clawerr.ResourceExhaustedCtx(ctx, "energy") },
			code:        clawerr.CodeResourceExhausted,
		},
		{
			name:        "OutOfRangeCtx",
			constructor: func() *clawerr.Error { return clawerr.OutOfRangeCtx(ctx, "attack") },
			code:        clawerr.CodeOutOfRange,
		},
		{
			name:        "InvalidTargetCtx",
			constructor: func() *clawerr.Error { return clawerr.InvalidTargetCtx(ctx, "self") },
			code:        clawerr.CodeInvalidTarget,
		},
		{
			name:        "ConflictingStateCtx",
			constructor: func() *clawerr.Error { return clawerr.ConflictingStateCtx(ctx, "rage") },
			code:        clawerr.CodeConflictingState,
		},
		{
			name:        "TimingRestrictionCtx",
			constructor: func() *clawerr.Error { return clawerr.TimingRestrictionCtx(ctx, "not your turn") },
			code:        clawerr.CodeTimingRestriction,
		},
		{
			name:        "CooldownActiveCtx",
			constructor: func() *clawerr.Error { return clawerr.CooldownActiveCtx(ctx, "ability") },
			code:        clawerr.CodeCooldownActive,
		},
		{
			name:        "ImmuneCtx",
			constructor: func() *clawerr.Error { return clawerr.ImmuneCtx(ctx, "poison") },
			code:        clawerr.CodeImmune,
		},
		{
			name:        "BlockedCtx",
			constructor: func() *clawerr.Error { return clawerr.BlockedCtx(ctx, "shield") },
			code:        clawerr.CodeBlocked,
		},
		{
			name:        "InterruptedCtx",
			constructor: func() *clawerr.Error { return clawerr.InterruptedCtx(ctx, "counterspell") },
			code:        clawerr.CodeInterrupted,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			err := tt.constructor()
			s.Equal(tt.code, clawerr.GetCode(err))

			meta := clawerr.GetMeta(err)
			s.Equal("test-123", meta["test_id"], "Context metadata should be preserved")
		})
	}
}

func (s *ContextTestSuite) TestFormattedContextErrors() {
	ctx := context.Background()
	ctx = clawerr.WithMetadata(ctx,
		clawerr.Meta("character", "rogue"),
		clawerr.Meta("weapon", "dagger"),
	)

	err := clawerr.NotAllowedfCtx(ctx, "cannot use %s without proficiency", "longbow")
	s.Contains(err.Error(), "cannot use longbow without proficiency")

	meta := clawerr.GetMeta(err)
	s.Equal("rogue", meta["character"])
	s.Equal("dagger", meta["weapon"])
}

func (s *ContextTestSuite) TestWrapWithCodeCtx() {
	ctx := context.Background()
	ctx = clawerr.WithMetadata(ctx,
		clawerr.Meta("session", "session-789"),
	)

	baseErr := clawerr.New(clawerr.CodeUnknown, "something failed")
	wrapped := clawerr.WrapWithCodeCtx(ctx, baseErr, clawerr.CodeInternal, "system error")

	s.Equal(clawerr.CodeInternal, clawerr.GetCode(wrapped))
	meta := clawerr.GetMeta(wrapped)
	s.Equal("session-789", meta["session"])
}
