package dice

import "context"

// chanceResolution is the number of equally-likely buckets a Chance roll is
// drawn from. Battle formulas reason in percentages (6.25%, 8.3%, 15%, ...),
// so the resolution needs enough granularity to represent eighths of a
// percent without rounding two distinct probabilities onto the same bucket.
const chanceResolution = 100000

// Chance rolls against a percentage threshold (0-100) and reports whether
// the roll succeeded. pct <= 0 always fails, pct >= 100 always succeeds.
func Chance(ctx context.Context, roller Roller, pct float64) (bool, error) {
	if pct <= 0 {
		return false, nil
	}
	if pct >= 100 {
		return true, nil
	}

	roll, err := roller.Roll(ctx, chanceResolution)
	if err != nil {
		return false, err
	}

	threshold := int(pct / 100 * float64(chanceResolution))
	return roll <= threshold, nil
}

// Float01 draws a uniform value in [0, 1) from the roller, used for the
// damage formula's random variance factor (0.85-1.0 multiplier).
func Float01(ctx context.Context, roller Roller) (float64, error) {
	roll, err := roller.Roll(ctx, chanceResolution)
	if err != nil {
		return 0, err
	}
	return float64(roll-1) / float64(chanceResolution), nil
}
