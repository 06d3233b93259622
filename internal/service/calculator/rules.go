package calculator

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"mainport/internal/model"
)

var (
	// ErrInvalidArgument out-of-range lever or non-positive energy total
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrHaulMixLocked haul mix edited while the scenario derives it
	ErrHaulMixLocked = errors.New("haul mix is derived from the scenario; switch to Custom to edit it")
	// ErrUnknownRunway runway share for a runway that is not configured
	ErrUnknownRunway = errors.New("unknown runway")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// ValidateLevers checks the top-level levers and returns one message per violation.
// short+medium above 100 is not a violation: EnforceHaulMix clamps medium.
func ValidateLevers(slots int, freightPct float64, shortPct, mediumPct int) []string {
	errs := make([]string, 0, 4)

	if slots < 0 {
		errs = append(errs, fmt.Sprintf("slots must not be negative, got %d", slots))
	}
	if math.IsNaN(freightPct) || freightPct < 0 || freightPct > 100 {
		errs = append(errs, fmt.Sprintf("freight share must be within 0-100, got %v", freightPct))
	}
	if shortPct < 0 || shortPct > 100 {
		errs = append(errs, fmt.Sprintf("short-haul share must be within 0-100, got %d", shortPct))
	}
	if mediumPct < 0 || mediumPct > 100 {
		errs = append(errs, fmt.Sprintf("medium-haul share must be within 0-100, got %d", mediumPct))
	}

	return errs
}

func checkLevers(slots int, freightPct float64, shortPct, mediumPct int) error {
	if errs := ValidateLevers(slots, freightPct, shortPct, mediumPct); len(errs) > 0 {
		return invalidf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// ValidateState checks a scenario before recomputation.
func ValidateState(st model.ScenarioState) error {
	if !st.Archetype.Valid() {
		return invalidf("unknown scenario %q", st.Archetype)
	}
	return checkLevers(st.Slots, st.FreightSharePct, st.HaulMix.ShortPct, st.HaulMix.MediumPct)
}

// roundFreight rounds the freight share half-to-even to whole percent.
func roundFreight(pct float64) int {
	return int(math.RoundToEven(pct))
}
