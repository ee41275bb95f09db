package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Team identifies a production team responsible for a subset of an
// order's line items.
type Team string

const (
	TeamGlass Team = "glass"
	TeamCaps  Team = "caps"
	TeamBoxes Team = "boxes"
	TeamPumps Team = "pumps"
)

// Teams returns all known teams in a stable order.
func Teams() []Team {
	return []Team{TeamGlass, TeamCaps, TeamBoxes, TeamPumps}
}

// TeamFromString parses s into a Team. Matching is exact, no
// normalization is applied.
func TeamFromString(s string) (Team, error) {
	team := Team(s)
	if err := team.Validate(); err != nil {
		return "", err
	}
	return team, nil
}

func (t Team) Validate() error {
	switch t {
	case TeamGlass, TeamCaps, TeamBoxes, TeamPumps:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("team", fmt.Errorf("%q is not a known team", string(t)))
}

func (t Team) String() string {
	return string(t)
}
