package runes

import (
	"github.com/cockroachdb/errors"
	"github.com/runeforge-network/launchpad/common/errs"
)

// LaunchType selects the pricing model of a rune.
type LaunchType int

const (
	LaunchTypeFixedPrice LaunchType = iota + 1
	LaunchTypeBondingCurve
)

var launchTypeNames = map[LaunchType]string{
	LaunchTypeFixedPrice:   "FixedPrice",
	LaunchTypeBondingCurve: "BondingCurve",
}

var launchTypesByName = map[string]LaunchType{
	"FixedPrice":   LaunchTypeFixedPrice,
	"BondingCurve": LaunchTypeBondingCurve,
}

func NewLaunchTypeFromString(s string) (LaunchType, error) {
	t, ok := launchTypesByName[s]
	if !ok {
		return 0, errors.Wrapf(errs.InvalidArgument, "unknown launch type %q", s)
	}
	return t, nil
}

func (t LaunchType) String() string {
	return launchTypeNames[t]
}

// IsOperable reports whether runes of this launch type can be created and
// minted. BondingCurve is declared but not implemented.
func (t LaunchType) IsOperable() bool {
	return t == LaunchTypeFixedPrice
}

func (t LaunchType) MarshalJSON() ([]byte, error) {
	name, ok := launchTypeNames[t]
	if !ok {
		return nil, errors.Wrapf(errs.InvalidArgument, "invalid launch type %d", t)
	}
	return []byte(`"` + name + `"`), nil
}

func (t *LaunchType) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return errors.Wrapf(errs.InvalidArgument, "launch type must be a JSON string: %q", string(data))
	}
	parsed, err := NewLaunchTypeFromString(string(data[1 : len(data)-1]))
	if err != nil {
		return errors.WithStack(err)
	}
	*t = parsed
	return nil
}
