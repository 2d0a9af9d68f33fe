package benchmark

import "fmt"

// ItemSweep varies the item count while the user count stays fixed. The two
// sweep kinds are distinct types so a definition can never be ambiguous about
// which dimension is fixed; a config entry carrying a list where the fixed
// scalar belongs fails to decode instead of being guessed at.
type ItemSweep struct {
	Label      string `json:"label" mapstructure:"label"`
	FixedUsers int    `json:"users" mapstructure:"users"`
	Items      []int  `json:"items" mapstructure:"items"`
}

// UserSweep varies the user count while the item count stays fixed.
type UserSweep struct {
	Label      string `json:"label" mapstructure:"label"`
	FixedItems int    `json:"items" mapstructure:"items"`
	Users      []int  `json:"users" mapstructure:"users"`
}

func (s ItemSweep) Validate() error {
	if s.Label == "" {
		return fmt.Errorf("item sweep: missing label")
	}
	if s.FixedUsers <= 0 {
		return fmt.Errorf("item sweep %q: fixed user count must be positive, got %d", s.Label, s.FixedUsers)
	}
	return validateValues("item sweep", s.Label, s.Items)
}

func (s UserSweep) Validate() error {
	if s.Label == "" {
		return fmt.Errorf("user sweep: missing label")
	}
	if s.FixedItems <= 0 {
		return fmt.Errorf("user sweep %q: fixed item count must be positive, got %d", s.Label, s.FixedItems)
	}
	return validateValues("user sweep", s.Label, s.Users)
}

func validateValues(kind, label string, values []int) error {
	if len(values) == 0 {
		return fmt.Errorf("%s %q: no varying values", kind, label)
	}
	for _, v := range values {
		if v <= 0 {
			return fmt.Errorf("%s %q: varying value must be positive, got %d", kind, label, v)
		}
	}
	return nil
}

var sweepScales = []int{16, 32, 64, 128, 256, 1024}

// DefaultItemSweeps returns the standard item-latency sweep tiers: three
// fixed user-count populations, each swept over the full item scale.
func DefaultItemSweeps() []ItemSweep {
	return []ItemSweep{
		{Label: "small users (16)", FixedUsers: 16, Items: sweepScales},
		{Label: "moderate users (128)", FixedUsers: 128, Items: sweepScales},
		{Label: "large users (1024)", FixedUsers: 1024, Items: sweepScales},
	}
}

// DefaultUserSweeps returns the standard user-latency sweep tiers.
func DefaultUserSweeps() []UserSweep {
	return []UserSweep{
		{Label: "small items (16)", FixedItems: 16, Users: sweepScales},
		{Label: "moderate items (128)", FixedItems: 128, Users: sweepScales},
		{Label: "large items (1024)", FixedItems: 1024, Users: sweepScales},
	}
}
