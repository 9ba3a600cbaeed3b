// Package settings holds the user-facing preferences persisted separately
// from match state: dashboard toggles and the configurable possession key
// bindings.
package settings

import "strings"

// KeyBindings maps keyboard keys onto possession switches. Several keys may
// target the same side (letter plus digit by default).
type KeyBindings struct {
	HomePossession []string `json:"homePossession"`
	AwayPossession []string `json:"awayPossession"`
}

// Settings is the persisted user settings record.
type Settings struct {
	ShowUndo bool        `json:"showUndo"`
	ShowRedo bool        `json:"showRedo"`
	Bindings KeyBindings `json:"bindings"`
}

// Default returns the settings used before the user saved anything.
func Default() Settings {
	return Settings{
		ShowUndo: true,
		ShowRedo: true,
		Bindings: KeyBindings{
			HomePossession: []string{"a", "1"},
			AwayPossession: []string{"d", "2"},
		},
	}
}

// Normalize default-fills missing substructures so partial or legacy saved
// shapes never surface empty bindings. Bindings are folded to lower case:
// key presses are matched case-insensitively, so "A" and "a" are the same
// binding.
func (s *Settings) Normalize() {
	def := Default()
	if len(s.Bindings.HomePossession) == 0 {
		s.Bindings.HomePossession = def.Bindings.HomePossession
	}
	if len(s.Bindings.AwayPossession) == 0 {
		s.Bindings.AwayPossession = def.Bindings.AwayPossession
	}
	lowerKeys(s.Bindings.HomePossession)
	lowerKeys(s.Bindings.AwayPossession)
}

func lowerKeys(keys []string) {
	for i, k := range keys {
		keys[i] = strings.ToLower(k)
	}
}

// BindsHome reports whether key switches possession to the home team.
func (s Settings) BindsHome(key string) bool {
	return containsKey(s.Bindings.HomePossession, key)
}

// BindsAway reports whether key switches possession to the away team.
func (s Settings) BindsAway(key string) bool {
	return containsKey(s.Bindings.AwayPossession, key)
}

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
