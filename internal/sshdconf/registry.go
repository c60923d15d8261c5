// SPDX-License-Identifier: MPL-2.0

package sshdconf

import (
	"slices"
	"strings"
)

// GlobalScope is the identifier of the distinguished global scope. It always
// exists and is never "entered", so unlike Match scopes it carries no
// location or appearance of its own.
const GlobalScope = "global"

type (
	// Option is the audited record of one option name within one scope.
	// Value is the effective value under first-directive-wins semantics:
	// the first occurrence sets it and later occurrences in the same scope
	// never change it, they only extend Appearance.
	Option struct {
		// Value is the effective value, taken from the first occurrence only.
		Value string `json:"value"`
		// Location is the absolute path of the file that set the effective
		// value. Invariant: Location == Appearance[0].
		Location string `json:"location"`
		// Appearance lists every file where this option name was seen, in
		// discovery order across the whole recursive walk, de-duplicated.
		Appearance []string `json:"appearance"`
	}

	// MatchBlock is the snapshot of one named scope, merged across every
	// `Match <condition>` occurrence for the same raw condition text.
	MatchBlock struct {
		// Condition is the raw Match value, e.g. "User bob". Case-sensitive,
		// no normalization.
		Condition string `json:"condition"`
		// Location is the file where this scope was first entered.
		Location string `json:"location"`
		// Appearance lists the files containing a Match line for this scope,
		// in discovery order, de-duplicated.
		Appearance []string `json:"appearance"`
		// Options maps canonical-cased option names to their records.
		Options map[string]Option `json:"options"`
	}

	// Config is the structured parse output. Global options sit directly at
	// the root keyed by their canonical-cased name; named scopes are listed
	// under the "Match" key, present only when at least one exists, ordered
	// by first encounter.
	Config map[string]any

	// optionRecord is the mutable in-registry form of Option. The canonical
	// name is the casing of the first encounter; lookup is case-insensitive.
	optionRecord struct {
		name       string
		value      string
		location   string
		appearance []string
	}

	// scopeRecord accumulates the options of one scope during a parse.
	scopeRecord struct {
		condition  string
		location   string
		appearance []string
		options    map[string]*optionRecord
	}

	// registry owns the scope map for one parse session and implements
	// first-wins option semantics. All operations are idempotent with
	// respect to re-registering the same (scope, name, file) triple.
	registry struct {
		scopes map[string]*scopeRecord
		// order tracks first-encounter order of non-global scopes so the
		// Match list in Snapshot is deterministic.
		order []string
	}
)

func newRegistry() *registry {
	return &registry{
		scopes: map[string]*scopeRecord{
			GlobalScope: {condition: GlobalScope, options: map[string]*optionRecord{}},
		},
	}
}

// getOrCreateScope returns the scope for an identifier, creating an empty one
// on first use. Never fails.
func (r *registry) getOrCreateScope(scopeID string) *scopeRecord {
	if s, ok := r.scopes[scopeID]; ok {
		return s
	}
	s := &scopeRecord{condition: scopeID, options: map[string]*optionRecord{}}
	r.scopes[scopeID] = s
	r.order = append(r.order, scopeID)
	return s
}

// recordMatchEntry registers one encountered `Match <condition>` line. The
// first entry pins the scope's location; every entry extends the appearance
// set. Not called for `Match All`, which resets to the global scope instead
// of entering one.
func (r *registry) recordMatchEntry(scopeID, filePath string) {
	s := r.getOrCreateScope(scopeID)
	if s.location == "" {
		s.location = filePath
	}
	if !slices.Contains(s.appearance, filePath) {
		s.appearance = append(s.appearance, filePath)
	}
}

// addOption registers an option occurrence in a scope. The first occurrence
// of a name (case-insensitive) becomes the effective value; later ones leave
// value and location untouched and only extend the appearance set.
func (r *registry) addOption(scopeID, name, value, filePath string) {
	s := r.getOrCreateScope(scopeID)
	key := strings.ToLower(name)
	rec, ok := s.options[key]
	if !ok {
		s.options[key] = &optionRecord{
			name:       name,
			value:      value,
			location:   filePath,
			appearance: []string{filePath},
		}
		return
	}
	if !slices.Contains(rec.appearance, filePath) {
		rec.appearance = append(rec.appearance, filePath)
	}
}

// snapshot produces the external representation: global options flattened at
// the root, named scopes as a Match list in first-encounter order.
func (r *registry) snapshot() Config {
	out := Config{}
	for _, rec := range r.scopes[GlobalScope].options {
		out[rec.name] = rec.export()
	}

	if len(r.order) == 0 {
		return out
	}
	blocks := make([]MatchBlock, 0, len(r.order))
	for _, scopeID := range r.order {
		s := r.scopes[scopeID]
		options := make(map[string]Option, len(s.options))
		for _, rec := range s.options {
			options[rec.name] = rec.export()
		}
		blocks = append(blocks, MatchBlock{
			Condition:  s.condition,
			Location:   s.location,
			Appearance: append([]string(nil), s.appearance...),
			Options:    options,
		})
	}
	out["Match"] = blocks
	return out
}

func (o *optionRecord) export() Option {
	return Option{
		Value:      o.value,
		Location:   o.location,
		Appearance: append([]string(nil), o.appearance...),
	}
}
