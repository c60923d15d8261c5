// SPDX-License-Identifier: MPL-2.0

// Package attrcheck provides attribute-equality predicates over lists of
// records, used to validate uniformity of inventory output (for example,
// that every physical volume in an LVM report belongs to the same volume
// group).
package attrcheck

// Record is one generic fact record.
type Record map[string]any

// AllEqual reports whether every record has attr == want. A record missing
// the attribute counts as unequal. The empty list is vacuously uniform.
func AllEqual(records []Record, attr string, want any) bool {
	for _, rec := range records {
		if rec[attr] != want {
			return false
		}
	}
	return true
}

// AnyNot reports whether at least one record has attr != want.
func AnyNot(records []Record, attr string, want any) bool {
	return !AllEqual(records, attr, want)
}
