package models

import "slices"

// Id sets (friends, attendees, members, voters) are never modified in place.
// These helpers always return a new slice so values handed out by the store
// keep their contents.

// ContainsID reports whether id is in ids
func ContainsID(ids []string, id string) bool {
	return slices.Contains(ids, id)
}

// AddID returns ids with id appended, or a copy of ids if already present.
func AddID(ids []string, id string) []string {
	out := make([]string, 0, len(ids)+1)
	out = append(out, ids...)
	if !slices.Contains(ids, id) {
		out = append(out, id)
	}
	return out
}

// RemoveID returns ids without id.
func RemoveID(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// ToggleID adds id if absent and removes it if present. present reports the
// membership after the toggle.
func ToggleID(ids []string, id string) (out []string, present bool) {
	if slices.Contains(ids, id) {
		return RemoveID(ids, id), false
	}
	return AddID(ids, id), true
}
