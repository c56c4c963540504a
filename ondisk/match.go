package ondisk

// MatchName compares a caller-supplied name of length n against a
// directory entry that may be absent. Matching is on the raw bytes
// the entry stores, not on whatever padding or terminator a caller
// happens to have passed.
//
// Rules, in order:
//   - an absent entry, or one whose Ino is 0, never matches.
//   - n == 0 matches the name ".", supporting paths with adjacent
//     slashes ("a//b") where the empty component between slashes means
//     "here".
//   - n > NameLen never matches (the candidate cannot have been a
//     legal component).
//   - for n < NameLen, the entry's name must be exactly n bytes long
//     (no silent prefix match); for n == NameLen, the entry's name must
//     fill the slot exactly.
func MatchName(name string, present bool, entry DirEntry) bool {
	if !present || entry.Ino == 0 {
		return false
	}
	n := len(name)
	if n == 0 {
		return entry.Name == "."
	}
	if n > NameLen {
		return false
	}
	if len(entry.Name) != n {
		return false
	}
	return entry.Name == name
}
