package cpm

import "strings"

// lookup resolves path (an 8.3-ish name, optionally with a leading "/")
// plus a user number to the index of the first extent of the matching
// file (spec §4.7). It returns ok=false if no entry matches.
//
// The filename comparison matches the request's byte-length prefix
// against the fixed 8-byte filename field without padding the request
// with spaces: a one-character request matches any file beginning with
// that character. This is preserved exactly as the source behaves (spec
// §9) even though it is surprising.
func lookup(entries []Entry, user uint8, path string) (idx int, ok bool) {
	path = strings.TrimPrefix(path, "/")

	name := path
	ext := ""
	if dot := strings.IndexByte(path, '.'); dot >= 0 {
		name = path[:dot]
		ext = path[dot+1:]
		if len(ext) > 3 {
			ext = ext[:3]
		}
	}

	best := -1
	for i, e := range entries {
		if !e.IsValid() {
			continue
		}
		if e.Status != user {
			continue
		}
		if !matchesName(e, name) || !matchesExtension(e, ext) {
			continue
		}
		if best == -1 || e.ExtentNumber() < entries[best].ExtentNumber() {
			best = i
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}

func matchesName(e Entry, name string) bool {
	if len(name) > 8 {
		return false
	}
	for i := 0; i < len(name); i++ {
		if e.File[i]&0x7F != name[i] {
			return false
		}
	}
	return true
}

// matchesExtension compares ext against the entry's extension field
// trimmed to its first space (or its full 3 bytes if there is none). This
// is an exact-length comparison, unlike matchesName's prefix behavior
// (spec §4.7): a request that omits the extension matches any extension.
func matchesExtension(e Entry, ext string) bool {
	if ext == "" {
		return true
	}

	extLen := 3
	for i := 0; i < 3; i++ {
		if e.Extension[i]&0x7F == ' ' {
			extLen = i
			break
		}
	}
	if len(ext) != extLen {
		return false
	}
	for i := 0; i < extLen; i++ {
		if e.Extension[i]&0x7F != ext[i] {
			return false
		}
	}
	return true
}
