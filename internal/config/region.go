package config

// KeyRegion is a single `${...}` occurrence found by FindLeafRegions.
// Start and End are half-open byte offsets into the scanned string,
// spanning the full `${...}` sequence including its delimiters.
type KeyRegion struct {
	Start           int
	End             int
	InnerKey        string
	PlaceholderText string
}

// FindLeafRegions scans a value string left to right and returns every
// leaf `${...}` region: one that contains no further `${` in its body. A
// caller resolving the returned regions must process them in reverse
// index order so that substituting one does not shift the offsets of an
// earlier region.
//
// An unclosed `${` is left unresolved and never emitted. A `${` opened
// while another is already open resets tracking to the inner one, so the
// innermost placeholder is always the one emitted.
func FindLeafRegions(s string) []KeyRegion {
	var regions []KeyRegion

	placeholderStart := -1
	bracketDepth := 0

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '$':
			if i+1 < len(s) && s[i+1] == '{' {
				// nested open wins; forget the outer's depth and start
				// tracking the inner placeholder fresh, same as a top-level
				// open.
				bracketDepth = 0
				placeholderStart = i
				i++ // consume the '{' alongside the '$'
			}
		case '{':
			if placeholderStart >= 0 {
				bracketDepth++
			}
		case '}':
			if placeholderStart < 0 {
				continue
			}
			if bracketDepth > 0 {
				bracketDepth--
				continue
			}

			inner := s[placeholderStart+2 : i]
			regions = append(regions, KeyRegion{
				Start:           placeholderStart,
				End:             i + 1,
				InnerKey:        inner,
				PlaceholderText: s[placeholderStart : i+1],
			})
			placeholderStart = -1
			bracketDepth = 0
		}
	}

	return regions
}
