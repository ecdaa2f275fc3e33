package domain

import "time"

// tzOffsetMinutes maps timezone abbreviations, as they appear next to time
// strings on vendor status pages, to fixed offsets from UTC in minutes.
// Extend by adding entries, never by branching per abbreviation.
// Lookup is a case-sensitive exact match on the token.
var tzOffsetMinutes = map[string]int{
	"UTC":  0,
	"GMT":  0,
	"PDT":  -7 * 60,
	"PST":  -8 * 60,
	"EDT":  -4 * 60,
	"EST":  -5 * 60,
	"CDT":  -5 * 60,
	"CST":  -6 * 60,
	"MDT":  -6 * 60,
	"MST":  -7 * 60,
	"CEST": 2 * 60,
	"CET":  60,
	"BST":  60,
	"IST":  5*60 + 30,
}

// TZOffset returns the fixed UTC offset for a known abbreviation.
// ok is false for unrecognized abbreviations; callers must keep the
// incident and leave the derived UTC fields absent rather than guess.
func TZOffset(abbr string) (minutes int, ok bool) {
	minutes, ok = tzOffsetMinutes[abbr]
	return minutes, ok
}

// LocalToUTC interprets a wall-clock time in the zone named by abbr and
// returns the equivalent UTC instant. Each endpoint of a range is converted
// independently with its own local date; nothing is inferred from the other
// endpoint.
func LocalToUTC(year int, month time.Month, day, hour, min int, abbr string) (time.Time, bool) {
	offset, ok := TZOffset(abbr)
	if !ok {
		return time.Time{}, false
	}
	loc := time.FixedZone(abbr, offset*60)
	return time.Date(year, month, day, hour, min, 0, 0, loc).UTC(), true
}
