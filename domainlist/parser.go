package domainlist

import "strings"

// Format identifies the line syntax a candidate was extracted with.
type Format string

const (
	FormatNone    Format = ""
	FormatHosts   Format = "hosts"
	FormatAdblock Format = "adblock"
	FormatPlain   Format = "plain"
)

type lineFormat struct {
	format  Format
	match   func(line string) bool
	extract func(line string) (string, bool)
}

// lineFormats is checked in order; the first matching entry extracts the
// candidate. plain must stay last since it matches everything.
var lineFormats = []lineFormat{
	{
		format: FormatHosts,
		match:  func(line string) bool { return strings.HasPrefix(line, "0.0.0.0") },
		extract: func(line string) (string, bool) {
			fields := strings.Fields(line)
			if len(fields) < 2 {
				return "", false
			}
			return fields[1], true
		},
	},
	{
		format: FormatAdblock,
		match:  func(line string) bool { return strings.HasPrefix(line, "||") },
		extract: func(line string) (string, bool) {
			domain := strings.TrimPrefix(line, "||")
			if idx := strings.IndexByte(domain, '^'); idx >= 0 {
				domain = domain[:idx]
			}
			return domain, true
		},
	},
	{
		format: FormatPlain,
		match:  func(string) bool { return true },
		extract: func(line string) (string, bool) {
			return strings.Fields(line)[0], true
		},
	},
}

func isComment(line string) bool {
	switch line[0] {
	case '#', '!', '/':
		return true
	}
	return false
}

// ParseLine extracts the candidate domain of a raw list line. ok is false
// for blank lines, comments and hosts lines without a host column.
func ParseLine(line string) (candidate string, ok bool) {
	candidate, _, ok = parse(line)
	return candidate, ok
}

// DetectFormat reports which line format ParseLine would use, or FormatNone
// when the line carries no candidate.
func DetectFormat(line string) Format {
	_, format, _ := parse(line)
	return format
}

func parse(line string) (string, Format, bool) {
	line = strings.TrimSpace(line)
	if line == "" || isComment(line) {
		return "", FormatNone, false
	}

	for _, lf := range lineFormats {
		if !lf.match(line) {
			continue
		}
		candidate, ok := lf.extract(line)
		if !ok {
			return "", FormatNone, false
		}
		return candidate, lf.format, true
	}
	return "", FormatNone, false
}
