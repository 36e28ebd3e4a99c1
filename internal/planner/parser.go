package planner

import (
	"regexp"
	"strings"
)

// fallbackMaxLines caps how many raw lines are kept when the model
// output contains no recognizable day structure.
const fallbackMaxLines = 10

var (
	dayPattern  = regexp.MustCompile(`(?i)^Day\s*(\d+)`)
	stepPattern = regexp.MustCompile(`^\s*\d+[.)]\s+(.*)`)
)

type lineKind int

const (
	lineOther lineKind = iota
	lineDay
	lineStep
)

// taggedLine is the output of the per-line classifier: the kind of
// marker the line carries plus the captured payload (day label or
// step text).
type taggedLine struct {
	kind  lineKind
	label string
	text  string
}

// classify recognizes a single trimmed line as a day marker, a step
// marker, or plain text. Recognition is separate from accumulation so
// both halves can be tested on their own.
func classify(line string) taggedLine {
	if m := dayPattern.FindStringSubmatch(line); m != nil {
		return taggedLine{kind: lineDay, label: "Day " + m[1]}
	}
	if m := stepPattern.FindStringSubmatch(line); m != nil {
		return taggedLine{kind: lineStep, text: m[1]}
	}
	return taggedLine{kind: lineOther, text: line}
}

// Parse converts raw model output into an ordered sequence of
// DaySteps. Day labels keep the order of first appearance; a repeated
// label resets that day's steps. Step lines that appear before any day
// marker are dropped. When no day marker is found at all, the first
// ten non-blank lines become a single synthetic "Day 1", verbatim.
//
// Parse is pure: no I/O, same input always yields the same output.
func Parse(raw string) []DaySteps {
	var (
		days    []DaySteps
		index   = make(map[string]int)
		current = -1
	)

	for _, line := range strings.Split(raw, "\n") {
		tl := classify(strings.TrimSpace(line))
		switch tl.kind {
		case lineDay:
			if i, ok := index[tl.label]; ok {
				// Duplicate label: keep its position, start over.
				days[i].Tasks = []string{}
				current = i
				continue
			}
			days = append(days, DaySteps{Day: tl.label, Tasks: []string{}})
			index[tl.label] = len(days) - 1
			current = len(days) - 1
		case lineStep:
			if current >= 0 {
				days[current].Tasks = append(days[current].Tasks, tl.text)
			}
		}
	}

	if len(days) == 0 {
		return []DaySteps{{Day: "Day 1", Tasks: fallbackLines(raw)}}
	}
	return days
}

// fallbackLines collects the first non-blank trimmed lines of raw
// text, up to fallbackMaxLines, without stripping step markers.
func fallbackLines(raw string) []string {
	lines := []string{}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == fallbackMaxLines {
			break
		}
	}
	return lines
}
