package tracklist

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Label separators accepted between the timestamp and the title. The dash
// variants cover what people paste out of YouTube descriptions.
const separators = "-–—|:"

// ParseFile reads a UTF-8 tracklist file and returns its validated entries.
func ParseFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Reason: "cannot open tracklist: " + err.Error()}
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a tracklist line by line. Blank lines and lines starting with
// '#' are skipped; every other line must be <time><separator><label>. The
// returned entries are in file order, which is also required to be strictly
// ascending offset order.
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		offset, label, reason := splitLine(line)
		if reason != "" {
			return nil, &ParseError{Line: lineNo, Text: line, Reason: reason}
		}
		entries = append(entries, Entry{Offset: offset, Label: label, Line: lineNo})
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Reason: "failed to read tracklist: " + err.Error()}
	}

	if len(entries) == 0 {
		return nil, &ParseError{Reason: "no valid timestamp lines"}
	}

	for i := 1; i < len(entries); i++ {
		prev, cur := entries[i-1], entries[i]
		if cur.Offset <= prev.Offset {
			return nil, &OrderError{
				FirstLine:    prev.Line,
				SecondLine:   cur.Line,
				FirstOffset:  prev.Offset,
				SecondOffset: cur.Offset,
			}
		}
	}

	return entries, nil
}

// splitLine tokenizes one entry line in two phases: first the maximal leading
// run of colon-separated digit groups is consumed as the time token, then a
// single separator character, then the rest verbatim as the label. A colon is
// only a time-field separator while digits follow it; the colon in front of
// non-digit content belongs to the label separator. This keeps labels that
// start with a digit-colon sequence unambiguous.
func splitLine(line string) (time.Duration, string, string) {
	var groups []string
	i := 0
	for {
		start := i
		for i < len(line) && isDigit(line[i]) {
			i++
		}
		if i == start {
			return 0, "", "line must start with a timestamp"
		}
		groups = append(groups, line[start:i])
		if i+1 < len(line) && line[i] == ':' && isDigit(line[i+1]) {
			i++
			continue
		}
		break
	}

	offset, reason := offsetFromGroups(groups)
	if reason != "" {
		return 0, "", reason
	}

	rest := strings.TrimLeft(line[i:], " \t")
	if rest == "" {
		return 0, "", "missing separator and label after timestamp"
	}
	sep, size := utf8.DecodeRuneInString(rest)
	if !strings.ContainsRune(separators, sep) {
		return 0, "", "missing separator after timestamp"
	}
	label := strings.TrimSpace(rest[size:])

	return offset, label, ""
}

// offsetFromGroups validates the digit groups of a time token and converts
// them to an absolute offset. Two groups are minutes:seconds, three are
// hours:minutes:seconds.
func offsetFromGroups(groups []string) (time.Duration, string) {
	switch len(groups) {
	case 1:
		return 0, "timestamp needs at least minutes and seconds"
	case 2:
		if len(groups[0]) > 2 {
			return 0, "minutes must be one or two digits"
		}
		minutes, reason := timeField(groups[0], "minutes")
		if reason != "" {
			return 0, reason
		}
		seconds, reason := twoDigitField(groups[1], "seconds")
		if reason != "" {
			return 0, reason
		}
		return time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second, ""
	case 3:
		hours, err := strconv.Atoi(groups[0])
		if err != nil {
			return 0, "invalid hours field"
		}
		minutes, reason := twoDigitField(groups[1], "minutes")
		if reason != "" {
			return 0, reason
		}
		seconds, reason := twoDigitField(groups[2], "seconds")
		if reason != "" {
			return 0, reason
		}
		return time.Duration(hours)*time.Hour +
			time.Duration(minutes)*time.Minute +
			time.Duration(seconds)*time.Second, ""
	default:
		return 0, "timestamp has more than three numeric fields"
	}
}

func twoDigitField(s, name string) (int, string) {
	if len(s) != 2 {
		return 0, name + " must be exactly two digits"
	}
	return timeField(s, name)
}

func timeField(s, name string) (int, string) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, "invalid " + name + " field"
	}
	if v > 59 {
		return 0, name + " must be between 00 and 59"
	}
	return v, ""
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
