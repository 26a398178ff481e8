package timesheet

import "strings"

// Parse turns delimited text into a Document.
//
// Lines are split on "\n" and blank lines are dropped. With p.NameLine the
// last remaining line is the name; otherwise the name is p.FixedName. Every
// other line is split on "," into date, time range and hours. Commas cannot
// be escaped. Short lines leave fields empty for Validate to report, and
// tokens past the third are ignored.
func Parse(text string, p Policy) Document {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	doc := Document{Name: strings.TrimSpace(p.FixedName)}
	if p.NameLine {
		doc.Name = ""
		if len(lines) > 0 {
			doc.Name = strings.TrimSpace(lines[len(lines)-1])
			lines = lines[:len(lines)-1]
		}
	}

	doc.Entries = make([]Entry, 0, len(lines))
	for _, line := range lines {
		doc.Entries = append(doc.Entries, parseLine(line))
	}
	return doc
}

func parseLine(line string) Entry {
	tokens := strings.Split(line, ",")
	for i := range tokens {
		tokens[i] = strings.TrimSpace(tokens[i])
	}
	var e Entry
	if len(tokens) > 0 {
		e.Date = tokens[0]
	}
	if len(tokens) > 1 {
		e.TimeRange = tokens[1]
	}
	if len(tokens) > 2 {
		e.Hours = tokens[2]
	}
	return e
}
