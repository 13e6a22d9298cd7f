// Package interchange implements the delimited-text export/import
// format. The format is CSV-shaped but deliberately minimal: text
// fields are always quoted on export, and import splits rows with a
// quote-toggle state machine so commas inside quotes survive. Embedded
// quote characters inside a field are not representable; that matches
// the format this codec must stay compatible with.
package interchange

import (
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bitelog/bitelog/internal/model"
)

// Header is the fixed export header. Import does not rely on this
// order; it locates columns by name.
const Header = "Date,Time,Food Name,Calories,Volume,Notes,ISO Timestamp"

// ErrMalformed reports a file that cannot be processed at all
// (bad encoding or no recognizable header). Individual bad rows are
// skipped, not reported through this error.
var ErrMalformed = errors.New("interchange: malformed input")

// Row is one parsed import row. ID and DateAdded are assigned by the
// caller at write time.
type Row struct {
	FoodName  string
	Calories  int
	Volume    string
	Notes     string
	Timestamp time.Time // zero when the ISO column was absent or unparseable
}

// Export renders entries in the order given (callers pass the log's
// current timestamp-descending order). Date and Time are human-readable
// renderings in loc; the ISO Timestamp column is the authoritative
// value used on reimport.
func Export(entries []*model.LogEntry, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	var b strings.Builder
	b.WriteString(Header)
	b.WriteByte('\n')
	for _, e := range entries {
		local := e.Timestamp.In(loc)
		b.WriteString(local.Format("2006-01-02"))
		b.WriteByte(',')
		b.WriteString(local.Format("15:04"))
		b.WriteByte(',')
		writeQuoted(&b, e.FoodName)
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(e.Calories))
		b.WriteByte(',')
		writeQuoted(&b, e.Volume)
		b.WriteByte(',')
		writeQuoted(&b, e.Notes)
		b.WriteByte(',')
		b.WriteString(e.Timestamp.Format(time.RFC3339))
		b.WriteByte('\n')
	}
	return b.String()
}

// Filename returns the suggested export filename for a date key.
func Filename(dateKey string) string {
	return "food-log-" + dateKey + ".csv"
}

// Parse reads interchange text and returns the accepted rows. Line 1
// must be a header naming at least the food-name and calories columns;
// columns are located by substring match so reordered input is fine.
// Rows missing a food name or a positive integer calorie value are
// skipped silently. Header-only input yields zero rows and no error.
func Parse(text string) ([]Row, error) {
	if !utf8.ValidString(text) {
		return nil, ErrMalformed
	}
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return nil, ErrMalformed
	}

	cols := resolveColumns(splitQuoted(lines[0]))
	if cols.name < 0 || cols.calories < 0 {
		return nil, ErrMalformed
	}

	var rows []Row
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := splitQuoted(line)

		name := strings.TrimSpace(field(fields, cols.name))
		cal, err := strconv.Atoi(strings.TrimSpace(field(fields, cols.calories)))
		if name == "" || err != nil || cal <= 0 {
			continue
		}

		r := Row{
			FoodName: name,
			Calories: cal,
			Volume:   strings.TrimSpace(field(fields, cols.volume)),
			Notes:    strings.TrimSpace(field(fields, cols.notes)),
		}
		if iso := strings.TrimSpace(field(fields, cols.timestamp)); iso != "" {
			if ts, err := time.Parse(time.RFC3339, iso); err == nil {
				r.Timestamp = ts
			}
		}
		rows = append(rows, r)
	}
	return rows, nil
}

type columns struct {
	name, calories, volume, notes, timestamp int
}

func resolveColumns(header []string) columns {
	c := columns{name: -1, calories: -1, volume: -1, notes: -1, timestamp: -1}
	for i, h := range header {
		switch {
		case strings.Contains(h, "Food Name"):
			c.name = i
		case strings.Contains(h, "ISO Timestamp"):
			c.timestamp = i
		case strings.Contains(h, "Calories"):
			c.calories = i
		case strings.Contains(h, "Volume"):
			c.volume = i
		case strings.Contains(h, "Notes"):
			c.notes = i
		}
	}
	return c
}

// splitQuoted splits a line on commas with quote-toggle tracking:
// each quote character flips the in-quote flag, commas inside an
// active quote region do not split, and boundary quotes are stripped
// from the resulting fields.
func splitQuoted(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuote := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
		case r == ',' && !inQuote:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	fields = append(fields, cur.String())
	return fields
}

func field(fields []string, i int) string {
	if i < 0 || i >= len(fields) {
		return ""
	}
	return fields[i]
}

func writeQuoted(b *strings.Builder, s string) {
	b.WriteByte('"')
	b.WriteString(s)
	b.WriteByte('"')
}
