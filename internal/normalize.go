package internal

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// rowFieldCount is the fixed shape of a normalized flight log row.
const rowFieldCount = 5

var errTypoNotIdempotent = errors.New("typo replacement re-introduces a known typo")

// Typo is one literal wrong -> right replacement.
type Typo struct {
	Wrong string `toml:"wrong"`
	Right string `toml:"right"`
}

// builtinTypos are the transcription errors known to occur in the flight log.
// None of the replacements contains any of the wrong strings.
var builtinTypos = []Typo{ //nolint: gochecknoglobals // read-only table
	{Wrong: "Michigen", Right: "Michigan"},
	{Wrong: "Orlendo", Right: "Orlando"},
	{Wrong: "Conneticut", Right: "Connecticut"},
	{Wrong: "Calfornia", Right: "California"},
	{Wrong: "Teterbro", Right: "Teterboro"},
}

var (
	// reGluedCode matches "City(XXX)"; a comma before the parenthesis is left to the next step.
	reGluedCode  = regexp.MustCompile(`([^\s,])\(([A-Za-z]{3})\)`)
	reWhitespace = regexp.MustCompile(`\s{2,}`)
)

// Row is one normalized line: exactly five trimmed fields.
// Merged is set when the line had more than five fields and the middle ones were joined.
type Row struct {
	Fields [rowFieldCount]string
	Merged bool
}

func (r Row) Date() string   { return r.Fields[0] }
func (r Row) Origin() string { return r.Fields[1] }

// Destination returns the destination text. For merged rows the joined middle part belongs to it.
func (r Row) Destination() string {
	if r.Merged {
		return r.Fields[2] + " " + r.Fields[3]
	}

	return r.Fields[2]
}

// Distance returns the distance field. For merged rows this is the last field.
func (r Row) Distance() string {
	if r.Merged {
		return r.Fields[4]
	}

	return r.Fields[3]
}

func (r Row) Extra() string {
	if r.Merged {
		return ""
	}

	return r.Fields[4]
}

// isHeaderLine reports whether a raw line is the column header of the log.
func isHeaderLine(line string) bool {
	first, _, _ := strings.Cut(line, ",")
	return strings.EqualFold(strings.TrimSpace(first), "date")
}

// NormalizeStats counts what happened to the raw lines.
type NormalizeStats struct {
	Lines     int // non-empty lines read
	Header    int // header rows skipped
	Merged    int // rows with embedded commas in the destination
	Malformed int // lines that could not be reshaped to five fields
}

// Normalizer repairs and re-delimits raw flight log lines.
type Normalizer struct {
	typos []Typo
}

// NewNormalizer returns a normalizer applying the built-in typos followed by extra ones.
func NewNormalizer(extra []Typo) *Normalizer {
	typos := make([]Typo, 0, len(builtinTypos)+len(extra))
	typos = append(typos, builtinTypos...)
	typos = append(typos, extra...)

	return &Normalizer{typos: typos}
}

// ValidateTypos checks that no replacement can form a wrong string, on its own or together with
// the text around it, which keeps FixTypos idempotent.
func ValidateTypos(typos []Typo) error {
	all := make([]Typo, 0, len(builtinTypos)+len(typos))
	all = append(all, builtinTypos...)
	all = append(all, typos...)

	for _, fix := range all {
		if fix.Wrong == "" {
			return fmt.Errorf("ValidateTypos: %w: empty wrong string", errTypoNotIdempotent)
		}
	}

	for _, fix := range all {
		for _, other := range all {
			if canForm(fix.Right, other.Wrong) {
				return fmt.Errorf("ValidateTypos: %w: %q can form %q",
					errTypoNotIdempotent, fix.Right, other.Wrong)
			}
		}
	}

	return nil
}

// canForm reports whether wrong can appear in a line at a position touching an inserted right.
// An empty right joins its neighbours and is always rejected.
func canForm(right, wrong string) bool {
	if strings.Contains(right, wrong) || strings.Contains(wrong, right) {
		return true
	}

	for k := 1; k < len(right) && k < len(wrong); k++ {
		if strings.HasSuffix(right, wrong[:k]) || strings.HasPrefix(right, wrong[len(wrong)-k:]) {
			return true
		}
	}

	return false
}

// FixTypos applies the literal replacements in order.
func (n *Normalizer) FixTypos(line string) string {
	for _, fix := range n.typos {
		line = strings.ReplaceAll(line, fix.Wrong, fix.Right)
	}

	return line
}

// NormalizeLine reshapes one raw line into a row. It returns false if the line cannot be
// brought into five fields.
func (n *Normalizer) NormalizeLine(line string) (Row, bool) {
	line = strings.TrimSpace(line)
	line = n.FixTypos(line)
	line = reGluedCode.ReplaceAllString(line, "${1} (${2})")
	line = strings.ReplaceAll(line, ",(", " (")
	line = reWhitespace.ReplaceAllString(line, " ")

	fields := strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	var row Row

	switch {
	case len(fields) == rowFieldCount:
		copy(row.Fields[:], fields)
	case len(fields) > rowFieldCount:
		last := len(fields) - 1
		row.Fields = [rowFieldCount]string{
			fields[0],
			fields[1],
			fields[2],
			strings.Join(fields[3:last], " "),
			fields[last],
		}
		row.Merged = true
	default:
		return Row{}, false
	}

	return row, true
}

// NormalizeAll normalizes every line of r. Blank lines and a leading header are skipped;
// malformed lines are dropped and counted.
func (n *Normalizer) NormalizeAll(r io.Reader) ([]Row, NormalizeStats, error) {
	var (
		rows  []Row
		stats NormalizeStats
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}

		stats.Lines++

		if stats.Lines == 1 && isHeaderLine(text) {
			stats.Header++
			continue
		}

		row, ok := n.NormalizeLine(text)
		if !ok {
			stats.Malformed++
			continue
		}

		if row.Merged {
			stats.Merged++
		}

		rows = append(rows, row)
	}

	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("NormalizeAll: failed to read lines: %w", err)
	}

	return rows, stats, nil
}

// WriteCleaned writes the rows as a well-formed CSV with a header.
func WriteCleaned(w io.Writer, rows []Row) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"date", "from", "to", "distance_miles", "extra"}); err != nil {
		return fmt.Errorf("WriteCleaned: failed to write header: %w", err)
	}

	for _, row := range rows {
		record := []string{row.Date(), row.Origin(), row.Destination(), row.Distance(), row.Extra()}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("WriteCleaned: failed to write row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("WriteCleaned: %w", err)
	}

	return nil
}
