package container

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/roach88/orso/internal/diff"
	"github.com/roach88/orso/internal/doc"
	"github.com/roach88/orso/internal/errs"
)

// maxLineSize bounds a single line; long header lines (flow sequences of
// file names) can exceed bufio's default.
const maxLineSize = 16 << 20

// block is the raw text of one dataset: its header lines with the comment
// marker removed, and its numeric rows still as fields.
type block struct {
	firstLine int
	header    []string
	rows      []rawRow
}

type rawRow struct {
	line   int
	fields []string
}

// ReadFile opens path and reads every dataset in it.
func ReadFile(path string, f Format) ([]*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	datasets, err := Read(file, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return datasets, nil
}

// Read parses a container and returns its datasets in file order.
//
// The first line must be the magic line, otherwise the read fails with
// FORMAT_MISMATCH before anything else is looked at. Header block i > 1 is
// folded onto block 1 with diff.Apply, optionally cross-validated, and then
// resolved to f.Root. Each numeric row must have one value per declared
// column (SHAPE_MISMATCH otherwise).
func Read(r io.Reader, f Format) ([]*Dataset, error) {
	if err := f.check(); err != nil {
		return nil, err
	}

	blocks, version, err := scan(r)
	if err != nil {
		return nil, err
	}
	slog.Debug("container scanned", "version", version, "datasets", len(blocks))

	datasets := make([]*Dataset, 0, len(blocks))
	var first *doc.Map
	for i, b := range blocks {
		where := fmt.Sprintf("dataset %d", i)

		m, err := decodeBlock(b)
		if err != nil {
			return nil, errs.Wrap(errs.CodeDecode, where, "invalid header", err)
		}
		if i == 0 {
			first = m
		} else {
			m = diff.Apply(first, m)
		}

		if f.Validator != nil {
			if err := f.Validator.Validate(m); err != nil {
				return nil, fmt.Errorf("%s: %w", where, err)
			}
		}

		rec, err := f.Registry.ResolveRecord(f.Root, m)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", where, err)
		}
		info, ok := rec.(Header)
		if !ok {
			return nil, fmt.Errorf("%s: %T does not declare columns", where, rec)
		}

		data, err := parseRows(b.rows, len(info.ColumnLabels()))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", where, err)
		}

		ds, err := NewDataset(info, data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", where, err)
		}
		slog.Debug("dataset decoded", "index", i, "rows", data.Rows(), "columns", data.Cols())
		datasets = append(datasets, ds)
	}
	return datasets, nil
}

// scan checks the magic line and splits the remaining lines into blocks.
//
// A block starts at the first header line after numeric rows, or at a
// "---" boundary once the current block has header text. Blank lines are
// ignored everywhere.
func scan(r io.Reader) ([]*block, string, error) {
	// Tolerate a UTF-8 byte order mark.
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	sc := bufio.NewScanner(decoded)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, "", err
		}
		return nil, "", errs.New(errs.CodeFormatMismatch, "line 1", "empty file")
	}
	version, ok := ParseMagicLine(sc.Text())
	if !ok {
		return nil, "", errs.Newf(errs.CodeFormatMismatch, "line 1", "not an ORSO text file: %q", truncate(sc.Text(), 80))
	}

	var (
		blocks []*block
		cur    *block
		lineNo = 1
	)
	start := func() {
		cur = &block{firstLine: lineNo}
		blocks = append(blocks, cur)
	}

	for sc.Scan() {
		lineNo++
		line := strings.TrimLeft(sc.Text(), " \t")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if strings.HasPrefix(line, "#") {
			text := stripMarker(line)
			// Only an unindented marker separates documents; indented
			// "---" lines belong to block scalars.
			boundary := strings.TrimRight(text, " \t") == boundaryLine
			if cur == nil || len(cur.rows) > 0 || (boundary && len(cur.header) > 0) {
				start()
			}
			if !boundary {
				cur.header = append(cur.header, text)
			}
			continue
		}

		if cur == nil {
			start()
		}
		cur.rows = append(cur.rows, rawRow{line: lineNo, fields: strings.Fields(line)})
	}
	if err := sc.Err(); err != nil {
		return nil, "", err
	}
	return blocks, version, nil
}

func stripMarker(line string) string {
	line = strings.TrimPrefix(line, "#")
	return strings.TrimPrefix(line, " ")
}

func decodeBlock(b *block) (*doc.Map, error) {
	v, err := doc.Decode(strings.Join(b.header, "\n"))
	if err != nil {
		return nil, err
	}
	if doc.IsNull(v) {
		return doc.NewMap(), nil
	}
	m, ok := v.(*doc.Map)
	if !ok {
		return nil, fmt.Errorf("header starting at line %d is a %s, not a mapping", b.firstLine, doc.KindName(v))
	}
	return m, nil
}

func parseRows(rows []rawRow, cols int) (*Matrix, error) {
	m := &Matrix{cols: cols, data: make([]float64, 0, len(rows)*cols)}
	values := make([]float64, cols)
	for _, row := range rows {
		where := fmt.Sprintf("line %d", row.line)
		if len(row.fields) != cols {
			return nil, errs.Newf(errs.CodeShapeMismatch, where, "row has %d values, header declares %d columns", len(row.fields), cols)
		}
		for j, field := range row.fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errs.Wrap(errs.CodeDecode, where, fmt.Sprintf("column %d is not a number", j), err)
			}
			values[j] = v
		}
		m.appendRow(values)
	}
	return m, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
