package statement

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

const utf8BOM = "\ufeff"

// table is a statement read into memory: a cleaned header and the data
// records, each exactly as wide as the header.
type table struct {
	header  []string
	records [][]string
	dropped int
}

// readTable reads every record from r. Records wider than the header are
// dropped and counted; narrower ones are padded with blank cells.
func readTable(r io.Reader) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errEmptyStatement
	}
	if err != nil {
		return nil, fmt.Errorf("error reading header: %w", err)
	}
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		header[i] = strings.TrimSpace(h)
	}

	t := &table{header: header}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record: %w", err)
		}
		switch {
		case len(record) > len(header):
			t.dropped++
			continue
		case len(record) < len(header):
			padded := make([]string, len(header))
			copy(padded, record)
			record = padded
		}
		t.records = append(t.records, record)
	}
	return t, nil
}

// missingColumns lists the required columns absent from the header.
func (t *table) missingColumns(required []string) []string {
	present := make(map[string]struct{}, len(t.header))
	for _, h := range t.header {
		present[h] = struct{}{}
	}
	var missing []string
	for _, col := range required {
		if _, ok := present[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}

// recordReader replays a table through gocsv's CSVReader interface.
type recordReader struct {
	rows [][]string
	pos  int
}

func (t *table) reader() *recordReader {
	rows := make([][]string, 0, len(t.records)+1)
	rows = append(rows, t.header)
	rows = append(rows, t.records...)
	return &recordReader{rows: rows}
}

func (r *recordReader) Read() ([]string, error) {
	if r.pos >= len(r.rows) {
		return nil, io.EOF
	}
	row := r.rows[r.pos]
	r.pos++
	return row, nil
}

func (r *recordReader) ReadAll() ([][]string, error) {
	rest := r.rows[r.pos:]
	r.pos = len(r.rows)
	return rest, nil
}
