package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DecodeAgentMap reads a two-column extension→name mapping file. Rows
// whose extension is not numeric are discarded (this also skips a
// header row); duplicate extensions keep the last occurrence. Mapping
// keys are the numeric value rewritten without leading zeros, so a
// "0104" row and a "104" row collapse to the single key "104". Call
// log lookups use the record's extension as written, so only the
// unpadded form matches.
func DecodeAgentMap(r io.Reader) (map[string]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	m := make(map[string]string)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading agent mapping: %w", err)
		}
		if len(row) < 2 {
			continue
		}
		ext, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			continue
		}
		name := strings.TrimSpace(row[1])
		if name == "" {
			continue
		}
		m[strconv.Itoa(ext)] = name
	}
	return m, nil
}
