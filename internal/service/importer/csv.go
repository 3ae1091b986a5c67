package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	// Excel saves CSV with a BOM.
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = trimBOM(rows[0][0])
	}

	return rows, nil
}

func trimBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}
