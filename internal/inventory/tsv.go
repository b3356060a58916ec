package inventory

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/quartermaster-gg/quartermaster-backend/pkg/errors"
)

// tsvHeader is the exact column set produced by the scanner export. Any
// deviation means the file is not a scanner export and is rejected outright.
var tsvHeader = []string{
	"Stockpile Title", "Stockpile Name", "Structure Type", "Quantity",
	"Name", "Crated?", "Per Crate", "Total", "Description", "CodeName",
}

// Row is one decoded line of a scanner export.
type Row struct {
	StockRef      string
	StockName     string
	StructureType string
	Quantity      int64
	DisplayName   string
	Crated        bool
	PerCrate      int64
	Total         int64
	Description   string
	CodeName      string
}

// DecodeTSV parses a tab-separated scanner export. The header row must match
// the known export format column for column.
func DecodeTSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = len(tsvHeader)
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(errors.CodeInvalidFormat, err, "reading export header")
	}
	for i := range tsvHeader {
		if strings.TrimSpace(header[i]) != tsvHeader[i] {
			return nil, errors.New(errors.CodeInvalidFormat,
				fmt.Sprintf("unexpected header column %d: got %q, want %q", i, header[i], tsvHeader[i]))
		}
	}

	var rows []Row
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, errors.Wrap(errors.CodeInvalidFormat, err, fmt.Sprintf("reading export line %d", line))
		}

		row, err := decodeRow(record)
		if err != nil {
			return nil, errors.Wrap(errors.CodeInvalidFormat, err, fmt.Sprintf("export line %d", line))
		}
		rows = append(rows, row)
	}
}

func decodeRow(record []string) (Row, error) {
	quantity, err := strconv.ParseInt(record[3], 10, 64)
	if err != nil {
		return Row{}, fmt.Errorf("invalid quantity %q", record[3])
	}

	var crated bool
	switch record[5] {
	case "true":
		crated = true
	case "false":
		crated = false
	default:
		return Row{}, fmt.Errorf("invalid crated flag %q", record[5])
	}

	perCrate, err := parseOptionalInt(record[6])
	if err != nil {
		return Row{}, fmt.Errorf("invalid per-crate %q", record[6])
	}
	total, err := parseOptionalInt(record[7])
	if err != nil {
		return Row{}, fmt.Errorf("invalid total %q", record[7])
	}

	return Row{
		StockRef:      record[0],
		StockName:     record[1],
		StructureType: record[2],
		Quantity:      quantity,
		DisplayName:   record[4],
		Crated:        crated,
		PerCrate:      perCrate,
		Total:         total,
		Description:   record[8],
		CodeName:      record[9],
	}, nil
}

func parseOptionalInt(raw string) (int64, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	return strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
}

// ParseStockRef extracts the leading stockpile id from the export's title
// column, written as "<id>.<free text>" when the scanner user tags the
// stockpile.
func ParseStockRef(ref string) (int64, bool) {
	head, _, found := strings.Cut(ref, ".")
	if !found {
		head = ref
	}
	id, err := strconv.ParseInt(strings.TrimSpace(head), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
