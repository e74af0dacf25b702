package persistence

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"liyu1981.xyz/machine-stock/pkg/models"
)

// Header is the fixed first row of every saved file.
var Header = []string{"ID", "Machine", "Duration", "Performance", "State"}

const columnCount = 5

// Serialize writes the header and one row per record, in order. A name
// holding CRLF is refused: it would read back as LF.
func Serialize(w io.Writer, records []models.MachineRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Header); err != nil {
		return &PersistenceError{Op: "serialize", Err: err}
	}

	for i, m := range records {
		if strings.Contains(m.Name, "\r\n") {
			// the header is line 1
			return &PersistenceError{Op: "serialize", Line: i + 2, Err: ErrCRLFName}
		}
		row := []string{
			strconv.Itoa(m.ID),
			m.Name,
			strconv.Itoa(m.DurationHours),
			FormatPerformance(m.Performance),
			string(m.State),
		}
		if err := writer.Write(row); err != nil {
			return &PersistenceError{Op: "serialize", Err: err}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return &PersistenceError{Op: "serialize", Err: err}
	}
	return nil
}

func Marshal(records []models.MachineRecord) ([]byte, error) {
	var buf bytes.Buffer
	if err := Serialize(&buf, records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FormatPerformance writes the shortest text that parses back to f. Whole
// numbers keep a ".0" suffix so files read the same as older saves.
func FormatPerformance(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if strings.ContainsAny(s, ".eEnN") {
		return s
	}
	return s + ".0"
}

// Deserialize reads a saved file. The first row is skipped whatever it holds.
// A malformed row fails the whole read; no partial result is returned. The
// State column is ignored and recomputed from Performance.
func Deserialize(r io.Reader) ([]models.MachineRecord, error) {
	reader := csv.NewReader(r)
	// field counts are checked per row below so the error names the line
	reader.FieldsPerRecord = -1

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return []models.MachineRecord{}, nil
		}
		return nil, &PersistenceError{Op: "deserialize", Line: parseLine(err), Err: err}
	}

	records := []models.MachineRecord{}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &PersistenceError{Op: "deserialize", Line: parseLine(err), Err: err}
		}

		line, _ := reader.FieldPos(0)
		m, err := parseRow(row)
		if err != nil {
			return nil, &PersistenceError{Op: "deserialize", Line: line, Err: err}
		}
		records = append(records, m)
	}
	return records, nil
}

func Unmarshal(data []byte) ([]models.MachineRecord, error) {
	return Deserialize(bytes.NewReader(data))
}

func parseRow(row []string) (models.MachineRecord, error) {
	if len(row) != columnCount {
		return models.MachineRecord{}, fmt.Errorf("expected %d fields, got %d", columnCount, len(row))
	}

	id, err := strconv.Atoi(strings.TrimSpace(row[0]))
	if err != nil {
		return models.MachineRecord{}, fmt.Errorf("invalid ID %q", row[0])
	}
	duration, err := strconv.Atoi(strings.TrimSpace(row[2]))
	if err != nil {
		return models.MachineRecord{}, fmt.Errorf("invalid Duration %q", row[2])
	}
	performance, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
	if err != nil {
		return models.MachineRecord{}, fmt.Errorf("invalid Performance %q", row[3])
	}

	return models.NewMachineRecord(id, row[1], duration, performance), nil
}

func parseLine(err error) int {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return perr.Line
	}
	return 0
}
