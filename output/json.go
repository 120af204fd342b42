package output

import (
	"bufio"
	"encoding/json"
	"io"
)

// JSONFormatter outputs records as JSON Lines.
//
// With a header row every data record becomes an object keyed by the
// header labels, in column order. Without one every record is an array.
type JSONFormatter struct {
	writer io.Writer
	header bool
}

// NewJSONFormatter creates a new JSON Lines formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// SetHeaderRow marks the first record as the header
func (j *JSONFormatter) SetHeaderRow(on bool) {
	j.header = on
}

// Format writes records as JSON Lines (one JSON value per line)
func (j *JSONFormatter) Format(records [][]string) error {
	w := bufio.NewWriter(j.writer)

	if !j.header || len(records) == 0 {
		encoder := json.NewEncoder(w)
		for _, record := range records {
			if err := encoder.Encode(record); err != nil {
				return err
			}
		}
		return w.Flush()
	}

	keys := make([][]byte, len(records[0]))
	for i, label := range records[0] {
		k, err := json.Marshal(label)
		if err != nil {
			return err
		}
		keys[i] = k
	}

	for _, record := range records[1:] {
		if err := writeObject(w, keys, record); err != nil {
			return err
		}
	}
	return w.Flush()
}

// writeObject writes one object with keys in column order. encoding/json
// sorts map keys, so the object is assembled by hand.
func writeObject(w *bufio.Writer, keys [][]byte, record []string) error {
	_ = w.WriteByte('{')
	for i, key := range keys {
		if i > 0 {
			_ = w.WriteByte(',')
		}
		_, _ = w.Write(key)
		_ = w.WriteByte(':')

		var value string
		if i < len(record) {
			value = record[i]
		}
		v, err := json.Marshal(value)
		if err != nil {
			return err
		}
		_, _ = w.Write(v)
	}
	_, err := w.WriteString("}\n")
	return err
}
