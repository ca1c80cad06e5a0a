package table

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"golang.org/x/text/encoding"
)

const (
	ExportFileName = "analyzed_reviews.csv"
	ExportMIME     = "text/csv"
)

// ToFlatText writes the table as CSV in the given encoding. The first column
// has an empty header and holds the row position 0..n-1. The output depends
// only on the table contents.
func (t *Table) ToFlatText(encodingName string) ([]byte, error) {
	enc, err := LookupEncoding(encodingName)
	if err != nil {
		return nil, &SerializationError{Encoding: encodingName, Err: err}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, 0, len(t.columns)+1)
	header = append(header, "")
	header = append(header, t.columns...)
	if err := w.Write(header); err != nil {
		return nil, &SerializationError{Encoding: encodingName, Err: err}
	}

	line := make([]string, len(header))
	for i := 0; i < t.rows; i++ {
		line[0] = strconv.Itoa(i)
		for c, name := range t.columns {
			line[c+1] = ""
			if v := t.cells[name][i]; v != nil {
				line[c+1] = v.Format()
			}
		}
		if err := w.Write(line); err != nil {
			return nil, &SerializationError{Encoding: encodingName, Err: err}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, &SerializationError{Encoding: encodingName, Err: err}
	}

	out, err := encode(enc, buf.Bytes())
	if err != nil {
		return nil, &SerializationError{Encoding: encodingName, Err: err}
	}
	return out, nil
}

func encode(enc encoding.Encoding, utf8 []byte) ([]byte, error) {
	return enc.NewEncoder().Bytes(utf8)
}
