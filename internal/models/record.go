package models

// Record is one unit of input text. A record loaded from an empty CSV cell,
// or built from a nil pointer, is not Present.
type Record struct {
	Text    string
	Present bool
}

func NewRecord(text string) Record {
	return Record{Text: text, Present: true}
}

func NullRecord() Record {
	return Record{}
}

// Records builds records from optional strings, nil becomes a null record.
func Records(texts ...*string) []Record {
	out := make([]Record, len(texts))
	for i, t := range texts {
		if t != nil {
			out[i] = NewRecord(*t)
		}
	}
	return out
}

// String returns the text used when a scorer has to coerce the record.
func (r Record) String() string {
	if !r.Present {
		return ""
	}
	return r.Text
}
