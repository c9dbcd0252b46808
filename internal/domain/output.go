package domain

import "fmt"

// DefaultTerminator is emitted after a record whose terminator was not set
const DefaultTerminator = "\n"

// OutputRecord is one pending print
type OutputRecord struct {
	Value any
	End   *string
}

// NewOutputRecord builds a record with an explicit terminator
func NewOutputRecord(value any, end string) OutputRecord {
	return OutputRecord{Value: value, End: &end}
}

// Terminator returns the record's terminator, defaulting to a newline
func (r OutputRecord) Terminator() string {
	if r.End == nil {
		return DefaultTerminator
	}
	return *r.End
}

// Text renders the record as it will appear on the console
func (r OutputRecord) Text() string {
	if r.Value == nil {
		return r.Terminator()
	}
	return fmt.Sprint(r.Value) + r.Terminator()
}
