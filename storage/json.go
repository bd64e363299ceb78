package storage

import (
	"encoding/json"
	"fmt"
	"io"
)

// A JSONStore writes an encoded database as JSON
type JSONStore struct{}

// Write performs the database transformation to JSON
func (s *JSONStore) Write(dst io.Writer, db *EncodedDatabase) error {
	b, err := json.MarshalIndent(db, "", "    ")
	if err != nil {
		return err
	}
	_, err = dst.Write(b)
	return err
}

// Read performs the database transformation from JSON. Unknown fields and
// trailing data are rejected.
func (s *JSONStore) Read(src io.Reader) (*EncodedDatabase, error) {
	dec := json.NewDecoder(src)
	dec.DisallowUnknownFields()
	d := &EncodedDatabase{}
	if err := dec.Decode(d); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("unexpected data after document")
	}
	return d, nil
}
