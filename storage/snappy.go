package storage

import (
	"io"

	"github.com/golang/snappy"
)

// A SnappyStore compresses the output of another store with the snappy
// framing format
type SnappyStore struct {
	Inner Store
}

// Write serializes the database with the inner store and compresses the result
func (s *SnappyStore) Write(dst io.Writer, db *EncodedDatabase) error {
	sw := snappy.NewBufferedWriter(dst)
	if err := s.Inner.Write(sw, db); err != nil {
		sw.Close()
		return err
	}
	return sw.Close()
}

// Read decompresses the source and deserializes it with the inner store
func (s *SnappyStore) Read(src io.Reader) (*EncodedDatabase, error) {
	return s.Inner.Read(snappy.NewReader(src))
}
