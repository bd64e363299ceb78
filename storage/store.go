package storage

import "io"

// An EncodedTable represents a table when a database is being serialized for storage.
// Schema holds [type, name] pairs with the identifier pair first and Rows holds
// formatted values with the identifier first.
type EncodedTable struct {
	Name   string     `json:"name"`
	Schema [][]string `json:"schema"`
	Rows   [][]string `json:"rows"`
}

// An EncodedDatabase represents a database being serialized for storage
type EncodedDatabase struct {
	Name   string         `json:"name"`
	Tables []EncodedTable `json:"tables"`
}

// A Store is an object that can serialize an encoded database to a specific format
type Store interface {
	// Write performs the database serialization
	Write(dst io.Writer, db *EncodedDatabase) error
	// Read performs the database deserialization
	Read(src io.Reader) (*EncodedDatabase, error)
}
