package osm

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/juju/fslock"
	"github.com/pkg/errors"
	"github.com/ulmenhaus/tabula/storage"
	"github.com/ulmenhaus/tabula/types"
)

const (
	JSONSuffix   = ".json"
	SnappySuffix = ".json.sz"
)

// StoreForPath picks the storage driver for a file based on its suffix
func StoreForPath(path string) (storage.Store, error) {
	switch {
	case strings.HasSuffix(path, SnappySuffix):
		return &storage.SnappyStore{Inner: &storage.JSONStore{}}, nil
	case strings.HasSuffix(path, JSONSuffix):
		return &storage.JSONStore{}, nil
	}
	return nil, errors.Errorf("unknown file type: %s", path)
}

// An ObjectStoreMapper is responsible for converting between the
// internal representation of a database and the encoded version
// used by storage drivers
type ObjectStoreMapper struct {
	store storage.Store // the storage.Store to which databases are written
	path  string
}

// NewObjectStoreMapper returns a new ObjectStoreMapper for the file at path
func NewObjectStoreMapper(path string) (*ObjectStoreMapper, error) {
	store, err := StoreForPath(path)
	if err != nil {
		return nil, err
	}
	return &ObjectStoreMapper{
		store: store,
		path:  path,
	}, nil
}

// NewStreamMapper returns a mapper for reading and writing snapshots
// through the given store without a backing file
func NewStreamMapper(store storage.Store) *ObjectStoreMapper {
	return &ObjectStoreMapper{store: store}
}

// Path returns the file backing the mapper
func (osm *ObjectStoreMapper) Path() string {
	return osm.path
}

// Load reads the database from the mapper's file
func (osm *ObjectStoreMapper) Load() (*types.Database, error) {
	f, err := os.Open(osm.path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", osm.path)
	}
	defer f.Close()
	return osm.LoadSnapshot(f)
}

// LoadSnapshot takes the given reader of a serialized database and returns a database object
func (osm *ObjectStoreMapper) LoadSnapshot(src io.Reader) (*types.Database, error) {
	raw, err := osm.store.Read(src)
	if err != nil {
		return nil, types.WrapError(types.KindDecode, err, "malformed document")
	}
	return Decode(raw)
}

// DumpSnapshot writes the serialized database to dst
func (osm *ObjectStoreMapper) DumpSnapshot(db *types.Database, dst io.Writer) error {
	return osm.store.Write(dst, Encode(db))
}

// GetSnapshot returns the serialized database
func (osm *ObjectStoreMapper) GetSnapshot(db *types.Database) ([]byte, error) {
	var snapshot bytes.Buffer
	err := osm.DumpSnapshot(db, &snapshot)
	if err != nil {
		return nil, err
	}
	return snapshot.Bytes(), nil
}

// Store writes the database to the mapper's file. The file is replaced
// whole and other processes exporting to the same path are locked out
// for the duration of the write.
func (osm *ObjectStoreMapper) Store(db *types.Database) error {
	lck := fslock.New(osm.path + ".lock")
	if err := lck.TryLock(); err != nil {
		return errors.Wrapf(err, "failed to lock %s", osm.path)
	}
	defer lck.Unlock()

	tmp := osm.path + ".tmp"
	dst, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", tmp)
	}
	if err := osm.DumpSnapshot(db, dst); err != nil {
		dst.Close()
		os.Remove(tmp)
		return errors.Wrapf(err, "failed to write %s", tmp)
	}
	if err := dst.Close(); err != nil {
		os.Remove(tmp)
		return errors.Wrapf(err, "failed to close %s", tmp)
	}
	return errors.Wrapf(os.Rename(tmp, osm.path), "failed to replace %s", osm.path)
}
