package dbbadger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"
)

// dirPerm keeps the store directories owner-only: the records hold recovery
// phrases and signing keys in plaintext and badger writes its files 0644.
const dirPerm = 0700

// DbManager holds the badgerhold store backing every repository.
type DbManager struct {
	Store *badgerhold.Store
}

// NewDbManager opens (or creates if not exists) the badger store on disk. It
// expects a base data dir and an optional logger.
func NewDbManager(baseDbDir string, logger badger.Logger) (*DbManager, error) {
	if err := restrictDir(baseDbDir); err != nil {
		return nil, err
	}

	store, err := createDb(baseDbDir+"/wallets", logger)
	if err != nil {
		return nil, fmt.Errorf("opening wallets db: %w", err)
	}

	return &DbManager{Store: store}, nil
}

// Close releases the underlying badger store.
func (d *DbManager) Close() error {
	return d.Store.Close()
}

// JSONEncode is a custom JSON based encoder for badger
func JSONEncode(value interface{}) ([]byte, error) {
	var buff bytes.Buffer

	en := json.NewEncoder(&buff)

	err := en.Encode(value)
	if err != nil {
		return nil, err
	}

	return buff.Bytes(), nil
}

// JSONDecode is a custom JSON based decoder for badger
func JSONDecode(data []byte, value interface{}) error {
	var buff bytes.Buffer
	de := json.NewDecoder(&buff)

	_, err := buff.Write(data)
	if err != nil {
		return err
	}

	return de.Decode(value)
}

func createDb(dbDir string, logger badger.Logger) (db *badgerhold.Store, err error) {
	if err = restrictDir(dbDir); err != nil {
		return
	}

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	db, err = badgerhold.Open(badgerhold.Options{
		Encoder:          JSONEncode,
		Decoder:          JSONDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})

	return
}

// restrictDir creates the directory if needed and tightens its mode even when
// a previous run left it wider.
func restrictDir(dir string) error {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return err
	}
	return os.Chmod(dir, dirPerm)
}
