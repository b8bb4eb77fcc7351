package main

import (
	"os"

	"github.com/gostonefire/arenahash"
)

// loadTable reads path in full and opens it as an existing table. The
// returned buf must be passed to saveTable after any mutating command, since
// Table writes through the in-memory slice only.
func loadTable(path string) (*arenahash.Table, []byte, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	cfg := &arenahash.Config{}
	if observer != nil {
		cfg.Observer = observer
	}
	tbl, err := arenahash.Open(buf, cfg)
	if err != nil {
		return nil, nil, err
	}
	return tbl, buf, nil
}

// saveTable writes buf back over path in full. Table never changes buf's
// length, so this is always an in-place-sized rewrite.
func saveTable(path string, buf []byte) error {
	return os.WriteFile(path, buf, 0o644)
}
