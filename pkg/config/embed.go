package config

import (
	_ "embed"
	"errors"
)

// defaultsTOML is the app config every layer starts from
//
//go:embed embedded/defaults.toml
var defaultsTOML []byte

// bytesProvider feeds an in-memory document to koanf
type bytesProvider []byte

func (b bytesProvider) ReadBytes() ([]byte, error) { return b, nil }

func (b bytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("bytesProvider needs a parser")
}
