package weights

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadTable reads and validates the weight table from a YAML file.
// KnownFields(true) makes typos and unused fields fail immediately.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read weight table: %w", err)
	}

	var table Table
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&table); err != nil {
		return nil, fmt.Errorf("decode weight table: %w", err)
	}

	if err := ValidateTable(&table); err != nil {
		return nil, fmt.Errorf("invalid weight table %s: %w", path, err)
	}

	return &table, nil
}

// LoadUniverse reads and validates the asset universe from a YAML file.
func LoadUniverse(path string, table *Table) (*Universe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read universe: %w", err)
	}

	var universe Universe
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&universe); err != nil {
		return nil, fmt.Errorf("decode universe: %w", err)
	}

	if err := ValidateUniverse(&universe, table); err != nil {
		return nil, fmt.Errorf("invalid universe %s: %w", path, err)
	}

	universe.index()
	return &universe, nil
}

// Hash generates a SHA256 hash of the table for audit snapshots.
// Struct marshalling keeps the field order deterministic.
func Hash(table *Table) (string, error) {
	jsonBytes, err := json.Marshal(table)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(jsonBytes)
	return hex.EncodeToString(sum[:]), nil
}
