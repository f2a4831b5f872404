package db

import (
	"errors"
	"strconv"
)

// IndexKind is the per-field index type.
type IndexKind int

const (
	// IndexAsc is an ascending single-field key.
	IndexAsc IndexKind = iota
	// IndexDesc is a descending single-field key.
	IndexDesc
	// IndexText is part of the collection's weighted text index.
	IndexText
	// Index2DSphere is a spherical geo index over GeoJSON points.
	Index2DSphere
)

// IndexKey is one field of an index.
type IndexKey struct {
	Field  string
	Kind   IndexKind
	Weight int // text keys only
}

// IndexDefinition is a complete index definition used by createIndexes.
type IndexDefinition struct {
	Name            string
	Keys            []IndexKey
	DefaultLanguage string // text indexes only
}

// IsText reports whether the index is a text index.
func (idx *IndexDefinition) IsText() bool {
	for i := range idx.Keys {
		if idx.Keys[i].Kind == IndexText {
			return true
		}
	}
	return false
}

// Validate checks that the index definition is well-formed.
func (idx *IndexDefinition) Validate() error {
	if idx.Name == "" {
		return errors.New("index name is required")
	}
	if !IsValidIdentifier(idx.Name) {
		return errors.New("index name contains invalid characters")
	}
	if len(idx.Keys) == 0 {
		return errors.New("at least one field is required")
	}

	seen := make(map[string]bool)
	for i := range idx.Keys {
		k := &idx.Keys[i]
		if k.Field == "" {
			return errors.New("field name is required at index " + strconv.Itoa(i))
		}
		if seen[k.Field] {
			return errors.New("duplicate field name: " + k.Field)
		}
		seen[k.Field] = true

		if k.Kind == IndexText && k.Weight < 0 {
			return errors.New("text weight must not be negative: " + k.Field)
		}
	}

	return nil
}

// IsValidIdentifier returns true if s matches [a-zA-Z0-9_:-]+.
func IsValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		isSpecial := r == '_' || r == ':' || r == '-'
		if !isAlpha && !isDigit && !isSpecial {
			return false
		}
	}
	return true
}
