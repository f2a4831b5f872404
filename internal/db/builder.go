package db

import (
	"strconv"
	"strings"
)

// IndexBuilder is a fluent builder for index definitions.
type IndexBuilder struct {
	def IndexDefinition
}

// NewIndex starts building an index definition.
func NewIndex(name string) *IndexBuilder {
	return &IndexBuilder{def: IndexDefinition{Name: name}}
}

// Asc adds an ascending key.
func (b *IndexBuilder) Asc(field string) *IndexBuilder {
	b.def.Keys = append(b.def.Keys, IndexKey{Field: field, Kind: IndexAsc})
	return b
}

// Desc adds a descending key.
func (b *IndexBuilder) Desc(field string) *IndexBuilder {
	b.def.Keys = append(b.def.Keys, IndexKey{Field: field, Kind: IndexDesc})
	return b
}

// Text adds a weighted text key.
func (b *IndexBuilder) Text(field string, weight int) *IndexBuilder {
	b.def.Keys = append(b.def.Keys, IndexKey{Field: field, Kind: IndexText, Weight: weight})
	return b
}

// Geo2DSphere adds a spherical geo key over a GeoJSON point field.
func (b *IndexBuilder) Geo2DSphere(field string) *IndexBuilder {
	b.def.Keys = append(b.def.Keys, IndexKey{Field: field, Kind: Index2DSphere})
	return b
}

// Language sets the default stemming language of a text index.
func (b *IndexBuilder) Language(lang string) *IndexBuilder {
	b.def.DefaultLanguage = lang
	return b
}

// Build validates and returns the index definition.
func (b *IndexBuilder) Build() (*IndexDefinition, error) {
	if err := b.def.Validate(); err != nil {
		return nil, err
	}
	return &b.def, nil
}

// MustBuild calls Build and panics on error.
func (b *IndexBuilder) MustBuild() *IndexDefinition {
	def, err := b.Build()
	if err != nil {
		panic(err)
	}
	return def
}

// String returns a debug representation resembling a createIndex call.
func (idx *IndexDefinition) String() string {
	parts := make([]string, 0, len(idx.Keys))
	for i := range idx.Keys {
		k := &idx.Keys[i]
		switch k.Kind {
		case IndexAsc:
			parts = append(parts, k.Field+": 1")
		case IndexDesc:
			parts = append(parts, k.Field+": -1")
		case IndexText:
			parts = append(parts, k.Field+": text("+strconv.Itoa(k.Weight)+")")
		case Index2DSphere:
			parts = append(parts, k.Field+": 2dsphere")
		}
	}
	return "createIndex " + idx.Name + " {" + strings.Join(parts, ", ") + "}"
}
