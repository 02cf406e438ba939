// Package edit applies batches of byte-offset edits to wikitext documents.
//
// A batch is validated against the document length, sorted, checked for
// overlaps and then applied back to front through the document's root view,
// so every live view of the document follows the edits.
package edit

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Edit replaces bytes [Start, Stop) of a document with Text.
type Edit struct {
	// Start is the byte offset where the edit begins (inclusive).
	Start int `yaml:"start"`

	// Stop is the byte offset where the edit ends (exclusive).
	Stop int `yaml:"stop"`

	// Text is the replacement text.
	Text string `yaml:"text,omitempty"`
}

// IsInsert reports whether the edit removes nothing.
func (e Edit) IsInsert() bool {
	return e.Start == e.Stop
}

// Delta is the change in document length caused by the edit.
func (e Edit) Delta() int {
	return len(e.Text) - (e.Stop - e.Start)
}

// Builder accumulates edits.
type Builder struct {
	Edits []Edit
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{Edits: make([]Edit, 0)}
}

// Replace adds an edit that replaces bytes [start, stop) with text.
func (b *Builder) Replace(start, stop int, text string) *Builder {
	b.Edits = append(b.Edits, Edit{Start: start, Stop: stop, Text: text})
	return b
}

// Insert adds an edit that inserts text at offset.
func (b *Builder) Insert(offset int, text string) *Builder {
	return b.Replace(offset, offset, text)
}

// Delete adds an edit that removes bytes [start, stop).
func (b *Builder) Delete(start, stop int) *Builder {
	return b.Replace(start, stop, "")
}

// Batch is the YAML form of an edit list.
//
//	edits:
//	  - start: 2
//	    stop: 3
//	    text: x
type Batch struct {
	Edits []Edit `yaml:"edits"`
}

// ParseBatch decodes a YAML edit batch.
func ParseBatch(data []byte) (*Batch, error) {
	var batch Batch
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&batch); err != nil {
		if errors.Is(err, io.EOF) {
			return &batch, nil
		}
		return nil, fmt.Errorf("parse edit batch: %w", err)
	}
	return &batch, nil
}

// LoadBatch reads and decodes a YAML edit batch.
func LoadBatch(r io.Reader) (*Batch, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read edit batch: %w", err)
	}
	return ParseBatch(data)
}
