// Package docindex wraps bleve/v2 with the exact document shape and commit
// discipline drozosearch needs: a file-name field tokenized for partial
// matching, a path field indexed as a single raw token, full-text content
// that is indexed but not stored, and the metadata fields the composite
// ranker and the UI both read back.
//
// Grounded on original_source/src/index/schema.rs (the tantivy schema this
// package translates) and the document-as-struct plus field-constant style
// of other_examples' nico-hyperjump-sagasu indexer package, generalized from
// that package's storage-backed document model to a single bleve index.
package docindex

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/mapping"
)

// Field names are the bleve document's JSON field names. They double as the
// query-string field qualifiers retrieval.go uses to build boosted queries.
const (
	FieldFileName    = "file_name"
	FieldFilePath    = "file_path"
	FieldExtension   = "extension"
	FieldContent     = "content"
	FieldFileSize    = "file_size"
	FieldModified    = "modified"
	FieldCreated     = "created"
	FieldPermissions = "permissions"
	FieldIsDir       = "is_dir"
)

// Document is the value indexed for every filesystem entry, one per path.
// FilePath doubles as the document ID, so re-indexing a path is a natural
// upsert and deleting a path is a single Batch.Delete call -- there is no
// tantivy-style delete-by-term step to replicate.
type Document struct {
	FileName    string `json:"file_name"`
	FilePath    string `json:"file_path"`
	Extension   string `json:"extension"`
	Content     string `json:"content,omitempty"`
	FileSize    uint64 `json:"file_size"`
	Modified    int64  `json:"modified"`
	Created     int64  `json:"created"`
	Permissions string `json:"permissions"`
	IsDir       bool   `json:"is_dir"`
}

// BuildIndexMapping constructs the bleve index mapping matching Document's
// fields: file_name and content use the default (tokenized) analyzer so
// partial-word matches work; file_path and extension use the keyword
// analyzer so they match as single raw tokens, mirroring tantivy's "raw"
// tokenizer and STRING field type respectively.
func BuildIndexMapping() *mapping.IndexMappingImpl {
	im := bleve.NewIndexMapping()
	im.DefaultAnalyzer = "en"

	doc := bleve.NewDocumentMapping()

	tokenizedField := bleve.NewTextFieldMapping()
	tokenizedField.Analyzer = "en"
	tokenizedField.Store = true
	tokenizedField.Index = true

	contentField := bleve.NewTextFieldMapping()
	contentField.Analyzer = "en"
	contentField.Store = false
	contentField.Index = true

	rawField := bleve.NewTextFieldMapping()
	rawField.Analyzer = keyword.Name
	rawField.Store = true
	rawField.Index = true

	sizeField := bleve.NewNumericFieldMapping()
	sizeField.Store = true
	sizeField.Index = true

	timeField := bleve.NewNumericFieldMapping()
	timeField.Store = true
	timeField.Index = true

	createdField := bleve.NewNumericFieldMapping()
	createdField.Store = true
	createdField.Index = false

	boolField := bleve.NewBooleanFieldMapping()
	boolField.Store = true
	boolField.Index = true

	doc.AddFieldMappingsAt(FieldFileName, tokenizedField)
	doc.AddFieldMappingsAt(FieldFilePath, rawField)
	doc.AddFieldMappingsAt(FieldExtension, rawField)
	doc.AddFieldMappingsAt(FieldContent, contentField)
	doc.AddFieldMappingsAt(FieldFileSize, sizeField)
	doc.AddFieldMappingsAt(FieldModified, timeField)
	doc.AddFieldMappingsAt(FieldCreated, createdField)
	doc.AddFieldMappingsAt(FieldPermissions, rawField)
	doc.AddFieldMappingsAt(FieldIsDir, boolField)

	im.AddDocumentMapping("_default", doc)
	return im
}
