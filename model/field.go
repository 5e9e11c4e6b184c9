package model

import (
	"fmt"
	"strings"
)

type FieldType string

const (
	FieldTypeMedia   FieldType = "media"
	FieldTypeGallery FieldType = "gallery"
	FieldTypePosts   FieldType = "posts"
	// Anything the fields engine declares that we don't transcode
	FieldTypeOther FieldType = "other"
)

// ParseFieldType never fails: types we don't know about are passed through untouched.
func ParseFieldType(s string) FieldType {
	switch strings.ToLower(s) {
	case string(FieldTypeMedia):
		return FieldTypeMedia
	case string(FieldTypeGallery):
		return FieldTypeGallery
	case string(FieldTypePosts):
		return FieldTypePosts
	default:
		return FieldTypeOther
	}
}

// How media and gallery fields store their value
type ValueFormat string

const (
	ValueFormatURL  ValueFormat = "url"
	ValueFormatID   ValueFormat = "id"
	ValueFormatBoth ValueFormat = "both"
)

// ParseValueFormat treats an empty format as "id", which is what the fields engine
// stores when the option was never touched. Unknown formats also come back as "id"
// along with an error, so callers can log it and carry on.
func ParseValueFormat(s string) (ValueFormat, error) {
	switch strings.ToLower(s) {
	case "", string(ValueFormatID):
		return ValueFormatID, nil
	case string(ValueFormatURL):
		return ValueFormatURL, nil
	case string(ValueFormatBoth):
		return ValueFormatBoth, nil
	default:
		return ValueFormatID, fmt.Errorf("unknown value format: %s", s)
	}
}

type ContextKind string

const (
	ContextPostType ContextKind = "post_type"
	ContextTaxonomy ContextKind = "taxonomy"
)

func ParseContextKind(s string) (ContextKind, error) {
	switch strings.ToLower(s) {
	case "", string(ContextPostType), "post":
		return ContextPostType, nil
	case string(ContextTaxonomy):
		return ContextTaxonomy, nil
	default:
		return ContextPostType, fmt.Errorf("unknown context: %s", s)
	}
}

// FieldDescriptor is one field as declared by the structured-fields engine.
// Raw holds the full declaration for anything the transcoder doesn't model.
type FieldDescriptor struct {
	Name        string
	Type        FieldType
	ValueFormat ValueFormat
	Raw         map[string]any
}
