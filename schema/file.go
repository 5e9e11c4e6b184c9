package schema

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cast"
	"github.com/truemediaorg/crosspostfields/model"
	"gopkg.in/yaml.v3"

	log "github.com/sirupsen/logrus"
)

/*
FileSource serves the fields engine schema from a YAML export. The export has three
sections, the same places the engine lets you declare fields:

	meta_boxes:
	  - id: book-details
	    object_type: post            # post | taxonomy
	    allowed_post_type: [book]
	    allowed_tax: []
	    fields:
	      - {name: cover, type: media, value_format: id}
	post_types:
	  - slug: book
	    meta_fields:
	      - {name: related, type: posts}
	taxonomies:
	  - slug: genre
	    meta_fields:
	      - {name: banner, type: media, value_format: both}

Field entries keep every key they were exported with in FieldDescriptor.Raw.
*/
type FileSource struct {
	fields map[model.ContextKind]map[string][]model.FieldDescriptor
}

type schemaFile struct {
	MetaBoxes  []metaBox       `yaml:"meta_boxes"`
	PostTypes  []ownedFieldSet `yaml:"post_types"`
	Taxonomies []ownedFieldSet `yaml:"taxonomies"`
}

type metaBox struct {
	ID              string           `yaml:"id"`
	ObjectType      string           `yaml:"object_type"`
	AllowedPostType []string         `yaml:"allowed_post_type"`
	AllowedTax      []string         `yaml:"allowed_tax"`
	Fields          []map[string]any `yaml:"fields"`
}

type ownedFieldSet struct {
	Slug       string           `yaml:"slug"`
	MetaFields []map[string]any `yaml:"meta_fields"`
}

// Items in a field list that only affect the edit screen layout
var layoutObjectTypes = map[string]bool{
	"tab":          true,
	"accordion":    true,
	"endpoint":     true,
	"html":         true,
	"heading":      true,
	"section":      true,
	"section_end":  true,
	"repeater_end": true,
}

func LoadFile(path string) (*FileSource, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", path, err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*FileSource, error) {
	var file schemaFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}

	source := &FileSource{
		fields: map[model.ContextKind]map[string][]model.FieldDescriptor{
			model.ContextPostType: {},
			model.ContextTaxonomy: {},
		},
	}

	for _, box := range file.MetaBoxes {
		kind, err := model.ParseContextKind(box.ObjectType)
		if err != nil {
			return nil, fmt.Errorf("meta box %q: %w", box.ID, err)
		}
		owners := box.AllowedPostType
		if kind == model.ContextTaxonomy {
			owners = box.AllowedTax
		}
		for _, owner := range owners {
			source.add(kind, owner, box.Fields)
		}
	}
	for _, postType := range file.PostTypes {
		source.add(model.ContextPostType, postType.Slug, postType.MetaFields)
	}
	for _, taxonomy := range file.Taxonomies {
		source.add(model.ContextTaxonomy, taxonomy.Slug, taxonomy.MetaFields)
	}
	return source, nil
}

func (s *FileSource) add(kind model.ContextKind, owner string, raws []map[string]any) {
	for _, raw := range raws {
		if objectType := cast.ToString(raw["object_type"]); layoutObjectTypes[objectType] {
			continue
		}
		field := descriptorFromRaw(raw)
		if field.Name == "" {
			log.WithField("owner", owner).Warn("skipping schema field without a name")
			continue
		}
		s.fields[kind][owner] = append(s.fields[kind][owner], field)
	}
}

func descriptorFromRaw(raw map[string]any) model.FieldDescriptor {
	name := cast.ToString(raw["name"])
	valueFormat, err := model.ParseValueFormat(cast.ToString(raw["value_format"]))
	if err != nil {
		log.WithField("field", name).Warnf("%v, falling back to %s", err, valueFormat)
	}
	return model.FieldDescriptor{
		Name:        name,
		Type:        model.ParseFieldType(cast.ToString(raw["type"])),
		ValueFormat: valueFormat,
		Raw:         raw,
	}
}

func (s *FileSource) FieldsForContext(ctx context.Context, kind model.ContextKind, owner string) ([]model.FieldDescriptor, error) {
	return s.fields[kind][owner], nil
}
