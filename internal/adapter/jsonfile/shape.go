package jsonfile

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/akenore24/sawasew-keyboard/internal/domain"
)

// Only containers are constrained here. Elements are checked one by one
// while decoding so a single bad element never discards the whole file.
// Property names in JSON Schema match exactly, like the decoder below.
const (
	flatListSchemaJSON = `{"type": "array"}`

	wordsWrapperSchemaJSON = `{
		"type": "object",
		"required": ["words"],
		"properties": {
			"words": {"type": "array"}
		}
	}`
)

var (
	flatListSchema     = mustSchema(flatListSchemaJSON)
	wordsWrapperSchema = mustSchema(wordsWrapperSchemaJSON)
)

func mustSchema(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("jsonfile: compile schema: %v", err))
	}
	return s
}

// classifyOld resolves the layout of an old dictionary document.
func classifyOld(data []byte) (domain.DictShape, error) {
	doc := gojsonschema.NewBytesLoader(data)

	ok, err := matches(flatListSchema, doc)
	if err != nil {
		return domain.ShapeUnknown, err
	}
	if ok {
		return domain.ShapeFlatList, nil
	}

	ok, err = matches(wordsWrapperSchema, doc)
	if err != nil {
		return domain.ShapeUnknown, err
	}
	if ok {
		return domain.ShapeWordsWrapper, nil
	}
	return domain.ShapeUnknown, nil
}

// hasWordsArray reports whether a document is an object carrying a
// "words" array.
func hasWordsArray(data []byte) (bool, error) {
	return matches(wordsWrapperSchema, gojsonschema.NewBytesLoader(data))
}

func matches(schema *gojsonschema.Schema, doc gojsonschema.JSONLoader) (bool, error) {
	res, err := schema.Validate(doc)
	if err != nil {
		return false, fmt.Errorf("validate document: %w", err)
	}
	return res.Valid(), nil
}
