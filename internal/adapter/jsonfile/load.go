// Package jsonfile reads the dictionary files and writes the prepared
// artifacts as indented UTF-8 JSON.
package jsonfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/akenore24/sawasew-keyboard/internal/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WordsDocument is the {"words": [...]} layout of the merged word list.
type WordsDocument struct {
	Words []string `json:"words"`
}

// LoadOldDictionary reads the legacy word list at path. The layout is
// resolved here; an unrecognized layout is not an error and yields
// domain.ShapeUnknown. Elements that are not strings are collected in
// Rejected.
func LoadOldDictionary(path string) (domain.OldDictionary, error) {
	data, err := readDocument(path)
	if err != nil {
		return domain.OldDictionary{}, err
	}

	shape, err := classifyOld(data)
	if err != nil {
		return domain.OldDictionary{}, malformed(path, err)
	}

	var items []json.RawMessage
	switch shape {
	case domain.ShapeFlatList:
		err = json.Unmarshal(data, &items)
	case domain.ShapeWordsWrapper:
		items, err = wordsArray(data)
	default:
		return domain.OldDictionary{Shape: shape}, nil
	}
	if err != nil {
		return domain.OldDictionary{}, malformed(path, err)
	}

	dict := domain.OldDictionary{
		Shape: shape,
		Raw:   make([]string, 0, len(items)),
	}
	for i, raw := range items {
		w, err := decodeString(raw)
		if err != nil {
			dict.Rejected = append(dict.Rejected, domain.RejectedEntry{Index: i, Reason: err.Error()})
			continue
		}
		dict.Raw = append(dict.Raw, w)
	}

	return dict, nil
}

// LoadNewDictionary reads the root/forms dictionary at path. A document
// without a "words" array loads with HasWords=false. Entries that are not
// {"root": string, "forms": [string]} objects are collected in Rejected.
func LoadNewDictionary(path string) (domain.NewDictionary, error) {
	data, err := readDocument(path)
	if err != nil {
		return domain.NewDictionary{}, err
	}

	ok, err := hasWordsArray(data)
	if err != nil {
		return domain.NewDictionary{}, malformed(path, err)
	}
	if !ok {
		return domain.NewDictionary{}, nil
	}

	items, err := wordsArray(data)
	if err != nil {
		return domain.NewDictionary{}, malformed(path, err)
	}

	dict := domain.NewDictionary{
		HasWords: true,
		Items:    make([]domain.Entry, 0, len(items)),
	}
	for i, raw := range items {
		entry, err := decodeEntry(raw)
		if err != nil {
			dict.Rejected = append(dict.Rejected, domain.RejectedEntry{Index: i, Reason: err.Error()})
			continue
		}
		dict.Items = append(dict.Items, entry)
	}

	return dict, nil
}

// wordsArray returns the elements under the exact key "words". Struct
// decoding is avoided because encoding/json matches keys case-insensitively.
func wordsArray(data []byte) ([]json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	var items []json.RawMessage
	if err := json.Unmarshal(obj["words"], &items); err != nil {
		return nil, fmt.Errorf("words: %w", err)
	}
	return items, nil
}

func decodeEntry(raw json.RawMessage) (domain.Entry, error) {
	if kind(raw) != '{' {
		return domain.Entry{}, errors.New("entry is not an object")
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return domain.Entry{}, fmt.Errorf("decode entry: %w", err)
	}

	var e domain.Entry
	if r, ok := obj["root"]; ok && kind(r) != 'n' {
		root, err := decodeString(r)
		if err != nil {
			return domain.Entry{}, fmt.Errorf("root: %w", err)
		}
		e.Root = root
	}

	if f, ok := obj["forms"]; ok && kind(f) != 'n' {
		if kind(f) != '[' {
			return domain.Entry{}, errors.New("forms is not an array")
		}
		var items []json.RawMessage
		if err := json.Unmarshal(f, &items); err != nil {
			return domain.Entry{}, fmt.Errorf("forms: %w", err)
		}
		e.Forms = make([]string, 0, len(items))
		for i, item := range items {
			form, err := decodeString(item)
			if err != nil {
				return domain.Entry{}, fmt.Errorf("forms[%d]: %w", i, err)
			}
			e.Forms = append(e.Forms, form)
		}
	}

	return e, nil
}

func decodeString(raw json.RawMessage) (string, error) {
	if kind(raw) != '"' {
		return "", errors.New("not a string")
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", err
	}
	return s, nil
}

// kind returns the first significant byte of a JSON value: '{', '[', '"',
// 'n' for null, and so on. Empty input yields 0.
func kind(raw json.RawMessage) byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

func malformed(path string, err error) error {
	return domain.NewSourceError(path, fmt.Errorf("%w: %v", domain.ErrMalformedJSON, err))
}

// readDocument returns the file contents once they are known to be valid
// JSON. Failures wrap domain.ErrMissingFile or domain.ErrMalformedJSON.
func readDocument(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.NewSourceError(path, domain.ErrMissingFile)
		}
		return nil, malformed(path, err)
	}

	data = bytes.TrimPrefix(data, utf8BOM)

	var doc json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, malformed(path, err)
	}
	return data, nil
}
