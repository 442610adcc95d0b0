package domain

// DictShape tells which layout an old dictionary file was stored in.
type DictShape int

const (
	ShapeUnknown DictShape = iota
	// ShapeFlatList is a bare JSON array of words.
	ShapeFlatList
	// ShapeWordsWrapper is an object holding the array under "words".
	ShapeWordsWrapper
)

func (s DictShape) String() string {
	switch s {
	case ShapeFlatList:
		return "flat_list"
	case ShapeWordsWrapper:
		return "words_wrapper"
	default:
		return "unknown"
	}
}

// OldDictionary is the legacy flat vocabulary. The layout is resolved once
// when the file is loaded.
type OldDictionary struct {
	Shape DictShape
	Raw   []string
	// Rejected lists elements of the word array that are not strings.
	Rejected []RejectedEntry
}

// Words returns the raw (unnormalized) words in source order with duplicates
// collapsed. An unknown layout yields ErrUnexpectedShape and no words.
func (d OldDictionary) Words() ([]string, error) {
	if d.Shape != ShapeFlatList && d.Shape != ShapeWordsWrapper {
		return nil, ErrUnexpectedShape
	}
	return uniqueInOrder(d.Raw), nil
}

// Entry is one root with its known surface forms.
type Entry struct {
	Root  string   `json:"root"`
	Forms []string `json:"forms"`
}

// NewDictionary is the root/forms structured dictionary.
type NewDictionary struct {
	// HasWords is false when the document carries no "words" array.
	HasWords bool
	Items    []Entry
	// Rejected lists entries that were present but could not be decoded.
	Rejected []RejectedEntry
}

// RejectedEntry records why an element of a word or entry array was skipped.
type RejectedEntry struct {
	Index  int
	Reason string
}

// Entries returns the decoded entries, or ErrMissingWordsKey when the
// document has no "words" array.
func (d NewDictionary) Entries() ([]Entry, error) {
	if !d.HasWords {
		return nil, ErrMissingWordsKey
	}
	return d.Items, nil
}

func uniqueInOrder(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
