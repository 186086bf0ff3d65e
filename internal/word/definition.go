package word

import "encoding/json"

// Meaning is a single sense of a word.
type Meaning struct {
	Pos     string `json:"pos"`
	Meaning string `json:"meaning"`
}

// Example is an example sentence with its translation.
type Example struct {
	Sentence    string `json:"sentence"`
	Translation string `json:"translation"`
}

// Definition is the dictionary payload attached to a record. The
// scheduling core carries it opaquely: it is deep-copied and
// round-tripped but its content is never interpreted here. Lookup and
// enrichment happen outside this module.
type Definition struct {
	Word     string    `json:"word"`
	Phonetic string    `json:"phonetic"`
	Pos      string    `json:"pos"`
	Meanings []Meaning `json:"meanings"`
	Examples []Example `json:"examples"`
	Source   string    `json:"source"`
	ExamTags []string  `json:"examTags"`
}

// Clone returns a deep copy of the definition.
func (d Definition) Clone() Definition {
	out := d
	if d.Meanings != nil {
		out.Meanings = make([]Meaning, len(d.Meanings))
		copy(out.Meanings, d.Meanings)
	}
	if d.Examples != nil {
		out.Examples = make([]Example, len(d.Examples))
		copy(out.Examples, d.Examples)
	}
	if d.ExamTags != nil {
		out.ExamTags = make([]string, len(d.ExamTags))
		copy(out.ExamTags, d.ExamTags)
	}
	return out
}

// Encode serializes the definition to JSON.
func (d Definition) Encode() []byte {
	b, err := json.Marshal(d)
	if err != nil {
		return []byte("{}")
	}
	return b
}

// DecodeDefinition parses a persisted definition, yielding an empty
// definition on malformed input rather than an error.
func DecodeDefinition(data []byte) Definition {
	var d Definition
	if err := json.Unmarshal(data, &d); err != nil {
		return Definition{}
	}
	return d
}
