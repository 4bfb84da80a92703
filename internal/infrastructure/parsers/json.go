package parsers

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONParser parses links from a JSON array of {"person", "interest"} objects.
type JSONParser struct{}

// Parse reads JSON from r.
func (p *JSONParser) Parse(r io.Reader) ([]RawLink, error) {
	var links []RawLink

	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&links); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	// Array position, 1-indexed.
	for i := range links {
		links[i].LineNum = i + 1
	}

	return links, nil
}
