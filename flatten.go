package main

import (
	"encoding/json"
	"fmt"
	"io"
)

// Document is a flattened view of a JSON configuration document.
type Document map[string]interface{}

// ReadDocument decodes a JSON object from r and flattens it, meaning that if
// the JSON document is
//
//	{ "fold": { "width": 72 }, "line": { "tab_width": 8 } }
//
// the map will have keys "fold.width", with value 72, and "line.tab_width",
// with value 8.
func ReadDocument(r io.Reader) (Document, error) {
	var nested map[string]interface{}
	if err := json.NewDecoder(r).Decode(&nested); err != nil {
		return nil, err
	}
	flattened := make(Document)
	flattened.recursivelyFlatten(nested, "")
	return flattened, nil
}

func (doc Document) recursivelyFlatten(nested map[string]interface{}, prefix string) {
	var longKey string
	for key, value := range nested {
		if prefix != "" {
			longKey = fmt.Sprintf("%s.%s", prefix, key)
		} else {
			longKey = key
		}
		if inner, ok := value.(map[string]interface{}); ok {
			doc.recursivelyFlatten(inner, longKey)
		} else {
			doc[longKey] = value
		}
	}
}

func (doc Document) GetFloat64(path string) (float64, bool) {
	iv, present := doc[path]
	if !present {
		return 0, false
	}
	v, typeMatches := iv.(float64)
	return v, typeMatches
}

func (doc Document) GetString(path string) (string, bool) {
	iv, present := doc[path]
	if !present {
		return "", false
	}
	v, present := iv.(string)
	return v, present
}

// GetInt returns the value at path if it is a whole number.
func (doc Document) GetInt(path string) (int, bool) {
	f, typeMatches := doc.GetFloat64(path)
	if !typeMatches || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

// unknownKeys returns the keys of doc that are not in known.
func (doc Document) unknownKeys(known []string) []string {
	var unknown []string
	for key := range doc {
		found := false
		for _, k := range known {
			if k == key {
				found = true
				break
			}
		}
		if !found {
			unknown = append(unknown, key)
		}
	}
	return unknown
}
