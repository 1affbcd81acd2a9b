// Package safejson serializes payloads that carry wide-integer identifiers
// without losing precision in JavaScript consumers. Integers whose magnitude
// exceeds 2^53-1 are rewritten as decimal strings; every other number passes
// through untouched.
package safejson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Marshal encodes v like encoding/json, then rewrites unsafe integers.
func Marshal(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("safejson: re-decode: %w", err)
	}

	return json.Marshal(sanitize(tree))
}

// Sanitize returns a copy of the decoded JSON tree with unsafe integers
// replaced by strings. The input must be built from maps, slices, json.Number,
// and scalar values, as produced by json.Decoder with UseNumber.
func Sanitize(tree any) any {
	return sanitize(tree)
}

func sanitize(v any) any {
	switch typed := v.(type) {
	case map[string]any:
		for k, val := range typed {
			typed[k] = sanitize(val)
		}
		return typed
	case []any:
		for i, val := range typed {
			typed[i] = sanitize(val)
		}
		return typed
	case json.Number:
		return sanitizeNumber(typed)
	default:
		return v
	}
}

func sanitizeNumber(n json.Number) any {
	s := n.String()
	if strings.ContainsAny(s, ".eE") {
		return n
	}
	i, err := n.Int64()
	if err != nil {
		// Integer too large for int64; the decoder kept the exact text.
		return s
	}
	if i > maxSafeInteger || i < -maxSafeInteger {
		return strconv.FormatInt(i, 10)
	}
	return n
}

const maxSafeInteger = 1<<53 - 1
