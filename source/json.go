package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	gojson "github.com/goccy/go-json"
)

// DecodeJSON reads exactly one JSON value. Numbers are kept as json.Number so
// integer-ness and precision survive until classification.
func DecodeJSON(r io.Reader, opt Options) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("source: empty JSON document: %w", io.ErrUnexpectedEOF)
		}
		return nil, err
	}
	var rest json.RawMessage
	if err := dec.Decode(&rest); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, ErrTrailingData
	}
	if opt.Strict {
		if err := detectJSONDuplicateKeys(data); err != nil {
			return nil, err
		}
	}
	return normalizeJSON(v), nil
}

// normalizeJSON maps the decoder's number type onto encoding/json's so callers
// see a single representation.
func normalizeJSON(v any) any {
	switch t := v.(type) {
	case gojson.Number:
		return json.Number(string(t))
	case map[string]any:
		for k, val := range t {
			t[k] = normalizeJSON(val)
		}
		return t
	case []any:
		for i, val := range t {
			t[i] = normalizeJSON(val)
		}
		return t
	}
	return v
}

// dupScanner walks the token stream and fails on the first repeated key.
type dupScanner struct {
	dec  *gojson.Decoder
	path []string
}

func detectJSONDuplicateKeys(data []byte) error {
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	s := &dupScanner{dec: dec}
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	return s.value(tok)
}

func (s *dupScanner) value(tok gojson.Token) error {
	d, ok := tok.(gojson.Delim)
	if !ok {
		return nil
	}
	switch d {
	case '{':
		seen := make(map[string]struct{})
		for s.dec.More() {
			kt, err := s.dec.Token()
			if err != nil {
				return err
			}
			key, ok := kt.(string)
			if !ok {
				return fmt.Errorf("source: object key is %T", kt)
			}
			if _, dup := seen[key]; dup {
				return &DuplicateKeyError{Key: key, Path: pointer(append(s.path, key))}
			}
			seen[key] = struct{}{}
			if err := s.child(key); err != nil {
				return err
			}
		}
	case '[':
		for i := 0; s.dec.More(); i++ {
			if err := s.child(strconv.Itoa(i)); err != nil {
				return err
			}
		}
	default:
		return nil
	}
	_, err := s.dec.Token() // closing delimiter
	return err
}

func (s *dupScanner) child(seg string) error {
	tok, err := s.dec.Token()
	if err != nil {
		return err
	}
	s.path = append(s.path, seg)
	err = s.value(tok)
	s.path = s.path[:len(s.path)-1]
	return err
}

func encodeJSON(w io.Writer, v any) error {
	b, err := gojson.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("source: encode json: %w", err)
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}
