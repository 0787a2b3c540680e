package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/roach88/vecwrap/internal/ndarray"
)

// Payload is the decoded value record of one call.
type Payload struct {
	Args    []any `json:"args"`
	Results []any `json:"results"`
}

var (
	encoder = sync.OnceValue(func() *zstd.Encoder {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			panic(err) // only on invalid options
		}
		return enc
	})
	decoder = sync.OnceValue(func() *zstd.Decoder {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			panic(err)
		}
		return dec
	})
)

// EncodePayload serializes args and results as JSON and compresses them.
// Arrays become nested lists.
func EncodePayload(args, results []any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(Payload{Args: orEmpty(args), Results: orEmpty(results)}); err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return encoder().EncodeAll(bytes.TrimSpace(buf.Bytes()), nil), nil
}

// DecodePayload reverses EncodePayload. Numbers decode as json.Number so
// integers keep their precision.
func DecodePayload(data []byte) (Payload, error) {
	if len(data) == 0 {
		return Payload{Args: []any{}, Results: []any{}}, nil
	}
	raw, err := decoder().DecodeAll(data, nil)
	if err != nil {
		return Payload{}, fmt.Errorf("decode payload: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var p Payload
	if err := dec.Decode(&p); err != nil {
		return Payload{}, fmt.Errorf("decode payload: %w", err)
	}
	return p, nil
}

func orEmpty(vs []any) []any {
	if vs == nil {
		return []any{}
	}
	return vs
}

// Shapes renders the shape of each value: "(2, 3)" for arrays, "()" for
// numbers and bools, "str" for strings and "-" for anything else.
func Shapes(vs []any) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		if _, ok := v.(string); ok {
			out[i] = "str"
			continue
		}
		if shape, ok := ndarray.ShapeOf(v); ok {
			out[i] = ndarray.FormatShape(shape)
		} else {
			out[i] = "-"
		}
	}
	return out
}

func marshalShapes(shapes []string) (string, error) {
	if shapes == nil {
		shapes = []string{}
	}
	data, err := json.Marshal(shapes)
	if err != nil {
		return "", fmt.Errorf("marshal shapes: %w", err)
	}
	return string(data), nil
}

func unmarshalShapes(data string) ([]string, error) {
	shapes := []string{}
	if data == "" {
		return shapes, nil
	}
	if err := json.Unmarshal([]byte(data), &shapes); err != nil {
		return nil, fmt.Errorf("unmarshal shapes: %w", err)
	}
	return shapes, nil
}
