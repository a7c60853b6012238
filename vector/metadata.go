package vector

import (
	"bytes"
	"encoding/json"
	"fmt"
)

func encodeMetadata(meta map[string]any) (string, error) {
	if meta == nil {
		return "{}", nil
	}
	data, err := json.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("vector: encode metadata: %w", err)
	}
	return string(data), nil
}

func decodeMetadata(raw string) (map[string]any, error) {
	if raw == "" {
		return map[string]any{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	var meta map[string]any
	if err := dec.Decode(&meta); err != nil {
		return nil, fmt.Errorf("vector: decode metadata: %w", err)
	}
	for k, v := range meta {
		n, ok := v.(json.Number)
		if !ok {
			continue
		}
		if i, err := n.Int64(); err == nil {
			meta[k] = i
		} else if f, err := n.Float64(); err == nil {
			meta[k] = f
		}
	}
	return meta, nil
}
