package main

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"

	"github.com/atlanticdynamic/mcpregistry/internal/fancy"
	"github.com/pelletier/go-toml/v2"
)

const (
	formatJSON = "json"
	formatTree = "tree"
	formatTOML = "toml"
)

func validFormat(format string) bool {
	switch format {
	case formatJSON, formatTree, formatTOML:
		return true
	}
	return false
}

// writeValue prints strings verbatim and everything else as compact JSON.
func writeValue(w io.Writer, value any) error {
	if s, ok := value.(string); ok {
		_, err := fmt.Fprintln(w, s)
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value to JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// writeValues prints the full mapping in the requested format.
func writeValues(w io.Writer, format string, values map[string]any) error {
	switch format {
	case formatTree:
		_, err := fmt.Fprintln(w, fancy.ValuesTree("Registry", values).String())
		return err

	case formatTOML:
		converted, err := tomlValue(values, "")
		if err != nil {
			return err
		}
		data, err := toml.Marshal(converted)
		if err != nil {
			return fmt.Errorf("failed to marshal values to TOML: %w", err)
		}
		_, err = w.Write(data)
		return err

	default:
		data, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal values to JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
}

// tomlValue converts json.Number into int64 or float64, which TOML would otherwise quote.
// TOML has no null, so a null anywhere in the mapping is an error naming its path.
func tomlValue(value any, path string) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, fmt.Errorf("cannot render %s as TOML: null values are not supported", path)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, nil
		}
		if f, err := v.Float64(); err == nil {
			return f, nil
		}
		return v.String(), nil
	case map[string]any:
		out := make(map[string]any, len(v))
		for _, k := range slices.Sorted(maps.Keys(v)) {
			converted, err := tomlValue(v[k], joinPath(path, k))
			if err != nil {
				return nil, err
			}
			out[k] = converted
		}
		return out, nil
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			converted, err := tomlValue(item, path+"["+strconv.Itoa(i)+"]")
			if err != nil {
				return nil, err
			}
			out[i] = converted
		}
		return out, nil
	default:
		return v, nil
	}
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
