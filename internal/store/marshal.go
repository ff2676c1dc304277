package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/orso/internal/container"
	"github.com/roach88/orso/internal/doc"
	"github.com/roach88/orso/internal/header"
)

// marshalHeader converts a header record to canonical JSON TEXT and its
// content id. Uses RFC 8785 canonical JSON so identical headers in
// different files share one id.
func marshalHeader(info header.Record) (string, string, error) {
	m := header.ToDict(info)
	data, err := doc.MarshalCanonical(m)
	if err != nil {
		return "", "", fmt.Errorf("marshal header: %w", err)
	}
	id, err := doc.ContentID(m)
	if err != nil {
		return "", "", fmt.Errorf("header id: %w", err)
	}
	return string(data), id, nil
}

// marshalLabels converts column labels to a JSON array of display strings.
func marshalLabels(labels []container.Label) (string, error) {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = l.String()
	}
	data, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("marshal columns: %w", err)
	}
	return string(data), nil
}

// unmarshalLabels is the inverse of marshalLabels.
func unmarshalLabels(data string) ([]string, error) {
	var out []string
	if err := json.Unmarshal([]byte(data), &out); err != nil {
		return nil, fmt.Errorf("unmarshal columns: %w", err)
	}
	return out, nil
}

// datasetName renders the dataset key of a header as text.
func datasetName(info header.Record, key string) string {
	v, ok := header.ToDict(info).Get(key)
	if !ok || doc.IsNull(v) {
		return ""
	}
	return fmt.Sprint(doc.Native(v))
}
