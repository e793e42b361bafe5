package artifacts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
)

// LabelEncoder holds the ordered label set of one encoded column.
type LabelEncoder struct {
	classes []string
	index   map[string]int
}

// NewLabelEncoder builds an encoder from labels, dropping repeats while keeping first-seen order.
// Labels are trimmed the same way dataset fields are, so classes always match record values.
func NewLabelEncoder(labels []string) (*LabelEncoder, error) {
	if len(labels) == 0 {
		return nil, errors.New("encoder sem classes")
	}
	enc := &LabelEncoder{index: make(map[string]int, len(labels))}
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if _, ok := enc.index[l]; ok {
			continue
		}
		enc.index[l] = len(enc.classes)
		enc.classes = append(enc.classes, l)
	}
	return enc, nil
}

// Classes returns a copy of the known labels, the equivalent of sklearn's classes_.
func (e *LabelEncoder) Classes() []string {
	return slices.Clone(e.classes)
}

func (e *LabelEncoder) Len() int { return len(e.classes) }

// Transform returns the encoded index of label.
func (e *LabelEncoder) Transform(label string) (int, bool) {
	i, ok := e.index[strings.TrimSpace(label)]
	return i, ok
}

// InverseTransform returns the label stored at index i.
func (e *LabelEncoder) InverseTransform(i int) (string, bool) {
	if i < 0 || i >= len(e.classes) {
		return "", false
	}
	return e.classes[i], true
}

// encoderDocument is the serialized form of a ready-made encoder.
type encoderDocument struct {
	Classes *[]string `json:"classes_"`
}

// parseLabelEncoder accepts either a ready-made encoder object or a bare list of labels.
func parseLabelEncoder(data []byte) (*LabelEncoder, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("arquivo vazio")
	}

	var labels []string
	switch data[0] {
	case '[':
		if err := json.Unmarshal(data, &labels); err != nil {
			return nil, fmt.Errorf("lista de classes inválida: %w", err)
		}
	case '{':
		var doc encoderDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("encoder inválido: %w", err)
		}
		if doc.Classes == nil {
			return nil, errors.New("encoder sem campo classes_")
		}
		labels = *doc.Classes
	default:
		return nil, errors.New("formato de encoder desconhecido")
	}
	return NewLabelEncoder(labels)
}

func loadLabelEncoder(path string) (*LabelEncoder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, malformed(path, err)
	}
	enc, err := parseLabelEncoder(data)
	if err != nil {
		return nil, malformed(path, err)
	}
	return enc, nil
}
