package question

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/listenup/internal/answer"
)

// SupportedMajor is the bank format major version this build understands.
const SupportedMajor = "v1"

var (
	ErrInvalidBank       = errors.New("invalid question bank")
	ErrUnsupportedFormat = errors.New("unsupported question bank format")
)

// Format is the encoding of a bank document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

//go:embed bank/default.json
var bankFS embed.FS

// document is the on-disk shape of a question bank.
type document struct {
	Format    string     `json:"format"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Default returns the built-in question bank.
func Default() (*Bank, error) {
	data, err := bankFS.ReadFile("bank/default.json")
	if err != nil {
		return nil, fmt.Errorf("read embedded bank: %w", err)
	}
	return Parse(data, FormatJSON)
}

// FormatForPath picks the document format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%w: unknown extension %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// LoadFile reads and validates a question bank from a JSON or YAML file.
func LoadFile(path string) (*Bank, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank: %w", err)
	}
	bank, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return bank, nil
}

// Parse decodes a bank document, validates it against the bank schema,
// checks the format version and runs semantic checks on the questions.
func Parse(data []byte, format Format) (*Bank, error) {
	if format == FormatYAML {
		converted, err := yamlToJSON(data)
		if err != nil {
			return nil, err
		}
		data = converted
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %w", ErrInvalidBank, err)
	}
	if err := validateDocument(raw); err != nil {
		return nil, err
	}

	var doc document
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrInvalidBank, err)
	}

	if !semver.IsValid(doc.Format) || semver.Major(doc.Format) != SupportedMajor {
		return nil, fmt.Errorf("%w: %q (want %s.x)", ErrUnsupportedFormat, doc.Format, SupportedMajor)
	}

	if err := checkQuestions(doc.Questions); err != nil {
		return nil, err
	}

	return NewBank(doc.Title, doc.Questions), nil
}

// checkQuestions enforces the rules a schema cannot express.
func checkQuestions(qs []Question) error {
	seen := make(map[int]bool, len(qs))
	for i, q := range qs {
		if seen[q.ID] {
			return fmt.Errorf("%w: question #%d: duplicate id %d", ErrInvalidBank, i+1, q.ID)
		}
		seen[q.ID] = true

		if q.Type != TypeMultipleChoice {
			continue
		}
		if len(q.Options) == 0 {
			return fmt.Errorf("%w: question %d: multiple choice without options", ErrInvalidBank, q.ID)
		}
		found := false
		for _, opt := range q.Options {
			if answer.Match(opt, q.CorrectAnswer) {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: question %d: correct answer %q is not an option", ErrInvalidBank, q.ID, q.CorrectAnswer)
		}
	}
	return nil
}

// yamlToJSON re-encodes a YAML document as JSON so both formats share
// one validation path.
func yamlToJSON(data []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: invalid YAML: %w", ErrInvalidBank, err)
	}
	out, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: convert YAML: %w", ErrInvalidBank, err)
	}
	return out, nil
}
