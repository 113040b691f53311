package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"snakeidle/internal/models"
)

//go:embed versions.schema.json
var schemaJSON []byte

const schemaURL = "versions.schema.json"

// Problem is one finding from Check.
type Problem struct {
	Version string
	Message string
}

func (p Problem) String() string {
	if p.Version == "" {
		return p.Message
	}
	return fmt.Sprintf("%s: %s", p.Version, p.Message)
}

func compileSchema() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("parse catalog schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("add catalog schema: %w", err)
	}
	return c.Compile(schemaURL)
}

// ValidateDocument checks raw catalog bytes against the embedded schema.
func ValidateDocument(data []byte) error {
	sch, err := compileSchema()
	if err != nil {
		return err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCatalogUnreadable, err)
	}
	return sch.Validate(inst)
}

// Check validates the catalog file at s.Path() and reports schema violations,
// duplicate version ids and records whose artifact is not in downloadsDir.
// A missing catalog file has no problems. The error is non-nil only when the
// check itself could not run.
func (s *Store) Check(downloadsDir string) ([]Problem, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, &UnreadableError{Path: s.path, Err: err}
	}

	if err := ValidateDocument(data); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) && !errors.Is(err, ErrCatalogUnreadable) {
			return nil, err
		}
		// records past a schema failure are not checked
		return []Problem{{Message: err.Error()}}, nil
	}

	records, err := s.Load()
	if err != nil {
		return []Problem{{Message: err.Error()}}, nil
	}

	var problems []Problem
	seen := make(map[string]int, len(records))
	for _, r := range records {
		seen[r.Version]++
		if seen[r.Version] == 2 {
			problems = append(problems, Problem{Version: r.Version, Message: "duplicate version id"})
		}
		if _, err := Resolve(r.Version, []models.VersionRecord{r}, downloadsDir); err != nil {
			problems = append(problems, Problem{Version: r.Version, Message: err.Error()})
		}
	}
	return problems, nil
}
