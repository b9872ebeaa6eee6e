package content

import (
	_ "embed"
	"fmt"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed content.schema.json
var contentSchema []byte

const contentSchemaURL = "schema://ideaboard-content.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// ErrInvalidContent reports content that does not match the content schema.
type ErrInvalidContent struct {
	Err error
}

func (e *ErrInvalidContent) Error() string {
	return fmt.Sprintf("invalid content: %v", e.Err)
}

func (e *ErrInvalidContent) Unwrap() error { return e.Err }

// Validate checks a generic content document against the content schema.
func Validate(doc map[string]any) error {
	schema, err := contentValidator()
	if err != nil {
		return err
	}

	// The validator wants plain JSON values; YAML decodes numbers as ints.
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal content: %w", err)
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("parse content: %w", err)
	}

	if err := schema.Validate(parsed); err != nil {
		return &ErrInvalidContent{Err: err}
	}
	return nil
}

func contentValidator() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var doc any
		if err := json.Unmarshal(contentSchema, &doc); err != nil {
			compileErr = fmt.Errorf("parse content schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(contentSchemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(contentSchemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("compile: %w", compileErr)
		}
	})
	return compiled, compileErr
}
