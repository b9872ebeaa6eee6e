package xapi

import (
	_ "embed"
	"fmt"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed statement.schema.json
var statementSchema []byte

const statementSchemaURL = "schema://xapi-statement.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// ErrInvalidStatement reports a statement that does not match the
// statement schema.
type ErrInvalidStatement struct {
	Verb string
	Err  error
}

func (e *ErrInvalidStatement) Error() string {
	return fmt.Sprintf("invalid %s statement: %v", e.Verb, e.Err)
}

func (e *ErrInvalidStatement) Unwrap() error { return e.Err }

// Validate checks st against the embedded statement schema.
func Validate(st Statement) error {
	schema, err := statementValidator()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal statement: %w", err)
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("parse statement: %w", err)
	}

	if err := schema.Validate(parsed); err != nil {
		return &ErrInvalidStatement{Verb: st.Verb.Short(), Err: err}
	}
	return nil
}

func statementValidator() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var doc any
		if err := json.Unmarshal(statementSchema, &doc); err != nil {
			compileErr = fmt.Errorf("parse statement schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(statementSchemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(statementSchemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("compile: %w", compileErr)
		}
	})
	return compiled, compileErr
}
