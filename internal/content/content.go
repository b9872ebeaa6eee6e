// Package content loads idea board exercise content files.
//
// A content file is JSON or YAML:
//
//	id: brainstorm-101
//	library: H5P.IdeaBoardExercise 1.3
//	version: "1.3"
//	title: Brainstorm
//	language: en
//	params:
//	  boards: [...]
//
// Loading upgrades parameters written for older versions, fills in default
// texts and validates the result against the content schema.
package content

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/ideaboard/internal/board"
)

// Library is the exercise's machine name.
const Library = "H5P.IdeaBoardExercise"

// ErrNoBoards is returned for content without boards.
var ErrNoBoards = errors.New("content has no boards")

// Content is a loaded content file.
type Content struct {
	ID       string `json:"id"`
	Library  string `json:"library"`
	Version  string `json:"version"`
	Title    string `json:"title"`
	Language string `json:"language"`
	Params   Params `json:"params"`
}

// Params are the exercise parameters.
type Params struct {
	Header             string             `json:"header,omitempty"`
	Boards             []board.Params     `json:"boards"`
	AddSummaryScreen   bool               `json:"addSummaryScreen"`
	SummaryScreenGroup SummaryScreenGroup `json:"summaryScreenGroup"`
	L10n               map[string]string  `json:"l10n"`
	A11y               map[string]string  `json:"a11y"`
}

// SummaryScreenGroup wraps the summary screen.
type SummaryScreenGroup struct {
	SummaryScreen SummaryScreen `json:"summaryScreen"`
}

// SummaryScreen is the optional view shown after the last board.
type SummaryScreen struct {
	Title string `json:"title,omitempty"`
	Text  string `json:"text,omitempty"`
}

// Summary returns the summary screen, or nil if none is configured.
func (p Params) Summary() *SummaryScreen {
	if !p.AddSummaryScreen {
		return nil
	}
	s := p.SummaryScreenGroup.SummaryScreen
	return &s
}

// Dictionary returns the l10n and a11y texts.
func (c *Content) Dictionary() Dictionary {
	return NewDictionary(c.Params.L10n, c.Params.A11y)
}

// Load reads, upgrades, completes and validates the content file at path.
func Load(path string) (*Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}

	c, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if c.ID == "" {
		c.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return c, nil
}

// Parse decodes content from data. ext selects the format: ".yaml" and
// ".yml" are YAML, anything else is JSON.
func Parse(data []byte, ext string) (*Content, error) {
	var doc map[string]any
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse content yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse content json: %w", err)
		}
	}
	if doc == nil {
		return nil, fmt.Errorf("parse content: empty document")
	}

	if err := Upgrade(doc); err != nil {
		return nil, err
	}

	params, _ := doc["params"].(map[string]any)
	if params == nil {
		params = map[string]any{}
	}
	doc["params"] = mergeDefaults(params, Defaults())

	if err := Validate(doc); err != nil {
		return nil, err
	}

	// Round-trip the generic document into the typed form.
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode content: %w", err)
	}
	var c Content
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}

	if len(c.Params.Boards) == 0 {
		return nil, ErrNoBoards
	}
	return &c, nil
}

// mergeDefaults fills missing keys of dst from defaults, recursing into
// nested objects. Values present in dst always win.
func mergeDefaults(dst, defaults map[string]any) map[string]any {
	for k, dv := range defaults {
		cur, ok := dst[k]
		if !ok || cur == nil {
			dst[k] = dv
			continue
		}
		curMap, okCur := cur.(map[string]any)
		defMap, okDef := dv.(map[string]any)
		if okCur && okDef {
			dst[k] = mergeDefaults(curMap, defMap)
		}
	}
	return dst
}
