// SPDX-License-Identifier: Apache-2.0

package wikitext

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
	"github.com/goccy/go-yaml"
)

//go:embed vocab.yaml
var vocabYAML []byte

//go:embed vocab.cue
var vocabSchema string

// WordList is an allow/deny pair of exact names.
type WordList struct {
	Allow []string `yaml:"allow"`
	Deny  []string `yaml:"deny"`
}

// Vocabulary is the fixed heading and template vocabulary the structure
// reports filter through. It is configuration data, not classification
// logic: Classify never consults it.
type Vocabulary struct {
	Headings  WordList `yaml:"headings"`
	Templates WordList `yaml:"templates"`
}

// Allowed reports whether name is on the allow list.
func (l WordList) Allowed(name string) bool { return contains(l.Allow, name) }

// Denied reports whether name is on the deny list. Entries ending in ':'
// are namespace prefixes ("R:", "RQ:") and deny every name under them.
func (l WordList) Denied(name string) bool {
	for _, s := range l.Deny {
		if s == name {
			return true
		}
		if strings.HasSuffix(s, ":") && strings.HasPrefix(name, s) {
			return true
		}
	}
	return false
}

func contains(list []string, name string) bool {
	for _, s := range list {
		if s == name {
			return true
		}
	}
	return false
}

var loadVocab = sync.OnceValues(func() (*Vocabulary, error) {
	schema := cuecontext.New().CompileString(vocabSchema)
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("wikitext: compile vocabulary schema: %w", err)
	}
	if err := cueyaml.Validate(vocabYAML, schema); err != nil {
		return nil, fmt.Errorf("wikitext: validate vocabulary: %w", err)
	}

	var v Vocabulary
	if err := yaml.Unmarshal(vocabYAML, &v); err != nil {
		return nil, fmt.Errorf("wikitext: unmarshal vocabulary: %w", err)
	}
	return &v, nil
})

// LoadVocabulary returns the embedded vocabulary, validated against its
// schema. The result is computed once and shared; callers must not mutate
// it.
func LoadVocabulary() (*Vocabulary, error) {
	return loadVocab()
}
