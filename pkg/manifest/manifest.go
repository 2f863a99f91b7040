// Package manifest loads and persists the packages.json document that
// tracks package hashes for a repository.
//
// The document has a "dev" section for locally developed packages and a
// "third_party" section for packages mirrored from other repositories, both
// mapping package name to content hash. Any other top-level sections are
// carried through a load/save round trip untouched, and key order is
// preserved so that rewrites produce minimal diffs.
package manifest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/valory-xyz/bumper/pkg/constants"
	"github.com/valory-xyz/bumper/pkg/errors"
)

//go:embed schema.json
var schemaJSON string

var schema = jsonschema.MustCompileString("packages.schema.json", schemaJSON)

// Manifest is a parsed packages.json document.
type Manifest struct {
	// Dev maps locally developed package names to their hashes.
	Dev map[string]string

	// ThirdParty maps mirrored package names to their hashes. Reconciliation
	// updates this map in place.
	ThirdParty map[string]string

	path       string
	source     []byte
	sections   []string
	raw        map[string]json.RawMessage
	devOrder   []string
	thirdOrder []string
}

// Load reads and parses the manifest at the given path. A missing or
// malformed file is a fatal ManifestError.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewManifestError(path, "cannot read manifest", err)
	}
	return Parse(data, path)
}

// Parse parses manifest bytes. The path is used for error reporting and as
// the default Save destination.
func Parse(data []byte, path string) (*Manifest, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewManifestError(path, "malformed JSON document", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, errors.NewManifestError(path, "document failed schema validation", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.NewManifestError(path, "malformed JSON document", err)
	}
	sections, err := objectKeys(data)
	if err != nil {
		return nil, errors.NewManifestError(path, "cannot scan document keys", err)
	}

	m := &Manifest{
		Dev:        map[string]string{},
		ThirdParty: map[string]string{},
		path:       path,
		source:     data,
		sections:   sections,
		raw:        raw,
	}

	if devRaw, ok := raw["dev"]; ok {
		if err := json.Unmarshal(devRaw, &m.Dev); err != nil {
			return nil, errors.NewManifestError(path, "dev section is not a string map", err)
		}
		if m.devOrder, err = objectKeys(devRaw); err != nil {
			return nil, errors.NewManifestError(path, "cannot scan dev keys", err)
		}
	}

	thirdRaw := raw["third_party"]
	if err := json.Unmarshal(thirdRaw, &m.ThirdParty); err != nil {
		return nil, errors.NewManifestError(path, "third_party section is not a string map", err)
	}
	if m.thirdOrder, err = objectKeys(thirdRaw); err != nil {
		return nil, errors.NewManifestError(path, "cannot scan third_party keys", err)
	}

	return m, nil
}

// ParseDev extracts the dev section from remote manifest bytes. A document
// without a dev section yields an empty map. Unlike Parse, failures here are
// recoverable; callers skip the repository.
func ParseDev(data []byte) (map[string]string, error) {
	var doc struct {
		Dev map[string]string `json:"dev"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapParse("json", "packages.json", err)
	}
	if doc.Dev == nil {
		return map[string]string{}, nil
	}
	return doc.Dev, nil
}

// Path returns the file path this manifest was loaded from.
func (m *Manifest) Path() string {
	return m.path
}

// Source returns the bytes the manifest was parsed from.
func (m *Manifest) Source() []byte {
	return m.source
}

// ThirdPartyNames returns the third_party package names in the order they
// appear in the source file. Names added after load are appended in sorted
// order.
func (m *Manifest) ThirdPartyNames() []string {
	names := make([]string, 0, len(m.ThirdParty))
	seen := make(map[string]bool, len(m.ThirdParty))
	for _, name := range m.thirdOrder {
		if _, ok := m.ThirdParty[name]; ok && !seen[name] {
			names = append(names, name)
			seen[name] = true
		}
	}
	var extra []string
	for name := range m.ThirdParty {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}

// Save writes the manifest back to the path it was loaded from.
func (m *Manifest) Save() error {
	return m.SaveTo(m.path)
}

// SaveTo writes the manifest to the given path with stable formatting,
// creating parent directories as needed.
func (m *Manifest) SaveTo(path string) error {
	data, err := m.MarshalIndent()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return errors.WrapIO("create", dir, err)
		}
	}
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

// MarshalIndent renders the document with 4-space indentation, preserving
// the key order of the source file. Sections other than dev and
// third_party are reproduced from their original bytes.
func (m *Manifest) MarshalIndent() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, name := range m.sections {
		buf.WriteString(constants.ManifestIndent)
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteString(": ")

		var body []byte
		switch name {
		case "dev":
			body, err = encodeStringMap(m.Dev, m.devOrder)
		case "third_party":
			body, err = encodeStringMap(m.ThirdParty, m.thirdOrder)
		default:
			body, err = indentRaw(m.raw[name])
		}
		if err != nil {
			return nil, err
		}
		buf.Write(body)

		if i < len(m.sections)-1 {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
	}
	buf.WriteString("}")
	return buf.Bytes(), nil
}

// encodeStringMap renders a name to hash map as an indented JSON object.
// Keys keep their recorded order; keys added since load go last, sorted.
func encodeStringMap(values map[string]string, order []string) ([]byte, error) {
	keys := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, k := range order {
		if _, ok := values[k]; ok && !seen[k] {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	var added []string
	for k := range values {
		if !seen[k] {
			added = append(added, k)
		}
	}
	sort.Strings(added)
	keys = append(keys, added...)

	if len(keys) == 0 {
		return []byte("{}"), nil
	}

	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, k := range keys {
		buf.WriteString(constants.ManifestIndent)
		buf.WriteString(constants.ManifestIndent)
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteString(": ")
		vb, err := json.Marshal(values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
		if i < len(keys)-1 {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
	}
	buf.WriteString(constants.ManifestIndent)
	buf.WriteString("}")
	return buf.Bytes(), nil
}

// indentRaw reformats preserved section bytes at section depth.
func indentRaw(raw json.RawMessage) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, constants.ManifestIndent, constants.ManifestIndent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// objectKeys returns the top-level keys of a JSON object in source order.
func objectKeys(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("not a JSON object")
	}

	var keys []string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", keyTok)
		}
		keys = append(keys, key)
		if err := skipValue(dec); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

// skipValue consumes one JSON value from the decoder.
func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); ok && (d == '{' || d == '[') {
		depth := 1
		for depth > 0 {
			tok, err := dec.Token()
			if err != nil {
				return err
			}
			if d, ok := tok.(json.Delim); ok {
				switch d {
				case '{', '[':
					depth++
				case '}', ']':
					depth--
				}
			}
		}
	}
	return nil
}
