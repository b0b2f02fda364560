package bank

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/calcexam/internal/answer"
)

// FormatMajor is the bank file format major version this build reads.
const FormatMajor = "v1"

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "schema://calcexam/bank.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// File is the on-disk bank layout. JSON files are read through the same
// YAML decoder.
type File struct {
	Version   string       `yaml:"version" json:"version"`
	Name      string       `yaml:"name,omitempty" json:"name,omitempty"`
	Questions []Definition `yaml:"questions" json:"questions"`
}

// LoadFile reads, validates and builds the bank at path.
func LoadFile(path string, n *answer.Normalizer) (*Bank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bank: %w", err)
	}
	defer f.Close()

	b, err := Load(f, n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if b.name == "" {
		b.name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return b, nil
}

// Load decodes a bank file from r, checks it against the bank schema and
// format version, and builds it.
func Load(r io.Reader, n *answer.Normalizer) (*Bank, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read bank: %w", err)
	}
	file, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return Build(file.Name, file.Questions, n)
}

// Decode parses and schema-checks a bank file without building it.
func Decode(data []byte) (*File, error) {
	// The schema validator wants plain JSON values, so the YAML tree is
	// round-tripped through encoding/json first.
	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("parse bank: %w", err)
	}
	jsonBytes, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("parse bank: %w", err)
	}
	var parsed any
	if err := json.Unmarshal(jsonBytes, &parsed); err != nil {
		return nil, fmt.Errorf("parse bank: %w", err)
	}

	schema, err := bankSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode bank: %w", err)
	}
	if err := checkVersion(file.Version); err != nil {
		return nil, err
	}
	return &file, nil
}

func checkVersion(v string) error {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("bank version %q is not a semantic version", v)
	}
	if major := semver.Major(v); major != FormatMajor {
		return fmt.Errorf("bank version %s is not supported (want %s.x)", v, FormatMajor)
	}
	return nil
}

func bankSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var def any
		if err := json.Unmarshal(schemaJSON, &def); err != nil {
			schemaErr = fmt.Errorf("parse bank schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, def); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// Encode writes f as YAML.
func Encode(w io.Writer, f *File) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode bank: %w", err)
	}
	return enc.Close()
}

// BuiltinFile returns the built-in bank in file form, a starting point for
// custom banks.
func BuiltinFile() *File {
	return &File{Version: FormatMajor + ".0.0", Name: BuiltinName, Questions: BuiltinDefinitions()}
}

// Schema returns the JSON Schema bank files are validated against.
func Schema() []byte {
	return append([]byte(nil), schemaJSON...)
}
