package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/barbell/pkg/errors"
	"github.com/matzehuels/barbell/pkg/plates"
)

// Format is an inventory file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Document is the content of an inventory file.
type Document struct {
	Bar    float64
	Plates plates.Inventory
}

type jsonDoc struct {
	Bar    float64          `json:"bar,omitempty"`
	Plates plates.Inventory `json:"plates"`
}

type tomlDoc struct {
	Bar    float64        `toml:"bar,omitempty"`
	Plates map[string]int `toml:"plates"`
}

type yamlDoc struct {
	Bar    float64         `yaml:"bar,omitempty"`
	Plates map[float64]int `yaml:"plates"`
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown inventory file type %q (use .json, .toml, .yaml)", filepath.Ext(path))
}

// Read decodes an inventory document from r.
//
// Read does not close r. The returned inventory is validated and independent
// of r.
func Read(r io.Reader, f Format) (Document, error) {
	var doc Document
	switch f {
	case FormatJSON:
		var d jsonDoc
		if err := json.NewDecoder(r).Decode(&d); err != nil {
			return doc, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json")
		}
		doc = Document{Bar: d.Bar, Plates: d.Plates}
	case FormatTOML:
		var d tomlDoc
		if _, err := toml.NewDecoder(r).Decode(&d); err != nil {
			return doc, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode toml")
		}
		doc.Bar = d.Bar
		doc.Plates = make(plates.Inventory, len(d.Plates))
		for k, n := range d.Plates {
			den, ok := plates.ParseDenomination(k)
			if !ok {
				return doc, errors.New(errors.ErrCodeInvalidInput, "invalid plate weight %q", k)
			}
			doc.Plates[den] = n
		}
	case FormatYAML:
		var d yamlDoc
		if err := yaml.NewDecoder(r).Decode(&d); err != nil {
			return doc, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode yaml")
		}
		doc.Bar = d.Bar
		doc.Plates = make(plates.Inventory, len(d.Plates))
		for k, n := range d.Plates {
			doc.Plates[plates.Denomination(k)] = n
		}
	default:
		return doc, errors.New(errors.ErrCodeInvalidFormat, "unknown inventory format %q", f)
	}
	if doc.Plates == nil {
		doc.Plates = plates.Inventory{}
	}
	return doc, validate(doc)
}

func validate(doc Document) error {
	if err := errors.ValidateWeight("bar", doc.Bar); err != nil {
		return err
	}
	for d, n := range doc.Plates {
		if !(d > 0) || d > errors.MaxWeight {
			return errors.New(errors.ErrCodeInvalidInput, "invalid plate weight %v", float64(d))
		}
		if err := errors.ValidatePairs(d.String(), n); err != nil {
			return err
		}
	}
	return nil
}

// Write encodes doc to w.
func Write(w io.Writer, doc Document, f Format) error {
	var err error
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(jsonDoc{Bar: doc.Bar, Plates: doc.Plates})
	case FormatTOML:
		d := tomlDoc{Bar: doc.Bar, Plates: make(map[string]int, len(doc.Plates))}
		for den, n := range doc.Plates {
			d.Plates[strconv.FormatFloat(float64(den), 'f', -1, 64)] = n
		}
		err = toml.NewEncoder(w).Encode(d)
	case FormatYAML:
		d := yamlDoc{Bar: doc.Bar, Plates: make(map[float64]int, len(doc.Plates))}
		for den, n := range doc.Plates {
			d.Plates[float64(den)] = n
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(d); err == nil {
			err = enc.Close()
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown inventory format %q", f)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", f, err)
	}
	return nil
}

// Import reads an inventory file, picking the format from its extension.
func Import(path string) (Document, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return Document{}, err
	}
	file, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	doc, err := Read(file, f)
	if err != nil {
		return doc, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Export writes doc to path, picking the format from its extension.
func Export(doc Document, path string) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(file, doc, f); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
