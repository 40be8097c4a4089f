// ============================================================================
// mini - Formula Engine Tools
// ============================================================================
//
// Package:     datasource
// Description: Loads tabular data into matrices for the engine's data cell
// Author:      msto63
// Created:     2025-10-18
// License:     MIT
// ============================================================================

package datasource

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/substance/expression/foundation/core/error"
	"github.com/substance/expression/foundation/formula/value"
	"github.com/substance/expression/foundation/utils/filex"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Format identifies a file encoding
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DetectFormat derives the format from the file extension
func DetectFormat(path string) (Format, error) {
	switch ext := filex.Ext(path); ext {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", mdwerror.Newf("unsupported data file extension %q", ext).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("datasource.DetectFormat").
			WithDetail("path", path)
	}
}

// Load reads a matrix from a .csv, .json, .yaml or .yml file
func Load(path string) (value.Matrix, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		code := mdwerror.CodeInternal
		if os.IsNotExist(err) {
			code = mdwerror.CodeNotFound
		}
		return nil, mdwerror.Wrap(err, "cannot open data file").
			WithCode(code).
			WithOperation("datasource.Load").
			WithDetail("path", path)
	}
	defer f.Close()

	m, err := Decode(f, format)
	if err != nil {
		if e, ok := err.(*mdwerror.Error); ok {
			return nil, e.WithDetail("path", path)
		}
		return nil, err
	}
	return m, nil
}

// Decode reads a matrix in the given format from r
func Decode(r io.Reader, format Format) (value.Matrix, error) {
	switch format {
	case FormatCSV:
		return decodeCSV(r)
	case FormatJSON:
		var rows [][]interface{}
		if err := json.NewDecoder(r).Decode(&rows); err != nil {
			return nil, decodeError(err, format)
		}
		return toMatrix(rows)
	case FormatYAML:
		var rows [][]interface{}
		if err := yaml.NewDecoder(r).Decode(&rows); err != nil && err != io.EOF {
			return nil, decodeError(err, format)
		}
		return toMatrix(rows)
	default:
		return nil, mdwerror.Newf("unsupported data format %q", format).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("datasource.Decode")
	}
}

// decodeCSV converts numeric fields to numbers, empty fields to null and
// keeps everything else as text
func decodeCSV(r io.Reader) (value.Matrix, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, decodeError(err, FormatCSV)
	}

	m := make(value.Matrix, len(records))
	for i, record := range records {
		row := make([]value.Value, len(record))
		for j, field := range record {
			row[j] = parseField(field)
		}
		m[i] = row
	}
	return m, nil
}

func parseField(field string) value.Value {
	field = strings.TrimSpace(field)
	if field == "" {
		return nil
	}
	if n, err := strconv.ParseFloat(field, 64); err == nil {
		return n
	}
	switch strings.ToLower(field) {
	case "true":
		return true
	case "false":
		return false
	}
	return field
}

func toMatrix(rows [][]interface{}) (value.Matrix, error) {
	m := make(value.Matrix, len(rows))
	for i, row := range rows {
		cells := make([]value.Value, len(row))
		for j, cell := range row {
			cells[j] = value.Normalize(cell)
		}
		m[i] = cells
	}
	return m, nil
}

func decodeError(err error, format Format) error {
	return mdwerror.Wrap(err, "cannot decode data").
		WithCode(mdwerror.CodeInvalidInput).
		WithOperation("datasource.Decode").
		WithDetail("format", string(format))
}
