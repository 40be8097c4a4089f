// File: filex.go
// Title: Core File Utilities
// Description: File checks and line reading used by configuration discovery,
//              data loading and batch evaluation.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with comprehensive file utilities
// - 2025-10-18 v0.2.0: Reduced to existence checks and line reading

package filex

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	mdwerror "github.com/substance/expression/foundation/core/error"
)

// Exists checks if a file or directory exists
func Exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

// IsFile checks if the path exists and is a regular file
func IsFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// Ext returns the lower-cased extension of path without the leading dot
func Ext(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// ReadLines reads all lines of a file
func ReadLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, openError(path, err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, mdwerror.Wrap(err, "error reading lines").
			WithCode(mdwerror.CodeInternal).
			WithOperation("filex.ReadLines").
			WithDetail("path", path)
	}
	return lines, nil
}

// ReadStatements reads the non-blank lines of a file, skipping lines
// starting with '#'
func ReadStatements(path string) ([]string, error) {
	lines, err := ReadLines(path)
	if err != nil {
		return nil, err
	}
	out := lines[:0]
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		out = append(out, trimmed)
	}
	return out, nil
}

func openError(path string, err error) error {
	code := mdwerror.CodeInternal
	if errors.Is(err, fs.ErrNotExist) {
		code = mdwerror.CodeNotFound
	}
	return mdwerror.Wrap(err, "failed to open file").
		WithCode(code).
		WithOperation("filex.ReadLines").
		WithDetail("path", path)
}
