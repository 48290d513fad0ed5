// File: lixenwraith/objconfig/io.go
package objconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadDefaultsFile reads a TOML, JSON or YAML file into a flat mapping of
// dashed keys suitable for Node.WithDefaults. Nested tables are joined with
// "-", so [model.encoder] batch_size = 16 yields "model-encoder-batch_size".
// A missing file returns an error wrapping ErrDefaultsNotFound.
func LoadDefaultsFile(path string) (map[string]any, error) {
	fileData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDefaultsNotFound, path)
		}
		return nil, fmt.Errorf("failed to read defaults file '%s': %w", path, err)
	}

	// Try extension first, then content
	format := detectFileFormat(path)
	if format == "" {
		format = detectFormatFromContent(fileData)
	}

	fileConfig := make(map[string]any)
	switch format {
	case "toml":
		if err := toml.Unmarshal(fileData, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse TOML defaults file '%s': %w", path, err)
		}
	case "json":
		decoder := json.NewDecoder(bytes.NewReader(fileData))
		decoder.UseNumber() // Preserve number precision
		if err := decoder.Decode(&fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse JSON defaults file '%s': %w", path, err)
		}
	case "yaml":
		if err := yaml.Unmarshal(fileData, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse YAML defaults file '%s': %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unable to determine format of defaults file '%s'", path)
	}

	flat := flattenMap(fileConfig, "")
	for key := range flat {
		if !isValidFlagName(key) {
			return nil, fmt.Errorf("invalid key %q in defaults file '%s'", key, path)
		}
	}
	return flat, nil
}

// SaveHyperparameters writes the report to path atomically. The format
// follows the extension (.json, .yaml/.yml, anything else TOML).
func SaveHyperparameters(hp Hyperparameters, path string) error {
	var buf bytes.Buffer
	var err error
	switch detectFileFormat(path) {
	case "json":
		err = hp.WriteJSON(&buf)
	case "yaml":
		err = hp.WriteYAML(&buf)
	default:
		err = hp.WriteTOML(&buf)
	}
	if err != nil {
		return err
	}
	return atomicWriteFile(path, buf.Bytes())
}

// detectFileFormat determines the format from the file extension
func detectFileFormat(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml", ".tml":
		return "toml"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return ""
	}
}

// detectFormatFromContent attempts to detect format by parsing
func detectFormatFromContent(data []byte) string {
	// Try JSON first (strict format)
	var jsonTest map[string]any
	if err := json.Unmarshal(data, &jsonTest); err == nil {
		return "json"
	}

	// TOML before YAML, since "key = value" lines also parse as a YAML scalar
	var tomlTest map[string]any
	if err := toml.Unmarshal(data, &tomlTest); err == nil {
		return "toml"
	}

	var yamlTest map[string]any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		return "yaml"
	}

	return ""
}

// atomicWriteFile performs atomic file write
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	tempPath := tempFile.Name()
	defer os.Remove(tempPath) // Clean up on any error

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}
