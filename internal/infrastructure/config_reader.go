package infrastructure

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"unicode/utf8"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"tabstat/internal/domain"
)

// DefaultConfigPath is read when no --config flag is given. Its absence is
// not an error.
const DefaultConfigPath = "tabstat.yaml"

type YAMLConfigReader struct {
	logger *zap.Logger
}

func NewYAMLConfigReader(logger *zap.Logger) *YAMLConfigReader {
	return &YAMLConfigReader{logger: logger}
}

func (r *YAMLConfigReader) ReadConfig(path string) (*domain.Config, error) {
	var config domain.Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && path == DefaultConfigPath:
		r.logger.Debug("Config file not found, using defaults", zap.String("path", path))
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	// Устанавливаем значения по умолчанию
	r.setDefaults(&config)

	if utf8.RuneCountInString(config.Delimiter) != 1 {
		return nil, fmt.Errorf("delimiter must be a single character, got %q", config.Delimiter)
	}
	if !validDelimiter(DelimiterRune(&config)) {
		return nil, fmt.Errorf("delimiter %q is not allowed", config.Delimiter)
	}

	return &config, nil
}

func (r *YAMLConfigReader) setDefaults(config *domain.Config) {
	if config.LogLevel == "" {
		config.LogLevel = "warn"
	}
	if config.Delimiter == "" {
		config.Delimiter = ","
	}
	if config.Generator.Mode == "" {
		config.Generator.Mode = "triangle"
	}
	if config.Generator.Patients == 0 {
		config.Generator.Patients = 60
	}
	if config.Generator.Days == 0 {
		config.Generator.Days = 40
	}
	if config.Generator.Range == 0 {
		config.Generator.Range = 20
	}
	if config.Generator.Seed == 0 {
		config.Generator.Seed = 1
	}
}

// validDelimiter rejects runes encoding/csv cannot split on, and '#', which
// starts a comment.
func validDelimiter(r rune) bool {
	switch r {
	case '#', '"', '\r', '\n', utf8.RuneError:
		return false
	}
	return utf8.ValidRune(r)
}

// DelimiterRune returns the configured delimiter as a rune.
func DelimiterRune(config *domain.Config) rune {
	r, _ := utf8.DecodeRuneInString(config.Delimiter)
	return r
}
