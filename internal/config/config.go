package config

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/specialistvlad/gypcmake/internal/deps"
	"github.com/specialistvlad/gypcmake/internal/snapshot"
	"github.com/specialistvlad/gypcmake/internal/sources"
)

// DefaultGeneratedPrefix is prepended to the token to form the generated
// output root.
const DefaultGeneratedPrefix = "${CMAKE_BINARY_DIR}/generated_"

// Settings are the knobs of one translation run.
type Settings struct {
	MinimumVersion   string
	Configurations   []string
	HeaderExtensions []string
	Families         sources.Table

	// Placeholder is the generated-root spelling found in snapshots.
	Placeholder string
	// GeneratedPrefix and Token form the generated root written to output.
	GeneratedPrefix string
	Token           string

	Policy deps.Policy
}

// Default returns the built-in settings. The token is left empty; callers
// fill it with NewToken or a fixed value.
func Default() *Settings {
	return &Settings{
		MinimumVersion:   "3.8",
		Configurations:   []string{"Debug", "Release"},
		HeaderExtensions: sources.DefaultHeaders(),
		Families:         sources.DefaultTable(),
		Placeholder:      snapshot.DefaultPlaceholder,
		GeneratedPrefix:  DefaultGeneratedPrefix,
		Policy:           deps.OrderOnly,
	}
}

// NewToken returns a random 32 hex digit token.
func NewToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// GeneratedRoot is the generated-output directory every pass writes into.
func (s *Settings) GeneratedRoot() string {
	return s.GeneratedPrefix + s.Token
}

// Validate checks the settings are usable.
func (s *Settings) Validate() error {
	if s.MinimumVersion == "" {
		return fmt.Errorf("cmake_minimum_version must not be empty")
	}
	if len(s.Configurations) == 0 {
		return fmt.Errorf("at least one configuration is required")
	}
	if len(s.Families) == 0 {
		return fmt.Errorf("at least one source family is required")
	}
	for f, exts := range s.Families {
		if f == "" || strings.ContainsAny(string(f), " ()") {
			return fmt.Errorf("invalid source family name %q", f)
		}
		if len(exts) == 0 {
			return fmt.Errorf("source family %q has no extensions", f)
		}
	}
	if s.Token == "" {
		return fmt.Errorf("generated root token must not be empty")
	}
	return nil
}

// Clone returns a deep copy of s.
func (s *Settings) Clone() *Settings {
	out := *s
	out.Configurations = append([]string(nil), s.Configurations...)
	out.HeaderExtensions = append([]string(nil), s.HeaderExtensions...)
	out.Families = make(sources.Table, len(s.Families))
	for f, exts := range s.Families {
		out.Families[f] = append([]string(nil), exts...)
	}
	return &out
}
