package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Default session token locations, tried in order after an explicit path.
const (
	sessionEnvVar         = "ADVENT_OF_CODE_SESSION"
	sessionFileName       = "adventofcode.session"
	hiddenSessionFileName = ".adventofcode.session"
)

// errNoSession indicates no source produced a token.
var errNoSession = errors.New("session token not found in environment, home or config directory")

// sessionFileError indicates a source exists but its contents are unusable.
type sessionFileError struct {
	Source string
	Reason string
	Err    error
}

func (e *sessionFileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid session source %s: %s", e.Source, e.Err)
	}
	return fmt.Sprintf("invalid session source %s: %s", e.Source, e.Reason)
}

func (e *sessionFileError) Unwrap() error { return e.Err }

// sessionSource is one lazily-probed token location. load reports the raw
// token text and whether the source was present at all.
type sessionSource struct {
	name string
	load func() (string, bool, error)
}

// defaultSessionSources builds the probe chain: explicit file path, then the
// environment variable, then the dotfile in the home directory, then the
// file in the user config directory. An explicit path must exist.
func defaultSessionSources(explicitPath string) []sessionSource {
	var sources []sessionSource

	if explicitPath != "" {
		sources = append(sources, sessionSource{
			name: explicitPath,
			load: func() (string, bool, error) {
				data, err := os.ReadFile(explicitPath)
				if err != nil {
					return "", false, &sessionFileError{Source: explicitPath, Err: err}
				}
				return string(data), true, nil
			},
		})
	}

	sources = append(sources, sessionSource{
		name: "$" + sessionEnvVar,
		load: func() (string, bool, error) {
			v := os.Getenv(sessionEnvVar)
			return v, strings.TrimSpace(v) != "", nil
		},
	})

	for _, loc := range []struct {
		dir  func() (string, error)
		file string
	}{
		{os.UserHomeDir, hiddenSessionFileName},
		{os.UserConfigDir, sessionFileName},
	} {
		loc := loc
		sources = append(sources, sessionSource{
			name: loc.file,
			load: func() (string, bool, error) {
				dir, err := loc.dir()
				if err != nil {
					return "", false, nil
				}
				path := filepath.Join(dir, loc.file)
				data, err := os.ReadFile(path)
				if errors.Is(err, os.ErrNotExist) {
					return "", false, nil
				}
				if err != nil {
					return "", false, &sessionFileError{Source: path, Err: err}
				}
				return string(data), true, nil
			},
		})
	}

	return sources
}

// resolveSession probes sources in order and returns the first token found,
// trimmed of surrounding whitespace. A source that is present but unusable
// is terminal; it does not fall through to later sources.
func resolveSession(sources []sessionSource, log *logger) (string, error) {
	for _, src := range sources {
		raw, found, err := src.load()
		if err != nil {
			return "", err
		}
		if !found {
			continue
		}
		token, err := validateSessionToken(raw, src.name)
		if err != nil {
			return "", err
		}
		if token == "" {
			// Present but empty counts as absent.
			continue
		}
		if log != nil {
			log.debugf("session token loaded from %s", src.name)
		}
		return token, nil
	}
	return "", errNoSession
}

// validateSessionToken trims the raw source contents and enforces the
// single-line, no-whitespace token shape. One trailing newline is fine.
func validateSessionToken(raw, source string) (string, error) {
	token := strings.TrimSuffix(raw, "\n")
	token = strings.TrimSuffix(token, "\r")
	if strings.ContainsAny(token, "\n\r") {
		return "", &sessionFileError{Source: source, Reason: "token spans multiple lines"}
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", nil
	}
	if strings.ContainsAny(token, " \t") {
		return "", &sessionFileError{Source: source, Reason: "token contains whitespace"}
	}
	return token, nil
}
