// Package lexicon reads the list of offensive word fragments used by the censor.
//
// Important notice: test data files contain Persian insults required for
// matching tests. They are technical artifacts only.
package lexicon

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	log "github.com/sirupsen/logrus"
)

// FieldName is the list field holding the fragments in a lexicon file.
const FieldName = "swear_words"

var ErrInvalidEncoding = errors.New("lexicon file is not valid UTF-8")

// Load reads fragments from path. Any failure is logged to logger and
// an empty lexicon is returned, so the caller can always keep running.
// A nil logger means the logrus standard logger.
func Load(path string, logger log.FieldLogger) []string {
	if logger == nil {
		logger = log.StandardLogger()
	}

	words, err := LoadStrict(path)
	if err != nil {
		logger.Errorf("[lexicon] error loading swear words from %s: %v", path, err)
		return []string{}
	}

	for i, w := range words {
		if w == "" {
			logger.Warnf("[lexicon] entry %d in %s is empty and will match every token", i, path)
		}
	}
	logger.Infof("[lexicon] loaded %d swear words from %s", len(words), path)

	return words
}

// LoadStrict is like Load but returns the error instead of degrading to an
// empty lexicon. Files ending in .toml are decoded as TOML, everything else as JSON.
func LoadStrict(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	format := "json"
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		format = "toml"
	}

	return Parse(data, format)
}

// Parse decodes a lexicon document in the given format ("json" or "toml").
// A document without the swear_words field yields an empty, non-nil slice.
func Parse(data []byte, format string) ([]string, error) {
	if !utf8.Valid(data) {
		return nil, ErrInvalidEncoding
	}

	var (
		words []string
		err   error
	)
	switch format {
	case "json":
		words, err = parseJSON(data)
	case "toml":
		words, err = parseTOML(data)
	default:
		return nil, fmt.Errorf("unsupported lexicon format %q", format)
	}
	if err != nil {
		return nil, err
	}

	if words == nil {
		return []string{}, nil
	}
	return words, nil
}

// The field is matched by its exact, case-sensitive name.
func parseJSON(data []byte) ([]string, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode json: %w", err)
	}

	raw, ok := doc[FieldName]
	if !ok {
		return nil, nil
	}

	var words []string
	if err := json.Unmarshal(raw, &words); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", FieldName, err)
	}
	return words, nil
}

func parseTOML(data []byte) ([]string, error) {
	var doc map[string]toml.Primitive
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, fmt.Errorf("failed to decode toml: %w", err)
	}

	prim, ok := doc[FieldName]
	if !ok {
		return nil, nil
	}

	var words []string
	if err := md.PrimitiveDecode(prim, &words); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", FieldName, err)
	}
	return words, nil
}
