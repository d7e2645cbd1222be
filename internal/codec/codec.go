// Package codec wraps YAML and TOML decoding to isolate the external
// dependencies. Callers never import the underlying libraries directly.
package codec

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
)

// MaxInputSize limits configuration input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("codec: nil or empty data")
	ErrNilDestination = errors.New("codec: nil destination pointer")
	ErrInputTooLarge  = errors.New("codec: input exceeds maximum size")
)

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// UnmarshalYAMLStrict decodes YAML into v and rejects unknown fields.
func UnmarshalYAMLStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("codec: yaml: %w", err)
	}
	return nil
}

// UnmarshalTOML decodes TOML into v. Tables v does not describe are
// ignored, since book.toml also carries settings for other tools.
// The keys left undecoded are returned for diagnostics.
func UnmarshalTOML(data []byte, v any) ([]string, error) {
	if err := validateInput(data, v); err != nil {
		return nil, err
	}
	md, err := toml.Decode(string(data), v)
	if err != nil {
		return nil, fmt.Errorf("codec: toml: %w", err)
	}
	undecoded := md.Undecoded()
	keys := make([]string, 0, len(undecoded))
	for _, k := range undecoded {
		keys = append(keys, k.String())
	}
	return keys, nil
}
