package assets

import "fmt"

// maxAssetNameLength bounds asset names; they become file names.
const maxAssetNameLength = 64

// ValidateAssetName reports whether name can be used as the base name of a
// style or template file. Only ASCII letters, digits, '-' and '_' are
// accepted, which rules out separators, traversal and extensions.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if len(name) > maxAssetNameLength {
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidAssetName, maxAssetNameLength)
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
		}
	}
	return nil
}
