package query

import (
	"fmt"
	"strings"
)

// VariableSigil starts every variable name
const VariableSigil = '?'

// ParseVariable validates a variable name such as "?x" and returns it without the sigil
func ParseVariable(name string) (string, error) {
	if len(name) < 2 || name[0] != VariableSigil {
		return "", fmt.Errorf("%w: %q", ErrInvalidVariableName, name)
	}
	bare := name[1:]
	if bare[0] == VariableSigil || strings.ContainsAny(bare, " \t\r\n") {
		return "", fmt.Errorf("%w: %q", ErrInvalidVariableName, name)
	}
	return bare, nil
}

// IsVariable reports whether s uses variable syntax
func IsVariable(s string) bool {
	return len(s) > 0 && s[0] == VariableSigil
}
