package moveup

import (
	"regexp"

	"github.com/moveup-labs/moveup-go-sdk/model/bcs"
)

var identifierPattern = regexp.MustCompile(`^(?:[a-zA-Z][a-zA-Z0-9_]*|_[a-zA-Z0-9_]+)$`)

// Identifier is a Move module, function, struct or field name.
type Identifier string

// NewIdentifier validates s against the Move naming grammar.
func NewIdentifier(s string) (Identifier, error) {
	if !identifierPattern.MatchString(s) {
		return "", NewValidationErr(InvalidIdentifier, "%q", s)
	}
	return Identifier(s), nil
}

func (i Identifier) String() string {
	return string(i)
}

func (i Identifier) Serialize(s *bcs.Serializer) {
	s.Str(string(i))
}

// DeserializeIdentifier reads an identifier as written by the chain. Names read
// from the wire are not re-validated.
func DeserializeIdentifier(d *bcs.Deserializer) (Identifier, error) {
	s, err := d.Str()
	if err != nil {
		return "", err
	}
	return Identifier(s), nil
}
