package helpers

import (
	"github.com/google/uuid"
)

// CodeGenerator produces certification codes for new accounts.
// Codes are opaque one-time tokens; uniqueness is probabilistic and never
// checked against stored codes.
type CodeGenerator interface {
	NewCode() string
}

// UUIDCodeGenerator issues random UUID strings as certification codes.
type UUIDCodeGenerator struct{}

func (UUIDCodeGenerator) NewCode() string {
	return uuid.NewString()
}
