package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// FormID identifies a base item type.
type FormID uint32

// NoForm is the zero FormID; it never names a real item.
const NoForm FormID = 0

// String formats the id as eight hex digits.
func (id FormID) String() string {
	return fmt.Sprintf("%08X", uint32(id))
}

// ParseFormID parses "0x0001A2B3", "0001A2B3" or a plain decimal string.
// Hex is assumed for a 0x prefix, any hex letter, or exactly eight digits.
func ParseFormID(s string) (FormID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return NoForm, nil
	}
	lower := strings.ToLower(s)
	base := 10
	if strings.HasPrefix(lower, "0x") {
		lower = lower[2:]
		base = 16
	} else if strings.ContainsAny(lower, "abcdef") || len(lower) == 8 {
		base = 16
	}
	v, err := strconv.ParseUint(lower, base, 32)
	if err != nil {
		return NoForm, fmt.Errorf("parse form id %q: %w", s, err)
	}
	return FormID(v), nil
}

// InstanceID is a stable handle for one inventory stack.
type InstanceID = uuid.UUID

// NoInstance is the zero InstanceID.
var NoInstance = uuid.Nil

// NewInstanceID returns a fresh instance handle.
func NewInstanceID() InstanceID {
	return uuid.New()
}

// Ref pairs a base item with one specific inventory instance.
// A Ref with a zero Instance refers to "any instance of Base".
type Ref struct {
	Base     FormID
	Instance InstanceID
}

// IsZero reports whether the ref names no item.
func (r Ref) IsZero() bool {
	return r.Base == NoForm
}

// Same reports whether both refs name the same base and instance.
func (r Ref) Same(o Ref) bool {
	return r.Base == o.Base && r.Instance == o.Instance
}

// String returns "base/instance" for logging.
func (r Ref) String() string {
	if r.IsZero() {
		return "none"
	}
	if r.Instance == NoInstance {
		return r.Base.String()
	}
	return r.Base.String() + "/" + r.Instance.String()[:8]
}
