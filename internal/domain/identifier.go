package domain

import (
	"fmt"
	"math/big"
	"strings"
)

// Kind names one of the three lookup panels and the identifier it accepts.
type Kind int

const (
	KindServer Kind = iota
	KindChatUser
	KindPlatformUser
)

// Kinds lists every panel kind in tab order.
var Kinds = []Kind{KindServer, KindChatUser, KindPlatformUser}

func (k Kind) String() string {
	switch k {
	case KindServer:
		return "server"
	case KindChatUser:
		return "chat-user"
	case KindPlatformUser:
		return "platform-user"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// PlatformHexPrefix is the literal prefix of a platform hex id.
const PlatformHexPrefix = "steam:"

// PlatformHexExample is quoted in validation messages.
const PlatformHexExample = PlatformHexPrefix + "110000138bc2bb3"

// Identifier is a validated, normalized user input tagged with the panel
// kind it belongs to. The zero value is not a valid identifier.
type Identifier struct {
	Kind  Kind
	Value string
}

func (id Identifier) String() string { return id.Value }

// ParseServerAddress accepts any non-blank input. The remote directory is the
// real judge of address formats.
func ParseServerAddress(raw string) (Identifier, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return Identifier{}, InvalidIdentifier("server address is required")
	}
	return Identifier{Kind: KindServer, Value: v}, nil
}

// ParseUserID accepts any non-blank input.
func ParseUserID(raw string) (Identifier, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return Identifier{}, InvalidIdentifier("user id is required")
	}
	return Identifier{Kind: KindChatUser, Value: v}, nil
}

// ParsePlatformHex requires PlatformHexPrefix followed by at least one
// hexadecimal digit.
func ParsePlatformHex(raw string) (Identifier, error) {
	v := strings.TrimSpace(raw)
	digits, ok := strings.CutPrefix(v, PlatformHexPrefix)
	if !ok || digits == "" || !isHex(digits) {
		return Identifier{}, InvalidIdentifier(fmt.Sprintf("a valid platform hex id (e.g., %s) is required", PlatformHexExample))
	}
	return Identifier{Kind: KindPlatformUser, Value: v}, nil
}

// Parse dispatches to the parser for kind.
func Parse(kind Kind, raw string) (Identifier, error) {
	switch kind {
	case KindServer:
		return ParseServerAddress(raw)
	case KindChatUser:
		return ParseUserID(raw)
	case KindPlatformUser:
		return ParsePlatformHex(raw)
	default:
		return Identifier{}, InvalidIdentifier(fmt.Sprintf("unknown identifier kind %s", kind))
	}
}

// PlatformDecimal converts the hex suffix of a platform id to its exact
// decimal form. Values wider than 64 bits are handled by math/big.
func (id Identifier) PlatformDecimal() (string, error) {
	if id.Kind != KindPlatformUser {
		return "", InvalidIdentifier(fmt.Sprintf("%s identifier has no platform decimal form", id.Kind))
	}
	n, ok := new(big.Int).SetString(strings.TrimPrefix(id.Value, PlatformHexPrefix), 16)
	if !ok {
		return "", InvalidIdentifier(fmt.Sprintf("a valid platform hex id (e.g., %s) is required", PlatformHexExample))
	}
	return n.String(), nil
}

func isHex(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
