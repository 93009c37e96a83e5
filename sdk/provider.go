package sdk

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	bin "github.com/gagliardetto/binary"
)

// ErrUnknownProvider is returned for identity providers the program does not define.
var ErrUnknownProvider = errors.New("unknown provider")

// IdentityProvider is the on-chain identity provider enum. The numeric value
// is the Borsh variant index.
type IdentityProvider uint8

const (
	ProviderDiscord IdentityProvider = iota
	ProviderSolana
)

var providerNames = map[IdentityProvider]string{
	ProviderDiscord: "Discord",
	ProviderSolana:  "Solana",
}

// IdentityProviders lists every known provider in variant order.
func IdentityProviders() []IdentityProvider {
	return []IdentityProvider{ProviderDiscord, ProviderSolana}
}

// ProviderVariant is the Anchor JSON form of an enum value: a single key
// holding the lower-cased variant name, e.g. {"solana": {}}.
type ProviderVariant map[string]struct{}

// String returns the variant name.
func (p IdentityProvider) String() string {
	if name, ok := providerNames[p]; ok {
		return name
	}
	return fmt.Sprintf("IdentityProvider(%d)", uint8(p))
}

// Valid reports whether p is a known variant.
func (p IdentityProvider) Valid() bool {
	_, ok := providerNames[p]
	return ok
}

// ParseIdentityProvider matches a provider name case-insensitively.
func ParseIdentityProvider(name string) (IdentityProvider, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, p := range IdentityProviders() {
		if strings.ToLower(providerNames[p]) == key {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
}

// ConvertFromIdentityProvider encodes p into its Anchor enum form.
func ConvertFromIdentityProvider(p IdentityProvider) (ProviderVariant, error) {
	name, ok := providerNames[p]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, p)
	}
	return ProviderVariant{strings.ToLower(name): {}}, nil
}

// ConvertToIdentityProvider decodes an Anchor enum value. Only the first key
// (in sorted order) is considered.
func ConvertToIdentityProvider(v ProviderVariant) (IdentityProvider, error) {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return 0, fmt.Errorf("%w: <empty>", ErrUnknownProvider)
	}
	sort.Strings(keys)

	for _, p := range IdentityProviders() {
		if strings.ToLower(providerNames[p]) == keys[0] {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownProvider, keys[0])
}

// MarshalText renders the variant name, so JSON output shows "Solana"
// rather than a number.
func (p IdentityProvider) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownProvider, uint8(p))
	}
	return []byte(providerNames[p]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *IdentityProvider) UnmarshalText(text []byte) error {
	parsed, err := ParseIdentityProvider(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// MarshalWithEncoder writes the Borsh variant index.
func (p IdentityProvider) MarshalWithEncoder(encoder *bin.Encoder) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownProvider, uint8(p))
	}
	return encoder.WriteUint8(uint8(p))
}

// UnmarshalWithDecoder reads the Borsh variant index.
func (p *IdentityProvider) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	v, err := decoder.ReadUint8()
	if err != nil {
		return err
	}
	parsed := IdentityProvider(v)
	if !parsed.Valid() {
		return fmt.Errorf("%w: variant %d", ErrUnknownProvider, v)
	}
	*p = parsed
	return nil
}

// seed is the PDA seed for the provider.
func (p IdentityProvider) seed() []byte {
	return []byte(strings.ToLower(providerNames[p]))
}
