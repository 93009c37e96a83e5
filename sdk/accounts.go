package sdk

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// ErrAccountDiscriminator is returned when account data does not start with
// the expected account discriminator.
var ErrAccountDiscriminator = errors.New("account discriminator mismatch")

// Account type names as declared by the program.
const (
	AccountProfile = "Profile"
	AccountPointer = "Pointer"
)

var (
	profileDiscriminator = AccountDiscriminator(AccountProfile)
	pointerDiscriminator = AccountDiscriminator(AccountPointer)
)

// Identity is an external identity linked to a profile.
type Identity struct {
	Provider   IdentityProvider `json:"provider"`
	ProviderID string           `json:"providerId"`
	Name       string           `json:"name"`
}

// Profile is the decoded profile account.
type Profile struct {
	PublicKey   solana.PublicKey   `json:"publicKey"`
	Bump        uint8              `json:"bump"`
	Username    string             `json:"username"`
	AvatarURL   string             `json:"avatarUrl"`
	FeePayer    solana.PublicKey   `json:"feePayer"`
	Authorities []solana.PublicKey `json:"authorities"`
	Identities  []Identity         `json:"identities"`
}

// Pointer maps a provider identity to the profile that owns it.
type Pointer struct {
	PublicKey  solana.PublicKey `json:"publicKey"`
	Bump       uint8            `json:"bump"`
	Provider   IdentityProvider `json:"provider"`
	ProviderID string           `json:"providerId"`
	Profile    solana.PublicKey `json:"profile"`
}

// HasAuthority reports whether key is one of the profile's authorities.
func (p *Profile) HasAuthority(key solana.PublicKey) bool {
	for _, a := range p.Authorities {
		if a.Equals(key) {
			return true
		}
	}
	return false
}

// Identity returns the linked identity for provider/providerID, if any.
func (p *Profile) Identity(provider IdentityProvider, providerID string) (Identity, bool) {
	for _, id := range p.Identities {
		if id.Provider == provider && id.ProviderID == providerID {
			return id, true
		}
	}
	return Identity{}, false
}

func (i Identity) MarshalWithEncoder(encoder *bin.Encoder) error {
	if err := i.Provider.MarshalWithEncoder(encoder); err != nil {
		return err
	}
	if err := writeString(encoder, i.ProviderID); err != nil {
		return err
	}
	return writeString(encoder, i.Name)
}

func (i *Identity) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	if err = i.Provider.UnmarshalWithDecoder(decoder); err != nil {
		return err
	}
	if i.ProviderID, err = readString(decoder); err != nil {
		return err
	}
	i.Name, err = readString(decoder)
	return err
}

// MarshalWithEncoder writes the account body, without discriminator.
// PublicKey is not part of the on-chain layout.
func (p Profile) MarshalWithEncoder(encoder *bin.Encoder) error {
	if err := encoder.WriteUint8(p.Bump); err != nil {
		return err
	}
	if err := writeString(encoder, p.Username); err != nil {
		return err
	}
	if err := writeString(encoder, p.AvatarURL); err != nil {
		return err
	}
	if err := writePublicKey(encoder, p.FeePayer); err != nil {
		return err
	}
	if err := writePublicKeys(encoder, p.Authorities); err != nil {
		return err
	}
	if err := encoder.WriteUint32(uint32(len(p.Identities)), binary.LittleEndian); err != nil {
		return err
	}
	for _, identity := range p.Identities {
		if err := identity.MarshalWithEncoder(encoder); err != nil {
			return err
		}
	}
	return nil
}

func (p *Profile) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	if p.Bump, err = decoder.ReadUint8(); err != nil {
		return fmt.Errorf("bump: %w", err)
	}
	if p.Username, err = readString(decoder); err != nil {
		return fmt.Errorf("username: %w", err)
	}
	if p.AvatarURL, err = readString(decoder); err != nil {
		return fmt.Errorf("avatar url: %w", err)
	}
	if p.FeePayer, err = readPublicKey(decoder); err != nil {
		return fmt.Errorf("fee payer: %w", err)
	}
	if p.Authorities, err = readPublicKeys(decoder); err != nil {
		return fmt.Errorf("authorities: %w", err)
	}

	n, err := decoder.ReadUint32(binary.LittleEndian)
	if err != nil {
		return fmt.Errorf("identities: %w", err)
	}
	p.Identities = make([]Identity, 0, capHint(n))
	for i := uint32(0); i < n; i++ {
		var identity Identity
		if err := identity.UnmarshalWithDecoder(decoder); err != nil {
			return fmt.Errorf("identity %d: %w", i, err)
		}
		p.Identities = append(p.Identities, identity)
	}
	return nil
}

func (p Pointer) MarshalWithEncoder(encoder *bin.Encoder) error {
	if err := encoder.WriteUint8(p.Bump); err != nil {
		return err
	}
	if err := p.Provider.MarshalWithEncoder(encoder); err != nil {
		return err
	}
	if err := writeString(encoder, p.ProviderID); err != nil {
		return err
	}
	return writePublicKey(encoder, p.Profile)
}

func (p *Pointer) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	if p.Bump, err = decoder.ReadUint8(); err != nil {
		return fmt.Errorf("bump: %w", err)
	}
	if err = p.Provider.UnmarshalWithDecoder(decoder); err != nil {
		return fmt.Errorf("provider: %w", err)
	}
	if p.ProviderID, err = readString(decoder); err != nil {
		return fmt.Errorf("provider id: %w", err)
	}
	if p.Profile, err = readPublicKey(decoder); err != nil {
		return fmt.Errorf("profile: %w", err)
	}
	return nil
}

// DecodeProfile decodes profile account data. The returned profile has no
// PublicKey set.
func DecodeProfile(data []byte) (*Profile, error) {
	body, err := stripDiscriminator(data, profileDiscriminator, AccountProfile)
	if err != nil {
		return nil, err
	}

	var profile Profile
	if err := profile.UnmarshalWithDecoder(bin.NewBorshDecoder(body)); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return &profile, nil
}

// DecodePointer decodes pointer account data.
func DecodePointer(data []byte) (*Pointer, error) {
	body, err := stripDiscriminator(data, pointerDiscriminator, AccountPointer)
	if err != nil {
		return nil, err
	}

	var pointer Pointer
	if err := pointer.UnmarshalWithDecoder(bin.NewBorshDecoder(body)); err != nil {
		return nil, fmt.Errorf("failed to decode pointer: %w", err)
	}
	return &pointer, nil
}

// EncodeProfileAccount produces the on-chain bytes of a profile account.
func EncodeProfileAccount(p Profile) ([]byte, error) {
	return encodeAccount(profileDiscriminator, p)
}

// EncodePointerAccount produces the on-chain bytes of a pointer account.
func EncodePointerAccount(p Pointer) ([]byte, error) {
	return encodeAccount(pointerDiscriminator, p)
}

func encodeAccount(d Discriminator, body bin.BinaryMarshaler) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(d[:])
	if err := body.MarshalWithEncoder(bin.NewBorshEncoder(buf)); err != nil {
		return nil, fmt.Errorf("failed to encode account: %w", err)
	}
	return buf.Bytes(), nil
}

func stripDiscriminator(data []byte, want Discriminator, name string) ([]byte, error) {
	if len(data) < DiscriminatorLength || !bytes.Equal(data[:DiscriminatorLength], want[:]) {
		return nil, fmt.Errorf("%w: not a %s account", ErrAccountDiscriminator, name)
	}
	return data[DiscriminatorLength:], nil
}
