package sdk

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// Instruction names as declared by the program.
const (
	InstructionAddAuthority    = "add_authority"
	InstructionAddIdentity     = "add_identity"
	InstructionCreateProfile   = "create_profile"
	InstructionRemoveAuthority = "remove_authority"
	InstructionRemoveIdentity  = "remove_identity"
	InstructionUpdateAvatarURL = "update_avatar_url"
)

type addAuthorityArgs struct {
	NewAuthority solana.PublicKey
}

func (a addAuthorityArgs) MarshalWithEncoder(encoder *bin.Encoder) error {
	return writePublicKey(encoder, a.NewAuthority)
}

type addIdentityArgs struct {
	Provider   IdentityProvider
	ProviderID string
	Nickname   string
}

func (a addIdentityArgs) MarshalWithEncoder(encoder *bin.Encoder) error {
	if err := a.Provider.MarshalWithEncoder(encoder); err != nil {
		return err
	}
	if err := writeString(encoder, a.ProviderID); err != nil {
		return err
	}
	return writeString(encoder, a.Nickname)
}

type createProfileArgs struct {
	Username  string
	AvatarURL string
}

func (a createProfileArgs) MarshalWithEncoder(encoder *bin.Encoder) error {
	if err := writeString(encoder, a.Username); err != nil {
		return err
	}
	return writeString(encoder, a.AvatarURL)
}

type removeAuthorityArgs struct {
	AuthorityToRemove solana.PublicKey
}

func (a removeAuthorityArgs) MarshalWithEncoder(encoder *bin.Encoder) error {
	return writePublicKey(encoder, a.AuthorityToRemove)
}

type removeIdentityArgs struct {
	ProviderID string
}

func (a removeIdentityArgs) MarshalWithEncoder(encoder *bin.Encoder) error {
	return writeString(encoder, a.ProviderID)
}

type updateAvatarURLArgs struct {
	NewAvatarURL string
	Authority    solana.PublicKey
}

func (a updateAvatarURLArgs) MarshalWithEncoder(encoder *bin.Encoder) error {
	if err := writeString(encoder, a.NewAvatarURL); err != nil {
		return err
	}
	return writePublicKey(encoder, a.Authority)
}

// encodeInstructionData prefixes the Borsh-encoded args with the
// instruction discriminator.
func encodeInstructionData(name string, args bin.BinaryMarshaler) ([]byte, error) {
	d := InstructionDiscriminator(name)

	buf := new(bytes.Buffer)
	buf.Write(d[:])
	if err := args.MarshalWithEncoder(bin.NewBorshEncoder(buf)); err != nil {
		return nil, fmt.Errorf("failed to encode %s args: %w", name, err)
	}
	return buf.Bytes(), nil
}

func newInstruction(programID solana.PublicKey, name string, args bin.BinaryMarshaler, accounts ...*solana.AccountMeta) (solana.Instruction, error) {
	data, err := encodeInstructionData(name, args)
	if err != nil {
		return nil, err
	}
	return solana.NewInstruction(programID, solana.AccountMetaSlice(accounts), data), nil
}

func signer(key solana.PublicKey) *solana.AccountMeta {
	return solana.NewAccountMeta(key, false, true)
}

func payer(key solana.PublicKey) *solana.AccountMeta {
	return solana.NewAccountMeta(key, true, true)
}

func writable(key solana.PublicKey) *solana.AccountMeta {
	return solana.NewAccountMeta(key, true, false)
}

func readonly(key solana.PublicKey) *solana.AccountMeta {
	return solana.NewAccountMeta(key, false, false)
}
