package api

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// GetLatestBlockhash gets a recent blockhash for new transactions
func (c *Client) GetLatestBlockhash(ctx context.Context) (solana.Hash, error) {
	out, err := c.rpc.GetLatestBlockhash(ctx, c.commitment)
	if err != nil {
		return solana.Hash{}, fmt.Errorf("failed to get latest blockhash: %w", err)
	}
	if out == nil || out.Value == nil {
		return solana.Hash{}, fmt.Errorf("no blockhash in response")
	}

	c.log.Debug().Str("blockhash", out.Value.Blockhash.String()).Msg("got latest blockhash")
	return out.Value.Blockhash, nil
}

// GetAccountData fetches the raw data of an account. Missing accounts
// yield ErrAccountNotFound.
func (c *Client) GetAccountData(ctx context.Context, account solana.PublicKey) ([]byte, error) {
	out, err := c.rpc.GetAccountInfoWithOpts(ctx, account, &rpc.GetAccountInfoOpts{
		Commitment: c.commitment,
		Encoding:   solana.EncodingBase64,
	})
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", account, ErrAccountNotFound)
		}
		return nil, fmt.Errorf("failed to fetch account %s: %w", account, err)
	}
	if out == nil || out.Value == nil || out.Value.Data == nil {
		return nil, fmt.Errorf("%s: %w", account, ErrAccountNotFound)
	}

	return out.Value.Data.GetBinary(), nil
}

// GetProgramAccounts lists accounts owned by program whose data starts
// with discriminator.
func (c *Client) GetProgramAccounts(ctx context.Context, program solana.PublicKey, discriminator []byte) ([]KeyedAccount, error) {
	opts := &rpc.GetProgramAccountsOpts{
		Commitment: c.commitment,
		Encoding:   solana.EncodingBase64,
	}
	if len(discriminator) > 0 {
		opts.Filters = []rpc.RPCFilter{
			{Memcmp: &rpc.RPCFilterMemcmp{Offset: 0, Bytes: solana.Base58(discriminator)}},
		}
	}

	out, err := c.rpc.GetProgramAccountsWithOpts(ctx, program, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch program accounts: %w", err)
	}

	accounts := make([]KeyedAccount, 0, len(out))
	for _, keyed := range out {
		if keyed == nil || keyed.Account == nil || keyed.Account.Data == nil {
			continue
		}
		accounts = append(accounts, KeyedAccount{
			PublicKey: keyed.Pubkey,
			Owner:     keyed.Account.Owner,
			Lamports:  keyed.Account.Lamports,
			Data:      keyed.Account.Data.GetBinary(),
		})
	}

	c.log.Debug().
		Str("program", program.String()).
		Int("count", len(accounts)).
		Msg("fetched program accounts")
	return accounts, nil
}

// GetParsedAccountInfo fetches an account with jsonParsed encoding.
func (c *Client) GetParsedAccountInfo(ctx context.Context, account solana.PublicKey) (*ParsedAccount, error) {
	out, err := c.rpc.GetAccountInfoWithOpts(ctx, account, &rpc.GetAccountInfoOpts{
		Commitment: c.commitment,
		Encoding:   solana.EncodingJSONParsed,
	})
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", account, ErrAccountNotFound)
		}
		return nil, fmt.Errorf("failed to fetch account %s: %w", account, err)
	}
	if out == nil || out.Value == nil {
		return nil, fmt.Errorf("%s: %w", account, ErrAccountNotFound)
	}

	parsed := &ParsedAccount{
		PublicKey:  account,
		Owner:      out.Value.Owner,
		Lamports:   out.Value.Lamports,
		Executable: out.Value.Executable,
	}
	if out.Value.Data != nil {
		parsed.Parsed = out.Value.Data.GetRawJSON()
	}
	return parsed, nil
}

// GetBalance fetches the lamport balance of an account. Accounts that do
// not exist yet have a zero balance.
func (c *Client) GetBalance(ctx context.Context, account solana.PublicKey) (uint64, error) {
	out, err := c.rpc.GetBalance(ctx, account, c.commitment)
	if err != nil {
		// accounts don't exist until they receive SOL
		if strings.Contains(err.Error(), "could not find account") {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to fetch balance: %w", err)
	}
	if out == nil {
		return 0, fmt.Errorf("no result in response")
	}
	return out.Value, nil
}

// SendTransaction submits a signed transaction.
func (c *Client) SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	sig, err := c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		PreflightCommitment: c.commitment,
	})
	if err != nil {
		return solana.Signature{}, describeSendError(err)
	}

	c.log.Debug().Str("signature", sig.String()).Msg("transaction sent")
	return sig, nil
}

// ConfirmTransaction polls the signature status until the transaction
// reaches the client's commitment, fails, or ctx is done.
func (c *Client) ConfirmTransaction(ctx context.Context, sig solana.Signature) error {
	ticker := time.NewTicker(c.confirmInterval)
	defer ticker.Stop()

	for {
		done, err := c.checkSignature(ctx, sig)
		if err != nil || done {
			return err
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("transaction %s not confirmed: %w", sig, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (c *Client) checkSignature(ctx context.Context, sig solana.Signature) (bool, error) {
	out, err := c.rpc.GetSignatureStatuses(ctx, false, sig)
	if err != nil {
		return false, fmt.Errorf("failed to get signature status: %w", err)
	}
	if out == nil || len(out.Value) == 0 || out.Value[0] == nil {
		return false, nil
	}

	status := out.Value[0]
	if status.Err != nil {
		return false, fmt.Errorf("transaction %s failed: %v", sig, status.Err)
	}

	return reachedCommitment(status.ConfirmationStatus, c.commitment), nil
}

func reachedCommitment(status rpc.ConfirmationStatusType, want rpc.CommitmentType) bool {
	switch want {
	case rpc.CommitmentFinalized:
		return status == rpc.ConfirmationStatusFinalized
	case rpc.CommitmentProcessed:
		return status != ""
	default:
		return status == rpc.ConfirmationStatusConfirmed || status == rpc.ConfirmationStatusFinalized
	}
}

// describeSendError maps common RPC failures to friendlier messages.
func describeSendError(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "insufficient funds") || strings.Contains(msg, "Attempt to debit an account but found no record of a prior credit"):
		return fmt.Errorf("transaction failed: insufficient funds. Ensure the fee payer has enough SOL for rent and fees: %w", err)
	case strings.Contains(msg, "BlockhashNotFound") || strings.Contains(msg, "blockhash expired"):
		return fmt.Errorf("transaction failed: blockhash expired. The network is busy, please try again: %w", err)
	default:
		return fmt.Errorf("failed to send transaction: %w", err)
	}
}
