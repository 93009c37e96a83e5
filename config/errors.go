package config

import "errors"

var (
	ErrInvalidCluster   = errors.New("invalid cluster")
	ErrMissingRPCURL    = errors.New("custom cluster requires an RPC url (--rpc-url or PUBKEY_RPC_URL)")
	ErrInvalidProgramID = errors.New("invalid program id")
)
