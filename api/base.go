package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/chinmay1088/pubkey-profile/logger"
	"github.com/gagliardetto/solana-go/rpc"
)

// DefaultConfirmInterval is how often signature statuses are polled while
// waiting for confirmation.
const DefaultConfirmInterval = 500 * time.Millisecond

// ClientConfig configures a Client.
type ClientConfig struct {
	Cluster Cluster
	// Endpoint overrides the cluster's public endpoint. Required for the
	// custom cluster.
	Endpoint        string
	Commitment      string
	ConfirmInterval time.Duration
	Logger          *logger.Logger
}

// Client handles RPC calls to a Solana cluster.
type Client struct {
	rpc             *rpc.Client
	cluster         Cluster
	endpoint        string
	commitment      rpc.CommitmentType
	confirmInterval time.Duration
	log             *logger.Logger
}

// NewClient creates a new RPC client
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.Cluster == "" {
		cfg.Cluster = DefaultCluster
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		endpoint = cfg.Cluster.Endpoint()
	}
	if endpoint == "" {
		return nil, fmt.Errorf("cluster %s requires an explicit RPC endpoint", cfg.Cluster)
	}

	commitment, err := ParseCommitment(cfg.Commitment)
	if err != nil {
		return nil, err
	}

	interval := cfg.ConfirmInterval
	if interval <= 0 {
		interval = DefaultConfirmInterval
	}

	log := logger.OrNop(cfg.Logger).With("cluster", cfg.Cluster.String())
	log.Debug().Str("endpoint", endpoint).Msg("rpc client created")

	return &Client{
		rpc:             rpc.New(endpoint),
		cluster:         cfg.Cluster,
		endpoint:        endpoint,
		commitment:      commitment,
		confirmInterval: interval,
		log:             log,
	}, nil
}

// ParseCommitment maps a commitment name to the rpc type. Empty means
// confirmed.
func ParseCommitment(name string) (rpc.CommitmentType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "confirmed":
		return rpc.CommitmentConfirmed, nil
	case "finalized":
		return rpc.CommitmentFinalized, nil
	case "processed":
		return rpc.CommitmentProcessed, nil
	default:
		return "", fmt.Errorf("invalid commitment: %q", name)
	}
}

// Cluster returns the cluster the client talks to.
func (c *Client) Cluster() Cluster {
	return c.cluster
}

// Endpoint returns the RPC endpoint in use.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// ExplorerURL builds an explorer link for path on the client's cluster.
func (c *Client) ExplorerURL(path string) string {
	return ExplorerURL(c.cluster, c.endpoint, path)
}
