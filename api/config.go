package api

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gagliardetto/solana-go/rpc"
)

// Cluster names a Solana network.
type Cluster string

// cluster constants
const (
	ClusterMainnet  Cluster = "mainnet-beta"
	ClusterDevnet   Cluster = "devnet"
	ClusterTestnet  Cluster = "testnet"
	ClusterLocalnet Cluster = "localnet"
	ClusterCustom   Cluster = "custom"
)

// DefaultCluster is used when nothing is configured.
const DefaultCluster = ClusterDevnet

// ExplorerBaseURL is the block explorer used for transaction links.
const ExplorerBaseURL = "https://explorer.solana.com"

// ParseCluster accepts the cluster names plus the "mainnet" alias.
func ParseCluster(name string) (Cluster, error) {
	switch Cluster(strings.ToLower(strings.TrimSpace(name))) {
	case ClusterMainnet, "mainnet":
		return ClusterMainnet, nil
	case ClusterDevnet:
		return ClusterDevnet, nil
	case ClusterTestnet:
		return ClusterTestnet, nil
	case ClusterLocalnet, "localhost":
		return ClusterLocalnet, nil
	case ClusterCustom:
		return ClusterCustom, nil
	default:
		return "", fmt.Errorf("invalid cluster: %q. Use mainnet-beta, devnet, testnet, localnet or custom", name)
	}
}

// Endpoint returns the public RPC endpoint of the cluster. Custom clusters
// have no default endpoint.
func (c Cluster) Endpoint() string {
	switch c {
	case ClusterMainnet:
		return rpc.MainNetBeta_RPC
	case ClusterDevnet:
		return rpc.DevNet_RPC
	case ClusterTestnet:
		return rpc.TestNet_RPC
	case ClusterLocalnet:
		return rpc.LocalNet_RPC
	default:
		return ""
	}
}

// String implements fmt.Stringer.
func (c Cluster) String() string {
	return string(c)
}

// ExplorerURL builds an explorer link for path (e.g. "tx/<signature>" or
// "address/<pubkey>") on the given cluster. Localnet and custom clusters
// pass their endpoint so the explorer can reach them.
func ExplorerURL(cluster Cluster, endpoint, path string) string {
	link := ExplorerBaseURL + "/" + strings.TrimLeft(path, "/")

	switch cluster {
	case ClusterMainnet:
		return link
	case ClusterDevnet, ClusterTestnet:
		return link + "?cluster=" + string(cluster)
	default:
		return link + "?cluster=custom&customUrl=" + url.QueryEscape(endpoint)
	}
}
