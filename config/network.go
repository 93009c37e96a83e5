package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chinmay1088/pubkey-profile/api"
)

// NetworkFile is the name of the file that persists the selected cluster.
const NetworkFile = "network.txt"

// ReadNetwork returns the cluster persisted under home. A missing or
// unreadable file yields api.DefaultCluster.
func ReadNetwork(home string) api.Cluster {
	data, err := os.ReadFile(filepath.Join(home, NetworkFile))
	if err != nil {
		return api.DefaultCluster
	}

	cluster, err := api.ParseCluster(strings.TrimSpace(string(data)))
	if err != nil || cluster == api.ClusterCustom {
		return api.DefaultCluster
	}
	return cluster
}

// WriteNetwork persists cluster under home. Custom clusters need an
// endpoint on every run and cannot be persisted.
func WriteNetwork(home string, cluster api.Cluster) error {
	if cluster == api.ClusterCustom {
		return fmt.Errorf("%w: custom cluster cannot be persisted", ErrInvalidCluster)
	}

	if err := os.MkdirAll(home, 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	path := filepath.Join(home, NetworkFile)
	if err := os.WriteFile(path, []byte(cluster.String()), 0600); err != nil {
		return fmt.Errorf("failed to write network file: %w", err)
	}
	return nil
}
