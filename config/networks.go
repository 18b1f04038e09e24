package config

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	NetworkMainnet = "mainnet"
	NetworkTestnet = "testnet"
	NetworkDevnet  = "devnet"
	NetworkLocal   = "local"
)

var nodeURLs = map[string]string{
	NetworkMainnet: "http://127.0.0.1:8080/v1",
	NetworkTestnet: "http://127.0.0.1:8080/v1",
	NetworkDevnet:  "http://127.0.0.1:8080/v1",
	NetworkLocal:   "http://127.0.0.1:8080/v1",
}

// NodeURL returns the REST endpoint of a named network.
func NodeURL(network string) (string, error) {
	url, ok := nodeURLs[network]
	if !ok {
		return "", fmt.Errorf("unknown network %q, expected one of %v", network, Networks())
	}
	return url, nil
}

// Networks returns the names of the known networks.
func Networks() []string {
	names := maps.Keys(nodeURLs)
	slices.Sort(names)
	return names
}
