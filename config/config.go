// Package config loads process configuration from the environment.
// A local .env file is honored when present; real deployments set the
// variables directly.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/stellar/go/network"
)

// Config is centralized process configuration. Infra values live here and
// typed slices of it are passed into the builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	PostgresDSN string

	// Production selects the public network and enables the destination
	// existence check on native payments. Anything else runs against testnet
	// with faucet funding.
	Production        bool
	HorizonURL        string
	NetworkPassphrase string

	KafkaBrokers []string

	// ObserverEnabled starts the payment observer that mirrors inbound
	// payments to custodial accounts. ObserverCursor is the paging token to
	// resume from; "now" skips history.
	ObserverEnabled bool
	ObserverCursor  string
}

const (
	publicHorizonURL  = "https://horizon.stellar.org"
	testnetHorizonURL = "https://horizon-testnet.stellar.org"
)

// Load reads configuration from the environment, applying defaults that
// target the test network.
func Load() (Config, error) {
	_ = godotenv.Load()

	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "stellar-gateway"
	}
	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	production := strings.EqualFold(os.Getenv("STELLAR_ENVIRONMENT"), "production")

	horizonURL := os.Getenv("HORIZON_URL")
	passphrase := network.TestNetworkPassphrase
	if production {
		passphrase = network.PublicNetworkPassphrase
		if horizonURL == "" {
			horizonURL = publicHorizonURL
		}
	} else if horizonURL == "" {
		horizonURL = testnetHorizonURL
	}

	var brokers []string
	for _, value := range strings.Split(os.Getenv("KAFKA_BROKERS"), ",") {
		value = strings.TrimSpace(value)
		if value != "" {
			brokers = append(brokers, value)
		}
	}

	cursor := os.Getenv("OBSERVER_CURSOR")
	if cursor == "" {
		cursor = "now"
	}

	return Config{
		ServiceName:       service,
		HTTPPort:          port,
		PostgresDSN:       os.Getenv("POSTGRES_DSN"),
		Production:        production,
		HorizonURL:        horizonURL,
		NetworkPassphrase: passphrase,
		KafkaBrokers:      brokers,
		ObserverEnabled:   strings.EqualFold(os.Getenv("OBSERVER_ENABLED"), "true"),
		ObserverCursor:    cursor,
	}, nil
}
