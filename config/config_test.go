package config

import (
	"testing"

	"github.com/stellar/go/network"
)

func TestLoadDefaultsToTestnet(t *testing.T) {
	t.Setenv("STELLAR_ENVIRONMENT", "")
	t.Setenv("HORIZON_URL", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("OBSERVER_ENABLED", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Production {
		t.Fatal("default environment should not be production")
	}
	if cfg.HorizonURL != testnetHorizonURL {
		t.Fatalf("horizon url = %q", cfg.HorizonURL)
	}
	if cfg.NetworkPassphrase != network.TestNetworkPassphrase {
		t.Fatalf("passphrase = %q", cfg.NetworkPassphrase)
	}
	if cfg.HTTPPort != "8080" {
		t.Fatalf("port = %q", cfg.HTTPPort)
	}
	if len(cfg.KafkaBrokers) != 0 {
		t.Fatalf("brokers = %v, want none", cfg.KafkaBrokers)
	}
	if cfg.ObserverEnabled {
		t.Fatal("observer should be off by default")
	}
	if cfg.ObserverCursor != "now" {
		t.Fatalf("cursor = %q, want now", cfg.ObserverCursor)
	}
}

func TestLoadProductionSwitchesNetwork(t *testing.T) {
	t.Setenv("STELLAR_ENVIRONMENT", "Production")
	t.Setenv("HORIZON_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Production {
		t.Fatal("production not detected")
	}
	if cfg.HorizonURL != publicHorizonURL {
		t.Fatalf("horizon url = %q", cfg.HorizonURL)
	}
	if cfg.NetworkPassphrase != network.PublicNetworkPassphrase {
		t.Fatalf("passphrase = %q", cfg.NetworkPassphrase)
	}
}

func TestLoadParsesBrokerList(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "broker-1:9092, broker-2:9092,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "broker-2:9092" {
		t.Fatalf("brokers = %v", cfg.KafkaBrokers)
	}
}
