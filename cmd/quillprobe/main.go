// quillprobe checks provider configuration: it validates API keys and
// lists available models for the providers enabled in the config file.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/foundry-9/quilltap-providers/config"
	"github.com/foundry-9/quilltap-providers/logging"
	"github.com/foundry-9/quilltap-providers/provider"
)

func main() {
	configPath := flag.String("config", defaultConfigPath(), "path to the providers config file")
	providerID := flag.String("provider", "", "probe a single provider id (default: all enabled)")
	listModels := flag.Bool("models", false, "list available models after validating the key")
	timeout := flag.Duration("timeout", 30*time.Second, "per-provider probe timeout")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(cfg.LogLevel)
	logCfg.Pretty = true
	log := logging.New(logCfg)

	registry := provider.NewRegistry()
	if err := provider.RegisterBuiltins(registry, log); err != nil {
		log.Fatal().Err(err).Msg("failed to register plugins")
	}

	exitCode := 0
	for _, pc := range cfg.Providers {
		if *providerID != "" && pc.ID != *providerID {
			continue
		}
		if *providerID == "" && !pc.Enabled {
			continue
		}
		if !probe(registry, pc, *listModels, *timeout) {
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}

func probe(registry *provider.Registry, pc config.ProviderConfig, listModels bool, timeout time.Duration) bool {
	plugin, ok := registry.Lookup(pc.ID)
	if !ok {
		fmt.Printf("%-12s unknown provider\n", pc.ID)
		return false
	}

	apiKey := pc.APIKey()
	if apiKey == "" && plugin.Config.RequiresAPIKey {
		fmt.Printf("%-12s no API key (set %s)\n", pc.ID, pc.APIKeyEnv)
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	p := plugin.CreateProvider(pc.BaseURL)
	if !p.ValidateAPIKey(ctx, apiKey) {
		fmt.Printf("%-12s invalid API key\n", pc.ID)
		return false
	}
	fmt.Printf("%-12s key OK\n", pc.ID)

	if listModels {
		for _, id := range p.AvailableModels(ctx, apiKey) {
			info := plugin.ModelInfo(id)
			fmt.Printf("    %s\n", info.DisplayName)
		}
	}
	return true
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "providers.toml"
	}
	return home + "/.config/quilltap/providers.toml"
}
