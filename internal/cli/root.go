// Package cli implements the synapse CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ewchang/synapse/internal/brain"
	"github.com/ewchang/synapse/internal/config"
	"github.com/ewchang/synapse/internal/gateway"
	"github.com/ewchang/synapse/internal/model"
	"github.com/ewchang/synapse/internal/store"
)

var dbPath string

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "synapse",
	Short: "AI-classified second brain",
	Long:  "Capture unstructured notes, let a language model structure them, and browse the result. SQLite-backed, single binary.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $SYNAPSE_DB or ~/.synapse/synapse.db)")
}

func loadConfig() config.Config {
	cfg := config.Load()
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	return cfg
}

// openBrain opens the store and loads all collections. The caller must call
// the returned close function.
func openBrain(cmd *cobra.Command) (*brain.Brain, func(), error) {
	cfg := loadConfig()
	st, err := store.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	b, err := brain.Open(cmd.Context(), st)
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	return b, func() { st.Close() }, nil
}

// openGateway builds the configured gateway client.
func openGateway() (gateway.Gateway, error) {
	cfg := loadConfig()
	if err := cfg.RequireAPIKey(); err != nil {
		return nil, err
	}
	var p gateway.Provider
	if cfg.Provider == config.ProviderOpenAI {
		p = gateway.NewOpenAI(cfg.Host, cfg.APIKey, cfg.Model)
	} else {
		p = gateway.NewGemini(cfg.Host, cfg.APIKey, cfg.Model)
	}
	return gateway.New(p), nil
}

// memoryContext serializes the memory collection for chat and search
// prompts, with images stripped.
func memoryContext(b *brain.Brain) string {
	stripped := make([]model.Memory, len(b.Memories))
	copy(stripped, b.Memories)
	for i := range stripped {
		stripped[i].Image = nil
	}
	out, err := json.Marshal(stripped)
	if err != nil {
		return "[]"
	}
	return string(out)
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
