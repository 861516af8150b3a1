package cli

import (
	"github.com/spf13/cobra"

	mcpserver "github.com/ewchang/synapse/internal/mcp"
)

func init() {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the second brain over MCP on stdio",
		Run:   runMCP,
	}
	RootCmd.AddCommand(cmd)
}

func runMCP(cmd *cobra.Command, args []string) {
	b, closeStore, err := openBrain(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer closeStore()

	// The gateway is optional here: without a key the read-only tools still
	// serve.
	gw, err := openGateway()
	if err != nil {
		gw = nil
	}

	srv := mcpserver.NewServer(b, gw)
	if err := srv.Start(); err != nil {
		exitErr("mcp server", err)
	}
}
