package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Ask the model to search your memories",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSearch,
	}
	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	b, closeStore, err := openBrain(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer closeStore()

	gw, err := openGateway()
	if err != nil {
		exitErr("gateway", err)
	}

	answer, err := gw.Search(cmd.Context(), strings.Join(args, " "), memoryContext(b))
	if err != nil {
		exitErr("search failed", err)
	}
	fmt.Println(answer)
}
