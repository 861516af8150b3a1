package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "chat <message>",
		Short: "Chat with your second brain",
		Args:  cobra.MinimumNArgs(1),
		Run:   runChat,
	}
	RootCmd.AddCommand(cmd)
}

func runChat(cmd *cobra.Command, args []string) {
	b, closeStore, err := openBrain(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer closeStore()

	gw, err := openGateway()
	if err != nil {
		exitErr("gateway", err)
	}

	reply, err := gw.Chat(cmd.Context(), strings.Join(args, " "), memoryContext(b))
	if err != nil {
		exitErr("chat failed", err)
	}
	fmt.Println(reply)
}
