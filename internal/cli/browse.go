package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse memories grouped by project",
		Run:   runBrowse,
	}

	cmd.Flags().StringP("category", "c", "", "Filter by category (default: all)")

	RootCmd.AddCommand(cmd)
}

func runBrowse(cmd *cobra.Command, args []string) {
	category, _ := cmd.Flags().GetString("category")

	b, closeStore, err := openBrain(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer closeStore()

	view := b.Browse(category)

	for _, ref := range view.Loose {
		fmt.Printf("%s %s %s %s\n",
			checkbox(ref.Item.Status), ref.Item.Title,
			subStyle.Render(ref.Date),
			dimStyle.Render(fmt.Sprintf("(%s_%d)", ref.MemoryID, ref.Index)))
	}

	for _, f := range view.Folders {
		fmt.Printf("%s %s\n", folderStyle.Render(f.Project), dimStyle.Render("["+f.Category+"]"))
		for _, sg := range f.SubGroups {
			if len(f.SubGroups) > 1 {
				fmt.Printf("  %s\n", subStyle.Render(sg.Name))
			}
			for _, ref := range sg.Items {
				fmt.Printf("  %s %s %s %s\n",
					checkbox(ref.Item.Status), ref.Item.Title,
					subStyle.Render(ref.Date),
					dimStyle.Render(fmt.Sprintf("(%s_%d)", ref.MemoryID, ref.Index)))
			}
		}
	}

	if len(view.Loose) == 0 && len(view.Folders) == 0 {
		fmt.Println(dimStyle.Render("no memories yet"))
	}
}
