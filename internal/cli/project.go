package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	create := &cobra.Command{
		Use:   "create <category> <name>",
		Short: "Create an empty project under a category",
		Args:  cobra.ExactArgs(2),
		Run:   runProjectCreate,
	}

	rename := &cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename a project across all memories",
		Args:  cobra.ExactArgs(2),
		Run:   runProjectRename,
	}

	rm := &cobra.Command{
		Use:   "rm <name>",
		Short: "Delete a project and every memory in it",
		Args:  cobra.ExactArgs(1),
		Run:   runProjectRm,
	}

	cmd.AddCommand(create, rename, rm)
	RootCmd.AddCommand(cmd)
}

func runProjectCreate(cmd *cobra.Command, args []string) {
	b, closeStore, err := openBrain(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer closeStore()

	mem, err := b.CreateProject(cmd.Context(), args[0], args[1])
	if err != nil {
		exitErr("create project", err)
	}
	fmt.Printf("%s under %s\n", folderStyle.Render(mem.Project), mem.RootCategory)
}

func runProjectRename(cmd *cobra.Command, args []string) {
	b, closeStore, err := openBrain(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer closeStore()

	if err := b.RenameProject(cmd.Context(), args[0], args[1]); err != nil {
		exitErr("rename project", err)
	}
	fmt.Printf("%s -> %s\n", args[0], args[1])
}

func runProjectRm(cmd *cobra.Command, args []string) {
	b, closeStore, err := openBrain(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer closeStore()

	if err := b.DeleteProject(cmd.Context(), args[0]); err != nil {
		exitErr("delete project", err)
	}
}
