package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ewchang/synapse/internal/brain"
	"github.com/ewchang/synapse/internal/gateway"
	"github.com/ewchang/synapse/internal/imaging"
	"github.com/ewchang/synapse/internal/model"
	"github.com/ewchang/synapse/internal/tui"
)

func init() {
	cmd := &cobra.Command{
		Use:   "capture [text]",
		Short: "Capture a note and let the model structure it",
		Long:  "Capture a note. Text can be a positional arg, piped via stdin, or entered interactively (with /tag autocomplete) when omitted.",
		Run:   runCapture,
	}

	cmd.Flags().StringP("image", "i", "", "Attach an image file")

	RootCmd.AddCommand(cmd)
}

func runCapture(cmd *cobra.Command, args []string) {
	imagePath, _ := cmd.Flags().GetString("image")

	b, closeStore, err := openBrain(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer closeStore()

	text := captureText(args, b)
	if strings.TrimSpace(text) == "" {
		exitErr("capture", fmt.Errorf("nothing to capture"))
	}

	var image []byte
	if imagePath != "" {
		raw, err := os.ReadFile(imagePath)
		if err != nil {
			exitErr("read image", err)
		}
		image, err = imaging.Downscale(raw, imaging.DefaultMaxDimension, imaging.DefaultJPEGQuality)
		if err != nil {
			exitErr("prepare image", err)
		}
	}

	gw, err := openGateway()
	if err != nil {
		exitErr("gateway", err)
	}

	fmt.Println(dimStyle.Render("classifying..."))
	cls, err := gw.Classify(cmd.Context(), gateway.ClassifyRequest{
		Text:      text,
		Image:     image,
		Hierarchy: b.PromptHierarchy(),
	})
	if err != nil {
		exitErr("classification failed, nothing was saved", err)
	}

	items := make([]brain.ItemParams, 0, len(cls.Items))
	for _, it := range cls.Items {
		items = append(items, brain.ItemParams{
			Title:       it.Title,
			Category:    it.Category,
			Description: it.Description,
			Location:    it.Location,
			Rating:      it.Rating,
			ActionNote:  it.ActionNote,
			TargetDate:  it.TargetDate,
		})
	}

	mem, err := b.AddMemory(cmd.Context(), brain.AddMemoryParams{
		OriginalText: text,
		RootCategory: cls.RootCategory,
		Project:      cls.Project,
		SubProject:   cls.SubProject,
		Type:         cls.Type,
		Tags:         cls.Tags,
		Items:        items,
		Image:        image,
	})
	if err != nil {
		exitErr("save", err)
	}

	printMemory(*mem)
}

// captureText resolves the note text: positional args, then piped stdin,
// then the interactive input.
func captureText(args []string, b *brain.Brain) string {
	if len(args) > 0 {
		return strings.Join(args, " ")
	}

	stat, _ := os.Stdin.Stat()
	if (stat.Mode() & os.ModeCharDevice) == 0 {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			exitErr("read stdin", err)
		}
		return string(raw)
	}

	text, err := tui.CaptureInput(b.KnownTags())
	if err != nil {
		exitErr("input", err)
	}
	return text
}

func printMemory(m model.Memory) {
	header := fmt.Sprintf("%s / %s", m.RootCategory, m.Project)
	if m.SubProject != "" && m.SubProject != model.ProjectGeneral {
		header += " / " + m.SubProject
	}
	fmt.Printf("%s  %s\n", titleStyle.Render(header), dimStyle.Render(m.Type))
	if len(m.Tags) > 0 {
		fmt.Println(tagStyle.Render("#" + strings.Join(m.Tags, " #")))
	}
	for i, it := range m.Items {
		fmt.Printf("%s %s %s\n", checkbox(it.Status), it.Title, dimStyle.Render(fmt.Sprintf("(%s_%d)", m.ID, i)))
		if it.Description != "" {
			fmt.Printf("    %s\n", it.Description)
		}
		if it.TargetDate != "" {
			fmt.Printf("    %s\n", subStyle.Render(it.TargetDate))
		}
		if link := it.MapLink(); link != "" {
			fmt.Printf("    %s\n", locationStyle.Render(link))
		}
	}
}
