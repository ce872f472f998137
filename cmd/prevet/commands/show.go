package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prevet/prevet/pkg/config"
	"github.com/prevet/prevet/pkg/engine"
)

func newShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <blueprint>",
		Short: "Show the contents of a blueprint file",
		Long: `Show the processors a blueprint declares, with their categories,
tags, links and status overrides.`,
		Example: `  # Render a blueprint
  prevet show publish.yaml

  # Machine-readable output
  prevet show --json publish.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := config.NewFileSource(args[0])
			data, err := source.Load()
			if err != nil {
				return err
			}

			if jsonOutput {
				return printJSON(cmd, source.Name(), data)
			}
			printBlueprint(cmd, source.Name(), data)
			return nil
		},
	}

	return cmd
}

func printBlueprint(cmd *cobra.Command, name string, data *engine.BlueprintData) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Blueprint: %s\n", name)

	if len(data.Settings) > 0 {
		fmt.Fprintln(out, "Settings:")
		for key, value := range data.Settings {
			fmt.Fprintf(out, "  %s: %v\n", key, value)
		}
	}

	fmt.Fprintf(out, "Processors (%d):\n", len(data.Header))
	for _, id := range data.Header {
		desc, ok := data.Descriptions[id]
		if !ok {
			continue
		}
		category := desc.Category
		if category == "" {
			category = engine.DefaultCategory
		}
		fmt.Fprintf(out, "  %s: %s [%s]\n", id, desc.Process, category)

		if desc.Tags != engine.NoTag {
			fmt.Fprintf(out, "    tags: %#x\n", uint32(desc.Tags))
		}
		for _, link := range desc.Links {
			fmt.Fprintf(out, "    link: %s -> %s.%s\n", link.Driver, link.Target, link.Driven)
		}
		for thread, override := range desc.StatusOverrides {
			var parts []string
			if override.Fail != nil {
				parts = append(parts, "fail="+override.Fail.Name())
			}
			if override.Success != nil {
				parts = append(parts, "success="+override.Success.Name())
			}
			fmt.Fprintf(out, "    statuses[%s]: %s\n", thread, strings.Join(parts, " "))
		}
	}
}

func printJSON(cmd *cobra.Command, name string, data *engine.BlueprintData) error {
	type processorView struct {
		ID       string   `json:"id"`
		Process  string   `json:"process"`
		Category string   `json:"category"`
		Links    []string `json:"links,omitempty"`
	}
	type blueprintView struct {
		Name       string          `json:"name"`
		Settings   map[string]any  `json:"settings,omitempty"`
		Processors []processorView `json:"processors"`
	}

	view := blueprintView{
		Name:     name,
		Settings: data.Settings,
	}
	for _, id := range data.Header {
		desc, ok := data.Descriptions[id]
		if !ok {
			continue
		}
		category := desc.Category
		if category == "" {
			category = engine.DefaultCategory
		}
		proc := processorView{ID: id, Process: desc.Process, Category: category}
		for _, link := range desc.Links {
			proc.Links = append(proc.Links, fmt.Sprintf("%s->%s.%s", link.Driver, link.Target, link.Driven))
		}
		view.Processors = append(view.Processors, proc)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(view)
}
