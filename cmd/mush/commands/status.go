package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/mush/cmd"
	"github.com/thoreinstein/mush/internal/cli"
	"github.com/thoreinstein/mush/internal/content"
	"github.com/thoreinstein/mush/internal/engine"
	"github.com/thoreinstein/mush/internal/errors"
	"github.com/thoreinstein/mush/internal/paths"
	"github.com/thoreinstein/mush/internal/platform"
)

func newStatusCommand(root *rootOptions) *cobra.Command {
	var asJSON bool

	c := &cobra.Command{
		Use:   "status",
		Short: "Show sources and the tools mush would write",
		Long: `Show the canonical sources under .mush/ and every supported tool with
whether it is detected, whether the next update would write it, and which
capabilities it supports.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			dir, err := root.root()
			if err != nil {
				return err
			}
			st, err := collectStatus(c, dir)
			if err != nil {
				return err
			}
			if asJSON {
				return outputStatusJSON(c.OutOrStdout(), st)
			}
			return outputStatusTable(c.OutOrStdout(), st)
		},
	}
	c.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return c
}

type toolStatus struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Detected     bool     `json:"detected"`
	Selected     bool     `json:"selected"`
	Capabilities []string `json:"capabilities"`
}

type projectStatus struct {
	Root        string         `json:"root"`
	Initialized bool           `json:"initialized"`
	Selection   string         `json:"selection,omitempty"`
	Sources     map[string]int `json:"sources,omitempty"`
	Servers     []string       `json:"mcp_servers,omitempty"`
	Tools       []toolStatus   `json:"tools"`
}

func collectStatus(c *cobra.Command, dir string) (*projectStatus, error) {
	layout := paths.NewLayout(dir)
	reg := cli.NewRegistry()
	eng := engine.New(reg, cmd.Version)

	st := &projectStatus{Root: dir, Initialized: layout.Initialized()}

	var selected []*platform.Tool
	if st.Initialized {
		src, err := content.Load(c.Context(), layout)
		if err != nil {
			return nil, errors.NewSystemError(err, "Run: mush doctor")
		}
		st.Sources = map[string]int{
			"guidelines": len(src.Guidelines),
			"skills":     len(src.Skills),
			"agents":     len(src.Agents),
			"commands":   len(src.Commands),
		}
		st.Servers = src.Servers.Names()

		// An invalid config or empty selection still shows the tool table.
		if cfg, err := eng.LoadConfig(layout); err == nil {
			tools, sel, err := eng.Targets(layout, cfg, nil)
			if err == nil {
				selected = tools
				st.Selection = sel.String()
			}
		}
	}

	detected := reg.Detect(dir)
	for _, t := range reg.All() {
		ts := toolStatus{
			ID:       t.ID,
			Name:     t.DisplayName,
			Detected: slices.Contains(detected, t),
			Selected: slices.Contains(selected, t),
		}
		for _, capability := range t.Capabilities() {
			ts.Capabilities = append(ts.Capabilities, capability.String())
		}
		st.Tools = append(st.Tools, ts)
	}
	return st, nil
}

func outputStatusJSON(w io.Writer, st *projectStatus) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(st); err != nil {
		return errors.Wrap(err, "encoding JSON")
	}
	return nil
}

func outputStatusTable(w io.Writer, st *projectStatus) error {
	p := newPrinter(w, false)

	if st.Initialized {
		fmt.Fprintf(w, "Project: %s\n", st.Root)
		fmt.Fprintf(w, "Sources: %d guideline(s), %d skill(s), %d agent(s), %d command(s), %d MCP server(s)\n",
			st.Sources["guidelines"], st.Sources["skills"], st.Sources["agents"], st.Sources["commands"], len(st.Servers))
		if st.Selection != "" {
			fmt.Fprintf(w, "Targets: %s\n", st.Selection)
		} else {
			p.yellow.Fprintln(w, "Targets: none (add agents to mush.yaml or run mush install)")
		}
	} else {
		p.yellow.Fprintf(w, "Project: %s (not initialized, run mush install)\n", st.Root)
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprint(tw, "AGENT\tNAME\tDETECTED\tSELECTED")
	for _, capability := range platform.Capabilities() {
		fmt.Fprintf(tw, "\t%s", strings.ToUpper(capability.String()))
	}
	fmt.Fprintln(tw)

	for _, ts := range st.Tools {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s", ts.ID, ts.Name, mark(ts.Detected), mark(ts.Selected))
		for _, capability := range platform.Capabilities() {
			fmt.Fprintf(tw, "\t%s", mark(slices.Contains(ts.Capabilities, capability.String())))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func mark(b bool) string {
	if b {
		return "yes"
	}
	return "-"
}
