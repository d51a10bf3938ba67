package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/errors"
	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/hierarchy"
	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/layout"
)

// inspectCommand creates the inspect command, which prints the hierarchy
// read from an export without rendering anything.
func (c *CLI) inspectCommand() *cobra.Command {
	flags := generateFlags{}

	cmd := &cobra.Command{
		Use:   "inspect [file.csv]",
		Short: "Print the panel, subpanel and door tree of an export",
		Long: `Print the panel, subpanel and door tree of a door configuration export.

Inspect reads and groups the export exactly like the generator does and lists
every skipped row, without writing any diagram. Use it to check column mapping
and type spellings before generating.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), cmd, &flags, args[0])
		},
	}

	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "configuration file (.toml, .yaml)")
	cmd.Flags().StringVar(&flags.layout, "layout", "auto", "input layout: auto, table, report")
	cmd.Flags().BoolVar(&flags.orderByAddress, "order-by-address", false, "list doors by controller address")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, cmd *cobra.Command, flags *generateFlags, input string) error {
	cfg, err := flags.loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := pipelineOptions(cfg, input, "")
	if err != nil {
		return err
	}
	opts.Logger = loggerFromContext(ctx)

	prog := newProgress(opts.Logger)
	h, err := c.newRunner().Extract(ctx, opts)
	if err != nil && h == nil {
		return err
	}
	prog.done("Read export", "input", input, "panels", h.Len(), "rejected", h.Rejected())

	w := cmd.OutOrStdout()
	writeHierarchy(w, h, opts.Layout.DoorOrder)
	if ws := h.Warnings(); len(ws) > 0 {
		fmt.Fprintln(w, StyleWarning.Render(plural(len(ws), "warning"))+" "+
			StyleDim.Render("("+strings.Join(summarizeWarnings(ws), ", ")+")"))
		fmt.Fprintln(w, warningTable(ws))
	}
	return err
}

// writeHierarchy prints one tree per panel.
func writeHierarchy(w io.Writer, h *hierarchy.Hierarchy, order layout.DoorOrder) {
	for _, p := range h.Panels() {
		fmt.Fprintln(w, panelTree(p, order).String())
		fmt.Fprintln(w)
	}
}

func panelTree(p *hierarchy.Panel, order layout.DoorOrder) *tree.Tree {
	root := tree.Root(stylePanel.Render(joinDim(layout.PanelLabel(p)[1:]))).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(lipgloss.NewStyle().Foreground(colorDim).MarginRight(1))

	for _, s := range p.Subpanels() {
		sub := tree.Root(styleSubpanel.Render(joinDim(layout.SubpanelLabel(s)))).
			Enumerator(tree.RoundedEnumerator).
			EnumeratorStyle(lipgloss.NewStyle().Foreground(colorDim).MarginRight(1))
		doors := layout.OrderDoors(s.Doors(), order)
		if len(doors) == 0 {
			sub.Child(StyleDim.Render("(no doors)"))
		}
		for _, d := range doors {
			sub.Child(doorLine(d))
		}
		root.Child(sub)
	}
	return root
}

// doorLine renders a door label followed by its hardware on one line.
func doorLine(d *hierarchy.Door) string {
	lines := layout.DoorLabel(d)
	if len(lines) == 1 {
		return styleDoor.Render(lines[0])
	}
	return styleDoor.Render(lines[0]) + "  " + StyleDim.Render(strings.Join(lines[1:], " · "))
}

// summarizeWarnings counts warnings per code, in first-seen order.
func summarizeWarnings(ws []errors.Warning) []string {
	counts := make(map[errors.Code]int)
	var order []errors.Code
	for _, w := range ws {
		if counts[w.Code] == 0 {
			order = append(order, w.Code)
		}
		counts[w.Code]++
	}
	out := make([]string, len(order))
	for i, code := range order {
		out[i] = fmt.Sprintf("%s ×%d", code, counts[code])
	}
	return out
}
