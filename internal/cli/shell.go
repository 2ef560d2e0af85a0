package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/depscope/pkg/config"
	"github.com/matzehuels/depscope/pkg/graph"
	"github.com/matzehuels/depscope/pkg/traverse"
)

// newShellCmd creates the shell command, which builds the graph described by
// a configuration file and opens an interactive browser over it.
func newShellCmd() *cobra.Command {
	var refresh bool
	maxNodes := 500

	cmd := &cobra.Command{
		Use:   "shell <config-file>",
		Short: "Explore a dependency graph interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd.Context(), args[0], refresh, maxNodes)
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached HTTP responses")
	cmd.Flags().IntVar(&maxNodes, "max-nodes", maxNodes, "maximum packages to expand")

	return cmd
}

func runShell(ctx context.Context, cfgPath string, refresh bool, maxNodes int) error {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	src, err := newSource(cfg, refresh)
	if err != nil {
		return err
	}

	builder := traverse.New(src, traverse.Options{
		Filter:   traverse.NewFilter(cfg.FilterSubstring),
		MaxNodes: maxNodes,
		Logger:   logger.Debugf,
	})

	spin := newSpinner(ctx, fmt.Sprintf("Resolving %s@%s", cfg.PackageName, cfg.Version))
	spin.start()
	res, err := builder.Build(ctx, cfg.PackageName, cfg.Version)
	spin.stop()
	if err != nil {
		return err
	}

	model := newGraphModel(res.Root, graph.Summarize(res.Graph))
	_, err = tea.NewProgram(model, tea.WithContext(ctx)).Run()
	return err
}

// List styles.
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// graphModel is the bubbletea model for browsing a built graph: a scrolling
// package list with the selected package's dependencies shown alongside.
type graphModel struct {
	root   string
	report graph.Report
	cursor int
	height int
	offset int
}

func newGraphModel(root string, report graph.Report) graphModel {
	return graphModel{
		root:   root,
		report: report,
		height: 15,
	}
}

func (m graphModel) Init() tea.Cmd {
	return nil
}

func (m graphModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.report.Adjacency)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "g", "home":
			m.cursor, m.offset = 0, 0
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 8
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m graphModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Dependencies of " + m.root))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%d nodes · %d edges · %s", m.report.NodeCount, m.report.EdgeCount, m.report.Shape)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := min(m.offset+m.height, len(m.report.Adjacency))
	for i := m.offset; i < end; i++ {
		row := m.report.Adjacency[i]

		cursor := "  "
		style := listNormalStyle
		if i == m.cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}

		line := cursor + style.Render(row.Package)
		if len(row.Deps) > 0 {
			line += listDimStyle.Render(fmt.Sprintf("  %s %s", iconArrow, strings.Join(row.Deps, ", ")))
		}
		b.WriteString(line + "\n")
	}

	if len(m.report.Adjacency) == 0 {
		b.WriteString(listDimStyle.Render("  (empty graph)") + "\n")
	}

	return b.String()
}
