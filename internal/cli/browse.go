package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mreyes/kintree/pkg/family"
	"github.com/mreyes/kintree/pkg/ingest"
	"github.com/mreyes/kintree/pkg/tree"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listHeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorGray)
)

// browseOpts holds the command-line flags for the browse command.
type browseOpts struct {
	rootID int
	sheet  string
	config string
}

// newBrowseCmd creates the browse command, an interactive terminal view
// of the persons reachable from the root, grouped by generation.
func newBrowseCmd() *cobra.Command {
	var opts browseOpts

	cmd := &cobra.Command{
		Use:   "browse [file]",
		Short: "Explore persons by generation in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.config)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("root") && cfg.Root != 0 {
				opts.rootID = cfg.Root
			}
			if !cmd.Flags().Changed("sheet") {
				opts.sheet = cfg.Sheet
			}
			return runBrowse(args[0], &opts)
		},
	}

	cmd.Flags().IntVarP(&opts.rootID, "root", "r", 0, "root person id (default: first record)")
	cmd.Flags().StringVarP(&opts.sheet, "sheet", "s", "", "worksheet name for XLSX inputs")
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "config file (default: ./kintree.toml)")

	return cmd
}

func runBrowse(input string, opts *browseOpts) error {
	t, err := ingest.Load(input, opts.sheet)
	if err != nil {
		return err
	}
	rootID, err := resolveRoot(t, opts.rootID)
	if err != nil {
		return err
	}

	b := tree.New(t, rootID, tree.DefaultOptions())
	model := newBrowseModel(b)
	_, err = tea.NewProgram(model).Run()
	return err
}

// browseRow is one selectable line: a person within a generation.
type browseRow struct {
	depth  int
	person *family.Person
}

// browseModel is the bubbletea model for the generation browser.
type browseModel struct {
	builder *tree.Builder
	rows    []browseRow
	cursor  int
	height  int
	offset  int
}

func newBrowseModel(b *tree.Builder) browseModel {
	gens := b.Generations()
	var rows []browseRow
	for _, depth := range gens.Depths() {
		for _, id := range gens.At(depth) {
			if p, ok := b.Table().Lookup(id); ok {
				rows = append(rows, browseRow{depth: depth, person: p})
			}
		}
	}
	return browseModel{builder: b, rows: rows, height: 15}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.cursor < len(m.rows)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "g":
			m.cursor, m.offset = 0, 0
		case "G":
			m.cursor = len(m.rows) - 1
			if m.cursor >= m.height {
				m.offset = m.cursor - m.height + 1
			}
		}
	}
	return m, nil
}

func (m browseModel) View() string {
	if len(m.rows) == 0 {
		return StyleDim.Render("No persons reachable from the root.\n")
	}

	var sb strings.Builder
	sb.WriteString(StyleTitle.Render("Family Browser"))
	sb.WriteString(StyleDim.Render(fmt.Sprintf("  %d persons · %d generations\n\n",
		m.builder.PersonCount(), m.builder.GenerationCount())))

	end := m.offset + m.height
	if end > len(m.rows) {
		end = len(m.rows)
	}

	lastDepth := -1
	for i := m.offset; i < end; i++ {
		row := m.rows[i]
		if row.depth != lastDepth {
			sb.WriteString(listHeaderStyle.Render(fmt.Sprintf("Generation %d", row.depth)))
			sb.WriteString("\n")
			lastDepth = row.depth
		}

		line := fmt.Sprintf("  %s (%d)", row.person.Label(), row.person.ID)
		if i == m.cursor {
			sb.WriteString(listSelectedStyle.Render("▸" + line[1:]))
		} else {
			sb.WriteString(listNormalStyle.Render(line))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.detailView())
	sb.WriteString(StyleDim.Render("\n↑/↓ move · g/G first/last · q quit\n"))
	return sb.String()
}

// detailView shows parents, spouse, and children of the person under
// the cursor.
func (m browseModel) detailView() string {
	p := m.rows[m.cursor].person
	t := m.builder.Table()

	var lines []string
	if name, ok := t.FullName(p.FatherID); ok {
		lines = append(lines, "Father: "+name)
	}
	if name, ok := t.FullName(p.MotherID); ok {
		lines = append(lines, "Mother: "+name)
	}
	if name, ok := t.FullName(p.SpouseID); ok {
		lines = append(lines, "Spouse: "+name)
	}
	if kids := family.ChildrenOfPerson(m.builder.ChildrenIndex(), p); len(kids) > 0 {
		names := make([]string, 0, len(kids))
		for _, id := range kids {
			if name, ok := t.FullName(id); ok {
				names = append(names, name)
			}
		}
		lines = append(lines, "Children: "+strings.Join(names, ", "))
	}
	if len(lines) == 0 {
		return StyleDim.Render("No recorded relations.\n")
	}
	return StyleDim.Render(strings.Join(lines, "\n") + "\n")
}
