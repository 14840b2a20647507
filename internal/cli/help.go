package cli

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/gomarkup/internal/configloader"
	"github.com/yaklabco/gomarkup/internal/ui/pretty"
)

// HelpStyles contains Lipgloss styles for command help formatting.
type HelpStyles struct {
	Command     lipgloss.Style
	Heading     lipgloss.Style
	Subcommand  lipgloss.Style
	Flag        lipgloss.Style
	Description lipgloss.Style
	Example     lipgloss.Style
	Dim         lipgloss.Style
}

// NewHelpStyles creates help styles based on color mode.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &HelpStyles{
			Command:     plain,
			Heading:     plain,
			Subcommand:  plain,
			Flag:        plain,
			Description: plain,
			Example:     plain,
			Dim:         plain,
		}
	}

	return &HelpStyles{
		Command:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Heading:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Subcommand:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Flag:        lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Description: lipgloss.NewStyle(),
		Example:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Dim:         lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter renders styled help and usage for Cobra commands.
type HelpFormatter struct {
	styles *HelpStyles
}

// NewHelpFormatter creates a help formatter for the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: NewHelpStyles(pretty.IsColorEnabled(colorMode, writer))}
}

// ApplyToCommand installs the formatter on cmd. Subcommands inherit it.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if _, err := io.WriteString(command.OutOrStdout(), h.Help(command)); err != nil {
			command.PrintErrln(err)
		}
	})
	cmd.SetUsageFunc(func(command *cobra.Command) error {
		_, err := io.WriteString(command.OutOrStderr(), h.Usage(command))
		return err
	})
}

// Help returns the full help text: the description followed by usage.
func (h *HelpFormatter) Help(cmd *cobra.Command) string {
	var b strings.Builder

	b.WriteString(h.styles.Command.Render(cmd.CommandPath()))
	b.WriteString("\n\n")

	if desc := cmp.Or(cmd.Long, cmd.Short); desc != "" {
		b.WriteString(trimTrailingWhitespaces(desc))
		b.WriteString("\n\n")
	}

	b.WriteString(h.Usage(cmd))
	return b.String()
}

// Usage returns the usage sections for cmd.
func (h *HelpFormatter) Usage(cmd *cobra.Command) string {
	var sections []string

	usage := h.heading("Usage:")
	if cmd.Runnable() {
		usage += "\n  " + h.styles.Command.Render(cmd.UseLine())
	}
	if cmd.HasAvailableSubCommands() {
		usage += "\n  " + h.styles.Command.Render(cmd.CommandPath()+" [command]")
	}
	sections = append(sections, usage)

	if len(cmd.Aliases) > 0 {
		sections = append(sections, h.heading("Aliases:")+"\n  "+h.styles.Dim.Render(strings.Join(cmd.Aliases, ", ")))
	}
	if cmd.HasExample() {
		sections = append(sections, h.heading("Examples:")+"\n"+h.styleLines(h.styles.Example, cmd.Example))
	}
	if cmd.HasAvailableSubCommands() {
		sections = append(sections, h.heading("Available Commands:")+"\n"+h.commandLines(cmd))
	}
	if cmd.HasAvailableLocalFlags() {
		sections = append(sections, h.heading("Flags:")+"\n"+h.flagLines(cmd.LocalFlags()))
	}
	if cmd.HasAvailableInheritedFlags() {
		sections = append(sections, h.heading("Global Flags:")+"\n"+h.flagLines(cmd.InheritedFlags()))
	}
	if !cmd.HasParent() {
		sections = append(sections, h.heading("Environment:")+"\n"+h.envLines())
	}
	if cmd.HasAvailableSubCommands() {
		sections = append(sections, fmt.Sprintf(`Use "%s" for more information about a command.`,
			h.styles.Command.Render(cmd.CommandPath()+" [command] --help")))
	}

	return strings.Join(sections, "\n\n") + "\n"
}

// styleLines styles each line on its own so lipgloss does not pad them to a
// common width.
func (h *HelpFormatter) styleLines(style lipgloss.Style, text string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = style.Render(line)
	}
	return strings.Join(lines, "\n")
}

func (h *HelpFormatter) heading(title string) string {
	return h.styles.Heading.Render(title)
}

// commandLines lists available subcommands with aligned descriptions.
func (h *HelpFormatter) commandLines(cmd *cobra.Command) string {
	var commands []*cobra.Command
	width := 0
	for _, sub := range cmd.Commands() {
		if sub.IsAvailableCommand() || sub.Name() == "help" {
			commands = append(commands, sub)
			width = max(width, len(sub.Name()))
		}
	}

	lines := make([]string, 0, len(commands))
	for _, sub := range commands {
		lines = append(lines, "  "+h.styles.Subcommand.Render(rpad(sub.Name(), width))+"   "+
			h.styles.Description.Render(sub.Short))
	}
	return strings.Join(lines, "\n")
}

// flagLines lists the visible flags of fs with aligned descriptions.
func (h *HelpFormatter) flagLines(fs *pflag.FlagSet) string {
	type row struct {
		name, typ, usage string
		short            string
	}

	var rows []row
	width := 0
	fs.VisitAll(func(flag *pflag.Flag) {
		if flag.Hidden {
			return
		}
		r := row{name: "--" + flag.Name, usage: flag.Usage}
		if flag.Shorthand != "" {
			r.short = "-" + flag.Shorthand
		}
		if typ := flag.Value.Type(); typ != "bool" {
			r.typ = typ
		}
		if showDefault(flag) {
			r.usage += fmt.Sprintf(" (default %s)", flag.DefValue)
		}
		rows = append(rows, r)
		width = max(width, len(flagText(r.short, r.name, r.typ)))
	})

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		var styled strings.Builder
		if r.short != "" {
			styled.WriteString(h.styles.Flag.Render(r.short) + ", ")
		} else {
			styled.WriteString("    ")
		}
		styled.WriteString(h.styles.Flag.Render(r.name))
		if r.typ != "" {
			styled.WriteString(" " + h.styles.Dim.Render(r.typ))
		}

		pad := strings.Repeat(" ", width-len(flagText(r.short, r.name, r.typ)))
		lines = append(lines, "  "+styled.String()+pad+"   "+h.styles.Description.Render(r.usage))
	}
	return strings.Join(lines, "\n")
}

// flagText is the unstyled flag column used for alignment.
func flagText(short, name, typ string) string {
	text := "    " + name
	if short != "" {
		text = short + ", " + name
	}
	if typ != "" {
		text += " " + typ
	}
	return text
}

func showDefault(flag *pflag.Flag) bool {
	switch flag.DefValue {
	case "", "false", "0", "[]":
		return false
	default:
		return true
	}
}

// envLines lists the configuration environment variables.
func (h *HelpFormatter) envLines() string {
	vars := configloader.ListEnvVars()

	names := make([]string, 0, len(vars))
	width := 0
	for name := range vars {
		names = append(names, name)
		width = max(width, len(name))
	}
	slices.Sort(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, "  "+h.styles.Flag.Render(rpad(name, width))+"   "+h.styles.Description.Render(vars[name]))
	}
	return strings.Join(lines, "\n")
}

// rpad adds padding to the right of a string.
func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

// trimTrailingWhitespaces removes trailing whitespace from lines.
func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
