package formatting

import (
	"fmt"
	"strings"

	lipgloss "github.com/charmbracelet/lipgloss"
	wordwrap "github.com/muesli/reflow/wordwrap"
)

// DefaultWidth is the width used when the terminal size is unknown
const DefaultWidth = 80

// WrapText wraps text to fit within the specified width using wordwrap
func WrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wordwrap.String(text, width)
}

// FormatResponsiveMessage wraps every line longer than width and trims the
// trailing spaces wordwrap leaves behind
func FormatResponsiveMessage(content string, width int) string {
	if width <= 0 {
		return content
	}

	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))

	for _, line := range lines {
		if len(line) <= width {
			result = append(result, line)
			continue
		}
		wrappedLines := strings.Split(WrapText(line, width), "\n")
		for i, wl := range wrappedLines {
			wrappedLines[i] = strings.TrimRight(wl, " ")
		}
		result = append(result, strings.Join(wrappedLines, "\n"))
	}

	return strings.Join(result, "\n")
}

// TruncateText truncates text to fit within maxLength, adding "..." if needed
func TruncateText(text string, maxLength int) string {
	if len(text) <= maxLength {
		return text
	}

	if maxLength <= 3 {
		return "..."
	}

	return text[:maxLength-3] + "..."
}

// HelpEntry is one command in the help listing
type HelpEntry struct {
	Name        string
	Description string
	Async       bool
}

// HelpGroup is a command group in registration order
type HelpGroup struct {
	Name    string
	Entries []HelpEntry
}

// FormatHelp renders the groups and their commands. Descriptions are wrapped
// to width and indented under the command column.
func FormatHelp(groups []HelpGroup, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}

	nameWidth := 0
	for _, g := range groups {
		for _, e := range g.Entries {
			nameWidth = max(nameWidth, len(e.Name))
		}
	}

	const indent = 2
	descWidth := max(width-nameWidth-indent*2, 20)
	pad := strings.Repeat(" ", nameWidth+indent*2)

	var b strings.Builder
	for i, g := range groups {
		if len(g.Entries) == 0 {
			continue
		}
		if i > 0 && b.Len() > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s:\n", g.Name)

		for _, e := range g.Entries {
			desc := e.Description
			if e.Async {
				desc = strings.TrimSpace(desc + " (async)")
			}
			lines := strings.Split(FormatResponsiveMessage(desc, descWidth), "\n")

			fmt.Fprintf(&b, "%s%-*s%s%s\n", strings.Repeat(" ", indent), nameWidth, e.Name, strings.Repeat(" ", indent), lines[0])
			for _, l := range lines[1:] {
				fmt.Fprintf(&b, "%s%s\n", pad, l)
			}
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

var (
	bannerTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	bannerHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	bannerBoxStyle   = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("8")).
				Padding(0, 1)
)

// BannerInfo is what the startup banner shows
type BannerInfo struct {
	Name       string
	Version    string
	Toggle     string
	Mode       string
	Display    string
	Keybinds   int
	Commands   int
	ServiceCnt int
}

// Banner renders the startup banner
func Banner(info BannerInfo) string {
	title := info.Name
	if info.Version != "" {
		title += " " + info.Version
	}

	lines := []string{
		bannerTitleStyle.Render(title),
		fmt.Sprintf("mode: %s  display: %s", info.Mode, info.Display),
		fmt.Sprintf("commands: %d  keybinds: %d  services: %d", info.Commands, info.Keybinds, info.ServiceCnt),
		bannerHintStyle.Render(fmt.Sprintf("press %s to toggle the prompt", info.Toggle)),
	}

	return bannerBoxStyle.Render(strings.Join(lines, "\n"))
}
