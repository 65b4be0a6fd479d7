package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/pipegraph/pkg/topology"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorOrange = lipgloss.Color("215")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	// StyleHighlight marks component names and paths in status lines.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
	styleCached      = lipgloss.NewStyle().Foreground(colorGreen)
	styleFresh       = lipgloss.NewStyle().Foreground(colorGray)

	// kindStyles color component names by kind, matching the fills of the
	// rendered diagram: sources green, transforms blue, sinks orange.
	kindStyles = map[topology.Kind]lipgloss.Style{
		topology.Source:    lipgloss.NewStyle().Foreground(colorGreen),
		topology.Transform: lipgloss.NewStyle().Foreground(colorBlue),
		topology.Sink:      lipgloss.NewStyle().Foreground(colorOrange),
	}
)

const (
	iconArrow = "→"
	separator = " · "
)

// status icons, one per message class
var (
	iconSuccess = lipgloss.NewStyle().Foreground(colorGreen).Render("✓")
	iconError   = lipgloss.NewStyle().Foreground(colorRed).Render("✗")
	iconWarning = lipgloss.NewStyle().Foreground(colorYellow).Render("!")
	iconInfo    = lipgloss.NewStyle().Foreground(colorGray).Render("›")
)

func printStatus(icon, format string, args ...any) {
	fmt.Println(icon + " " + fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) { printStatus(iconSuccess, format, args...) }

func printError(format string, args ...any) { printStatus(iconError, format, args...) }

func printInfo(format string, args ...any) { printStatus(iconInfo, format, args...) }

func printWarning(format string, args ...any) {
	printStatus(iconWarning, "%s", StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// printDetail prints an indented, dimmed line under a status line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printNextStep suggests the command to run next.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// componentLabel renders "kind name" with the name in its kind's color.
func componentLabel(k topology.Kind, name string) string {
	style, ok := kindStyles[k]
	if !ok {
		style = StyleHighlight
	}
	return k.String() + " " + style.Render(name)
}

func printStats(g topology.Graph, cached bool) {
	fmt.Println(statsLine(g, cached))
}

// statsLine summarizes a topology, e.g.
// "2 sources · 1 transform · 1 sink · 3 edges · cached".
func statsLine(g topology.Graph, cached bool) string {
	var parts []string
	for _, k := range topology.Kinds {
		parts = append(parts, plural(len(g.NamesOf(k)), k.String()))
	}
	parts = append(parts, plural(edgeCount(g), "edge"))

	status := styleFresh.Render("fresh")
	if cached {
		status = styleCached.Render("cached")
	}
	return "  " + StyleDim.Render(strings.Join(parts, separator)+separator) + status
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
