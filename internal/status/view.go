package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Render renders the status data to a string
func Render(data *Data) string {
	sections := []string{
		renderHeader(data),
		renderConfig(data),
		renderBackends(data),
		renderSettings(data),
		renderParentCommands(data),
	}
	return strings.Join(sections, "\n\n")
}

func renderHeader(data *Data) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("📂 Current directory: ") + valueStyle.Render(data.CurrentDir) + "\n")
	b.WriteString(titleStyle.Render("📦 Version: ") + valueStyle.Render(data.Version))
	return b.String()
}

func renderConfig(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("📝 Configuration:") + "\n")

	if data.ConfigPath == "" {
		b.WriteString("   " + keyStyle.Render("File: ") + subtleStyle.Render("none, using built-in defaults") + "\n")
		if data.ConfigDir != "" {
			b.WriteString("   " + warningStyle.Render(fmt.Sprintf("Run 'fishcomp init' to create %s/config.yml", data.ConfigDir)) + "\n")
		}
	} else {
		b.WriteString("   " + keyStyle.Render("File: ") + valueStyle.Render(data.ConfigPath) + "\n")
	}

	if len(data.ValidationErrors) == 0 {
		b.WriteString("   " + keyStyle.Render("Validation: ") + successStyle.Render("✓ Valid"))
		return b.String()
	}

	b.WriteString("   " + keyStyle.Render("Validation: ") + errorStyle.Render(fmt.Sprintf("✗ %d error(s)", len(data.ValidationErrors))) + "\n")
	for _, e := range data.ValidationErrors {
		b.WriteString(fmt.Sprintf("      [%s] %s\n", keyStyle.Render(e.Field), subtleStyle.Render(e.Message)))
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func renderBackends(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("🐟 Backends:") + "\n")

	b.WriteString(renderBackend("Primary", data.Primary))
	b.WriteString("\n")
	b.WriteString(renderBackend("Fallback", data.Secondary))

	if !data.Primary.Available {
		b.WriteString("\n   " + warningStyle.Render("Completions will come from the editor's previous completion mechanism"))
	}

	return b.String()
}

func renderBackend(label string, info BackendInfo) string {
	var b strings.Builder

	status := successStyle.Render("✓ Available")
	if !info.Available {
		status = errorStyle.Render("✗ Not available")
	}
	b.WriteString(fmt.Sprintf("   %s %s %s\n", keyStyle.Render(label+":"), valueStyle.Render(info.Name), status))

	path := info.Path
	if path == "" {
		path = info.Command + " (not found)"
	}
	b.WriteString("      " + keyStyle.Render("Executable: ") + subtleStyle.Render(path))

	if info.Version != "" {
		b.WriteString("\n      " + keyStyle.Render("Version: ") + subtleStyle.Render(info.Version))
	}

	// Only the fallback has a framework script
	if label == "Fallback" {
		script := info.Script
		if script == "" {
			script = "bash-completion not found"
		}
		b.WriteString("\n      " + keyStyle.Render("Script: ") + subtleStyle.Render(script))
	}

	return b.String()
}

func renderSettings(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("⚙️  Settings:") + "\n")

	b.WriteString("   " + keyStyle.Render("Fallback enabled: ") + renderBool(data.FallbackEnabled) + "\n")
	b.WriteString("   " + keyStyle.Render("Prefer fallback: ") + renderBool(data.PreferFallback) + "\n")

	sentinel := data.SentinelPattern
	if sentinel == "" {
		sentinel = "(none)"
	}
	b.WriteString("   " + keyStyle.Render("Sentinel pattern: ") + valueStyle.Render(sentinel) + "\n")
	b.WriteString("   " + keyStyle.Render("Invocation: ") + valueStyle.Render(truncateString(data.Invocation, 60)) + "\n")

	timeout := "none"
	if data.Timeout > 0 {
		timeout = data.Timeout.String()
	}
	b.WriteString("   " + keyStyle.Render("Timeout: ") + valueStyle.Render(timeout) + "\n")
	b.WriteString("   " + keyStyle.Render("Log level: ") + valueStyle.Render(data.LogLevel))

	return b.String()
}

func renderParentCommands(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("🔗 Parent commands:") + "\n")

	if len(data.ParentCommands) == 0 {
		b.WriteString("   " + subtleStyle.Render("None configured"))
		return b.String()
	}

	for _, p := range data.ParentCommands {
		b.WriteString("   " + valueStyle.Render(p.Name))
		if len(p.ValueFlags) > 0 {
			b.WriteString(" " + subtleStyle.Render(truncateString(strings.Join(p.ValueFlags, " "), 60)))
		}
		b.WriteString("\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func renderBool(v bool) string {
	if v {
		return successStyle.Render("yes")
	}
	return subtleStyle.Render("no")
}

func truncateString(s string, maxLen int) string {
	if len(s) > maxLen {
		return s[:maxLen-3] + "..."
	}
	return s
}
