// Package styles centralizes the lipgloss colors and styles used across the
// TUI. The palette mirrors the marketplace's web theme: dark slate surfaces,
// blue accents, and the yellow/green/red status badges.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	PrimaryColor = lipgloss.Color("#60A5FA") // Blue (blue-400, the web accent)
	AccentColor  = lipgloss.Color("#A78BFA") // Purple (gradient partner of the accent)
	WarningColor = lipgloss.Color("#FBBF24") // Yellow (pending badge)
	SuccessColor = lipgloss.Color("#34D399") // Green (confirmed badge)
	ErrorColor   = lipgloss.Color("#F87171") // Red (canceled badge, errors)
	MutedColor   = lipgloss.Color("#9CA3AF") // Gray
	SurfaceColor = lipgloss.Color("#1E293B") // Dark slate surface
	TextColor    = lipgloss.Color("#F9FAFB") // Light text
	BorderColor  = lipgloss.Color("#475569") // Slate border

	// Convenience styles for colors
	Primary = lipgloss.NewStyle().Foreground(PrimaryColor)
	Warning = lipgloss.NewStyle().Foreground(WarningColor)
	Success = lipgloss.NewStyle().Foreground(SuccessColor)
	Error   = lipgloss.NewStyle().Foreground(ErrorColor)
	Muted   = lipgloss.NewStyle().Foreground(MutedColor)
	Text    = lipgloss.NewStyle().Foreground(TextColor)

	// Title is the view heading style
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor).
		MarginBottom(1)

	// Header is the top bar with the app name and session state
	Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextColor).
		Background(SurfaceColor).
		Padding(0, 1)

	// Help is the footer key-hint style
	Help = lipgloss.NewStyle().
		Foreground(MutedColor)

	// Badge styles for reservation statuses
	BadgePending = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	BadgeConfirmed = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	BadgeCanceled = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	// Selected is the highlighted row in lists
	Selected = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(PrimaryColor).
			Bold(true)

	// Box wraps forms and dialogs
	Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(1, 2)

	// DialogBox wraps blocking confirmation prompts
	DialogBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(WarningColor).
			Padding(1, 2)

	// ErrorBar and InfoBar render transient messages below the content
	ErrorBar = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	InfoBar = lipgloss.NewStyle().
		Foreground(SuccessColor)
)
