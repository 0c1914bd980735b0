package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
)

// Theme registry for the application
var Theme *tint.Registry

// Common style elements used across the widget
var (
	TitleStyle            lipgloss.Style
	TitleWithPaddingStyle lipgloss.Style
	statusBarStyle        lipgloss.Style
	helpStyle             lipgloss.Style

	UserMessageLabelStyle        lipgloss.Style
	AssistantMessageLabelStyle   lipgloss.Style
	UserMessageContentStyle      lipgloss.Style
	AssistantMessageContentStyle lipgloss.Style
	TimestampStyle               lipgloss.Style
	WelcomeStyle                 lipgloss.Style
	SpinnerStyle                 lipgloss.Style
	ViewportBorderStyle          lipgloss.Style
	ScrollIndicatorStyle         lipgloss.Style

	// Locale picker overlay styles
	LocalePickerBorderStyle lipgloss.Style
	LocalePickerTitleStyle  lipgloss.Style
)

func init() {
	// Initialize with Tint theme
	tint.NewDefaultRegistry()
	tint.SetTint(tint.TintChalk)
	Theme = tint.DefaultRegistry

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(tint.Purple())

	TitleWithPaddingStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(tint.Purple()).
		Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
		Foreground(tint.BrightBlack()).
		Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
		Foreground(tint.BrightBlack()).
		Padding(1, 0, 0, 1)

	UserMessageLabelStyle = lipgloss.NewStyle().
		Foreground(tint.White()).
		Bold(true)

	AssistantMessageLabelStyle = lipgloss.NewStyle().
		Foreground(tint.Purple()).
		Bold(true)

	UserMessageContentStyle = lipgloss.NewStyle().
		Foreground(tint.Fg()).
		Padding(0, 1).
		MarginBottom(1)

	AssistantMessageContentStyle = lipgloss.NewStyle().
		Foreground(tint.Fg()).
		Padding(0, 1).
		MarginBottom(1)

	TimestampStyle = lipgloss.NewStyle().
		Foreground(tint.BrightBlack())

	WelcomeStyle = lipgloss.NewStyle().
		Foreground(tint.BrightBlack()).
		Padding(1, 2).
		Italic(true)

	SpinnerStyle = lipgloss.NewStyle().
		Foreground(tint.Purple())

	ViewportBorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tint.White()).
		Padding(0, 1)

	ScrollIndicatorStyle = lipgloss.NewStyle().
		Foreground(tint.White())

	LocalePickerBorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tint.Yellow()).
		Padding(1, 2)

	LocalePickerTitleStyle = lipgloss.NewStyle().
		Foreground(tint.Yellow()).
		Bold(true)
}

// ConfigureListStyles configures list styles to match the application theme
func ConfigureListStyles(l *list.Model) {
	l.Styles.Title = TitleStyle
	l.Styles.TitleBar = lipgloss.NewStyle().
		Padding(0, 0, 1, 0)

	l.Styles.PaginationStyle = lipgloss.NewStyle().
		Foreground(tint.BrightBlack())

	l.Styles.HelpStyle = helpStyle

	l.Styles.StatusBar = lipgloss.NewStyle().
		Foreground(tint.BrightBlack()).
		Padding(0, 0, 1, 0)
}

// CreateThemedDelegate creates a themed list delegate with application colors
func CreateThemedDelegate() list.DefaultDelegate {
	d := list.NewDefaultDelegate()

	d.Styles.SelectedTitle = lipgloss.NewStyle().
		Foreground(tint.Purple()).
		Bold(true).
		BorderLeft(true).
		BorderForeground(tint.Purple()).
		Padding(0, 0, 0, 1)

	d.Styles.SelectedDesc = lipgloss.NewStyle().
		Foreground(tint.Yellow()).
		BorderLeft(true).
		BorderForeground(tint.Purple()).
		Padding(0, 0, 0, 1)

	d.Styles.NormalTitle = lipgloss.NewStyle().
		Foreground(tint.Fg()).
		Padding(0, 0, 0, 2)

	d.Styles.NormalDesc = lipgloss.NewStyle().
		Foreground(tint.BrightBlack()).
		Padding(0, 0, 0, 2)

	return d
}

// RenderViewportWithBorder renders content with the viewport border style
func RenderViewportWithBorder(content string) string {
	return ViewportBorderStyle.Render(content)
}

// GetUserMessageContentStyle returns a style for user message content with given width
func GetUserMessageContentStyle(width int) lipgloss.Style {
	return UserMessageContentStyle.
		Width(width - 10).
		Align(lipgloss.Right)
}

// GetAssistantMessageContentStyle returns a style for assistant message content with given width
func GetAssistantMessageContentStyle(width int) lipgloss.Style {
	return AssistantMessageContentStyle.
		Width(width - 10)
}

// GetTimestampStyle returns a style for timestamp with given width
func GetTimestampStyle(width int) lipgloss.Style {
	return TimestampStyle.
		Align(lipgloss.Right).
		Width(width - 10)
}
