package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Treehouse CLI theme: a handful of reusable styles and icons.

const (
	IconBuddy   = "🧸"
	IconStar    = "⭐"
	IconSparkle = "✨"
	IconUnlock  = "🔓"
	IconBadge   = "🏅"
	IconError   = "🧨"
	IconScroll  = "📜"
	IconFood    = "🍎"
	IconSleep   = "💤"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
)

const barWidth = 10

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// NeedBar draws a gauge in [0, 100] as a fixed-width bar with its value.
func NeedBar(value float64) string {
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}
	filled := int(math.Round(value / 100 * barWidth))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	style := Good
	switch {
	case value < 30:
		style = Bad
	case value < 60:
		style = Warn
	}
	return style.Render(bar) + " " + Muted.Render(fmt.Sprintf("%5.1f", value))
}

func MoodText(mood string) string {
	switch mood {
	case "excited":
		return Gold.Render("🤩 excited")
	case "happy":
		return Good.Render("😊 happy")
	case "tired":
		return Muted.Render(IconSleep + " tired")
	case "hungry":
		return Warn.Render("🍽️ hungry")
	case "sad":
		return Bad.Render("😢 sad")
	default:
		return Muted.Render(mood)
	}
}

func EnabledText(ok bool) string {
	if ok {
		return Good.Render("ready")
	}
	return Bad.Render("locked")
}
