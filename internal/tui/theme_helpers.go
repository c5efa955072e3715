package tui

import (
	"fmt"
	"strings"

	"github.com/ajramos/mailbrief/internal/config"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// Theme-aware color helpers. A nil theme falls back to fixed colors.

// GetStatusColor returns the status bar color for a level
func (a *App) GetStatusColor(level string) tcell.Color {
	if a == nil || a.currentTheme == nil {
		switch level {
		case "error":
			return tcell.ColorRed
		case "success":
			return tcell.ColorGreen
		case "warning":
			return tcell.ColorYellow
		case "info":
			return tcell.ColorBlue
		default:
			return tcell.ColorWhite
		}
	}

	switch level {
	case "error":
		return a.currentTheme.Status.ErrorColor.Color()
	case "success":
		return a.currentTheme.Status.SuccessColor.Color()
	case "warning":
		return a.currentTheme.Status.WarningColor.Color()
	default:
		return a.currentTheme.Status.InfoColor.Color()
	}
}

// GetColorTag returns a [color] markup tag for a purpose
func (a *App) GetColorTag(purpose string) string {
	if a == nil || a.currentTheme == nil {
		switch purpose {
		case "title":
			return "[yellow]"
		case "hint", "meta", "from":
			return "[gray]"
		case "highlight":
			return "[yellow]"
		case "task":
			return "[orange]"
		case "connected":
			return "[green]"
		case "disconnected":
			return "[red]"
		default:
			return "[white]"
		}
	}

	t := a.currentTheme
	var c config.Color
	switch purpose {
	case "title":
		c = t.Frame.Title.FgColor
	case "hint":
		c = t.Body.HintColor
	case "meta":
		c = t.List.TaskMetaColor
	case "from":
		c = t.List.FromColor
	case "highlight":
		c = t.List.HighlightColor
	case "task":
		c = t.List.TaskColor
	case "connected":
		c = t.Status.SuccessColor
	case "disconnected":
		c = t.Status.ErrorColor
	case "logo":
		c = t.Body.LogoColor
	default:
		c = t.Body.FgColor
	}
	return fmt.Sprintf("[%s]", c.String())
}

// GetEndTag closes a color tag
func (a *App) GetEndTag() string {
	return "[-]"
}

func (a *App) bgColor() tcell.Color {
	if a.currentTheme == nil {
		return tcell.ColorDefault
	}
	return a.currentTheme.Body.BgColor.Color()
}

func (a *App) fgColor() tcell.Color {
	if a.currentTheme == nil {
		return tcell.ColorWhite
	}
	return a.currentTheme.Body.FgColor.Color()
}

func (a *App) borderColor(focused bool) tcell.Color {
	if a.currentTheme == nil {
		if focused {
			return tcell.ColorAqua
		}
		return tcell.ColorGray
	}
	if focused {
		return a.currentTheme.Frame.Border.FocusColor.Color()
	}
	return a.currentTheme.Frame.Border.FgColor.Color()
}

func (a *App) getTitleColor() tcell.Color {
	if a.currentTheme == nil {
		return tcell.ColorYellow
	}
	return a.currentTheme.Frame.Title.FgColor.Color()
}

func (a *App) getHintColor() tcell.Color {
	if a.currentTheme == nil {
		return tcell.ColorGray
	}
	return a.currentTheme.Body.HintColor.Color()
}

func (a *App) getSelectionStyle() tcell.Style {
	bg := tcell.ColorDarkSlateGray
	if a.currentTheme != nil {
		bg = a.currentTheme.List.SelectedBg.Color()
	}
	return tcell.StyleDefault.Background(bg).Foreground(a.fgColor())
}

// getStatusColor is used by the ErrorHandler
func (a *App) getStatusColor(level string) tcell.Color {
	return a.GetStatusColor(level)
}

// loadTheme resolves the configured theme: custom dir, then user themes dir,
// then built-in defaults. The user default theme file is created on demand.
func (a *App) loadTheme() *config.ColorsConfig {
	name := a.Config.Layout.CurrentTheme
	dirs := []string{}
	if a.Config.Layout.CustomThemeDir != "" {
		dirs = append(dirs, config.ExpandPath(a.Config.Layout.CustomThemeDir))
	}
	if d := config.DefaultThemesDir(); d != "" {
		dirs = append(dirs, d)
	}

	var available []string
	for _, dir := range dirs {
		loader := config.NewThemeLoader(dir)
		if dir == config.DefaultThemesDir() {
			if err := loader.CreateDefaultTheme(); err != nil && a.logger != nil {
				a.logger.Printf("theme: create default in %s: %v", dir, err)
			}
		}
		if names, err := loader.ListAvailableThemes(); err == nil {
			available = append(available, names...)
		}
		theme, err := loader.LoadTheme(name)
		if err != nil {
			continue
		}
		if err := loader.ValidateTheme(theme); err != nil {
			if a.logger != nil {
				a.logger.Printf("theme: %s rejected: %v", name, err)
			}
			continue
		}
		return theme
	}

	if a.logger != nil {
		a.logger.Printf("theme: %q not found (available: %s), using built-in colors", name, strings.Join(available, ", "))
	}
	return config.DefaultColors()
}

// applyTheme sets global tview styles from the current theme
func (a *App) applyTheme() {
	if a.currentTheme == nil {
		return
	}
	tview.Styles.PrimitiveBackgroundColor = a.bgColor()
	tview.Styles.PrimaryTextColor = a.fgColor()
	tview.Styles.BorderColor = a.borderColor(false)
	tview.Styles.TitleColor = a.getTitleColor()
}
