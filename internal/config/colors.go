package config

import (
	"fmt"

	"github.com/derailed/tcell/v2"
)

// Color represents a color in the application
type Color string

const (
	// DefaultColor represents a default color
	DefaultColor Color = "default"

	// TransparentColor represents the terminal bg color
	TransparentColor Color = "-"
)

// Colors tracks multiple colors
type Colors []Color

// Colors converts series string colors to colors
func (c Colors) Colors() []tcell.Color {
	cc := make([]tcell.Color, 0, len(c))
	for _, color := range c {
		cc = append(cc, color.Color())
	}
	return cc
}

// NewColor returns a new color
func NewColor(c string) Color {
	return Color(c)
}

// String returns color as string
func (c Color) String() string {
	if c.isHex() {
		return string(c)
	}
	if c == DefaultColor {
		return "-"
	}
	col := c.Color().TrueColor().Hex()
	if col < 0 {
		return "-"
	}
	return fmt.Sprintf("#%06x", col)
}

func (c Color) isHex() bool {
	return len(c) == 7 && c[0] == '#'
}

// Color returns a view color
func (c Color) Color() tcell.Color {
	if c == DefaultColor {
		return tcell.ColorDefault
	}
	return tcell.GetColor(string(c)).TrueColor()
}

// BorderColors defines pane border colors
type BorderColors struct {
	FgColor    Color `yaml:"fgColor"`
	FocusColor Color `yaml:"focusColor"`
}

// TitleColors defines pane title colors
type TitleColors struct {
	FgColor      Color `yaml:"fgColor"`
	CounterColor Color `yaml:"counterColor"`
}

// FrameColors defines colors for UI frame elements
type FrameColors struct {
	Border BorderColors `yaml:"border"`
	Title  TitleColors  `yaml:"title"`
}

// BodyColors defines colors for body elements
type BodyColors struct {
	FgColor   Color `yaml:"fgColor"`
	BgColor   Color `yaml:"bgColor"`
	LogoColor Color `yaml:"logoColor"`
	HintColor Color `yaml:"hintColor"`
}

// ListColors defines colors for email, highlight and task rows
type ListColors struct {
	SubjectColor   Color `yaml:"subjectColor"`
	FromColor      Color `yaml:"fromColor"`
	HighlightColor Color `yaml:"highlightColor"`
	TaskColor      Color `yaml:"taskColor"`
	TaskMetaColor  Color `yaml:"taskMetaColor"`
	SelectedBg     Color `yaml:"selectedBg"`
}

// StatusColors defines status bar message colors
type StatusColors struct {
	InfoColor    Color `yaml:"infoColor"`
	SuccessColor Color `yaml:"successColor"`
	WarningColor Color `yaml:"warningColor"`
	ErrorColor   Color `yaml:"errorColor"`
}

// ColorsConfig defines the complete color configuration
type ColorsConfig struct {
	Body   BodyColors   `yaml:"body"`
	Frame  FrameColors  `yaml:"frame"`
	List   ListColors   `yaml:"list"`
	Status StatusColors `yaml:"status"`
}

// DefaultColors returns the default color configuration
func DefaultColors() *ColorsConfig {
	return &ColorsConfig{
		Body: BodyColors{
			FgColor:   NewColor("#f8f8f2"),
			BgColor:   NewColor("#282a36"),
			LogoColor: NewColor("#bd93f9"),
			HintColor: NewColor("#6272a4"),
		},
		Frame: FrameColors{
			Border: BorderColors{
				FgColor:    NewColor("#44475a"),
				FocusColor: NewColor("#8be9fd"),
			},
			Title: TitleColors{
				FgColor:      NewColor("#f8f8f2"),
				CounterColor: NewColor("#50fa7b"),
			},
		},
		List: ListColors{
			SubjectColor:   NewColor("#f8f8f2"),
			FromColor:      NewColor("#6272a4"),
			HighlightColor: NewColor("#f1fa8c"),
			TaskColor:      NewColor("#ffb86c"),
			TaskMetaColor:  NewColor("#6272a4"),
			SelectedBg:     NewColor("#44475a"),
		},
		Status: StatusColors{
			InfoColor:    NewColor("#8be9fd"),
			SuccessColor: NewColor("#50fa7b"),
			WarningColor: NewColor("#f1fa8c"),
			ErrorColor:   NewColor("#ff5555"),
		},
	}
}
