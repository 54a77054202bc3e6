package model

import "time"

// Mode selects how a note's content is edited and rendered.
type Mode string

const (
	ModeText Mode = "text"
	ModeTodo Mode = "todo"
)

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	return m == ModeText || m == ModeTodo
}

// Note is one floating sticky note: its content plus the window geometry the
// host restores it with.
type Note struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Mode    Mode   `json:"mode"`

	PosX   int `json:"posX"`
	PosY   int `json:"posY"`
	Width  int `json:"width"`
	Height int `json:"height"`

	Opacity     float64 `json:"opacity"`
	IsOpen      bool    `json:"isOpen"`
	IsMinimized bool    `json:"isMinimized"`
	AlwaysOnTop bool    `json:"alwaysOnTop"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Settings are the app-wide preferences kept alongside the notes.
type Settings struct {
	Theme          string  `json:"theme"`
	DefaultOpacity float64 `json:"defaultOpacity"`
}

// Geometry and appearance bounds. Updates clamp rather than reject.
const (
	MinWidth  = 200
	MinHeight = 150

	MinOpacity = 0.3
	MaxOpacity = 1.0

	DefaultWidth   = 300
	DefaultHeight  = 200
	DefaultOpacity = 0.95
	DefaultTheme   = "light"
)

// ClampOpacity bounds an opacity value to the supported range.
func ClampOpacity(o float64) float64 {
	if o < MinOpacity {
		return MinOpacity
	}
	if o > MaxOpacity {
		return MaxOpacity
	}
	return o
}
