// Package palette holds the colour tables behind the built-in themes.
package palette

// Palette is a set of hex foreground colours keyed by semantic role.
// An empty entry leaves the terminal default in place.
type Palette struct {
	Text     string
	Cursor   string
	Emphasis string
	Strong   string
	Code     string
	Link     string
	Muted    string
}

var (
	PaletteDefault = Palette{
		Text:     "",
		Cursor:   "#5fd7ff",
		Emphasis: "#d7afff",
		Strong:   "#ffd75f",
		Code:     "#87d787",
		Link:     "#5fafff",
		Muted:    "#808080",
	}
	PaletteOutrunElectric = Palette{
		Text:     "#f0e6ff",
		Cursor:   "#ff2a6d",
		Emphasis: "#d300c5",
		Strong:   "#ff2a6d",
		Code:     "#05d9e8",
		Link:     "#01c5c4",
		Muted:    "#7a5c99",
	}
	PaletteGruvbox = Palette{
		Text:     "#ebdbb2",
		Cursor:   "#fe8019",
		Emphasis: "#d3869b",
		Strong:   "#fabd2f",
		Code:     "#b8bb26",
		Link:     "#83a598",
		Muted:    "#928374",
	}
	PaletteGruvboxLight = Palette{
		Text:     "#3c3836",
		Cursor:   "#af3a03",
		Emphasis: "#8f3f71",
		Strong:   "#b57614",
		Code:     "#79740e",
		Link:     "#076678",
		Muted:    "#928374",
	}
	PaletteDracula = Palette{
		Text:     "#f8f8f2",
		Cursor:   "#ff79c6",
		Emphasis: "#bd93f9",
		Strong:   "#ffb86c",
		Code:     "#50fa7b",
		Link:     "#8be9fd",
		Muted:    "#6272a4",
	}
	PaletteNord = Palette{
		Text:     "#d8dee9",
		Cursor:   "#88c0d0",
		Emphasis: "#b48ead",
		Strong:   "#ebcb8b",
		Code:     "#a3be8c",
		Link:     "#81a1c1",
		Muted:    "#4c566a",
	}
	PaletteTokyoNight = Palette{
		Text:     "#c0caf5",
		Cursor:   "#7aa2f7",
		Emphasis: "#bb9af7",
		Strong:   "#ff9e64",
		Code:     "#9ece6a",
		Link:     "#7dcfff",
		Muted:    "#565f89",
	}
	PaletteSolarizedDark = Palette{
		Text:     "#839496",
		Cursor:   "#268bd2",
		Emphasis: "#6c71c4",
		Strong:   "#b58900",
		Code:     "#859900",
		Link:     "#2aa198",
		Muted:    "#586e75",
	}
	PaletteSolarizedLight = Palette{
		Text:     "#657b83",
		Cursor:   "#268bd2",
		Emphasis: "#6c71c4",
		Strong:   "#cb4b16",
		Code:     "#859900",
		Link:     "#2aa198",
		Muted:    "#93a1a1",
	}
	PaletteCatppuccinMocha = Palette{
		Text:     "#cdd6f4",
		Cursor:   "#f5e0dc",
		Emphasis: "#cba6f7",
		Strong:   "#fab387",
		Code:     "#a6e3a1",
		Link:     "#89b4fa",
		Muted:    "#6c7086",
	}
	PaletteOneDark = Palette{
		Text:     "#abb2bf",
		Cursor:   "#528bff",
		Emphasis: "#c678dd",
		Strong:   "#e5c07b",
		Code:     "#98c379",
		Link:     "#61afef",
		Muted:    "#5c6370",
	}
	PaletteRosePine = Palette{
		Text:     "#e0def4",
		Cursor:   "#ebbcba",
		Emphasis: "#c4a7e7",
		Strong:   "#f6c177",
		Code:     "#9ccfd8",
		Link:     "#31748f",
		Muted:    "#6e6a86",
	}
)
