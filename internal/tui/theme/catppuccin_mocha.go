package theme

// NewCatppuccinMocha creates the default Catppuccin Mocha theme.
func NewCatppuccinMocha() *Theme {
	return &Theme{
		Name:   "catppuccin-mocha",
		IsDark: true,

		// Semantic colors
		Primary:   "#cba6f7", // Mauve
		Secondary: "#b4befe", // Lavender
		Tertiary:  "#89b4fa", // Blue

		// Background hierarchy
		BgBase:     "#1e1e2e",
		BgMantle:   "#181825",
		BgSurface0: "#313244",
		BgSurface1: "#45475a",
		BgSurface2: "#585b70",

		// Foreground hierarchy
		FgMuted:  "#6c7086", // Overlay0
		FgSubtle: "#a6adc8", // Subtext0
		FgBase:   "#cdd6f4", // Text
		FgBright: "#f5e0dc", // Rosewater

		BorderDefault: "#585b70",
		BorderFocused: "#b4befe",

		Success: "#a6e3a1",
		Warning: "#f9e2af",
		Error:   "#f38ba8",
		Info:    "#89dceb",
	}
}
