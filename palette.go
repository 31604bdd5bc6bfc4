package fundperf

// Colors of the curves. Up to 5 funds use the brand colors, more funds use
// the wider secondary palette.
var (
	primaryPalette = []string{"#24272A", "#0B2DCE", "#5A646E", "#98A4AE", "#FFE946"}

	secondaryPalette = []string{
		"#727272", "#52C599", "#CC9967", "#9B5634", "#D4BE7F",
		"#3C86B4", "#A0A0A0", "#7FD4B3", "#D5AB80", "#C9805C",
		"#9E3541", "#A8CDE2", "#C8C8C8", "#A3E1C2", "#E0C1A2",
		"#D49A7D", "#DE9CA6", "#CBB363",
	}
)

// Palette returns one color per curve, for n curves.
func Palette(n int) []string {
	colors := primaryPalette
	if n > len(primaryPalette) {
		colors = secondaryPalette
	}
	out := make([]string, n)
	for i := range out {
		out[i] = colors[i%len(colors)]
	}
	return out
}
