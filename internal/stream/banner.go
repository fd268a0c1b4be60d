package stream

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/zarlcorp/zcard/internal/card"
)

const bannerArt = `
████████████████████████████████████████████████████████
██                                                    ██
██  █████████████████████████████████████████████████ ██
██  █████████████████████████████████████████████████ ██
██                                                    ██
██                                                    ██
██                                                    ██
██   Card Number: XXXX XXXX XXXX XXXX                 ██
██   Expiry Date: XX/XX                               ██
██   Card Holder: ZCARD TEST                          ██
██                                                    ██
████████████████████████████████████████████████████████
`

// clearScreen moves the cursor home and erases the display.
const clearScreen = "\033[H\033[2J"

// RandomColor picks a saturated, bright hex color from src.
func RandomColor(src card.Source) lipgloss.Color {
	hue := float64(src.IntN(360))
	sat := 0.6 + float64(src.IntN(40))/100
	c := colorful.Hsv(hue, sat, 1)
	return lipgloss.Color(c.Hex())
}

// Banner writes the decorative card box in accent. The screen is cleared
// first when clear is set.
func Banner(w io.Writer, accent lipgloss.Color, clear bool) {
	if clear {
		fmt.Fprint(w, clearScreen)
	}
	style := lipgloss.NewStyle().Foreground(accent).Bold(true)
	fmt.Fprintln(w, style.Render(bannerArt))
}
