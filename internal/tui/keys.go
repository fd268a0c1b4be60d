package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/zarlcorp/core/pkg/zstyle"
)

var (
	keyPause = key.NewBinding(key.WithKeys("p", " "), key.WithHelp("p", "pause"))
	keyCopy  = key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy good"))
	keyMask  = key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mask"))
)

// helpPairs lists the footer bindings.
func helpPairs(paused bool) []zstyle.HelpPair {
	pause := zstyle.HelpPair{Key: "p", Desc: "pause"}
	if paused {
		pause.Desc = "resume"
	}
	return []zstyle.HelpPair{
		pause,
		{Key: "c", Desc: "copy good"},
		{Key: "m", Desc: "mask"},
		{Key: "q", Desc: "quit"},
	}
}
