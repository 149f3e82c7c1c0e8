package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{`                   _    _ _   `, "#818cf8"},
	{` _ __   __ ___   _| | _(_) |_ `, "#a78bfa"},
	{`| '_ \ / _' \ \ / / |/ / | __|`, "#c084fc"},
	{`| | | | (_| |\ V /|   <| | |_ `, "#e879f9"},
	{`|_| |_|\__,_| \_/ |_|\_\_|\__|`, "#f472b6"},
}

// PrintBanner writes the navkit banner and version to w using profile p.
func PrintBanner(w io.Writer, p termenv.Profile, version string) {
	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, p.String("  v"+version).Faint())
	fmt.Fprintln(w)
}
