package display

import (
	"fmt"
	"os"

	"github.com/backmassage/jxlmigrate/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if term.Enabled() {
		fmt.Fprint(os.Stdout, term.Magenta)
	}
	fmt.Fprint(os.Stdout, `   _       _           _                 _
  (_)_  __| |_ __ ___ (_) __ _ _ __ __ _| |_ ___
  | \ \/ /| | '_ `+"`"+` _ \| |/ _`+"`"+` | '__/ _`+"`"+` | __/ _ \
  | |>  < | | | | | | | | (_| | | | (_| | ||  __/
 _/ /_/\_\|_|_| |_| |_|_|\__, |_|  \__,_|\__\___|
|__/                     |___/
`)
	if term.Enabled() {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}
