package display

import (
	"fmt"
	"os"

	"github.com/backmassage/picshrink/internal/logging"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if logging.Magenta != "" {
		fmt.Fprint(os.Stdout, "\033[1;95m")
	}
	fmt.Fprint(os.Stdout, ` ____  _      ____  _          _       _
|  _ \(_) ___/ ___|| |__  _ __(_)_ __ | | __
| |_) | |/ __\___ \| '_ \| '__| | '_ \| |/ /
|  __/| | (__ ___) | | | | |  | | | | |   <
|_|   |_|\___|____/|_| |_|_|  |_|_| |_|_|\_\
`)
	if logging.Magenta != "" {
		fmt.Fprintln(os.Stdout, logging.NC)
	}
}
