package tui

import "github.com/netios/termwatch/internal/watch"

// frameMsg carries a new frame from the watch loop into the program.
type frameMsg watch.Frame
