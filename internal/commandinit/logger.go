package commandinit

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// NewLogger creates the console logger for a command. Output is colored only
// when w is a terminal.
func NewLogger(w io.Writer, level zerolog.Level, command string) zerolog.Logger {
	console := zerolog.ConsoleWriter{
		Out:     w,
		NoColor: !isTerminal(w),
	}

	return zerolog.New(console).
		Level(level).
		With().Timestamp().Str("command", command).
		Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
