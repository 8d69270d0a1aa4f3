package retained

import (
	"log/slog"
	"os"
)

// logLevel controls the level shared by every logger in the package.
// Default is LevelInfo, which suppresses Debug messages.
var logLevel = new(slog.LevelVar)

// SetVerbose enables or disables debug logging for the UI core.
// Call this from main() after parsing flags.
func SetVerbose(v bool) {
	if v {
		logLevel.Set(slog.LevelDebug)
	} else {
		logLevel.Set(slog.LevelInfo)
	}
}

// verbose reports whether debug logging is enabled.
func verbose() bool {
	return logLevel.Level() <= slog.LevelDebug
}

// uiLogger is the logger for manager, focus and render debugging.
var uiLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
