package initialize

import (
	"io"
	"os"
	"strings"
	"time"

	"inkpost/backend/global"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	// console writer to stdout until the config is known
	global.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
}

// SetupLogger switches to JSON output in production and applies level.
func SetupLogger(production bool, level string, out io.Writer) {
	if out == nil {
		out = os.Stdout
	}
	if production {
		global.Logger = zerolog.New(out).With().Timestamp().Logger()
	} else {
		global.Logger = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	}
	SetLogLevel(level)
}

// SetLogLevel applies level globally, keeping the current one when level
// does not parse.
func SetLogLevel(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		global.Logger.Warn().Str("level", level).Msg("unknown log level, keeping current")
		return
	}
	zerolog.SetGlobalLevel(lvl)
}
