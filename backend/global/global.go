package global

import (
	"github.com/rs/zerolog"
)

// Logger is the process logger. Nop by default; the initialize package
// installs a console logger at init and reconfigures it from the config.
var Logger = zerolog.Nop()
