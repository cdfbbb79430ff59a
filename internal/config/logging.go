package config

import "github.com/rs/zerolog"

// LoggingConfig holds application logging configuration.
type LoggingConfig struct {
	// Level is the verbosity threshold (debug/info/warn/error).
	// Any logs below this level are ignored.
	Level string `koanf:"level"`
}

// ZerologLevel converts the configured level string into a zerolog
// level. Unknown values fall back to info rather than failing startup.
func (l LoggingConfig) ZerologLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(l.Level)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}
