package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New cria o logger da aplicação. Em development a saída é colorida no
// console; nos demais ambientes é JSON estruturado em stdout.
func New(env string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	var logger zerolog.Logger
	if env == "development" {
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
		logger = zerolog.New(output).Level(zerolog.DebugLevel)
	} else {
		logger = zerolog.New(os.Stdout).Level(zerolog.InfoLevel)
	}

	return logger.With().Timestamp().Caller().Logger()
}
