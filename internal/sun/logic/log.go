package logic

import "github.com/rs/zerolog/log"

func logInfo(msg string) {
	log.Info().Str("component", "logic").Msg(msg)
}

func logDebug(msg string) {
	log.Debug().Str("component", "logic").Msg(msg)
}

func logError(msg string) {
	log.Error().Str("component", "logic").Msg(msg)
}
