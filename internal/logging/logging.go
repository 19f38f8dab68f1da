package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger initializes the zerolog logger with the specified debug mode and output format.
func InitLogger(debug, human bool) {
	zerolog.TimeFieldFormat = time.RFC3339Nano                 // always initialize base logger with timestamp.
	base := zerolog.New(os.Stdout).With().Timestamp().Logger() // initialize base logger.
	if human {
		log.Logger = base.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339Nano,
		}) // select output format.
	} else {
		log.Logger = base // use JSON logger.
	}
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel) // set debug level.
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel) // set info level.
	}
}

// LogRequest logs a received command with structured fields.
// Request payloads carry key-derived material and are only logged at debug level.
func LogRequest(
	requestID string,
	clientIP string,
	command string,
	description string,
	requestData []byte,
	activeConns int,
) {
	log.Info().
		Str("event", "request_received").
		Str("request_id", requestID).
		Str("client_ip", clientIP).
		Str("command", command).
		Str("description", description).
		Int("request_len", len(requestData)).
		Int("active_connections", activeConns).
		Msg("received command")
	log.Debug().
		Str("request_id", requestID).
		Str("request", string(requestData)).
		Msg("request payload")
}

// LogResponse logs a sent response with structured fields.
// Response payloads may hold decrypted UIDs and file data, so only their length is logged.
func LogResponse(
	requestID string,
	clientIP string,
	command string,
	responseCommand string,
	responseData []byte,
	errorCode string,
	duration time.Duration,
	activeConns int,
) {
	log.Info().
		Str("event", "response_sent").
		Str("request_id", requestID).
		Str("client_ip", clientIP).
		Str("command", command).
		Str("response_command", responseCommand).
		Int("response_len", len(responseData)).
		Str("error_code", errorCode).
		Dur("duration", duration).
		Int("active_connections", activeConns).
		Msg("sent response")
}
