package server

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	anetserver "github.com/andrei-cloud/anet/server"
	"github.com/andrei-cloud/go_sdm/internal/logging"
	"github.com/andrei-cloud/go_sdm/internal/sun"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Firmware is the version string reported by the NC diagnostics command.
const Firmware = "0001-S424"

// logAdapter implements anet.Logger using zerolog.
type logAdapter struct{}

// Server wraps the anet TCP server and the SUN command registry.
type Server struct {
	address     string
	srv         *anetserver.Server
	registry    atomic.Pointer[sun.Registry]
	activeConns int32
}

func (l logAdapter) Print(v ...any) {
	log.Info().Msg(fmt.Sprint(v...))
}

func (l logAdapter) Printf(format string, v ...any) {
	log.Info().Msgf(format, v...)
}

func (l logAdapter) Infof(format string, v ...any) {
	log.Info().Msgf(format, v...)
}

func (l logAdapter) Warnf(format string, v ...any) {
	log.Warn().Msgf(format, v...)
}

func (l logAdapter) Errorf(format string, v ...any) {
	log.Error().Msgf(format, v...)
}

// NewServer configures and returns the SUN verification server.
func NewServer(address string, reg *sun.Registry) (*Server, error) {
	if reg == nil {
		return nil, errors.New("server setup failed: nil command registry")
	}

	cfg := &anetserver.ServerConfig{
		MaxConns:        100,
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    30 * time.Second,
		IdleTimeout:     0 * time.Second, // disable idle connection closure.
		ShutdownTimeout: 5 * time.Second,
		Logger:          logAdapter{},
	}

	s := &Server{address: address}
	s.registry.Store(reg)

	handler := anetserver.HandlerFunc(s.handle)
	srv, err := anetserver.NewServer(address, handler, cfg)
	if err != nil {
		return nil, fmt.Errorf("server setup failed: %w", err)
	}
	s.srv = srv

	return s, nil
}

// Start begins listening for connections.
func (s *Server) Start() error {
	log.Info().Str("address", s.address).Msg("server started")
	return s.srv.Start()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	return s.srv.Stop()
}

// SetRegistry swaps in a new command registry atomically.
func (s *Server) SetRegistry(reg *sun.Registry) {
	if reg == nil {
		log.Error().Msg("ignoring nil command registry")
		return
	}
	s.registry.Store(reg)
}

func (s *Server) handle(conn *anetserver.ServerConn, data []byte) ([]byte, error) {
	client := conn.Conn.RemoteAddr().String()
	active := int(atomic.AddInt32(&s.activeConns, 1))
	defer atomic.AddInt32(&s.activeConns, -1)

	start := time.Now()
	requestID := uuid.NewString()

	if len(data) < 2 {
		log.Error().
			Str("request_id", requestID).
			Str("client_ip", client).
			Msg("malformed request")
		return nil, errors.New("malformed request")
	}

	reg := s.registry.Load()
	cmd := string(data[:2])
	payload := data[2:]
	logging.LogRequest(requestID, client, cmd, reg.Description(cmd), payload, active)

	// NC reports the server firmware rather than client data.
	if cmd == "NC" {
		payload = []byte(Firmware)
	}

	resp, err := reg.Execute(cmd, payload)
	if err != nil {
		if errors.Is(err, sun.ErrUnknownCommand) {
			log.Warn().
				Str("event", "unknown_command").
				Str("request_id", requestID).
				Str("client_ip", client).
				Str("command", cmd).
				Msg("command not recognized, responding with error code")
		} else {
			log.Error().
				Str("event", "command_error").
				Str("request_id", requestID).
				Str("client_ip", client).
				Str("command", cmd).
				Err(err).
				Msg("command execution failed")
		}
		resp = sun.ErrorResponse(cmd)
	}

	respCmd, errCode := "", ""
	if len(resp) >= 4 {
		respCmd, errCode = string(resp[:2]), string(resp[2:4])
	}
	logging.LogResponse(requestID, client, cmd, respCmd, resp, errCode, time.Since(start), active)

	return resp, nil
}
