// Package sun dispatches SUN service commands to their handlers.
package sun

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/andrei-cloud/go_sdm/internal/errorcodes"
	"github.com/rs/zerolog/log"
)

// ErrUnknownCommand is returned by Execute for codes with no registered handler.
var ErrUnknownCommand = errors.New("unknown command")

// Handler executes one command payload and returns the full response.
type Handler func(input []byte) ([]byte, error)

// CommandInfo stores metadata about a service command.
type CommandInfo struct {
	Code         string
	ResponseCode string
	Description  string
	Version      string
	Handler      Handler
}

// Registry manages command handlers keyed by two-character command code.
type Registry struct {
	commands map[string]*CommandInfo
	mu       sync.RWMutex
}

// NewRegistry creates an empty command registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]*CommandInfo),
	}
}

// Register adds or replaces a command. ResponseCode defaults to the incremented code.
func (r *Registry) Register(info *CommandInfo) error {
	if len(info.Code) != 2 {
		return fmt.Errorf("invalid command code %q", info.Code)
	}
	if info.Handler == nil {
		return fmt.Errorf("command %s has no handler", info.Code)
	}
	if info.ResponseCode == "" {
		info.ResponseCode = IncrementCode(info.Code)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.commands[info.Code] = info
	return nil
}

// Get retrieves command metadata by command code.
func (r *Registry) Get(code string) (*CommandInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	info, ok := r.commands[code]
	return info, ok
}

// List returns all registered commands ordered by code.
func (r *Registry) List() []*CommandInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*CommandInfo, 0, len(r.commands))
	for _, info := range r.commands {
		result = append(result, info)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })

	return result
}

// Description returns the description of the given command or the code itself if not found.
func (r *Registry) Description(code string) string {
	if info, ok := r.Get(code); ok {
		return info.Description
	}

	return code
}

// Execute runs the handler for code. Handler failures become a response
// carrying the response code and the service error code.
func (r *Registry) Execute(code string, input []byte) ([]byte, error) {
	info, ok := r.Get(code)
	if !ok {
		return nil, ErrUnknownCommand
	}

	resp, err := info.Handler(input)
	if err != nil {
		svcErr := errorcodes.FromSDM(err)
		log.Warn().
			Str("event", "command_failed").
			Str("command", code).
			Str("error_code", svcErr.CodeOnly()).
			Err(err).
			Msg("command returned error")

		return []byte(info.ResponseCode + svcErr.CodeOnly()), nil
	}

	return resp, nil
}

// IncrementCode returns the next command code by incrementing the second character.
func IncrementCode(cmd string) string {
	b := []byte(cmd)
	if len(b) < 2 {
		return cmd
	}
	if b[1] == 'Z' {
		b[1] = 'A'
	} else {
		b[1]++
	}

	return string(b)
}

// ErrorResponse constructs the response for a disabled or unknown command.
func ErrorResponse(cmd string) []byte {
	return []byte(IncrementCode(cmd) + errorcodes.Err68.CodeOnly())
}
