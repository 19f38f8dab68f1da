package sun

import "github.com/andrei-cloud/go_sdm/internal/sun/logic"

// Version is reported for every built-in command.
const Version = "1.0.0"

// NewDefaultRegistry returns a registry holding the built-in SUN commands.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, info := range []*CommandInfo{
		{Code: "SV", ResponseCode: "SW", Description: "Verify a SUN message", Handler: logic.ExecuteSV},
		{Code: "SM", ResponseCode: "SN", Description: "Generate an SDMMAC", Handler: logic.ExecuteSM},
		{Code: "NC", ResponseCode: "ND", Description: "Perform diagnostics", Handler: logic.ExecuteNC},
		{Code: "B2", ResponseCode: "B3", Description: "Echo", Handler: logic.ExecuteB2},
	} {
		info.Version = Version
		// built-in entries are always valid.
		_ = r.Register(info)
	}

	return r
}
