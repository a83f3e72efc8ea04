// Command resolve-mcp exposes the resolution engine's ChoiceCallback
// boundary over MCP, so a connected LLM client can drive choices for a
// resolution tree hosted in-process by some other part of a larger
// application. It does not itself run a game loop, and the repository
// ships no example program that does.
package main

import (
	"os"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/sanguosha/resolve/adapters/mcpchoice"
	"github.com/sanguosha/resolve/internal/config"
	"github.com/sanguosha/resolve/internal/logsink"
)

func main() {
	cfg := config.Defaults()
	if path := os.Getenv("RESOLVE_CONFIG"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			os.Stderr.WriteString("resolve-mcp: " + err.Error() + "\n")
			os.Exit(1)
		}
		cfg = loaded
	}

	logger, err := logsink.NewZapLogger(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		os.Stderr.WriteString("resolve-mcp: building logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	adapter := mcpchoice.New()

	s := server.NewMCPServer("resolve", "1.0.0")
	mcpchoice.RegisterTools(s, adapter)

	logger.Info("resolve-mcp starting, serving over stdio")
	if err := server.ServeStdio(s); err != nil {
		logger.Error("server exited with error", zap.Error(err))
		os.Exit(1)
	}
}
