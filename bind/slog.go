package bind

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/spring-ai-community/mcp-annotations-go/provider"
)

// SlogLoggingHandler returns a ready-made logging consumer that forwards
// server log notifications to a slog.Logger, mapping MCP levels onto the
// four slog levels. Useful as a default next to annotated consumers:
//
//	spec := provider.LoggingSpec{Handler: bind.SlogLoggingHandler(logger)}
func SlogLoggingHandler(log *slog.Logger) provider.LoggingHandler {
	if log == nil {
		log = slog.Default()
	}
	return func(ctx context.Context, req *mcp.LoggingMessageRequest) {
		p := req.Params
		log.Log(ctx, SlogLevel(p.Level), "mcp server log",
			slog.String("logger", p.Logger),
			slog.Any("data", p.Data),
		)
	}
}

// SlogLevel maps an MCP logging level onto the nearest slog level. The
// protocol's eight levels collapse onto slog's four; unknown levels map
// to info.
func SlogLevel(level mcp.LoggingLevel) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info", "notice":
		return slog.LevelInfo
	case "warning":
		return slog.LevelWarn
	case "error", "critical", "alert", "emergency":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
