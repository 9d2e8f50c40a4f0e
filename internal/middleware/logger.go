package middleware

import (
    "time"

    "github.com/bilgisen/haberci/internal/logger"
    "github.com/gofiber/fiber/v2"
    "github.com/rs/zerolog"
)

// LoggerConfig defines the config for the logger middleware
type LoggerConfig struct {
    // Next skips the middleware when it returns true.
    // Optional. Default: nil
    Next func(c *fiber.Ctx) bool

    // Logger receives the access log.
    // Optional. Default: the "http" component logger
    Logger *zerolog.Logger

    // Fields to include in the logs
    Fields []string
}

// DefaultLoggerConfig is the default config
var DefaultLoggerConfig = LoggerConfig{
    Fields: []string{"latency", "status", "method", "path", "ip", "user_agent"},
}

// NewLogger creates an access-log middleware. Server errors are logged
// at error level, client errors at warn.
func NewLogger(config ...LoggerConfig) fiber.Handler {
    cfg := DefaultLoggerConfig

    if len(config) > 0 {
        cfg = config[0]

        if len(cfg.Fields) == 0 {
            cfg.Fields = DefaultLoggerConfig.Fields
        }
    }

    if cfg.Logger == nil {
        cfg.Logger = logger.With("http")
    }

    fields := make(map[string]bool)
    for _, f := range cfg.Fields {
        fields[f] = true
    }

    return func(c *fiber.Ctx) error {
        if cfg.Next != nil && cfg.Next(c) {
            return c.Next()
        }

        start := time.Now()
        err := c.Next()
        latency := time.Since(start)

        status := c.Response().StatusCode()
        if e, ok := err.(*fiber.Error); ok {
            status = e.Code
        }

        var event *zerolog.Event
        switch {
        case status >= fiber.StatusInternalServerError:
            event = cfg.Logger.Error()
        case status >= fiber.StatusBadRequest:
            event = cfg.Logger.Warn()
        default:
            event = cfg.Logger.Info()
        }

        if fields["method"] {
            event = event.Str("method", c.Method())
        }
        if fields["path"] {
            event = event.Str("path", c.Path())
        }
        if fields["status"] {
            event = event.Int("status", status)
        }
        if fields["ip"] {
            event = event.Str("ip", c.IP())
        }
        if fields["user_agent"] {
            event = event.Str("user_agent", c.Get("User-Agent"))
        }
        if fields["latency"] {
            event = event.Dur("latency", latency)
        }
        if err != nil {
            event = event.Err(err)
        }

        event.Msg("request")

        return err
    }
}

// RequestLogger logs requests without the user agent
func RequestLogger() fiber.Handler {
    return NewLogger(LoggerConfig{
        Fields: []string{"latency", "status", "method", "path", "ip"},
    })
}
