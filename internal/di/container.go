package di

import (
	"context"
	"fmt"
	"time"

	"browser-mcp/internal/adapter/mcpserver"
	"browser-mcp/internal/adapter/tool"
	"browser-mcp/internal/application/port/output"
	"browser-mcp/internal/domain/entity"
	"browser-mcp/internal/infrastructure/browser/rod"
	"browser-mcp/internal/infrastructure/env"
	"browser-mcp/internal/infrastructure/logger"
	"browser-mcp/internal/infrastructure/markup"
	"browser-mcp/internal/usecase/session"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type Container struct {
	Logger  output.LoggerPort
	Session *session.Session
	Tools   output.ToolRegistry
	Server  *mcp.Server
}

type Config struct {
	Version  string
	LogLevel string
	LogDir   string
	Browser  rod.LauncherConfig
	Session  session.Config
}

// ConfigFromEnv reads the container configuration. A profiles file, when
// named, replaces the built-in launch profiles.
func ConfigFromEnv(cfg output.ConfigPort) (Config, error) {
	sc := session.DefaultConfig()
	sc.StartupTimeout = cfg.GetDuration("BROWSER_STARTUP_TIMEOUT", sc.StartupTimeout)
	sc.AttemptTimeout = cfg.GetDuration("BROWSER_ATTEMPT_TIMEOUT", sc.AttemptTimeout)
	sc.NavigationSettle = cfg.GetDuration("NAV_SETTLE", sc.NavigationSettle)
	sc.ActionSettle = cfg.GetDuration("ACTION_SETTLE", sc.ActionSettle)
	sc.SearchURL = cfg.GetWithDefault("SEARCH_URL", sc.SearchURL)

	if path := cfg.Get("BROWSER_PROFILES_FILE"); path != "" {
		profiles, err := env.LoadLaunchProfiles(path)
		if err != nil {
			return Config{}, err
		}
		sc.Profiles = profiles
	}

	return Config{
		LogLevel: cfg.GetWithDefault("LOG_LEVEL", "info"),
		LogDir:   cfg.Get("LOG_DIR"),
		Browser: rod.LauncherConfig{
			Bin:        cfg.Get("BROWSER_BIN"),
			Timeout:    cfg.GetDuration("BROWSER_OP_TIMEOUT", 0),
			SlowMotion: cfg.GetDuration("BROWSER_SLOW_MOTION", 0),
		},
		Session: sc,
	}, nil
}

func NewContainer(cfg Config) (*Container, error) {
	log, err := logger.NewLoggerAdapter(logger.Config{
		Level: cfg.LogLevel,
		Dir:   cfg.LogDir,
		Name:  mcpserver.ServerName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	launcher := rod.NewLauncher(cfg.Browser)
	sess := session.New(launcher, markup.NewConverter(), log, cfg.Session)
	tools := tool.NewRegistry(sess)

	log.Info("Container ready",
		"tools", len(tools.All()),
		"profiles", profileNames(cfg.Session.Profiles),
		"startup_timeout", cfg.Session.StartupTimeout.String())

	return &Container{
		Logger:  log,
		Session: sess,
		Tools:   tools,
		Server:  mcpserver.NewServer(tools, log, cfg.Version),
	}, nil
}

// Close ends the browser session, if any, and flushes the logger.
func (c *Container) Close() {
	if c.Session != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if _, err := c.Session.End(ctx); err != nil {
			c.Logger.Warn("Closing browser failed", "error", err)
		}
	}
	if c.Logger != nil {
		_ = c.Logger.Close()
	}
}

func profileNames(profiles []entity.LaunchProfile) []string {
	names := make([]string, 0, len(profiles))
	for _, p := range profiles {
		names = append(names, p.Name)
	}
	return names
}
