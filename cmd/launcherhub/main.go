// Command launcherhub is the SeeZee launcher hub daemon. It runs on the
// touchscreen device and fronts the gaming PC's agent for every launcher page.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/seezee/launcherhub/internal/api"
	"github.com/seezee/launcherhub/internal/audio"
	"github.com/seezee/launcherhub/internal/auth"
	"github.com/seezee/launcherhub/internal/colorwheel"
	"github.com/seezee/launcherhub/internal/commandcenter"
	"github.com/seezee/launcherhub/internal/config"
	"github.com/seezee/launcherhub/internal/discovery"
	"github.com/seezee/launcherhub/internal/events"
	"github.com/seezee/launcherhub/internal/identity"
	"github.com/seezee/launcherhub/internal/lighting"
	"github.com/seezee/launcherhub/internal/models"
	"github.com/seezee/launcherhub/internal/monitor"
	"github.com/seezee/launcherhub/internal/session"
	"github.com/seezee/launcherhub/internal/theme"
)

func main() {
	var (
		addr          = flag.String("addr", ":8080", "HTTP listen address")
		cfgDir        = flag.String("config-dir", "", "config directory (default: ~/.config/launcherhub)")
		debug         = flag.Bool("debug", false, "enable debug logging")
		agent         = flag.String("agent", "", "PC agent address (host or host:port) used when none is saved")
		probeInterval = flag.Duration("probe-interval", monitor.DefaultProbeInterval, "how often to check the PC agent")
		noMDNS        = flag.Bool("no-mdns", false, "disable mDNS advertising and agent discovery")
		webDir        = flag.String("web-dir", "", "serve a front-end from this directory")
		createKey     = flag.String("create-key", "", "create an API key with this name, print it and exit")
	)
	flag.Parse()

	// Configure logging
	logLevel := slog.LevelInfo
	if *debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	// Resolve config directory
	if *cfgDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			slog.Error("cannot determine home directory", "err", err)
			os.Exit(1)
		}
		*cfgDir = filepath.Join(home, ".config", "launcherhub")
	}
	if err := os.MkdirAll(*cfgDir, 0755); err != nil {
		slog.Error("cannot create config directory", "path", *cfgDir, "err", err)
		os.Exit(1)
	}

	// Auth service
	authSvc, err := auth.NewService(*cfgDir)
	if err != nil {
		slog.Error("auth service initialization failed", "err", err)
		os.Exit(1)
	}
	defer authSvc.Close()

	if *createKey != "" {
		key, err := authSvc.CreateKey(*createKey)
		if err != nil {
			slog.Error("cannot create API key", "err", err)
			os.Exit(1)
		}
		fmt.Println(key)
		return
	}

	// Graceful shutdown context
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Settings
	store := config.NewJSONStore(*cfgDir)
	mgr, err := config.NewManager(store)
	if err != nil {
		slog.Error("cannot load settings", "path", store.Path(), "err", err)
		os.Exit(1)
	}

	// Event bus and session
	bus := events.NewBus()
	client := session.New(mgr, bus, nil)
	if *agent != "" && client.Settings().PCIPAddress == "" {
		if err := seedAgent(client, *agent); err != nil {
			slog.Error("invalid --agent", "value", *agent, "err", err)
			os.Exit(1)
		}
	}

	// Page controllers
	th := theme.New(mgr, client.Notify)
	light := lighting.New(client, th)
	client.SetDecorator(func(s *models.Snapshot) {
		s.Cooldown = light.CooldownRemaining()
	})
	audioCtrl := audio.New(client)
	poller := audio.NewPoller(audioCtrl, audio.PollInterval)
	go poller.Run(ctx)

	// Settings edited on disk by another writer
	watcher, err := config.NewWatcher(store, func(s models.Settings) {
		prev := th.Accent()
		client.ApplySettings(s)
		th.Reload(prev)
	})
	if err != nil {
		slog.Warn("config: cannot watch settings file", "err", err)
	} else {
		go watcher.Run(ctx)
	}

	// Background loops (agent probe, device stats, settings backups)
	mon := monitor.New(client, monitor.Options{
		ProbeInterval: *probeInterval,
		OnChange: func(connected bool) {
			slog.Info("agent connection changed", "connected", connected, "url", client.ServerURL())
		},
		SettingsPath: store.Path(),
		BackupDir:    filepath.Join(*cfgDir, "backups"),
	})
	go mon.Start(ctx)

	info := identity.Load(*cfgDir)
	deps := api.Deps{
		Info:     info,
		Session:  client,
		Theme:    th,
		Lighting: light,
		Audio:    audioCtrl,
		Poller:   poller,
		Monitor:  mon,
		GitHub:   commandcenter.NewGitHub(nil),
		Vercel:   commandcenter.NewVercel(nil),
		Wheel:    colorwheel.New(colorwheel.DefaultRadius),
		Events:   bus,
	}

	// Zeroconf mDNS registration and agent discovery
	if !*noMDNS {
		deps.Browse = discovery.Browse
		adv := discovery.NewAdvertiser(info.Instance, listenPort(*addr), info.Version)
		go func() {
			if err := adv.Start(ctx); err != nil {
				slog.Warn("zeroconf failed", "err", err)
			}
		}()
	}

	// HTTP server
	router := api.NewRouter(deps, authSvc)
	if *webDir != "" {
		router.(*chi.Mux).Handle("/*", http.FileServer(http.Dir(*webDir)))
	}

	srv := &http.Server{
		Addr:         *addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // 0 = no timeout (needed for SSE)
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("launcher hub listening", "addr", *addr, "version", info.Version, "config", *cfgDir, "agent", client.ServerURL())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "err", err)
			cancel()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	slog.Info("shutting down...")

	shutCtx, shutCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutCancel()

	// Flush pending config writes
	if err := mgr.Flush(); err != nil {
		slog.Warn("failed to flush config", "err", err)
	}

	// Graceful HTTP shutdown
	if err := srv.Shutdown(shutCtx); err != nil {
		slog.Warn("server shutdown error", "err", err)
	}

	slog.Info("shutdown complete")
}

// seedAgent stores an agent address given as host or host:port.
func seedAgent(client *session.Client, value string) error {
	host, port := value, models.DefaultPort
	if h, p, err := net.SplitHostPort(value); err == nil {
		n, err := strconv.Atoi(p)
		if err != nil {
			return fmt.Errorf("bad port %q", p)
		}
		host, port = h, n
	}
	host = strings.Trim(host, "[]")
	if _, appErr := client.SetSettings(models.ConnectionUpdate{PCIPAddress: &host, PCPort: &port}); appErr != nil {
		return appErr
	}
	return nil
}

// listenPort extracts the port from a listen address like ":8080".
func listenPort(addr string) int {
	if _, p, err := net.SplitHostPort(addr); err == nil {
		if n, err := strconv.Atoi(p); err == nil {
			return n
		}
	}
	return 80
}
