// pointZ host - remote input control
// Receives pointer and keyboard commands from the phone client over UDP
// and injects them as native input events.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"

	"github.com/edaniels/golog"
	"go.uber.org/multierr"
	"go.viam.com/utils"

	"pointz/internal/api"
	"pointz/internal/autostart"
	"pointz/internal/config"
	"pointz/internal/input"
	"pointz/internal/network"
	"pointz/internal/osutils"
	"pointz/internal/tray"
)

var (
	version   = "1.0.0"
	showVer   = flag.Bool("version", false, "Show version")
	withTray  = flag.Bool("tray", false, "Run with a system tray menu")
	keepAwake = flag.Bool("keep-awake", false, "Keep the machine awake while serving")
	autoStart = flag.String("autostart", "", "Manage start on login: enable, disable or status")

	discoveryPort = flag.Int("discovery-port", 0, "Override the discovery port for this run")
	commandPort   = flag.Int("command-port", 0, "Override the command port for this run")
	statusPort    = flag.Int("status-port", 0, "Override the status page port for this run")
)

func main() {
	flag.Parse()

	if *showVer {
		fmt.Printf("pointz version %s\n", version)
		return
	}

	if *autoStart != "" {
		handleAutostart(*autoStart)
		return
	}

	logger := golog.NewDevelopmentLogger("pointz")

	cfgMgr, err := config.NewManager()
	if err != nil {
		logger.Fatalw("failed to initialize config", "error", err)
	}
	if err := cfgMgr.Load(); err != nil {
		logger.Warnw("failed to load config, using defaults", "error", err)
	}

	runHost(cfgMgr, logger)
}

// handleAutostart services the -autostart flag and returns; the host does
// not start.
func handleAutostart(action string) {
	switch action {
	case "enable":
		if err := autostart.Enable(); err != nil {
			fmt.Fprintf(os.Stderr, "enabling start on login: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Start on login enabled")
	case "disable":
		if err := autostart.Disable(); err != nil {
			fmt.Fprintf(os.Stderr, "disabling start on login: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Start on login disabled")
	case "status":
		if autostart.IsEnabled() {
			fmt.Println("Start on login: enabled")
		} else {
			fmt.Println("Start on login: disabled")
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown -autostart action %q (want enable, disable or status)\n", action)
		os.Exit(1)
	}
}

func runHost(cfgMgr *config.Manager, logger golog.Logger) {
	cfg := cfgMgr.Get()

	// Port overrides apply to this run only and are never written back.
	if *discoveryPort != 0 {
		cfg.Network.DiscoveryPort = *discoveryPort
	}
	if *commandPort != 0 {
		cfg.Network.CommandPort = *commandPort
	}
	if *statusPort != 0 {
		cfg.Network.StatusPort = *statusPort
	}

	hostname := osutils.Hostname()
	logger.Infow("pointz host starting",
		"version", version,
		"hostname", hostname,
		"config", cfgMgr.Path(),
	)
	if ip, ok := osutils.LocalIP(); ok {
		logger.Infow("reachable on the local network", "ip", ip, "command_port", cfg.Network.CommandPort)
	}

	// Keep the login item in line with the config.
	if cfg.General.StartOnLogin != autostart.IsEnabled() {
		err := autostart.Disable()
		if cfg.General.StartOnLogin {
			err = autostart.Enable()
		}
		if err != nil {
			logger.Warnw("failed to sync start on login", "error", err)
		}
	}

	// Windows blocks inbound UDP by default; open the two ports up front.
	if runtime.GOOS == "windows" {
		fwLogger := logger.Named("firewall")
		utils.PanicCapturingGo(func() {
			if err := osutils.EnsureFirewallRule(fwLogger, cfg.Network.DiscoveryPort, cfg.Network.CommandPort); err != nil {
				fwLogger.Warnw("firewall rule not ensured", "error", err)
			}
		})
	}

	session := input.NewSession(cfg.Input.Timing())
	sim, err := input.NewSimulator(session)
	if err != nil {
		logger.Fatalw("input backend unavailable", "error", err)
	}

	statusSrv := api.NewServer(cfgMgr, logger.Named("status"))

	dispatcher := input.NewDispatcher(sim, logger.Named("dispatch"))
	dispatcher.OnActivity(statusSrv.NotifyActivity)

	responder, err := network.NewResponder(cfg.Network.Bind, cfg.Network.DiscoveryPort, hostname, logger.Named("discovery"))
	if err != nil {
		logger.Fatalw("failed to start discovery responder", "error", err)
	}

	receiver, err := network.NewReceiver(cfg.Network.Bind, cfg.Network.CommandPort, dispatcher.Dispatch, logger.Named("commands"))
	if err != nil {
		logger.Fatalw("failed to start command receiver", "error", err)
	}

	var awake *osutils.KeepAwake
	if *keepAwake || cfg.General.KeepAwake {
		awake, err = osutils.StartKeepAwake(logger.Named("keepawake"))
		if err != nil {
			logger.Warnw("keep-awake unavailable", "error", err)
		}
	}

	utils.PanicCapturingGo(func() {
		if err := responder.Run(); err != nil {
			logger.Errorw("discovery responder stopped", "error", err)
		}
	})
	utils.PanicCapturingGo(func() {
		if err := statusSrv.Start(cfg.Network.StatusBind, cfg.Network.StatusPort); err != nil {
			logger.Errorw("status server stopped", "error", err)
		}
	})

	var shutdownOnce sync.Once
	shutdown := func() {
		shutdownOnce.Do(func() {
			logger.Info("shutting down")
			err := multierr.Combine(
				receiver.Close(),
				responder.Close(),
				statusSrv.Close(),
				sim.Close(),
			)
			if awake != nil {
				err = multierr.Combine(err, awake.Stop())
			}
			if err != nil {
				logger.Errorw("shutdown finished with errors", "error", err)
			}
		})
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	if *withTray {
		runTray(cfgMgr, logger, hostname, receiver, sigCh, shutdown)
		return
	}

	utils.PanicCapturingGo(func() {
		<-sigCh
		shutdown()
	})

	if err := receiver.Run(); err != nil {
		logger.Errorw("command receiver stopped", "error", err)
	}
	shutdown()
}

// runTray drives the command loop from a goroutine while the systray event
// loop holds the main thread, as macOS requires.
func runTray(cfgMgr *config.Manager, logger golog.Logger, hostname string, receiver *network.Receiver, sigCh chan os.Signal, shutdown func()) {
	cfg := cfgMgr.Get()
	statusURL := fmt.Sprintf("http://%s:%d", cfg.Network.StatusBind, cfg.Network.StatusPort)

	t := tray.New(fmt.Sprintf("pointZ on %s, commands on port %d", hostname, cfg.Network.CommandPort))
	t.AddStatusItem(fmt.Sprintf("%s, port %d", hostname, cfg.Network.CommandPort))
	t.AddMenuItem("Open status page", func() {
		if err := osutils.OpenBrowser(statusURL); err != nil {
			logger.Errorw("failed to open status page", "error", err)
		}
	})
	t.AddSeparator()
	t.AddMenuItem("Quit", func() {
		t.Stop()
	})

	utils.PanicCapturingGo(func() {
		if err := receiver.Run(); err != nil {
			logger.Errorw("command receiver stopped", "error", err)
		}
	})
	utils.PanicCapturingGo(func() {
		<-sigCh
		t.Stop()
	})

	t.Run()
	shutdown()
}
