// Command launcherhub-tui is a terminal front-end for the launcher hub.
// It polls the hub API and renders the launcher pages in the terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/seezee/launcherhub/internal/tui"
)

func main() {
	var (
		addr       = flag.String("addr", "localhost:8080", "launcher hub address (host:port)")
		apiKey     = flag.String("api-key", os.Getenv("LAUNCHERHUB_API_KEY"), "hub API key, if the hub requires one")
		updateRate = flag.Duration("update-rate", time.Second, "refresh interval")
		logFile    = flag.String("log-file", "", "write debug logs to this file")
	)
	flag.Parse()

	// The terminal belongs to the UI; logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	level := slog.LevelInfo
	if *logFile != "" {
		f, err := tea.LogToFile(*logFile, "launcherhub-tui")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level})))

	base := *addr
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}
	slog.Info("launcherhub-tui starting", "hub", base, "rate", *updateRate)

	p := tea.NewProgram(
		tui.New(tui.NewHubClient(base, *apiKey), *updateRate),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running launcherhub-tui: %v\n", err)
		os.Exit(1)
	}
}
