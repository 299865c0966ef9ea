package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"jobtrack/internal/api"
	"jobtrack/internal/checklist"
	"jobtrack/internal/config"
	"jobtrack/internal/dataset"
	"jobtrack/internal/digest"
	"jobtrack/internal/storage"
	"jobtrack/internal/track"
	"jobtrack/internal/tracker"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the jobtrack server (foreground)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running jobtrack server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return stopServer()
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show jobtrack system status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showStatus(cmd.Context())
	},
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the MCP interface over stdio",
	Long: `Serve the MCP interface over stdio for editor and agent integrations.
Unlike start, this runs against the local store directly and exits when
stdin closes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMCPStdio()
	},
}

func pidFilePath(dataDir string) string {
	return filepath.Join(dataDir, "jobtrack.pid")
}

func writePIDFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0o644)
}

func readPIDFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

func removePIDFile(path string) {
	os.Remove(path)
}

func runServer() error {
	fmt.Fprintf(os.Stderr, "jobtrack version %s\n", version)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()})))

	// Refuse to double-start. The health endpoint is the source of truth;
	// the PID file just names the culprit.
	pidPath := pidFilePath(cfg.Storage.DataDir)
	healthURL := fmt.Sprintf("http://127.0.0.1:%d/health", cfg.Server.Port)
	healthClient := &http.Client{Timeout: 2 * time.Second}
	if resp, err := healthClient.Get(healthURL); err == nil {
		resp.Body.Close()
		if pid, pidErr := readPIDFile(pidPath); pidErr == nil {
			printWarning("jobtrack is already running (PID %d)", pid)
			return fmt.Errorf("server already running (PID %d)", pid)
		}
		printWarning("jobtrack is already running on port %d", cfg.Server.Port)
		return fmt.Errorf("server already running on port %d", cfg.Server.Port)
	}
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("writing PID file: %w", err)
	}
	defer removePIDFile(pidPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Warn("closing storage", "error", err)
		}
	}()

	svc := tracker.NewWithDeps(
		dataset.Jobs(),
		track.NewPreferencesStore(store),
		track.NewStatusStore(store),
		track.NewSavedStore(store),
		digest.NewStoreWithTopN(store, cfg.Digest.TopN),
	)
	checks := checklist.NewStore(store)
	proofs := checklist.NewProofStore(store)

	appHandler := api.NewAppHandler(api.AppDeps{
		Tracker:   svc,
		Checklist: checks,
		Proof:     proofs,
		Token:     cfg.API.Token,
	})
	if cfg.API.Token == "" {
		slog.Warn("no API token configured; HTTP API is unauthenticated")
	}

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: appHandler,
	}

	mcpSrv := api.NewMCPServer(api.MCPDeps{Tracker: svc, Checklist: checks})
	mcpAddr := fmt.Sprintf("127.0.0.1:%d", cfg.Server.MCPPort)
	mcpHTTP := mcpserver.NewStreamableHTTPServer(mcpSrv)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("jobtrack listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		slog.Info("MCP server listening", "addr", mcpAddr)
		if err := mcpHTTP.Start(mcpAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("mcp server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("http shutdown", "error", err)
		}
		if err := mcpHTTP.Shutdown(shutdownCtx); err != nil {
			slog.Warn("mcp shutdown", "error", err)
		}
		return nil
	})

	return g.Wait()
}

func runMCPStdio() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Log to stderr only: stdout carries the MCP protocol.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()})))

	store, err := storage.Open(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer store.Close()

	svc := tracker.New(store)
	mcpSrv := api.NewMCPServer(api.MCPDeps{
		Tracker:   svc,
		Checklist: checklist.NewStore(store),
	})

	return mcpserver.ServeStdio(mcpSrv)
}

func stopServer() error {
	cfg, err := config.Load()
	if err != nil {
		printError("could not load config: %v", err)
		return err
	}

	pidPath := pidFilePath(cfg.Storage.DataDir)
	pid, err := readPIDFile(pidPath)
	if err != nil {
		printError("jobtrack is not running (no PID file)")
		return fmt.Errorf("not running: %w", err)
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		printError("could not find process %d", pid)
		return err
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		printError("could not stop jobtrack (PID %d): %v", pid, err)
		removePIDFile(pidPath)
		return err
	}

	printSuccess("Sent stop signal to jobtrack (PID %d)", pid)
	return nil
}

func showStatus(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		printError("config error: %v", err)
		return nil
	}

	serverURL := fmt.Sprintf("http://127.0.0.1:%d", cfg.Server.Port)
	client := &http.Client{Timeout: 2 * time.Second}

	running := false
	resp, err := client.Get(serverURL + "/health")
	if err != nil {
		printStatus("Server", "stopped")
	} else {
		resp.Body.Close()
		if resp.StatusCode == 200 {
			running = true
			printStatus("Server", "running on port %d", cfg.Server.Port)
		} else {
			printStatus("Server", "error (HTTP %d)", resp.StatusCode)
		}
	}

	if running {
		cli, err := newAPIClient()
		if err == nil {
			if prefResp, err := cli.get(ctx, "/preferences"); err == nil {
				if prefResp.StatusCode == http.StatusNotFound {
					prefResp.Body.Close()
					printStatus("Preferences", "not set")
				} else {
					var p struct {
						RoleKeywords []string `json:"roleKeywords"`
						Skills       []string `json:"skills"`
					}
					if decodeJSON(prefResp, &p) == nil {
						printStatus("Preferences", "%d keywords, %d skills", len(p.RoleKeywords), len(p.Skills))
					}
				}
			}
			if updResp, err := cli.get(ctx, "/status-updates?limit=50"); err == nil {
				var updates []struct{}
				if decodeJSON(updResp, &updates) == nil {
					printStatus("Status updates", "%d", len(updates))
				}
			}
			if digResp, err := cli.get(ctx, "/digest"); err == nil {
				if digResp.StatusCode == http.StatusNotFound {
					digResp.Body.Close()
					printStatus("Today's digest", "not generated")
				} else {
					var d struct {
						Jobs []struct{} `json:"jobs"`
					}
					if decodeJSON(digResp, &d) == nil {
						printStatus("Today's digest", "%d jobs", len(d.Jobs))
					}
				}
			}
		}
	}

	printStatus("MCP port", "%d", cfg.Server.MCPPort)
	printStatus("Data dir", "%s", cfg.Storage.DataDir)
	return nil
}
