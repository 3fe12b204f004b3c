package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/daemon"
	"github.com/theirongolddev/runway/internal/state"

	"github.com/spf13/cobra"
)

var (
	flagDaemonAddr         string
	flagDaemonInterval     time.Duration
	flagDaemonDetach       bool
	flagDaemonPIDFile      string
	flagDaemonLogFile      string
	flagDaemonEventsBuffer int
	flagDaemonChild        bool
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Serve projections over HTTP/SSE, recomputing when the config changes",
	RunE:  runDaemon,
}

var daemonStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon process and API status",
	RunE:  runDaemonStatus,
}

var daemonStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running daemon",
	RunE:  runDaemonStop,
}

func init() {
	defaultPID := filepath.Join(config.Dir(), "runwayd.pid")
	defaultLog := filepath.Join(config.Dir(), "runwayd.log")

	daemonCmd.PersistentFlags().StringVar(&flagDaemonAddr, "addr", "", "HTTP listen address (default from config)")
	daemonCmd.PersistentFlags().DurationVar(&flagDaemonInterval, "interval", 0, "Config polling interval (default from config)")
	daemonCmd.PersistentFlags().StringVar(&flagDaemonPIDFile, "pid-file", defaultPID, "PID file path")
	daemonCmd.PersistentFlags().StringVar(&flagDaemonLogFile, "log-file", defaultLog, "Log file path for detached mode")
	daemonCmd.PersistentFlags().IntVar(&flagDaemonEventsBuffer, "events-buffer", 200, "Max in-memory events retained")

	daemonCmd.Flags().BoolVar(&flagDaemonDetach, "detach", false, "Run daemon as a background process")
	daemonCmd.Flags().BoolVar(&flagDaemonChild, "child", false, "Internal: mark detached child process")
	_ = daemonCmd.Flags().MarkHidden("child")

	daemonCmd.AddCommand(daemonStatusCmd)
	daemonCmd.AddCommand(daemonStopCmd)
	rootCmd.AddCommand(daemonCmd)
}

// daemonAddr resolves the listen address: flag, then config/env.
func daemonAddr() string {
	if flagDaemonAddr != "" {
		return flagDaemonAddr
	}
	if activeConfig.Daemon.Addr != "" {
		return activeConfig.Daemon.Addr
	}
	return config.DefaultConfig().Daemon.Addr
}

func daemonInterval() time.Duration {
	if flagDaemonInterval > 0 {
		return flagDaemonInterval
	}
	if activeConfig.Daemon.Interval > 0 {
		return activeConfig.Daemon.Interval
	}
	return config.DefaultConfig().Daemon.Interval
}

func runDaemon(_ *cobra.Command, _ []string) error {
	if flagDaemonDetach && flagDaemonChild {
		return errors.New("invalid daemon launch mode")
	}

	if flagDaemonDetach {
		return startDaemonDetached()
	}

	return runDaemonForeground()
}

func startDaemonDetached() error {
	if err := pidFile(flagDaemonPIDFile).checkFree(); err != nil {
		return err
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}

	args := filterDetachArg(os.Args[1:])
	args = append(args, "--child")

	if err := os.MkdirAll(filepath.Dir(flagDaemonLogFile), 0o750); err != nil {
		return fmt.Errorf("create daemon log directory: %w", err)
	}

	//nolint:gosec // daemon log path is configured by the local user
	logf, err := os.OpenFile(flagDaemonLogFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open daemon log file: %w", err)
	}
	defer func() { _ = logf.Close() }()

	cmd := exec.Command(exe, args...) //nolint:gosec // exe/args come from current process invocation
	cmd.Stdout = logf
	cmd.Stderr = logf
	cmd.Stdin = nil
	cmd.Env = os.Environ()

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start detached daemon: %w", err)
	}

	fmt.Printf("  Started daemon (pid %d)\n", cmd.Process.Pid)
	fmt.Printf("  PID file: %s\n", flagDaemonPIDFile)
	fmt.Printf("  API: http://%s/v1/status\n", daemonAddr())
	fmt.Printf("  Log: %s\n", flagDaemonLogFile)
	return nil
}

func runDaemonForeground() error {
	if flagPreset != "" {
		if _, ok := config.LookupPreset(flagPreset); !ok {
			return fmt.Errorf("daemon serves built-in presets only, got %q", flagPreset)
		}
	}

	addr := daemonAddr()
	lock := pidFile(flagDaemonPIDFile)
	err := lock.claim(daemonRecord{
		PID:        os.Getpid(),
		Addr:       addr,
		ConfigPath: configPath(),
		Preset:     flagPreset,
		StartedAt:  time.Now(),
	})
	if err != nil {
		return err
	}
	defer lock.release()

	cfg := daemon.Config{
		ConfigPath:   configPath(),
		Preset:       flagPreset,
		Schedule:     flagSchedule,
		Interval:     daemonInterval(),
		Addr:         addr,
		EventsBuffer: flagDaemonEventsBuffer,
	}
	svc := daemon.New(cfg, state.New())

	fmt.Printf("  runway daemon listening on http://%s\n", addr)
	fmt.Printf("  Watching %s every %s\n", cfg.ConfigPath, cfg.Interval)
	fmt.Printf("  Stop with: runway daemon stop --pid-file %s\n", flagDaemonPIDFile)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runDaemonStatus(_ *cobra.Command, _ []string) error {
	lock := pidFile(flagDaemonPIDFile)
	pid, err := lock.pid()
	if err != nil {
		fmt.Printf("  Daemon: not running (%s)\n", flagDaemonPIDFile)
		return nil
	}
	if !processAlive(pid) {
		fmt.Printf("  Daemon: stale pid file (pid %d not alive)\n", pid)
		return nil
	}

	addr := daemonAddr()
	rec, err := lock.record()
	if err == nil && rec.Addr != "" {
		addr = rec.Addr
	}

	fmt.Printf("  Daemon PID: %d\n", pid)
	fmt.Printf("  Address: http://%s\n", addr)
	if !rec.StartedAt.IsZero() {
		fmt.Printf("  Up since: %s\n", rec.StartedAt.Local().Format(time.RFC3339))
	}

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + addr + "/v1/status") //nolint:noctx // short status probe
	if err != nil {
		fmt.Printf("  API status: unreachable (%v)\n", err)
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("  API status: HTTP %d\n", resp.StatusCode)
		return nil
	}

	var st daemon.Status
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		fmt.Printf("  API status: malformed response (%v)\n", err)
		return nil
	}

	if st.LastPollAt.IsZero() {
		fmt.Printf("  Last poll: pending\n")
	} else {
		fmt.Printf("  Last poll: %s\n", st.LastPollAt.Local().Format(time.RFC3339))
	}
	fmt.Printf("  Poll count: %d\n", st.PollCount)
	fmt.Printf("  Config: %s\n", st.ConfigPath)
	fmt.Printf("  Source: %s (%s), v%d\n", st.Summary.Source, st.Summary.Schedule, st.Summary.Version)
	fmt.Printf("  Revenue: %s\n", cli.FormatCost(st.Summary.TotalRevenue))
	fmt.Printf("  Expenses: %s\n", cli.FormatCost(st.Summary.TotalExpenses))
	fmt.Printf("  Net profit: %s\n", cli.FormatCost(st.Summary.NetProfit))
	fmt.Printf("  Subscribers: %d, events: %d\n", st.SubscriberCount, st.EventCount)
	if st.LastError != "" {
		fmt.Printf("  Last error: %s\n", st.LastError)
	}
	return nil
}

func runDaemonStop(_ *cobra.Command, _ []string) error {
	lock := pidFile(flagDaemonPIDFile)
	pid, err := lock.pid()
	if err != nil {
		return errors.New("daemon is not running")
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("find daemon process: %w", err)
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("signal daemon process: %w", err)
	}

	tick := time.NewTicker(150 * time.Millisecond)
	defer tick.Stop()
	timeout := time.After(8 * time.Second)
	for processAlive(pid) {
		select {
		case <-tick.C:
		case <-timeout:
			return fmt.Errorf("daemon (pid %d) did not exit in time", pid)
		}
	}
	lock.release()
	fmt.Printf("  Stopped daemon (pid %d)\n", pid)
	return nil
}

func filterDetachArg(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if a == "--detach" || strings.HasPrefix(a, "--detach=") {
			continue
		}
		out = append(out, a)
	}
	return out
}
