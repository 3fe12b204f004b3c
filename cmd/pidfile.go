package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/BurntSushi/toml"
)

// daemonRecord is written beside the pid file so status can find the
// listener without reading the config again.
type daemonRecord struct {
	PID        int       `toml:"pid"`
	Addr       string    `toml:"addr"`
	ConfigPath string    `toml:"config_path"`
	Preset     string    `toml:"preset,omitempty"`
	StartedAt  time.Time `toml:"started_at"`
}

// pidFile is the lock a running daemon holds. The record lives at
// path + ".toml".
type pidFile string

func (p pidFile) recordPath() string { return string(p) + ".toml" }

// pid returns the recorded process id.
func (p pidFile) pid() (int, error) {
	//nolint:gosec // pid path is chosen by the local user
	raw, err := os.ReadFile(string(p))
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("pid file %s: bad contents %q", p, strings.TrimSpace(string(raw)))
	}
	return pid, nil
}

// claim fails when a live process already holds the file, clears a stale
// one, then writes rec.
func (p pidFile) claim(rec daemonRecord) error {
	if err := p.checkFree(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(string(p)), 0o750); err != nil {
		return fmt.Errorf("create pid directory: %w", err)
	}
	if err := os.WriteFile(string(p), []byte(strconv.Itoa(rec.PID)+"\n"), 0o600); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}

	f, err := os.OpenFile(p.recordPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("write daemon record: %w", err)
	}
	defer func() { _ = f.Close() }()
	return toml.NewEncoder(f).Encode(rec)
}

// checkFree reports an error if a live daemon holds the file.
func (p pidFile) checkFree() error {
	pid, err := p.pid()
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil
	case err != nil:
		return err
	case processAlive(pid):
		return fmt.Errorf("daemon already running (pid %d)", pid)
	}
	p.release()
	return nil
}

// record reads the daemon record written by claim.
func (p pidFile) record() (daemonRecord, error) {
	var rec daemonRecord
	if _, err := toml.DecodeFile(p.recordPath(), &rec); err != nil {
		return rec, err
	}
	return rec, nil
}

func (p pidFile) release() {
	_ = os.Remove(string(p))
	_ = os.Remove(p.recordPath())
}

func processAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}
