package chat

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/learnnova/internal/constants"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess

	// ErrNotRunning means no live chat server was found.
	ErrNotRunning = errors.New("chat server is not running")
)

// LockfilePath returns where a running chat server advertises itself.
func LockfilePath() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	return filepath.Join(configDir, constants.AppName, constants.ChatLockfileName), nil
}

// writeLockfile records "addr|pid" for the current process.
func writeLockfile(path, addr string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	content := fmt.Sprintf("%s|%d", addr, os.Getpid())
	return os.WriteFile(path, []byte(content), 0600)
}

// findRunningServer returns the address of the server named in the
// lockfile if its process is still alive.
func findRunningServer(lockfilePath string) (string, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return "", ErrNotRunning
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 2 {
		return "", errors.New("lockfile is malformed")
	}

	addr := parts[0]
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "", fmt.Errorf("invalid address in lockfile: %w", err)
	}
	portNum, err := strconv.Atoi(port)
	if err != nil || portNum < 1 || portNum > 65535 {
		return "", fmt.Errorf("invalid port %q in lockfile", port)
	}

	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", errors.New("invalid process ID in lockfile")
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return "", ErrNotRunning
	}
	if !strings.HasPrefix(process.Executable(), constants.AppName) {
		return "", fmt.Errorf("process with PID %d is not %s (is %s)", pid, constants.AppName, process.Executable())
	}

	return addr, nil
}

// Discover returns the base URL of a running chat server.
func Discover() (string, error) {
	path, err := LockfilePath()
	if err != nil {
		return "", err
	}
	addr, err := findRunningServer(path)
	if err != nil {
		return "", err
	}
	return "http://" + addr, nil
}
