// Package viewer launches the packet capture viewer (Wireshark).
package viewer

import (
	"fmt"
	"os/exec"

	shellwords "github.com/mattn/go-shellwords"
	"github.com/sirupsen/logrus"
)

// DefaultPath is where the viewer is expected when no path is configured.
const DefaultPath = "/usr/local/bin/wireshark"

// Launcher starts the viewer on a capture file without waiting for it.
type Launcher struct {
	path      string
	extraArgs []string
	log       logrus.FieldLogger
}

// New creates a Launcher for the viewer binary at path. extraArgs is a
// shell-style argument string appended to every invocation.
func New(path, extraArgs string, log logrus.FieldLogger) (*Launcher, error) {
	if path == "" {
		path = DefaultPath
	}

	args, err := shellwords.Parse(extraArgs)
	if err != nil {
		return nil, fmt.Errorf("failed to parse viewer arguments %q: %w", extraArgs, err)
	}

	return &Launcher{path: path, extraArgs: args, log: log}, nil
}

// Args returns the viewer arguments for file with the given window title.
func (l *Launcher) Args(file, title string) []string {
	args := []string{file, "-o", "gui.window_title:" + title}
	return append(args, l.extraArgs...)
}

// Launch starts the viewer detached. The process is not tracked and
// outlives nictrace.
func (l *Launcher) Launch(file, title string) error {
	cmd := exec.Command(l.path, l.Args(file, title)...)

	if l.log != nil {
		l.log.WithField("args", cmd.Args[1:]).Debugf("launching %s", l.path)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch viewer %s: %w", l.path, err)
	}

	if err := cmd.Process.Release(); err != nil {
		return fmt.Errorf("failed to release viewer process: %w", err)
	}

	return nil
}
