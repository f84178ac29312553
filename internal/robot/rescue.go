package robot

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrManualReboot is returned after a manual reboot was requested because
// the server did not come back on its own.
var ErrManualReboot = errors.New("issued a manual reboot because the server did not come back")

// ErrUnreachable is returned when the server stayed unreachable after all
// reboot attempts.
var ErrUnreachable = errors.New("server still unreachable after reboot")

// RescueState describes the rescue-boot configuration of a server.
type RescueState struct {
	Active   bool   `json:"active" yaml:"active"`
	Password string `json:"password" yaml:"password,omitempty"`
	OS       string `json:"os" yaml:"os,omitempty"`
}

type rescueEnvelope struct {
	Rescue RescueState `json:"rescue"`
}

// RescueStatus fetches the current rescue-system state for a server.
func (c *Client) RescueStatus(ctx context.Context, ip string) (*RescueState, error) {
	var env rescueEnvelope
	if err := c.get(ctx, "/boot/"+url.PathEscape(ip)+"/rescue", &env); err != nil {
		return nil, err
	}
	return &env.Rescue, nil
}

// ActivateRescue arms the rescue system for the next boot. Activating an
// already-active rescue system is a no-op that returns the current state
// (and, with it, the existing rescue password).
func (c *Client) ActivateRescue(ctx context.Context, ip string) (*RescueState, error) {
	state, err := c.RescueStatus(ctx, ip)
	if err != nil {
		return nil, err
	}
	if state.Active {
		return state, nil
	}
	form := url.Values{"os": {"linux"}, "arch": {"64"}}
	var env rescueEnvelope
	if err := c.post(ctx, "/boot/"+url.PathEscape(ip)+"/rescue", form, &env); err != nil {
		return nil, err
	}
	return &env.Rescue, nil
}

// DeactivateRescue disarms the rescue system if it is armed.
func (c *Client) DeactivateRescue(ctx context.Context, ip string) error {
	state, err := c.RescueStatus(ctx, ip)
	if err != nil {
		return err
	}
	if !state.Active {
		return nil
	}
	return c.delete(ctx, "/boot/"+url.PathEscape(ip)+"/rescue", nil)
}

// sshPort is probed to decide whether a server has finished rebooting.
const sshPort = "22"

var dialTimeout = 5 * time.Second

// checkSSH reports whether the server accepts TCP connections on the SSH
// port. Overridable in tests.
var checkSSH = func(ip string) bool {
	conn, err := net.DialTimeout("tcp", net.JoinHostPort(ip, sshPort), dialTimeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// ObservedReboot reboots the server and waits up to patience per attempt
// for it to go down and come back. Dedicated servers are tried soft first,
// then hard; virtual servers only support the hard path. When every
// attempt fails and manual is set, a manual reboot is requested and
// ErrManualReboot returned; otherwise ErrUnreachable.
func (c *Client) ObservedReboot(ctx context.Context, srv *Server, patience time.Duration, manual bool) error {
	tries := []RebootMethod{RebootSoft, RebootHard}
	if srv.IsVServer() {
		tries = []RebootMethod{RebootHard}
	}

	wasDown := false
	for _, method := range tries {
		if err := c.Reboot(ctx, srv.IP, method); err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{"ip": srv.IP, "method": method}).
			Debug("robot: waiting for server to come back")

		deadline := time.Now().Add(patience)
		for time.Now().Before(deadline) {
			up := checkSSH(srv.IP)
			if up && wasDown {
				return nil
			}
			if !wasDown {
				wasDown = !up
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Second):
			}
		}
	}

	if manual {
		if err := c.Reboot(ctx, srv.IP, RebootManual); err != nil {
			return err
		}
		return ErrManualReboot
	}
	return ErrUnreachable
}

// RescueShell boots the server into the rescue system, attaches an
// interactive ssh session as root and, once the shell exits, disarms the
// rescue system and reboots back into the normal system.
func (c *Client) RescueShell(ctx context.Context, srv *Server, patience time.Duration, manual bool) error {
	state, err := c.ActivateRescue(ctx, srv.IP)
	if err != nil {
		return err
	}
	if err := c.ObservedReboot(ctx, srv, patience, manual); err != nil {
		return err
	}

	if err := spawnSSH(srv.IP, state.Password); err != nil {
		return err
	}

	if err := c.DeactivateRescue(ctx, srv.IP); err != nil {
		return err
	}
	return c.ObservedReboot(ctx, srv, patience, manual)
}

// writeAskPass creates a throwaway SSH_ASKPASS helper that prints the
// rescue password. The caller must invoke cleanup.
func writeAskPass(password string) (script string, cleanup func(), err error) {
	dir, err := os.MkdirTemp("", "hetznerctl-askpass-")
	if err != nil {
		return "", nil, err
	}
	script = filepath.Join(dir, "askpass")
	escaped := strings.ReplaceAll(password, `'`, `'\''`)
	content := "#!/bin/sh\nprintf '%s' '" + escaped + "'\n"
	if err := os.WriteFile(script, []byte(content), 0o700); err != nil {
		os.RemoveAll(dir)
		return "", nil, err
	}
	return script, func() { os.RemoveAll(dir) }, nil
}

func spawnSSH(ip, password string) error {
	askpass, cleanup, err := writeAskPass(password)
	if err != nil {
		return fmt.Errorf("creating askpass helper: %w", err)
	}
	defer cleanup()

	args := []string{}
	for _, opt := range []string{
		"CheckHostIP=no",
		"GlobalKnownHostsFile=/dev/null",
		"UserKnownHostsFile=/dev/null",
		"StrictHostKeyChecking=no",
		"LogLevel=quiet",
	} {
		args = append(args, "-o", opt)
	}
	args = append(args, "root@"+ip)

	cmd := exec.Command("ssh", args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	// Detach from the controlling terminal so ssh consults SSH_ASKPASS
	// instead of prompting.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	cmd.Env = append(os.Environ(), "DISPLAY=:666", "SSH_ASKPASS="+askpass)
	return cmd.Run()
}
