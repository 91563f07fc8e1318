package ui

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
)

// OpenBrowser opens an http(s) link with the platform's default handler.
// Links come from the remote catalog, so anything else is refused.
func OpenBrowser(link string) error {
	target, err := browserURL(link)
	if err != nil {
		return err
	}
	cmdName, args := browserCommand(runtime.GOOS, target)

	c := exec.Command(cmdName, args...)
	if err := c.Start(); err != nil {
		return fmt.Errorf("opening %s with %q: %w", target, cmdName, err)
	}
	go func() { _ = c.Wait() }()
	return nil
}

// browserURL validates link and returns its normalized form
func browserURL(link string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return "", fmt.Errorf("invalid preview link: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("refusing to open %q: only http and https links are allowed", link)
	}
	if u.Host == "" {
		return "", fmt.Errorf("refusing to open %q: missing host", link)
	}
	return u.String(), nil
}

// browserCommand picks the opener for goos. None of them go through a shell.
func browserCommand(goos, target string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{target}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}
	default: // linux, freebsd, etc.
		return "xdg-open", []string{target}
	}
}
