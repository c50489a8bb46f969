// Package browser opens checkout and account links in the user's browser.
package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// Opener opens a URL. Tests and headless environments swap it out.
type Opener func(rawURL string) error

// Open validates rawURL and launches the platform's default browser on it.
// Only http and https links are opened.
func Open(rawURL string) error {
	if err := Validate(rawURL); err != nil {
		return err
	}
	return command(runtime.GOOS, rawURL)
}

// Validate rejects anything but absolute http(s) URLs, so a backend-supplied
// link can never launch a local file or custom scheme handler.
func Validate(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("browser: parse url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("browser: refusing to open %q", rawURL)
	}
	return nil
}

func command(goos, rawURL string) error {
	switch goos {
	case "darwin":
		return exec.Command("open", rawURL).Start()
	case "linux":
		return exec.Command("xdg-open", rawURL).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL).Start()
	default:
		return fmt.Errorf("unsupported OS: %s", goos)
	}
}
