package util

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/rs/zerolog/log"
)

// DashboardURL local address of the dashboard landing page
func DashboardURL(port int) string {
	return fmt.Sprintf("http://localhost:%d/", port)
}

// OpenBrowser opens url in the default browser (Windows, macOS, Linux)
func OpenBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		// rundll32 is more reliable than "cmd /c start" on older Windows
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}

	return cmd.Start()
}

// OpenBrowserWithFallback tries OpenBrowser, then a few well-known browsers.
func OpenBrowserWithFallback(url string) error {
	err := OpenBrowser(url)
	if err == nil {
		return nil
	}
	log.Debug().Err(err).Str("os", runtime.GOOS).Msg("default browser failed, trying fallbacks")

	switch runtime.GOOS {
	case "windows":
		return exec.Command("explorer", url).Start()
	case "linux":
		browsers := []string{"google-chrome", "firefox", "chromium-browser", "sensible-browser"}
		for _, browser := range browsers {
			if err := exec.Command(browser, url).Start(); err == nil {
				return nil
			}
			log.Debug().Str("browser", browser).Msg("browser not available")
		}
	}

	return fmt.Errorf("open %s: %w", url, err)
}
