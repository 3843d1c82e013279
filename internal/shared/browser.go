package shared

import (
	"fmt"
	"os/exec"
	"runtime"
)

// goos is swapped out in tests to exercise the per-platform branches.
var goos = func() string { return runtime.GOOS }

// OpenBrowser hands a URL to the user's default browser. The auth flow uses
// it to open Spotify's consent screen; when no opener is known for the
// platform it returns an error so the caller can print the URL instead.
func OpenBrowser(url string) error {
	var name string
	var args []string

	switch os := goos(); os {
	case "darwin":
		name = "open"
	case "linux":
		name = "xdg-open"
	case "windows":
		name, args = "cmd", []string{"/c", "start"}
	default:
		return fmt.Errorf("no known browser opener for %s", os)
	}

	if err := exec.Command(name, append(args, url)...).Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}
