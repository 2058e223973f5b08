package universe

import (
	"fmt"
	"os/exec"
	"runtime"
)

// URLOpener opens a result URL outside the viewer
type URLOpener interface {
	Open(url string) error
}

// OpenerFunc adapts a function to URLOpener
type OpenerFunc func(url string) error

// Open calls f
func (f OpenerFunc) Open(url string) error {
	return f(url)
}

// SystemOpener opens URLs with the platform's default handler
type SystemOpener struct{}

// OSOpenCommand returns the command that opens a URL with the default app
// on this platform. The URL is passed as the last argument and never goes
// through a shell.
func OSOpenCommand() (string, []string) {
	return openCommand(runtime.GOOS)
}

func openCommand(goos string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler"}
	}
	return "xdg-open", nil
}

// Open starts the default handler for url without waiting for it to exit.
// Only absolute http and https URLs are opened.
func (SystemOpener) Open(url string) error {
	url, err := ValidateURL(url)
	if err != nil {
		return fmt.Errorf("refusing to open: %w", err)
	}

	name, args := OSOpenCommand()
	cmd := exec.Command(name, append(args, url)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open %q: %w", url, err)
	}
	go cmd.Wait()
	return nil
}
