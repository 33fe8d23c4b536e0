package chart

import (
	"os"
	"os/exec"
	"runtime"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/eth-easl/schedplot/pkg/common"
)

var errNoDisplay = errors.New("no display surface available")

// Display opens a written figure in the platform's default viewer and waits
// for the launcher to return.
func Display(path string) error {
	if !displayAvailable(runtime.GOOS, os.Getenv) {
		return common.RenderError(errNoDisplay, "cannot show %s", path)
	}

	name, args := viewerCommand(runtime.GOOS, path)
	log.Debugf("Opening %s with %s", path, name)

	cmd := exec.Command(name, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return common.RenderError(err, "%s %s: %s", name, path, string(out))
	}
	return nil
}

func displayAvailable(goos string, getenv func(string) string) bool {
	switch goos {
	case "windows", "darwin":
		return true
	default:
		return getenv("DISPLAY") != "" || getenv("WAYLAND_DISPLAY") != ""
	}
}

func viewerCommand(goos, path string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{path}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", path}
	default:
		return "xdg-open", []string{path}
	}
}
