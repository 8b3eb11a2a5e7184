package wm

import (
	"os/exec"
	"syscall"

	"github.com/yllada/xfce-gala-settings/common"
)

// ProcessLauncher starts window managers as detached processes.
type ProcessLauncher struct {
	// Binaries overrides the executable per choice, mainly for tests.
	Binaries map[Choice]string
}

// NewProcessLauncher creates a launcher using the executables on PATH.
func NewProcessLauncher() *ProcessLauncher {
	return &ProcessLauncher{}
}

func (p *ProcessLauncher) binary(choice Choice) string {
	if bin, ok := p.Binaries[choice]; ok {
		return bin
	}
	return choice.String()
}

// Replace runs "<manager> --replace" and returns once it has started.
// The new window manager outlives the panel; its exit status is collected
// in the background and only logged.
func (p *ProcessLauncher) Replace(choice Choice) error {
	cmd := exec.Command(p.binary(choice), common.ReplaceFlag)
	// Own process group so a Ctrl-C in the launching terminal
	// does not take the window manager down with the panel.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	common.LogInfo("Launching %s %s", cmd.Path, common.ReplaceFlag)
	if err := cmd.Start(); err != nil {
		return err
	}

	go func() {
		if err := cmd.Wait(); err != nil {
			common.LogDebug("%s exited: %v", choice, err)
		}
	}()
	return nil
}
