package wm

import (
	"context"

	"github.com/shirou/gopsutil/v4/process"
)

// Running returns the window manager currently executing in the session,
// scanning the process table for either executable name. Unknown means
// neither is running.
func Running(ctx context.Context) (Choice, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return Unknown, err
	}

	names := make([]string, 0, len(procs))
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			// Processes exit while we scan.
			continue
		}
		names = append(names, name)
	}
	return runningFrom(names), nil
}

// runningFrom picks the window manager among process names.
func runningFrom(names []string) Choice {
	for _, name := range names {
		if c := ParseChoice(name); c.Known() {
			return c
		}
	}
	return Unknown
}
