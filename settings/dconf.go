package settings

import (
	"context"
	"fmt"
	"strconv"

	"github.com/yllada/xfce-gala-settings/common"
)

// DconfBackend talks to dconf through its command line tool.
type DconfBackend struct {
	runner common.CommandRunner
}

// NewDconfBackend creates a backend running dconf with runner.
func NewDconfBackend(runner common.CommandRunner) *DconfBackend {
	return &DconfBackend{runner: runner}
}

// ReadBool returns the value stored at path.
func (d *DconfBackend) ReadBool(path string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), common.CommandTimeout)
	defer cancel()

	out, err := d.runner.Run(ctx, "dconf", "read", path)
	if err != nil {
		return false, err
	}
	switch out {
	case "":
		return false, fmt.Errorf("%w: %s", common.ErrPreferenceUnset, path)
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %s = %s", common.ErrPreferenceInvalid, path, out)
	}
}

// WriteBool stores value at path.
func (d *DconfBackend) WriteBool(path string, value bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), common.CommandTimeout)
	defer cancel()

	_, err := d.runner.Run(ctx, "dconf", "write", path, strconv.FormatBool(value))
	return err
}
