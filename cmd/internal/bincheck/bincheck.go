// Package bincheck verifies that the external tools a command shells out to are installed.
package bincheck

import (
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrMissing is returned when a required tool is not in PATH.
var ErrMissing = errors.New("required tool not found in PATH")

// Require returns an error naming every tool in names that is not in PATH.
func Require(names ...string) error {
	return require(exec.LookPath, names)
}

func require(lookPath func(string) (string, error), names []string) error {
	var missing []string
	for _, name := range names {
		if _, err := lookPath(name); err != nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return errors.Wrapf(ErrMissing, "install %s", strings.Join(missing, ", "))
	}
	return nil
}
