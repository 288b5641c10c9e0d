// Package preflight holds checks run before a command does any work.
package preflight

import (
	"errors"
	"fmt"
	"os"
)

// WritableDir reports an error unless dir exists, is a directory and accepts
// new files. It creates and removes a probe file to find out.
func WritableDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	probe, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return err
	}
	name := probe.Name()

	return errors.Join(probe.Close(), os.Remove(name))
}
