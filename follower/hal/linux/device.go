//go:build linux

package linux

import (
	"path/filepath"
	"unicode"

	"github.com/ardnew/softcec/pkg"
)

// DevicePath resolves a device argument. A short numeric argument such as
// "0" or "12" names /dev/cecN; anything else is used as given. An empty
// argument selects DefaultDevice.
func DevicePath(arg string) string {
	switch {
	case arg == "":
		return DefaultDevice
	case len(arg) <= 3 && unicode.IsDigit(rune(arg[0])):
		return "/dev/cec" + arg
	}
	return arg
}

// Find returns the first /dev/cec* node whose adapter matches the driver
// and adapter names. An empty name matches anything. Nodes that cannot be
// opened are skipped.
func Find(driver, adapter string) (string, error) {
	paths, err := filepath.Glob(devicePattern)
	if err != nil {
		return "", err
	}
	for _, path := range paths {
		a, err := Open(path)
		if err != nil {
			pkg.LogDebug(pkg.ComponentHAL, "skipping device", "path", path, "error", err)
			continue
		}
		caps, err := a.Capabilities()
		a.Close()
		if err != nil {
			pkg.LogDebug(pkg.ComponentHAL, "skipping device", "path", path, "error", err)
			continue
		}
		if matches(caps.Driver, caps.Name, driver, adapter) {
			return path, nil
		}
	}
	if len(paths) == 0 {
		return "", pkg.ErrNoDevice
	}
	return "", pkg.ErrNoAdapterMatch
}

func matches(haveDriver, haveName, driver, adapter string) bool {
	if driver != "" && driver != haveDriver {
		return false
	}
	if adapter != "" && adapter != haveName {
		return false
	}
	return true
}
