//go:build !darwin

package permissions

import "errors"

// ErrAccessibility is never returned off macOS
var ErrAccessibility = errors.New("accessibility permission not granted")

// EnsurePermissions is a no-op on non-macOS platforms.
func EnsurePermissions() error {
	return nil
}
