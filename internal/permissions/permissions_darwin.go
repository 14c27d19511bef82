//go:build darwin

package permissions

/*
#cgo LDFLAGS: -framework ApplicationServices -framework Cocoa
#import <ApplicationServices/ApplicationServices.h>
#import <Cocoa/Cocoa.h>

int checkAccessibilityPermission(int prompt) {
    NSDictionary *options = @{(__bridge id)kAXTrustedCheckOptionPrompt: prompt ? @YES : @NO};
    return AXIsProcessTrustedWithOptions((__bridge CFDictionaryRef)options) ? 1 : 0;
}
*/
import "C"

import (
	"errors"
	"fmt"
)

// ErrAccessibility means the process may not observe keys or post shortcuts
var ErrAccessibility = errors.New("accessibility permission not granted")

// CheckAccessibility checks if the app has accessibility permissions, needed
// for the global key hook and for synthesized copy/paste.
func CheckAccessibility() bool {
	return C.checkAccessibilityPermission(0) == 1
}

// PromptAccessibility asks macOS to show the accessibility dialog
func PromptAccessibility() bool {
	return C.checkAccessibilityPermission(1) == 1
}

// EnsurePermissions checks and requests all required permissions
func EnsurePermissions() error {
	if CheckAccessibility() {
		return nil
	}

	fmt.Println("⚠️  Accessibility permission required to watch the space bar")
	fmt.Println("   Go to: System Settings → Privacy & Security → Accessibility")
	if PromptAccessibility() {
		return nil
	}
	return ErrAccessibility
}
