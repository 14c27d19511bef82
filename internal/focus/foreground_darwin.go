//go:build darwin

package focus

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa
#import <Cocoa/Cocoa.h>
#include <stdlib.h>
#include <string.h>

char* frontmostBundleID() {
    @autoreleasepool {
        NSRunningApplication *app = [[NSWorkspace sharedWorkspace] frontmostApplication];
        if (app == nil || app.bundleIdentifier == nil) {
            return NULL;
        }
        return strdup([app.bundleIdentifier UTF8String]);
    }
}
*/
import "C"

import (
	"errors"
	"unsafe"
)

func foregroundID() (string, error) {
	cid := C.frontmostBundleID()
	if cid == nil {
		return "", errors.New("no frontmost application")
	}
	defer C.free(unsafe.Pointer(cid))
	return C.GoString(cid), nil
}
