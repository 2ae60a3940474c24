//go:build !windows
// +build !windows

package audio

import "os"

// interruptSignal stops the capture tool gracefully so it flushes its
// output.
var interruptSignal = os.Interrupt
