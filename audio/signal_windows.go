//go:build windows
// +build windows

package audio

import "os"

// os.Interrupt cannot be sent on Windows; kill the capture process
// instead.
var interruptSignal = os.Kill
