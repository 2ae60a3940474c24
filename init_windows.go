//go:build windows

package main

import "syscall"

func init() {
	// Console output carries translated text in many scripts; switch
	// the Windows codepage to UTF-8 so it renders.
	kernel32 := syscall.NewLazyDLL("kernel32.dll")
	setConsoleOutputCP := kernel32.NewProc("SetConsoleOutputCP")
	setConsoleOutputCP.Call(uintptr(65001)) // 65001 is UTF-8
}
