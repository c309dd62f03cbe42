// +build windows

package main

import (
	"os"
	"syscall"
)

// swapSignal mirrors the default level-swap signal in pkg/log.
var swapSignal os.Signal = syscall.SIGHUP
