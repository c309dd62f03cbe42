// +build windows

package log

import (
	"os"
	"syscall"
)

// Windows has no SIGUSR2; SIGHUP is the closest deliverable signal.
var defaultSwapSignal os.Signal = syscall.SIGHUP
