// +build !windows

package log

import (
	"os"
	"syscall"
)

var defaultSwapSignal os.Signal = syscall.SIGUSR2
