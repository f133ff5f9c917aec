//go:build tinygo && baremetal && bootdebug

package app

import (
	"machine"
	"sync"
	"time"

	"ember/hal"
)

var (
	bootDiagMu   sync.Mutex
	bootDiagStep string
	bootDiagOnce sync.Once
)

// bootDiag records the current boot step. The first call starts a goroutine
// repeating the step every 250ms on the logger and on USB CDC, so a board
// that hangs during boot can still be diagnosed without a UART adapter.
func bootDiag(h hal.HAL, step string) {
	bootDiagMu.Lock()
	bootDiagStep = step
	bootDiagMu.Unlock()

	bootDiagOnce.Do(func() {
		l := h.Logger()
		go func() {
			for {
				bootDiagMu.Lock()
				step := bootDiagStep
				bootDiagMu.Unlock()

				line := "bootdiag: " + step
				if l != nil {
					l.WriteLineString(line)
				}
				if usb := machine.USBCDC; usb != nil {
					_, _ = usb.Write([]byte(line + "\r\n"))
				}
				time.Sleep(250 * time.Millisecond)
			}
		}()
	})
}
