//go:build !(tinygo && baremetal && bootdebug)

package app

import "ember/hal"

func bootDiag(hal.HAL, string) {}
