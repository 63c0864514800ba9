//go:build noos

package machine

import "embedded/rtos"

func init() {
	rtos.SetSystemWriter(DefaultWrite)
}
