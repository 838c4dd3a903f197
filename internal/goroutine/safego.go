// Package goroutine guards background work against panics.
package goroutine

import (
	"runtime/debug"

	"store-ticket-bot/internal/logger"
)

// Guard wraps fn so that a panic inside it is logged with the stack
// instead of crashing the bot.
func Guard(name string, fn func()) func() {
	return func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Warning("goroutine", name, "panicked:", r, "\n", string(debug.Stack()))
			}
		}()
		fn()
	}
}
