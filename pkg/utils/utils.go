package utils

import (
	"context"
	"math"
	"runtime/debug"
)

// GoSafe runs fn in a new goroutine and swallows panics so a single bad
// task cannot take down the process.
func GoSafe(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				debug.PrintStack()
			}
		}()
		fn()
	}()
}

// ShouldContinue reports whether the context is still live.
func ShouldContinue(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	default:
		return true
	}
}

// RoundScore rounds to the 3 decimal places used for persisted scores.
func RoundScore(v float64) float64 {
	return math.Round(v*1000) / 1000
}
