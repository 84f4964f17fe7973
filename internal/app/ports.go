package app

import (
	"time"

	"github.com/alexanderramin/vocnav/internal/storage"
)

// Store is the key-value store the shell wipes on ResetData.
type Store interface {
	storage.Store
	Clear()
}

// AfterFunc schedules f after d and returns a stop function, matching
// time.AfterFunc. Tests substitute a manual clock.
type AfterFunc func(d time.Duration, f func()) (stop func() bool)

func realAfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}
