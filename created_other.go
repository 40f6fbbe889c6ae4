//go:build !linux && !darwin

package main

import (
	"os"
	"time"
)

func createdAt(_ string, _ os.FileInfo) (time.Time, bool) {
	return time.Time{}, false
}
