// Package system holds process-level helpers: file limits, input discovery,
// pooled frame buffers and host statistics.
package system

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// InitResourceLimits raises the open file limit so large image directories
// can be decoded by many workers at once.
func InitResourceLimits() {
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Не удалось получить лимит файлов: %v", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	err = syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Не удалось установить лимит файлов: %v", err)
	}
}

// FindLatest returns the most recently modified file in dir whose name
// passes match.
func FindLatest(dir string, match func(name string) bool) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() || !match(f.Name()) {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, f.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("no matching files in %s", dir)
	}

	return latestFile, nil
}

// HasExt builds a FindLatest matcher for the given lower-case extensions.
func HasExt(exts ...string) func(string) bool {
	return func(name string) bool {
		ext := strings.ToLower(filepath.Ext(name))
		for _, e := range exts {
			if ext == e {
				return true
			}
		}
		return false
	}
}

// HostStats is a snapshot of the machine the batch ran on.
type HostStats struct {
	LogicalCPUs   int
	TotalMemory   uint64
	UsedPercent   float64
	HeapAlloc     uint64
	NumGoroutines int
}

// ReadHostStats collects HostStats. Host values that cannot be read are left
// zero; the Go runtime values are always present.
func ReadHostStats() HostStats {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	s := HostStats{
		HeapAlloc:     ms.HeapAlloc,
		NumGoroutines: runtime.NumGoroutine(),
	}
	if n, err := cpu.Counts(true); err == nil {
		s.LogicalCPUs = n
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		s.TotalMemory = vm.Total
		s.UsedPercent = vm.UsedPercent
	}
	return s
}

func (s HostStats) String() string {
	return fmt.Sprintf("CPUs: %d | RAM: %.1f GiB (%.0f%% used) | Heap: %.1f MiB",
		s.LogicalCPUs, float64(s.TotalMemory)/(1<<30), s.UsedPercent, float64(s.HeapAlloc)/(1<<20))
}
