package translate

import (
	"os/exec"
	"sync"
)

// Tools records which native substitutes are on PATH. Translators consult
// it to pick between a native passthrough and a cmdlet fallback.
type Tools struct {
	Rg   bool
	Fd   bool
	Curl bool
	Jq   bool
}

var (
	toolMu     sync.Mutex
	toolOnce   *sync.Once
	toolCached Tools
)

func init() {
	toolOnce = new(sync.Once)
}

// DetectTools probes PATH once per process and caches the result. Use
// Options.Tools to bypass the probe entirely.
func DetectTools() Tools {
	toolMu.Lock()
	once := toolOnce
	toolMu.Unlock()
	once.Do(func() {
		t := Tools{
			Rg:   onPath("rg"),
			Fd:   onPath("fd"),
			Curl: onPath("curl.exe"),
			Jq:   onPath("jq"),
		}
		toolMu.Lock()
		toolCached = t
		toolMu.Unlock()
	})
	toolMu.Lock()
	defer toolMu.Unlock()
	return toolCached
}

// ResetToolCache clears the process-wide probe result. Long-running hosts
// whose PATH can change call this; so do tests.
func ResetToolCache() {
	toolMu.Lock()
	defer toolMu.Unlock()
	toolOnce = new(sync.Once)
	toolCached = Tools{}
}

func onPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
