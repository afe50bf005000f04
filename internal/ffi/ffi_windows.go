//go:build windows

package ffi

import (
	"fmt"
	"sync"

	"golang.org/x/sys/windows"
)

var (
	winMu  sync.Mutex
	winDLL *windows.DLL
)

// openLibrary loads mcore.dll and returns its HMODULE.
func openLibrary(path string) (uintptr, error) {
	dll, err := windows.LoadDLL(path)
	if err != nil {
		return 0, fmt.Errorf("LoadDLL %s: %w", path, err)
	}
	winMu.Lock()
	winDLL = dll
	winMu.Unlock()
	return uintptr(dll.Handle), nil
}

// getSymbol resolves name in the loaded DLL.
func getSymbol(_ uintptr, name string) (uintptr, error) {
	winMu.Lock()
	dll := winDLL
	winMu.Unlock()
	if dll == nil {
		return 0, ErrNotLoaded
	}
	proc, err := dll.FindProc(name)
	if err != nil {
		return 0, fmt.Errorf("FindProc %s: %w", name, err)
	}
	return proc.Addr(), nil
}
