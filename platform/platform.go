package platform

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// OS is the host operating system tag stored with every app.
type OS string

const (
	Windows OS = "Windows"
	MacOS   OS = "MacOS"
	Unknown OS = "Unknown"
)

func (o OS) String() string {
	return string(o)
}

// FromGOOS maps a runtime.GOOS value to an OS tag.
func FromGOOS(goos string) OS {
	switch goos {
	case "windows":
		return Windows
	case "darwin":
		return MacOS
	default:
		return Unknown
	}
}

// Current returns the OS tag of the running process.
func Current() OS {
	return FromGOOS(runtime.GOOS)
}

func ParseOS(s string) (OS, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "windows":
		return Windows, nil
	case "macos", "darwin":
		return MacOS, nil
	case "unknown", "":
		return Unknown, nil
	default:
		return Unknown, fmt.Errorf("unknown operating system: %q", s)
	}
}

// Env is the host environment the resolver works against.
// It is passed around explicitly so that tests never touch the process environment.
type Env struct {
	OS        OS
	LookupEnv func(key string) (string, bool)
}

// Host returns the environment of the running process.
func Host() Env {
	return Env{
		OS:        Current(),
		LookupEnv: os.LookupEnv,
	}
}

// MapEnv returns an environment backed by a fixed map.
func MapEnv(o OS, vars map[string]string) Env {
	return Env{
		OS: o,
		LookupEnv: func(key string) (string, bool) {
			v, ok := vars[key]
			return v, ok
		},
	}
}

func (e Env) Lookup(key string) (string, bool) {
	if e.LookupEnv == nil {
		return "", false
	}
	return e.LookupEnv(key)
}
