//go:build windows

package probe

import (
	"fmt"
	"unsafe"

	"github.com/jxsl13/app-lemonator/version"
	"golang.org/x/sys/windows"
)

// used when the resource has no translation table
const defaultTranslation = "040904b0"

func readVersionResource(path string) (Info, error) {
	size, err := windows.GetFileVersionInfoSize(path, nil)
	if err != nil {
		return Info{}, fmt.Errorf("failed to get version info size of %s: %w", path, err)
	}
	if size == 0 {
		return Info{}, fmt.Errorf("no version info in %s", path)
	}

	block := make([]byte, size)
	err = windows.GetFileVersionInfo(path, 0, size, unsafe.Pointer(&block[0]))
	if err != nil {
		return Info{}, fmt.Errorf("failed to get version info of %s: %w", path, err)
	}

	var (
		fixed    *windows.VS_FIXEDFILEINFO
		fixedLen uint32
	)
	err = windows.VerQueryValue(unsafe.Pointer(&block[0]), `\`, unsafe.Pointer(&fixed), &fixedLen)
	if err != nil {
		return Info{}, fmt.Errorf("failed to query fixed file info of %s: %w", path, err)
	}
	if fixed == nil || fixedLen == 0 {
		return Info{}, fmt.Errorf("empty fixed file info in %s", path)
	}

	return Info{
		Version: version.Version{
			Major:    fixed.FileVersionMS >> 16,
			Minor:    fixed.FileVersionMS & 0xffff,
			Build:    fixed.FileVersionLS >> 16,
			Revision: fixed.FileVersionLS & 0xffff,
		},
		Description: fileDescription(block),
	}, nil
}

func fileDescription(block []byte) string {
	translation := defaultTranslation

	var (
		ptr unsafe.Pointer
		n   uint32
	)
	err := windows.VerQueryValue(unsafe.Pointer(&block[0]), `\VarFileInfo\Translation`, unsafe.Pointer(&ptr), &n)
	if err == nil && ptr != nil && n >= 4 {
		lang := *(*uint16)(ptr)
		codePage := *(*uint16)(unsafe.Add(ptr, 2))
		translation = fmt.Sprintf("%04x%04x", lang, codePage)
	}

	var (
		text    *uint16
		textLen uint32
	)
	subBlock := fmt.Sprintf(`\StringFileInfo\%s\FileDescription`, translation)
	err = windows.VerQueryValue(unsafe.Pointer(&block[0]), subBlock, unsafe.Pointer(&text), &textLen)
	if err != nil || text == nil || textLen == 0 {
		return ""
	}
	return windows.UTF16PtrToString(text)
}
