//go:build windows

package files

import "golang.org/x/sys/windows"

// isReparsePoint reports whether path is a junction, symlink or other
// reparse point, which Lstat does not always flag on Windows.
func isReparsePoint(path string) (bool, error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return false, err
	}
	attrs, err := windows.GetFileAttributes(p)
	if err != nil {
		return false, err
	}
	return attrs&windows.FILE_ATTRIBUTE_REPARSE_POINT != 0, nil
}
