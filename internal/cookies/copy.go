package cookies

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// SafeCopy copies a SQLite cookie file, and its -wal and -shm companions when
// present, into a new temporary directory so the browser keeps its lock.
//
// It returns the path of the copied database and a cleanup function removing
// the temporary directory. The caller MUST call cleanup when done.
func SafeCopy(srcPath string) (copied string, cleanup func(), err error) {
	if err := checkStoreFile(srcPath); err != nil {
		return "", nil, err
	}
	tempDir, err := os.MkdirTemp("", "crumbs-cookies-*")
	if err != nil {
		return "", nil, fmt.Errorf("error: cannot create temp directory: %w", err)
	}
	cleanup = func() { os.RemoveAll(tempDir) }

	copied = filepath.Join(tempDir, filepath.Base(srcPath))
	for _, suffix := range []string{"", "-wal", "-shm"} {
		src := srcPath + suffix
		if suffix != "" {
			if _, err := os.Stat(src); err != nil {
				continue
			}
		}
		err := copyFile(src, copied+suffix)
		if err != nil && suffix == "" {
			cleanup()
			return "", nil, err
		}
	}
	return copied, cleanup, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("error: cannot open source file %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("error: cannot create destination file %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("error: cannot copy file: %w", err)
	}
	return out.Close()
}
