package decode

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// CopyContents copies everything inside src into dst, merging with what dst
// already holds; existing files are overwritten. Bytes written are mirrored
// to progress when it is non-nil. It returns the number of files copied.
func CopyContents(src, dst string, progress io.Writer) (int, error) {
	if progress == nil {
		progress = io.Discard
	}
	copied := 0
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		info, err := d.Info()
		if err != nil {
			return err
		}
		switch {
		case d.IsDir():
			return os.MkdirAll(target, info.Mode().Perm()|0700)
		case info.Mode().IsRegular():
			if err := copyFile(path, target, info.Mode().Perm(), progress); err != nil {
				return err
			}
			copied++
		default:
			log.Warn().Str("op", "decode/copy").Msgf("skipping non-regular file %s", rel)
		}
		return nil
	})
	if err != nil {
		return copied, fmt.Errorf("error copying %s to %s: %w", src, dst, err)
	}
	return copied, nil
}

func copyFile(src, dst string, perm fs.FileMode, progress io.Writer) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm|0200)
	if err != nil {
		return err
	}
	if _, err := io.Copy(io.MultiWriter(out, progress), in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// TreeSize sums the sizes of the regular files under dir.
func TreeSize(dir string) (int64, error) {
	var total int64
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	return total, err
}
