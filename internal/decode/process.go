package decode

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

type Options struct {
	// Preserve keeps the marker-suffixed originals next to the decoded files.
	Preserve bool
	// Progress receives a copy of every byte written while copying.
	Progress io.Writer
	// OnDecode is called with the path of each file before it is decoded.
	OnDecode func(path string)
}

type Result struct {
	Root            string
	Copied          int
	Decoded         []string
	ItemInfoRemoved bool
}

// Process copies the contents of src into dest, decodes every marker-suffixed
// file under dest and removes the item info file from dest's root.
func Process(src, dest string, opts Options) (*Result, error) {
	if err := os.MkdirAll(dest, 0755); err != nil {
		return nil, fmt.Errorf("error creating output directory: %w", err)
	}
	root, err := filepath.Abs(dest)
	if err != nil {
		return nil, fmt.Errorf("error resolving output directory: %w", err)
	}
	if root, err = filepath.EvalSymlinks(root); err != nil {
		return nil, fmt.Errorf("error resolving output directory: %w", err)
	}
	res := &Result{Root: filepath.Clean(root)}
	log.Debug().Str("op", "decode/process").Msgf("copying %s into %s", src, res.Root)
	if res.Copied, err = CopyContents(src, res.Root, opts.Progress); err != nil {
		return res, err
	}
	if res.Decoded, err = DecodeTree(res.Root, opts); err != nil {
		return res, err
	}
	if res.ItemInfoRemoved, err = RemoveItemInfo(res.Root); err != nil {
		return res, err
	}
	return res, nil
}

// DecodeTree decodes every marker-suffixed regular file under root and returns
// the paths of the decoded outputs. The first failure stops the batch.
func DecodeTree(root string, opts Options) ([]string, error) {
	var encoded []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if _, ok := DecodedName(d.Name()); ok {
			encoded = append(encoded, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking %s: %w", root, err)
	}
	decoded := make([]string, 0, len(encoded))
	for _, path := range encoded {
		if opts.OnDecode != nil {
			opts.OnDecode(path)
		}
		out, err := DecodeFile(path, opts.Preserve)
		if err != nil {
			return decoded, err
		}
		decoded = append(decoded, out)
	}
	log.Debug().Str("op", "decode/process").Msgf("decoded %d files under %s", len(decoded), root)
	return decoded, nil
}

// DecodeFile writes the decoded bytes of path to its sibling without the
// marker and, unless preserve is set, removes path.
func DecodeFile(path string, preserve bool) (string, error) {
	out, ok := DecodedName(path)
	if !ok {
		return "", fmt.Errorf("%s is not an encoded file", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("error reading %s: %w", path, err)
	}
	if err := os.WriteFile(out, Decode(data), 0644); err != nil {
		return "", fmt.Errorf("error writing %s: %w", out, err)
	}
	if !preserve {
		if err := os.Remove(path); err != nil {
			return out, fmt.Errorf("error removing %s: %w", path, err)
		}
	}
	return out, nil
}

// RemoveItemInfo deletes the item info file from root. A missing file is
// logged and reported as not removed; any other failure is returned.
func RemoveItemInfo(root string) (bool, error) {
	path := filepath.Join(root, ItemInfoFile)
	err := os.Remove(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		log.Warn().Str("op", "decode/process").Msgf("%s not found in %s", ItemInfoFile, root)
		return false, nil
	default:
		return false, fmt.Errorf("error removing %s: %w", ItemInfoFile, err)
	}
}
