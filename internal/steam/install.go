package steam

import (
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// ItemInstallInfo reports where an item's content lives. Downloads finished in
// this process are remembered; otherwise steamcmd's content layout under the
// install directory is checked.
func (b *Backend) ItemInstallInfo(id PublishedFileID) (InstallInfo, bool) {
	b.mu.Lock()
	info, ok := b.installs[id]
	b.mu.Unlock()
	if ok {
		return info, true
	}
	return scanInstall(b.contentDir(id))
}

func (b *Backend) contentDir(id PublishedFileID) string {
	return filepath.Join(b.cfg.InstallDir, "steamapps", "workshop", "content",
		strconv.FormatUint(uint64(b.cfg.AppID), 10), id.String())
}

func (b *Backend) isCurrent(id PublishedFileID) bool {
	info, ok := b.ItemInstallInfo(id)
	if !ok {
		return false
	}
	b.mu.Lock()
	details, known := b.details[id]
	b.mu.Unlock()
	if !known || details.TimeUpdated.IsZero() {
		return false
	}
	return !info.TimeStamp.Before(details.TimeUpdated)
}

func scanInstall(dir string) (InstallInfo, bool) {
	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		return InstallInfo{}, false
	}
	info := InstallInfo{Folder: dir}
	var latest time.Time
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		info.SizeOnDisk += uint64(fi.Size())
		if fi.ModTime().After(latest) {
			latest = fi.ModTime()
		}
		return nil
	})
	if err != nil {
		return InstallInfo{}, false
	}
	if latest.IsZero() {
		latest = st.ModTime()
	}
	info.TimeStamp = latest
	return info, true
}
