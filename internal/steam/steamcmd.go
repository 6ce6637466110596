package steam

import (
	"bufio"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	downloadSuccessRegex = regexp.MustCompile(`Success\. Downloaded item (\d+) to "([^"]+)" \((\d+) bytes\)`)
	downloadFailedRegex  = regexp.MustCompile(`ERROR! Download item (\d+) failed \(([^)]+)\)`)
	loginFailedRegex     = regexp.MustCompile(`(?i)FAILED (to )?log ?in|Login Failure`)
)

func (b *Backend) DownloadItem(id PublishedFileID, skipIfCurrent bool) bool {
	if b.ctx.Err() != nil || id == 0 {
		return false
	}
	if skipIfCurrent && b.isCurrent(id) {
		b.log.Info().Str("op", "steam/steamcmd").Msgf("item %s is already up to date", id)
		b.Post(DownloadItemResult{AppID: b.cfg.AppID, PublishedFileID: id, Result: ResultOK})
		return true
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.running[id] {
		return true
	}
	steamcmdPath, err := exec.LookPath(b.cfg.SteamCMDPath)
	if err != nil {
		b.log.Error().Str("op", "steam/steamcmd").Err(err).Msg("steamcmd not found")
		return false
	}
	if err := os.MkdirAll(b.cfg.InstallDir, 0755); err != nil {
		b.log.Error().Str("op", "steam/steamcmd").Err(err).Msg("error creating install directory")
		return false
	}
	cmd := exec.CommandContext(b.ctx, steamcmdPath, b.steamcmdArgs(id)...)
	b.log.Debug().Str("op", "steam/steamcmd").Msgf("Executing steamcmd command: %s", cmd.String())
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		b.log.Error().Str("op", "steam/steamcmd").Err(err).Msg("Error creating stdout pipe")
		return false
	}
	cmd.Stderr = cmd.Stdout
	if err := cmd.Start(); err != nil {
		b.log.Error().Str("op", "steam/steamcmd").Err(err).Msg("Error starting steamcmd")
		return false
	}
	b.running[id] = true
	b.goWork(func() {
		outcome := b.watchSteamCMD(id, stdout)
		if err := cmd.Wait(); err != nil {
			b.log.Warn().Str("op", "steam/steamcmd").Err(err).Msg("steamcmd exited with an error")
			if outcome.result == ResultOK && outcome.info.Folder == "" {
				outcome.result = ResultFail
			}
		}
		b.mu.Lock()
		delete(b.running, id)
		if outcome.result == ResultOK && outcome.info.Folder != "" {
			b.installs[id] = outcome.info
		}
		b.mu.Unlock()
		b.log.Info().Str("op", "steam/steamcmd").Msgf("download of %s finished: %s", id, outcome.result)
		b.Post(DownloadItemResult{AppID: b.cfg.AppID, PublishedFileID: id, Result: outcome.result})
	})
	return true
}

func (b *Backend) steamcmdArgs(id PublishedFileID) []string {
	user := b.cfg.Username
	if user == "" {
		user = "anonymous"
	}
	return []string{
		"+force_install_dir", b.cfg.InstallDir,
		"+login", user,
		"+workshop_download_item", strconv.FormatUint(uint64(b.cfg.AppID), 10), id.String(),
		"+quit",
	}
}

type steamcmdOutcome struct {
	result Result
	info   InstallInfo
}

// watchSteamCMD streams steamcmd output into the debug log and picks out the
// lines reporting the item's outcome.
func (b *Backend) watchSteamCMD(id PublishedFileID, reader io.Reader) steamcmdOutcome {
	outcome := steamcmdOutcome{result: ResultOK}
	sawResult := false
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		b.log.Debug().Str("op", "steam/steamcmd").Msg(line)
		if sawResult {
			continue
		}
		if info, ok := parseDownloadSuccess(line, id); ok {
			outcome.info = info
			sawResult = true
			continue
		}
		if res, ok := parseDownloadFailure(line, id); ok {
			outcome.result = res
			sawResult = true
			continue
		}
		if loginFailedRegex.MatchString(line) {
			outcome.result = ResultAccessDenied
			sawResult = true
		}
	}
	if err := scanner.Err(); err != nil {
		b.log.Warn().Str("op", "steam/steamcmd").Err(err).Msg("error reading steamcmd output")
		// keep steamcmd from blocking on a full pipe
		io.Copy(io.Discard, reader)
	}
	if !sawResult {
		outcome.result = ResultFail
	}
	return outcome
}

func parseDownloadSuccess(line string, id PublishedFileID) (InstallInfo, bool) {
	m := downloadSuccessRegex.FindStringSubmatch(line)
	if m == nil || m[1] != id.String() {
		return InstallInfo{}, false
	}
	size, _ := strconv.ParseUint(m[3], 10, 64)
	return InstallInfo{Folder: m[2], SizeOnDisk: size, TimeStamp: time.Now()}, true
}

func parseDownloadFailure(line string, id PublishedFileID) (Result, bool) {
	m := downloadFailedRegex.FindStringSubmatch(line)
	if m == nil || m[1] != id.String() {
		return ResultNone, false
	}
	switch m[2] {
	case "File Not Found":
		return ResultFileNotFound, true
	case "Access Denied":
		return ResultAccessDenied, true
	case "Timeout":
		return ResultTimeout, true
	default:
		return ResultFail, true
	}
}
