package workshop

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/tanq16/workshopdl/internal/steam"
)

// Orchestrator runs the Steam requests of a download one after another. Each
// step registers its Bridge before issuing the request and waits for the
// matching callback before returning.
type Orchestrator struct {
	client steam.Client
}

func NewOrchestrator(client steam.Client) *Orchestrator {
	return &Orchestrator{client: client}
}

func (o *Orchestrator) FetchDetails(ctx context.Context, id steam.PublishedFileID) (steam.ItemDetails, error) {
	query, err := o.client.QueryItem(id)
	if err != nil {
		log.Error().Str("op", "workshop/orchestrator").Err(err).Msg("could not create details query")
		return steam.ItemDetails{}, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}
	bridge := Listen(o.client, func(c steam.QueryCompleted) bool {
		return c.Handle == query.Handle()
	})
	defer bridge.Close()
	query.Fetch()

	res, err := bridge.Wait(ctx)
	if err != nil {
		return steam.ItemDetails{}, err
	}
	if res.Err != nil {
		return steam.ItemDetails{}, fmt.Errorf("%w: %v", ErrQueryFailed, res.Err)
	}
	if len(res.Details) == 0 {
		return steam.ItemDetails{}, fmt.Errorf("%w: no results for item %s", ErrQueryFailed, id)
	}
	details := res.Details[0]
	if details.Result != steam.ResultOK {
		return steam.ItemDetails{}, fmt.Errorf("%w: item %s returned %s", ErrQueryFailed, id, details.Result)
	}
	log.Debug().Str("op", "workshop/orchestrator").Msgf("fetched details for %s: %q", id, details.Title)
	return details, nil
}

// ResolveOwner returns the owner's persona name, waiting for it to be fetched
// when the client does not have it cached.
func (o *Orchestrator) ResolveOwner(ctx context.Context, owner steam.SteamID) (string, error) {
	bridge := Listen(o.client, func(c steam.PersonaStateChange) bool {
		return c.SteamID == owner
	})
	defer bridge.Close()
	if o.client.RequestUserInformation(owner, true) {
		log.Debug().Str("op", "workshop/orchestrator").Msgf("waiting for persona %s", owner)
		if _, err := bridge.Wait(ctx); err != nil {
			return "", err
		}
	}
	return o.client.PersonaName(owner), nil
}

// Download triggers the item download and waits for its completion callback.
// A non-OK result is returned as-is; whether content arrived is decided by
// InstallPath.
func (o *Orchestrator) Download(ctx context.Context, id steam.PublishedFileID) (steam.DownloadItemResult, error) {
	bridge := Listen(o.client, func(r steam.DownloadItemResult) bool {
		return r.PublishedFileID == id
	})
	defer bridge.Close()
	if !o.client.DownloadItem(id, true) {
		return steam.DownloadItemResult{}, ErrDownloadNotStarted
	}
	res, err := bridge.Wait(ctx)
	if err != nil {
		return steam.DownloadItemResult{}, err
	}
	if res.Result != steam.ResultOK {
		log.Warn().Str("op", "workshop/orchestrator").Msgf("download of %s finished with %s", id, res.Result)
	}
	return res, nil
}

func (o *Orchestrator) InstallPath(id steam.PublishedFileID) (steam.InstallInfo, error) {
	info, ok := o.client.ItemInstallInfo(id)
	if !ok || info.Folder == "" {
		return steam.InstallInfo{}, ErrNoInstallInfo
	}
	return info, nil
}
