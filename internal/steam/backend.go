package steam

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/tanq16/workshopdl/internal/utils"
)

const (
	DefaultWebAPIBase    = "https://api.steampowered.com"
	DefaultCommunityBase = "https://steamcommunity.com"
)

type BackendConfig struct {
	AppID         uint32
	SteamCMDPath  string
	Username      string
	InstallDir    string
	APIKey        string
	WebAPIBase    string
	CommunityBase string
	HTTPClient    utils.HTTPDoer
}

// Backend implements Client on top of the Steam Web API, the community
// profile pages and steamcmd. Network and process work happens on worker
// goroutines; results reach handlers through the embedded registry.
type Backend struct {
	*CallbackRegistry
	cfg    BackendConfig
	ctx    context.Context
	cancel context.CancelFunc
	log    zerolog.Logger

	mu        sync.Mutex
	wg        sync.WaitGroup
	nextQuery QueryHandle
	details   map[PublishedFileID]ItemDetails
	personas  map[SteamID]string
	inflight  map[SteamID]bool
	installs  map[PublishedFileID]InstallInfo
	running   map[PublishedFileID]bool
}

var ErrNotInitialized = errors.New("steam backend is not initialized")

// NewBackend initialises a backend for one app, the way the Steam client is
// initialised for a single app ID.
func NewBackend(cfg BackendConfig) (*Backend, error) {
	if cfg.AppID == 0 {
		return nil, fmt.Errorf("app ID must be non-zero")
	}
	if cfg.WebAPIBase == "" {
		cfg.WebAPIBase = DefaultWebAPIBase
	}
	if cfg.CommunityBase == "" {
		cfg.CommunityBase = DefaultCommunityBase
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = utils.NewWorkshopHTTPClient(utils.HTTPClientConfig{})
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Backend{
		CallbackRegistry: NewCallbackRegistry(),
		cfg:              cfg,
		ctx:              ctx,
		cancel:           cancel,
		log:              utils.GetLogger("steam"),
		details:          make(map[PublishedFileID]ItemDetails),
		personas:         make(map[SteamID]string),
		inflight:         make(map[SteamID]bool),
		installs:         make(map[PublishedFileID]InstallInfo),
		running:          make(map[PublishedFileID]bool),
	}, nil
}

// Shutdown cancels outstanding work, including a running steamcmd, and waits
// for worker goroutines to return.
func (b *Backend) Shutdown() {
	b.cancel()
	b.wg.Wait()
}

func (b *Backend) AppID() uint32 {
	return b.cfg.AppID
}

func (b *Backend) QueryItem(id PublishedFileID) (*ItemQuery, error) {
	if b.ctx.Err() != nil {
		return nil, ErrNotInitialized
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid published file ID %d", id)
	}
	b.mu.Lock()
	b.nextQuery++
	handle := b.nextQuery
	b.mu.Unlock()
	return NewItemQuery(handle, []PublishedFileID{id}, b.submitQuery), nil
}

func (b *Backend) submitQuery(handle QueryHandle, ids []PublishedFileID) {
	b.goWork(func() {
		details, err := b.fetchDetails(b.ctx, ids)
		if err == nil {
			b.mu.Lock()
			for _, d := range details {
				b.details[d.PublishedFileID] = d
			}
			b.mu.Unlock()
		} else {
			b.log.Error().Str("op", "steam/backend").Err(err).Msg("details query failed")
		}
		b.Post(QueryCompleted{Handle: handle, Details: details, Err: err})
	})
}

func (b *Backend) RequestUserInformation(id SteamID, nameOnly bool) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.personas[id]; ok {
		return false
	}
	if b.inflight[id] {
		return true
	}
	b.inflight[id] = true
	b.goWork(func() {
		name, err := b.fetchPersonaName(b.ctx, id)
		if err != nil {
			b.log.Warn().Str("op", "steam/backend").Err(err).Msgf("could not resolve persona %s", id)
			name = ""
		}
		b.mu.Lock()
		b.personas[id] = name
		delete(b.inflight, id)
		b.mu.Unlock()
		b.Post(PersonaStateChange{SteamID: id})
	})
	return true
}

// PersonaName returns the cached name, or "[unknown]" when it was never
// resolved or could not be.
func (b *Backend) PersonaName(id SteamID) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if name := b.personas[id]; name != "" {
		return name
	}
	return "[unknown]"
}

func (b *Backend) goWork(fn func()) {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		fn()
	}()
}

var _ Client = (*Backend)(nil)
