// Package steamtest provides a scriptable in-memory steam.Client.
package steamtest

import (
	"sync"

	"github.com/tanq16/workshopdl/internal/steam"
)

// Client answers every request by posting the matching callback, preceded by
// any Noise payloads, so callers must filter deliveries the way they would
// against the real runtime.
type Client struct {
	*steam.CallbackRegistry

	Items          map[steam.PublishedFileID]steam.ItemDetails
	Personas       map[steam.SteamID]string
	Cached         map[steam.SteamID]bool
	Installs       map[steam.PublishedFileID]steam.InstallInfo
	QueryErr       error
	RejectDownload bool
	DownloadResult steam.Result
	Noise          []steam.Callback

	mu        sync.Mutex
	calls     map[string]int
	nextQuery steam.QueryHandle
}

func New() *Client {
	return &Client{
		CallbackRegistry: steam.NewCallbackRegistry(),
		Items:            make(map[steam.PublishedFileID]steam.ItemDetails),
		Personas:         make(map[steam.SteamID]string),
		Cached:           make(map[steam.SteamID]bool),
		Installs:         make(map[steam.PublishedFileID]steam.InstallInfo),
		DownloadResult:   steam.ResultOK,
		calls:            make(map[string]int),
	}
}

// Calls reports how often the named method was invoked.
func (c *Client) Calls(method string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[method]
}

func (c *Client) record(method string) {
	c.mu.Lock()
	c.calls[method]++
	c.mu.Unlock()
}

func (c *Client) postNoise() {
	for _, cb := range c.Noise {
		c.Post(cb)
	}
}

func (c *Client) QueryItem(id steam.PublishedFileID) (*steam.ItemQuery, error) {
	c.record("QueryItem")
	if c.QueryErr != nil {
		return nil, c.QueryErr
	}
	c.mu.Lock()
	c.nextQuery++
	handle := c.nextQuery
	c.mu.Unlock()
	return steam.NewItemQuery(handle, []steam.PublishedFileID{id}, func(h steam.QueryHandle, ids []steam.PublishedFileID) {
		c.postNoise()
		var details []steam.ItemDetails
		for _, id := range ids {
			d, ok := c.Items[id]
			if !ok {
				d = steam.ItemDetails{PublishedFileID: id, Result: steam.ResultFileNotFound}
			}
			details = append(details, d)
		}
		c.Post(steam.QueryCompleted{Handle: h, Details: details})
	}), nil
}

func (c *Client) RequestUserInformation(id steam.SteamID, nameOnly bool) bool {
	c.record("RequestUserInformation")
	c.mu.Lock()
	cached := c.Cached[id]
	c.Cached[id] = true
	c.mu.Unlock()
	if cached {
		return false
	}
	c.postNoise()
	c.Post(steam.PersonaStateChange{SteamID: id})
	return true
}

func (c *Client) PersonaName(id steam.SteamID) string {
	c.record("PersonaName")
	if name, ok := c.Personas[id]; ok {
		return name
	}
	return "[unknown]"
}

func (c *Client) DownloadItem(id steam.PublishedFileID, skipIfCurrent bool) bool {
	c.record("DownloadItem")
	if c.RejectDownload {
		return false
	}
	c.postNoise()
	c.Post(steam.DownloadItemResult{PublishedFileID: id, Result: c.DownloadResult})
	return true
}

func (c *Client) ItemInstallInfo(id steam.PublishedFileID) (steam.InstallInfo, bool) {
	c.record("ItemInstallInfo")
	info, ok := c.Installs[id]
	return info, ok
}

var _ steam.Client = (*Client)(nil)
