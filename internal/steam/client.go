package steam

import "sync"

// Client is the surface of the Steam client runtime the downloader needs.
// Results of asynchronous requests arrive as callbacks, and callbacks are
// only delivered from RunCallbacks.
type Client interface {
	RunCallbacks()
	RegisterCallback(fn func(Callback)) *CallbackHandle

	// QueryItem prepares a details query; the result arrives as a
	// QueryCompleted callback carrying the query's handle once Fetch is called.
	QueryItem(id PublishedFileID) (*ItemQuery, error)

	// RequestUserInformation returns true when the persona is not cached and
	// a PersonaStateChange for id will follow.
	RequestUserInformation(id SteamID, nameOnly bool) bool
	PersonaName(id SteamID) string

	// DownloadItem returns false when the download could not be started.
	// Otherwise a DownloadItemResult for id follows. With skipIfCurrent, an
	// installed copy that is up to date completes without downloading.
	DownloadItem(id PublishedFileID, skipIfCurrent bool) bool
	ItemInstallInfo(id PublishedFileID) (InstallInfo, bool)
}

// ItemQuery is a prepared, not yet submitted, details query.
type ItemQuery struct {
	handle QueryHandle
	ids    []PublishedFileID
	submit func(QueryHandle, []PublishedFileID)
	once   sync.Once
}

func NewItemQuery(handle QueryHandle, ids []PublishedFileID, submit func(QueryHandle, []PublishedFileID)) *ItemQuery {
	return &ItemQuery{handle: handle, ids: ids, submit: submit}
}

func (q *ItemQuery) Handle() QueryHandle {
	return q.handle
}

func (q *ItemQuery) IDs() []PublishedFileID {
	return q.ids
}

// Fetch submits the query. Only the first call has an effect.
func (q *ItemQuery) Fetch() {
	q.once.Do(func() {
		q.submit(q.handle, q.ids)
	})
}
