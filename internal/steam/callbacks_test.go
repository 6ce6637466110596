package steam

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunCallbacksDeliversInOrder(t *testing.T) {
	r := NewCallbackRegistry()
	var got []Callback
	h := r.RegisterCallback(func(cb Callback) { got = append(got, cb) })
	defer h.Unregister()

	r.Post(PersonaStateChange{SteamID: 1})
	r.Post(DownloadItemResult{PublishedFileID: 2})
	assert.Empty(t, got, "nothing is delivered before RunCallbacks")

	r.RunCallbacks()
	assert.Equal(t, []Callback{PersonaStateChange{SteamID: 1}, DownloadItemResult{PublishedFileID: 2}}, got)

	r.RunCallbacks()
	assert.Len(t, got, 2, "queue is drained")
}

func TestUnregisterStopsDelivery(t *testing.T) {
	r := NewCallbackRegistry()
	count := 0
	h := r.RegisterCallback(func(Callback) { count++ })
	assert.Equal(t, 1, r.Subscribers())

	h.Unregister()
	h.Unregister()
	assert.Equal(t, 0, r.Subscribers())

	r.Post(PersonaStateChange{})
	r.RunCallbacks()
	assert.Equal(t, 0, count)
}

func TestHandlerMayUnregisterItself(t *testing.T) {
	r := NewCallbackRegistry()
	count := 0
	var h *CallbackHandle
	h = r.RegisterCallback(func(Callback) {
		count++
		h.Unregister()
	})
	r.Post(PersonaStateChange{SteamID: 1})
	r.Post(PersonaStateChange{SteamID: 2})
	r.RunCallbacks()
	assert.Equal(t, 1, count)
}

func TestItemQueryFetchOnce(t *testing.T) {
	calls := 0
	q := NewItemQuery(7, []PublishedFileID{42}, func(h QueryHandle, ids []PublishedFileID) {
		calls++
		assert.Equal(t, QueryHandle(7), h)
		assert.Equal(t, []PublishedFileID{42}, ids)
	})
	q.Fetch()
	q.Fetch()
	assert.Equal(t, 1, calls)
	assert.Equal(t, QueryHandle(7), q.Handle())
}

func TestResultString(t *testing.T) {
	assert.Equal(t, "OK", ResultOK.String())
	assert.Equal(t, "Result(99)", Result(99).String())
}
