package workshop

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanq16/workshopdl/internal/steam"
	"github.com/tanq16/workshopdl/internal/steam/steamtest"
)

const (
	testItem  = steam.PublishedFileID(2785198049)
	testOwner = steam.SteamID(76561198000000001)
)

// newFakeClient returns a fake that knows testItem and interleaves unrelated
// callbacks with every answer, with a pump draining it.
func newFakeClient(t *testing.T) *steamtest.Client {
	t.Helper()
	fake := steamtest.New()
	fake.Items[testItem] = steam.ItemDetails{
		PublishedFileID: testItem,
		Result:          steam.ResultOK,
		Title:           "F-45A Loadout Pack",
		Description:     "Custom loadouts\nSecond line",
		Owner:           testOwner,
		VotesUp:         120,
		VotesDown:       7,
		FileSize:        1572864,
	}
	fake.Personas[testOwner] = "Baha"
	fake.Noise = []steam.Callback{
		steam.QueryCompleted{Handle: 999},
		steam.PersonaStateChange{SteamID: 1},
		steam.DownloadItemResult{PublishedFileID: 1, Result: steam.ResultFail},
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := StartPump(ctx, fake, time.Millisecond)
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return fake
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestFetchDetails(t *testing.T) {
	fake := newFakeClient(t)
	o := NewOrchestrator(fake)

	details, err := o.FetchDetails(testContext(t), testItem)
	require.NoError(t, err)
	assert.Equal(t, "F-45A Loadout Pack", details.Title)
	assert.Equal(t, testOwner, details.Owner)
	assert.Equal(t, 0, fake.Subscribers(), "bridge is unregistered after use")
}

func TestFetchDetailsQueryConstructionFails(t *testing.T) {
	fake := newFakeClient(t)
	fake.QueryErr = errors.New("steam not running")

	_, err := NewOrchestrator(fake).FetchDetails(testContext(t), testItem)
	assert.ErrorIs(t, err, ErrQueryFailed)
	assert.True(t, IsTolerated(err))
}

func TestFetchDetailsUnknownItem(t *testing.T) {
	fake := newFakeClient(t)
	_, err := NewOrchestrator(fake).FetchDetails(testContext(t), 12345)
	assert.ErrorIs(t, err, ErrQueryFailed)
}

func TestResolveOwnerWaitsWhenNotCached(t *testing.T) {
	fake := newFakeClient(t)
	name, err := NewOrchestrator(fake).ResolveOwner(testContext(t), testOwner)
	require.NoError(t, err)
	assert.Equal(t, "Baha", name)
	assert.Equal(t, 0, fake.Subscribers())
}

func TestResolveOwnerCached(t *testing.T) {
	fake := newFakeClient(t)
	fake.Cached[testOwner] = true
	fake.Noise = nil

	name, err := NewOrchestrator(fake).ResolveOwner(testContext(t), testOwner)
	require.NoError(t, err)
	assert.Equal(t, "Baha", name)
}

func TestDownload(t *testing.T) {
	fake := newFakeClient(t)
	res, err := NewOrchestrator(fake).Download(testContext(t), testItem)
	require.NoError(t, err)
	assert.Equal(t, testItem, res.PublishedFileID)
	assert.Equal(t, steam.ResultOK, res.Result)
	assert.Equal(t, 0, fake.Subscribers())
}

func TestDownloadNotStarted(t *testing.T) {
	fake := newFakeClient(t)
	fake.RejectDownload = true

	_, err := NewOrchestrator(fake).Download(testContext(t), testItem)
	assert.ErrorIs(t, err, ErrDownloadNotStarted)
	assert.Equal(t, 0, fake.Subscribers())
}

func TestDownloadWaitIsCancellable(t *testing.T) {
	client := &silentClient{steamtest.New()}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewOrchestrator(client).Download(ctx, testItem)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestInstallPath(t *testing.T) {
	fake := newFakeClient(t)
	o := NewOrchestrator(fake)

	_, err := o.InstallPath(testItem)
	assert.ErrorIs(t, err, ErrNoInstallInfo)

	fake.Installs[testItem] = steam.InstallInfo{Folder: "/steam/content/2785198049"}
	info, err := o.InstallPath(testItem)
	require.NoError(t, err)
	assert.Equal(t, "/steam/content/2785198049", info.Folder)
}

// silentClient accepts downloads but never reports completion.
type silentClient struct {
	*steamtest.Client
}

func (s *silentClient) DownloadItem(steam.PublishedFileID, bool) bool {
	return true
}
