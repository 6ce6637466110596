package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// flexUint accepts both JSON numbers and numeric strings; the Web API uses
// either depending on the endpoint.
type flexUint uint64

func (f *flexUint) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid numeric value %s: %w", data, err)
	}
	*f = flexUint(v)
	return nil
}

type publishedFileDetails struct {
	PublishedFileID flexUint `json:"publishedfileid"`
	Result          int      `json:"result"`
	Creator         flexUint `json:"creator"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	FileDescription string   `json:"file_description"`
	FileSize        flexUint `json:"file_size"`
	FileURL         string   `json:"file_url"`
	TimeUpdated     int64    `json:"time_updated"`
	VoteData        *struct {
		VotesUp   uint32 `json:"votes_up"`
		VotesDown uint32 `json:"votes_down"`
	} `json:"vote_data"`
}

type detailsResponse struct {
	Response struct {
		PublishedFileDetails []publishedFileDetails `json:"publishedfiledetails"`
	} `json:"response"`
}

func (d publishedFileDetails) toItemDetails() ItemDetails {
	desc := d.Description
	if desc == "" {
		desc = d.FileDescription
	}
	item := ItemDetails{
		PublishedFileID: PublishedFileID(d.PublishedFileID),
		Result:          Result(d.Result),
		Title:           d.Title,
		Description:     desc,
		Owner:           SteamID(d.Creator),
		FileSize:        uint64(d.FileSize),
		FileURL:         d.FileURL,
	}
	if d.TimeUpdated > 0 {
		item.TimeUpdated = time.Unix(d.TimeUpdated, 0)
	}
	if d.VoteData != nil {
		item.VotesUp = d.VoteData.VotesUp
		item.VotesDown = d.VoteData.VotesDown
	}
	return item
}

// fetchDetails uses IPublishedFileService/GetDetails when an API key is
// configured, since only that endpoint reports votes. Without a key it falls
// back to the keyless ISteamRemoteStorage endpoint.
func (b *Backend) fetchDetails(ctx context.Context, ids []PublishedFileID) ([]ItemDetails, error) {
	var req *http.Request
	var err error
	if b.cfg.APIKey != "" {
		req, err = b.getDetailsRequest(ctx, ids)
	} else {
		req, err = b.remoteStorageRequest(ctx, ids)
	}
	if err != nil {
		return nil, fmt.Errorf("error creating API request: %w", err)
	}
	b.log.Debug().Str("op", "steam/webapi").Msgf("requesting details from %s", req.URL.Path)
	resp, err := b.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making API request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status code: %d", resp.StatusCode)
	}
	var body detailsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("error decoding API response: %w", err)
	}
	details := make([]ItemDetails, 0, len(body.Response.PublishedFileDetails))
	for _, d := range body.Response.PublishedFileDetails {
		details = append(details, d.toItemDetails())
	}
	return details, nil
}

func (b *Backend) getDetailsRequest(ctx context.Context, ids []PublishedFileID) (*http.Request, error) {
	q := url.Values{}
	q.Set("key", b.cfg.APIKey)
	q.Set("includevotes", "true")
	q.Set("short_description", "false")
	for i, id := range ids {
		q.Set(fmt.Sprintf("publishedfileids[%d]", i), id.String())
	}
	endpoint := strings.TrimRight(b.cfg.WebAPIBase, "/") + "/IPublishedFileService/GetDetails/v1/?" + q.Encode()
	return http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
}

func (b *Backend) remoteStorageRequest(ctx context.Context, ids []PublishedFileID) (*http.Request, error) {
	form := url.Values{}
	form.Set("itemcount", strconv.Itoa(len(ids)))
	for i, id := range ids {
		form.Set(fmt.Sprintf("publishedfileids[%d]", i), id.String())
	}
	endpoint := strings.TrimRight(b.cfg.WebAPIBase, "/") + "/ISteamRemoteStorage/GetPublishedFileDetails/v1/"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req, nil
}
