package steam

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// fetchPersonaName scrapes the display name from the public community
// profile page.
func (b *Backend) fetchPersonaName(ctx context.Context, id SteamID) (string, error) {
	profileURL := fmt.Sprintf("%s/profiles/%s", strings.TrimRight(b.cfg.CommunityBase, "/"), id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, profileURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	resp, err := b.cfg.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch profile: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch profile: status %d", resp.StatusCode)
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse profile page: %w", err)
	}
	return personaNameFromDocument(doc)
}

func personaNameFromDocument(doc *goquery.Document) (string, error) {
	name := strings.TrimSpace(doc.Find(".profile_header .actual_persona_name").First().Text())
	if name == "" {
		name = strings.TrimSpace(doc.Find(".actual_persona_name").First().Text())
	}
	if name == "" {
		return "", fmt.Errorf("persona name not found on profile page")
	}
	return name, nil
}
