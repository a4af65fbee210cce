// Package places adapts the outbound Places microservice collaborator (§6):
// a plain HTTP GET that returns canonical place records. The agent never
// mutates what comes back from here.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/wayfarer-ai/agent-core/internal/config"
	"github.com/wayfarer-ai/agent-core/internal/domain"
)

type Client struct {
	baseURL       string
	defaultRadius int
	http          *http.Client
}

func New(cfg config.PlacesConfig) *Client {
	return &Client{
		baseURL:       cfg.APIBaseURL,
		defaultRadius: cfg.DefaultRadius,
		http:          &http.Client{Timeout: time.Duration(cfg.APITimeoutMs) * time.Millisecond},
	}
}

type searchResponse struct {
	Places []placeDTO `json:"places"`
}

type placeDTO struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	Lat          float64  `json:"lat"`
	Lon          float64  `json:"lon"`
	Rating       float64  `json:"rating"`
	Categories   []string `json:"categories"`
	OpeningHours []string `json:"opening_hours"`
}

// Search implements GET /places/search?q=…&city=…&radius=… (§6).
func (c *Client) Search(ctx context.Context, query, city string, radiusM int) ([]domain.Place, error) {
	if radiusM <= 0 {
		radiusM = c.defaultRadius
	}

	q := url.Values{}
	q.Set("q", query)
	if city != "" {
		q.Set("city", city)
	}
	q.Set("radius", strconv.Itoa(radiusM))

	reqURL := c.baseURL + "/places/search?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build places request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call places service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("places service returned status %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode places response: %w", err)
	}

	places := make([]domain.Place, 0, len(parsed.Places))
	for _, p := range parsed.Places {
		places = append(places, domain.Place{
			ID:           p.ID,
			Name:         p.Name,
			Address:      p.Address,
			Lat:          p.Lat,
			Lon:          p.Lon,
			Rating:       p.Rating,
			Categories:   p.Categories,
			OpeningHours: p.OpeningHours,
		})
	}
	return places, nil
}
