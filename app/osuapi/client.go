package osuapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/osukit/diffcalc/app/beatmap"
	"github.com/osukit/diffcalc/app/config"
)

const (
	tokenURL    = "https://osu.ppy.sh/oauth/token"
	downloadURL = "https://osu.ppy.sh/osu/"

	requestTimeout = 30 * time.Second
)

var ErrNoCredentials = errors.New("remote lookup needs OSU_CLIENT_ID and OSU_CLIENT_SECRET to be set")

// Client downloads beatmaps from the osu! website, authenticating through
// the v2 API client-credentials flow.
type Client struct {
	httpClient *http.Client
}

func NewClient(cfg config.API) (*Client, error) {
	if cfg.ClientID == 0 || cfg.ClientSecret == "" {
		return nil, ErrNoCredentials
	}

	oauthCfg := &clientcredentials.Config{
		ClientID:     strconv.Itoa(cfg.ClientID),
		ClientSecret: cfg.ClientSecret,
		TokenURL:     tokenURL,
		Scopes:       []string{"public"},
	}

	httpClient := oauthCfg.Client(context.Background())
	httpClient.Timeout = requestTimeout

	return &Client{httpClient: httpClient}, nil
}

// LookupBeatmap fetches a single beatmap by its id and parses it.
func (client *Client) LookupBeatmap(id int64) (*beatmap.Beatmap, error) {
	resp, err := client.httpClient.Get(fmt.Sprintf("%s%d", downloadURL, id))
	if err != nil {
		return nil, fmt.Errorf("failed to download beatmap %d: %w", id, err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download beatmap %d: %s", id, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 32*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("failed to download beatmap %d: %w", id, err)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("beatmap %d does not exist", id)
	}

	bMap, err := beatmap.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("beatmap %d: %w", id, err)
	}

	bMap.Path = fmt.Sprintf("%s%d", downloadURL, id)
	if bMap.ID == 0 {
		bMap.ID = id
	}

	return bMap, nil
}
