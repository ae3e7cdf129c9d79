//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/gamefolio/gamefolio-api/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type gamePayload struct {
	ID         string `json:"id"`
	SteamAppID int64  `json:"steamAppId"`
	Name       string `json:"name"`
	Image      string `json:"image"`
	IsFree     bool   `json:"isFree"`
}

type gameWithDetail struct {
	Game *gamePayload `json:"game"`
}

type problemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

type apiError struct {
	status int
	title  string
	detail string
}

func (e apiError) Error() string {
	msg := e.title
	if msg == "" {
		msg = "api error"
	}
	if e.detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.detail)
	}
	return fmt.Sprintf("%s (status %d)", msg, e.status)
}

func (e apiError) Status() int {
	return e.status
}

func TestGamePortalContract(t *testing.T) {
	t.Helper()
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	gameBodyMatcher := matchers.Map{
		"id":         matchers.Like("2d6f1c0e-8f90-4f2a-9d7e-700000000440"),
		"steamAppId": matchers.Like(pacttest.ExistingAppID),
		"name":       matchers.Like("Team Fortress 2"),
	}
	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")

	pact.AddInteraction().
		Given(pacttest.StateCatalogBaseline).
		UponReceiving("a request to materialize a game from the store").
		WithRequest("POST", "/games/fetch", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.Map{"steamAppId": matchers.Like(pacttest.ExistingAppID)})
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(gameBodyMatcher)
		})

	pact.AddInteraction().
		Given(pacttest.StateGameExists).
		UponReceiving("a request to fetch a cached game by steam app id").
		WithRequest("GET", fmt.Sprintf("/games/steam/%d", pacttest.ExistingAppID)).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{"game": gameBodyMatcher})
		})

	pact.AddInteraction().
		Given(pacttest.StateAppUnknown).
		UponReceiving("a request to materialize an unknown steam app").
		WithRequest("POST", "/games/fetch", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.Map{"steamAppId": matchers.Like(pacttest.UnknownAppID)})
		}).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/not-found"),
				"title":  matchers.S("Resource Not Found"),
				"status": matchers.Like(http.StatusNotFound),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newGameClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		created, err := client.FetchGame(ctx, pacttest.ExistingAppID)
		if err != nil {
			return fmt.Errorf("fetch game: %w", err)
		}
		if created == nil || created.SteamAppID != pacttest.ExistingAppID {
			return fmt.Errorf("expected steam app id %d, got %+v", pacttest.ExistingAppID, created)
		}

		fetched, err := client.GetGame(ctx, pacttest.ExistingAppID)
		if err != nil {
			return fmt.Errorf("get game: %w", err)
		}
		if fetched == nil || fetched.Game == nil || fetched.Game.SteamAppID != pacttest.ExistingAppID {
			return fmt.Errorf("expected cached game %d, got %+v", pacttest.ExistingAppID, fetched)
		}

		if _, err := client.FetchGame(ctx, pacttest.UnknownAppID); err == nil {
			return fmt.Errorf("expected 404 for app %d", pacttest.UnknownAppID)
		} else if apiErr, ok := err.(apiError); ok && apiErr.Status() != http.StatusNotFound {
			return fmt.Errorf("expected 404, got %d", apiErr.Status())
		}

		return nil
	})
	require.NoError(t, err)
}

type gameClient struct {
	baseURL    string
	httpClient *http.Client
}

func newGameClient(config pactconsumer.MockServerConfig) *gameClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	client := &http.Client{Transport: transport, Timeout: 10 * time.Second}
	return &gameClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: client,
	}
}

func (c *gameClient) FetchGame(ctx context.Context, steamAppID int64) (*gamePayload, error) {
	body, err := json.Marshal(map[string]int64{"steamAppId": steamAppID})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/games/fetch", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return nil, decodeAPIError(res)
	}

	var payload gamePayload
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *gameClient) GetGame(ctx context.Context, steamAppID int64) (*gameWithDetail, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/games/steam/%d", c.baseURL, steamAppID), nil)
	if err != nil {
		return nil, err
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return nil, decodeAPIError(res)
	}

	var payload gameWithDetail
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func decodeAPIError(res *http.Response) error {
	var problem problemDetail
	_ = json.NewDecoder(res.Body).Decode(&problem)
	status := problem.Status
	if status == 0 {
		status = res.StatusCode
	}
	return apiError{
		status: status,
		title:  problem.Title,
		detail: problem.Detail,
	}
}
