package steam

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListApps_ParsesPage(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/IStoreService/GetAppList/v1/", r.URL.Path)
		gotQuery = map[string]string{
			"key":         r.URL.Query().Get("key"),
			"max_results": r.URL.Query().Get("max_results"),
			"last_appid":  r.URL.Query().Get("last_appid"),
		}
		w.Write([]byte(`{"response":{"apps":[{"appid":10,"name":"A"},{"appid":20,"name":"B"}],"have_more_results":true,"last_appid":20}}`))
	}))
	defer server.Close()

	client := NewClient("test-key", WithAPIBaseURL(server.URL))
	page, err := client.ListApps(context.Background(), 0, 30)
	require.NoError(t, err)
	assert.Equal(t, "test-key", gotQuery["key"])
	assert.Equal(t, "30", gotQuery["max_results"])
	assert.Equal(t, "0", gotQuery["last_appid"])
	require.Len(t, page.Apps, 2)
	assert.Equal(t, int64(10), page.Apps[0].AppID)
	assert.True(t, page.HaveMoreResults)
	assert.Equal(t, int64(20), page.LastAppID)
}

func TestListApps_MissingResponseFieldIsMalformed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"unexpected":true}`))
	}))
	defer server.Close()

	client := NewClient("k", WithAPIBaseURL(server.URL))
	_, err := client.ListApps(context.Background(), 0, 30)
	require.ErrorIs(t, err, ErrUpstreamMalformed)
}

func TestListApps_NonSuccessStatusIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient("k", WithAPIBaseURL(server.URL))
	_, err := client.ListApps(context.Background(), 0, 30)
	require.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestAppDetails_NormalizesRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/appdetails", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		assert.NotEmpty(t, r.Header.Get("Referer"))
		w.Write([]byte(`{"440":{"success":true,"data":{
			"name":"Team Fortress 2",
			"header_image":"https://img/header.jpg",
			"screenshots":[{"path_full":"https://img/s1.jpg"},{"path_full":"https://img/s2.jpg"}],
			"price_overview":{"currency":"USD","final":0,"final_formatted":"Free"},
			"is_free":true,
			"required_age":"0",
			"categories":[{"description":"Multi-player"}],
			"platforms":{"windows":true,"mac":true,"linux":true}
		}}}`))
	}))
	defer server.Close()

	client := NewClient("k", WithStoreBaseURL(server.URL))
	detail, err := client.AppDetails(context.Background(), 440)
	require.NoError(t, err)
	require.NotNil(t, detail)
	assert.Equal(t, "Team Fortress 2", detail.Name)
	assert.Equal(t, "https://img/header.jpg", detail.Image())
	assert.Equal(t, []string{"https://img/s1.jpg", "https://img/s2.jpg"}, detail.Screenshots)
	assert.True(t, detail.Free())
	assert.False(t, detail.AgeRestricted())
	assert.True(t, detail.Platforms["linux"])
}

func TestAppDetails_AbsentUpstreamRecordIsNil(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"99999":{"success":false}}`))
	}))
	defer server.Close()

	client := NewClient("k", WithStoreBaseURL(server.URL))
	detail, err := client.AppDetails(context.Background(), 99999)
	require.NoError(t, err)
	assert.Nil(t, detail)
}

func TestAppDetails_AgeRestriction(t *testing.T) {
	cases := []struct {
		name string
		body string
		want bool
	}{
		{"required age numeric", `{"1":{"success":true,"data":{"name":"X","required_age":18}}}`, true},
		{"required age string", `{"1":{"success":true,"data":{"name":"X","required_age":"18"}}}`, true},
		{"mature category", `{"1":{"success":true,"data":{"name":"X","required_age":0,"categories":[{"description":"Mature Content"}]}}}`, true},
		{"unrestricted", `{"1":{"success":true,"data":{"name":"X","required_age":0}}}`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := NewClient("k", WithStoreBaseURL(server.URL))
			detail, err := client.AppDetails(context.Background(), 1)
			require.NoError(t, err)
			require.NotNil(t, detail)
			assert.Equal(t, tc.want, detail.AgeRestricted())
		})
	}
}

func TestAppDetails_InvalidJSONIsMalformed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>blocked</html>`))
	}))
	defer server.Close()

	client := NewClient("k", WithStoreBaseURL(server.URL))
	_, err := client.AppDetails(context.Background(), 1)
	require.ErrorIs(t, err, ErrUpstreamMalformed)
}
