package httpserver_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"postboard/adapters/httpserver"
	"postboard/domain/services/memory"
	"postboard/specifications"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSeededServer(t *testing.T) *httptest.Server {
	t.Helper()

	storage := memory.NewStorage()
	for _, p := range [][2]string{{"Hello", "First post"}, {"Another", "Second post"}} {
		_, err := storage.StorePost(p[0], p[1])
		require.NoError(t, err)
	}

	srv := httptest.NewServer(httpserver.NewServer(storage, zap.NewNop()))
	t.Cleanup(srv.Close)
	return srv
}

func TestSpecifications(t *testing.T) {
	srv := newSeededServer(t)
	driver := &httpserver.Driver{
		BaseURL: srv.URL,
		Client:  srv.Client(),
	}

	t.Run("creating a post", func(t *testing.T) {
		specifications.CreatingAPostSpecification(t, driver)
	})
	t.Run("rejecting an incomplete post", func(t *testing.T) {
		specifications.RejectingAnIncompletePostSpecification(t, driver)
	})
	t.Run("listing posts", func(t *testing.T) {
		specifications.ListingPostsSpecification(t, driver)
	})
	t.Run("searching posts", func(t *testing.T) {
		specifications.SearchingPostsSpecification(t, driver)
	})
	t.Run("editing a post", func(t *testing.T) {
		specifications.EditingAPostSpecification(t, driver)
	})
	t.Run("deleting a post", func(t *testing.T) {
		specifications.DeletingAPostSpecification(t, driver)
	})
}

func TestGoldenResponses(t *testing.T) {
	cases := []struct {
		name string
		path string
	}{
		{"list_posts_sorted_by_title", "/posts?sort=title"},
		{"search_posts_by_title", "/posts/search?title=ELL"},
		{"search_posts_without_query", "/posts/search"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			srv := newSeededServer(t)

			res, err := srv.Client().Get(srv.URL + c.path)
			require.NoError(t, err)
			defer res.Body.Close()
			require.Equal(t, http.StatusOK, res.StatusCode)

			body, err := io.ReadAll(res.Body)
			require.NoError(t, err)

			g := goldie.New(t,
				goldie.WithFixtureDir("testdata/golden"),
				goldie.WithNameSuffix(".golden"),
			)
			g.Assert(t, c.name, body)
		})
	}
}

func TestParseArgs(t *testing.T) {
	t.Run("trims names and values", func(t *testing.T) {
		args, err := httpserver.ParseArgs("title: Hello", " content :a: b ")

		require.NoError(t, err)
		require.Equal(t, httpserver.Args{"title": "Hello", "content": "a: b"}, args)
		require.Equal(t, map[string]any{"title": "Hello"}, args.Pick("title", "sort"))
	})

	t.Run("rejects malformed args", func(t *testing.T) {
		_, err := httpserver.ParseArgs("title Hello")

		require.Error(t, err)
	})

	t.Run("driver actions report malformed args", func(t *testing.T) {
		driver := &httpserver.Driver{BaseURL: "http://127.0.0.1:0", Client: http.DefaultClient}

		_, err := driver.CreateAPost("title Hello", "content: x")

		require.Error(t, err)
	})
}
