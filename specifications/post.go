package specifications

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/google/uuid"
)

type CreatePostAction interface {
	CreateAPost(args ...string) (string, error)
}

type ListPostsAction interface {
	ListPosts(args ...string) (string, error)
}

type SearchPostsAction interface {
	SearchPosts(args ...string) (string, error)
}

type EditPostAction interface {
	EditAPost(id string, args ...string) (string, error)
}

type DeletePostAction interface {
	DeleteAPost(id string) (string, error)
}

type PostDriver interface {
	CreatePostAction
	ListPostsAction
	SearchPostsAction
	EditPostAction
	DeletePostAction
}

func CreatingAPostSpecification(t testing.TB, driver CreatePostAction) {
	got, err := driver.CreateAPost("title: Test Post", "content: Some content")
	if err != nil {
		t.Fatalf("failed specification test, %v", err)
	}
	want := map[string]any{
		"title":   "Test Post",
		"content": "Some content",
	}
	data := decodeObject(t, got)
	assertJSONHasNoError(t, data)
	assertPostsCanBeTheSame(t, data, want)
	assertHasPositiveID(t, data)
}

func RejectingAnIncompletePostSpecification(t testing.TB, driver CreatePostAction) {
	got, err := driver.CreateAPost("title: Test Post", "content: ")
	if err != nil {
		t.Fatalf("failed specification test, %v", err)
	}
	assertJSONHasError(t, decodeObject(t, got))
}

func ListingPostsSpecification(t testing.TB, driver PostDriver) {
	token := uniqueToken()
	mustCreate(t, driver, "zz "+token, "listed last")
	mustCreate(t, driver, "AA "+token, "listed first")

	got, err := driver.ListPosts()
	if err != nil {
		t.Fatalf("failed specification test, %v", err)
	}
	all := decodeList(t, got)
	assertContainsTitle(t, all, "zz "+token)
	assertContainsTitle(t, all, "AA "+token)

	got, err = driver.ListPosts("sort: title", "direction: desc")
	if err != nil {
		t.Fatalf("failed specification test, %v", err)
	}
	sorted := decodeList(t, got)
	if len(sorted) != len(all) {
		t.Fatalf("sorted listing has %d posts, but unsorted has %d", len(sorted), len(all))
	}
	for i := 1; i < len(sorted); i++ {
		prev := strings.ToLower(fmt.Sprint(sorted[i-1]["title"]))
		curr := strings.ToLower(fmt.Sprint(sorted[i]["title"]))
		if prev < curr {
			t.Fatalf("posts not sorted descending by title: %q before %q", prev, curr)
		}
	}
}

func SearchingPostsSpecification(t testing.TB, driver PostDriver) {
	token := uniqueToken()
	mustCreate(t, driver, "Needle "+token, "haystack")

	got, err := driver.SearchPosts("title: " + strings.ToUpper(token))
	if err != nil {
		t.Fatalf("failed specification test, %v", err)
	}
	found := decodeList(t, got)
	if len(found) != 1 {
		t.Fatalf("expected exactly one post matching %q, but got %d", token, len(found))
	}
	assertPostsCanBeTheSame(t, found[0], map[string]any{"title": "Needle " + token})

	got, err = driver.SearchPosts()
	if err != nil {
		t.Fatalf("failed specification test, %v", err)
	}
	if empty := decodeList(t, got); len(empty) != 0 {
		t.Fatalf("expected no posts for an empty search, but got %d", len(empty))
	}
}

func EditingAPostSpecification(t testing.TB, driver PostDriver) {
	created := mustCreate(t, driver, "Before", "Unchanged content")
	id := fmt.Sprint(created["id"])

	got, err := driver.EditAPost(id, "title: After")
	if err != nil {
		t.Fatalf("failed specification test, %v", err)
	}
	edited := decodeObject(t, got)
	assertJSONHasNoError(t, edited)
	assertPostsCanBeTheSame(t, edited, map[string]any{
		"id":      created["id"],
		"title":   "After",
		"content": "Unchanged content",
	})

	got, err = driver.EditAPost("0", "title: After")
	if err != nil {
		t.Fatalf("failed specification test, %v", err)
	}
	assertJSONHasError(t, decodeObject(t, got))
}

func DeletingAPostSpecification(t testing.TB, driver PostDriver) {
	created := mustCreate(t, driver, "Doomed", "Soon gone")
	id := fmt.Sprint(created["id"])

	got, err := driver.DeleteAPost(id)
	if err != nil {
		t.Fatalf("failed specification test, %v", err)
	}
	deleted := decodeObject(t, got)
	assertJSONHasNoError(t, deleted)
	assertPostsCanBeTheSame(t, deleted, created)

	got, err = driver.ListPosts()
	if err != nil {
		t.Fatalf("failed specification test, %v", err)
	}
	for _, p := range decodeList(t, got) {
		if reflect.DeepEqual(p["id"], created["id"]) {
			t.Fatalf("deleted post %s is still listed", id)
		}
	}

	got, err = driver.DeleteAPost(id)
	if err != nil {
		t.Fatalf("failed specification test, %v", err)
	}
	assertJSONHasError(t, decodeObject(t, got))
}

func uniqueToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

func mustCreate(t testing.TB, driver CreatePostAction, title, content string) map[string]any {
	t.Helper()

	got, err := driver.CreateAPost("title: "+title, "content: "+content)
	if err != nil {
		t.Fatalf("unable to create post, %v", err)
	}
	data := decodeObject(t, got)
	assertJSONHasNoError(t, data)
	return data
}

func decodeObject(t testing.TB, payload string) map[string]any {
	t.Helper()

	var v map[string]any
	if err := json.NewDecoder(strings.NewReader(payload)).Decode(&v); err != nil {
		t.Fatalf("unable to decode response payload %q", payload)
	}
	return v
}

func decodeList(t testing.TB, payload string) []map[string]any {
	t.Helper()

	var v []map[string]any
	if err := json.NewDecoder(strings.NewReader(payload)).Decode(&v); err != nil {
		t.Fatalf("unable to decode response payload %q", payload)
	}
	return v
}

func assertJSONHasNoError(t testing.TB, got map[string]any) {
	t.Helper()

	if err, ok := got["error"]; ok {
		t.Fatalf("expected no error, but got %v", err)
	}
}

func assertJSONHasError(t testing.TB, got map[string]any) {
	t.Helper()

	if _, ok := got["error"]; !ok {
		t.Fatalf("expected an error, but got %v", got)
	}
}

func assertHasPositiveID(t testing.TB, got map[string]any) {
	t.Helper()

	id, ok := got["id"].(float64)
	if !ok || id < 1 {
		t.Fatalf("expected a positive id, but got %v", got["id"])
	}
}

func assertContainsTitle(t testing.TB, posts []map[string]any, title string) {
	t.Helper()

	for _, p := range posts {
		if p["title"] == title {
			return
		}
	}
	t.Fatalf("expected a post titled %q among %d posts", title, len(posts))
}

func b_in_a(a, b map[string]any) bool {

	for ak, av := range a {
		bv, ok := b[ak]
		if !ok {
			continue
		}
		if !reflect.DeepEqual(av, bv) {
			return false
		}
	}
	return true
}

func assertPostsCanBeTheSame(t testing.TB, got, want map[string]any) {
	t.Helper()

	fn := func(p map[string]any) string {
		return fmt.Sprintf("{id=%v, title=%v, content=%v}", p["id"], p["title"], p["content"])
	}

	if !b_in_a(got, want) {
		t.Fatalf("got post %s, but want %s", fn(got), fn(want))
	}
}
