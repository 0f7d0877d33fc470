package server

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"impractical.co/lantern/internal/content"
	"impractical.co/lantern/internal/pages"
	"impractical.co/lantern/internal/session"
)

// fakeAPI is a Content API that answers each path with a canned body.
type fakeAPI struct {
	mu        sync.Mutex
	responses map[string]fakeResponse
	calls     map[string]int
}

type fakeResponse struct {
	status int
	body   string
}

func (f *fakeAPI) set(path string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[path] = fakeResponse{status: status, body: body}
}

func (f *fakeAPI) count(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method+" "+path]
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.calls[r.Method+" "+r.URL.Path]++
	res, ok := f.responses[r.URL.Path]
	f.mu.Unlock()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"success":false,"message":"Not found"}`)
		return
	}
	w.WriteHeader(res.status)
	_, _ = io.WriteString(w, res.body)
}

type testEnv struct {
	api      *fakeAPI
	sessions *session.Store
	url      string
	client   *http.Client
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithSessions(t, nil)
}

// newTestEnvWithSessions is newTestEnv, but the server uses the store wrap
// returns. env.sessions is always the underlying store.
func newTestEnvWithSessions(t *testing.T, wrap func(*session.Store) SessionStore) *testEnv {
	t.Helper()
	api := &fakeAPI{responses: map[string]fakeResponse{}, calls: map[string]int{}}
	apiSrv := httptest.NewServer(api)
	t.Cleanup(apiSrv.Close)

	client, err := content.NewClient(apiSrv.URL)
	require.NoError(t, err)

	store, err := session.Open(filepath.Join(t.TempDir(), "sessions.db"), time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	var sessions SessionStore = store
	if wrap != nil {
		sessions = wrap(store)
	}
	srv := httptest.NewServer(New(Options{
		Site:     pages.NewSite("Lantern", nil),
		Client:   client,
		Sessions: sessions,
	}).Handler())
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &testEnv{
		api:      api,
		sessions: store,
		url:      srv.URL,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (e *testEnv) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := e.client.Get(e.url + path)
	require.NoError(t, err)
	return resp, readBody(t, resp)
}

func (e *testEnv) post(t *testing.T, path string, values url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := e.client.PostForm(e.url+path, values)
	require.NoError(t, err)
	return resp, readBody(t, resp)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

// visibleText returns the text of the page body with whitespace collapsed.
func visibleText(t *testing.T, page string) string {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(page))
	require.NoError(t, err)
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style" || n.Data == "head") {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return strings.Join(strings.Fields(b.String()), " ")
}

func TestDynamicPage(t *testing.T) {
	env := newTestEnv(t)
	env.api.set(content.EndpointAdultEducationPage, http.StatusOK,
		`{"success":true,"data":{"title":"Learning for Life","objectives":["Literacy"]}}`)

	resp, body := env.get(t, "/programs/adult-education")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	text := visibleText(t, body)
	assert.Contains(t, text, "Learning for Life")
	assert.Contains(t, text, "Literacy")
	assert.Equal(t, 1, env.api.count(http.MethodGet, content.EndpointAdultEducationPage))
}

func TestDynamicPageIsRepeatable(t *testing.T) {
	env := newTestEnv(t)
	env.api.set(content.EndpointLeadership, http.StatusOK,
		`{"success":true,"data":[{"name":"Ada","role":"Chair"}]}`)

	_, first := env.get(t, "/about/leadership")
	_, second := env.get(t, "/about/leadership")
	assert.Equal(t, first, second)
	assert.Equal(t, 2, env.api.count(http.MethodGet, content.EndpointLeadership), "content is fetched on every view")
}

func TestDynamicPageFailure(t *testing.T) {
	t.Run("reported by the API", func(t *testing.T) {
		env := newTestEnv(t)
		env.api.set(content.EndpointIntroductionPage, http.StatusOK,
			`{"success":false,"message":"Introduction page not found"}`)

		resp, body := env.get(t, "/about/introduction")
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
		assert.Contains(t, visibleText(t, body), "Introduction page not found")
		assert.Equal(t, 1, env.api.count(http.MethodGet, content.EndpointIntroductionPage), "no retries")
	})

	t.Run("server error", func(t *testing.T) {
		env := newTestEnv(t)
		env.api.set(content.EndpointNews, http.StatusInternalServerError, ``)

		resp, body := env.get(t, "/news")
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
		assert.Contains(t, visibleText(t, body), pages.FailureMessage)
		assert.Equal(t, 1, env.api.count(http.MethodGet, content.EndpointNews))
	})
}

func TestPartnerDetail(t *testing.T) {
	env := newTestEnv(t)
	env.api.set(content.EndpointPartnerInstitutions, http.StatusOK,
		`{"success":true,"data":[{"name":"Lakeside Community College","country":"Kenya"},{"name":"Hill School","slug":"hill"}]}`)

	resp, body := env.get(t, "/partners/global/lakeside-community-college")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, visibleText(t, body), "Lakeside Community College")
	assert.Contains(t, visibleText(t, body), "Kenya")

	resp, body = env.get(t, "/partners/global/hill")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, visibleText(t, body), "Hill School")

	resp, body = env.get(t, "/partners/global/nowhere")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, visibleText(t, body), "Page not found")
}

// partnerLinks returns every partner detail href on page.
func partnerLinks(t *testing.T, page string) []string {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(page))
	require.NoError(t, err)
	var links []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key == "href" && strings.HasPrefix(attr.Val, "/partners/global/") {
					links = append(links, attr.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return links
}

func TestPartnerLinksWithNonASCIISlugs(t *testing.T) {
	env := newTestEnv(t)
	env.api.set(content.EndpointPartnerInstitutions, http.StatusOK,
		`{"success":true,"data":[{"name":"École Normale"},{"name":"Universidade de São Paulo","slug":"São-Paulo"}]}`)

	resp, body := env.get(t, "/partners/global")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	links := partnerLinks(t, body)
	require.Len(t, links, 2)

	for link, want := range map[string]string{
		links[0]: "École Normale",
		links[1]: "Universidade de São Paulo",
	} {
		resp, body := env.get(t, link)
		assert.Equal(t, http.StatusOK, resp.StatusCode, link)
		assert.Contains(t, visibleText(t, body), want, link)
	}
}

func TestStaticPages(t *testing.T) {
	env := newTestEnv(t)
	for path, want := range map[string]string{
		"/about":    "Who we are",
		"/programs": "Adult Education",
		"/partners": "Global partners",
		"/login":    "Log in",
	} {
		resp, body := env.get(t, path)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Contains(t, visibleText(t, body), want, path)
	}

	resp, body := env.get(t, "/no/such/page")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, visibleText(t, body), "Page not found")
}

func TestStaticFilesAndHealth(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.get(t, "/static/site.css")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/css")
	assert.Contains(t, body, ".hero")

	resp, body = env.get(t, "/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body)
}
