package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, contentType, body string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGet_Success(t *testing.T) {
	srv := serve(t, "text/html", "<html><body><h1>Data Analyst</h1></body></html>", http.StatusOK)

	page, err := New(Options{AllowPrivateNetworks: true}).Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, srv.URL, page.URL)
	assert.Contains(t, page.HTML, "<h1>Data Analyst</h1>")
	assert.Equal(t, http.StatusOK, page.StatusCode)
	assert.Equal(t, PlatformUnknown, page.Platform)
}

func TestGet_InvalidURL(t *testing.T) {
	for _, u := range []string{"not-a-url", "ftp://example.com/job", "file:///etc/passwd"} {
		_, err := New(Options{AllowPrivateNetworks: true}).Get(context.Background(), u)
		var fetchErr *Error
		require.ErrorAs(t, err, &fetchErr, u)
		assert.Contains(t, err.Error(), "invalid URL")
	}
}

func TestGet_HTTPError(t *testing.T) {
	srv := serve(t, "text/html", "gone", http.StatusNotFound)

	page, err := New(Options{AllowPrivateNetworks: true}).Get(context.Background(), srv.URL)
	require.Error(t, err)
	require.NotNil(t, page)
	assert.Equal(t, http.StatusNotFound, page.StatusCode)
	assert.Contains(t, err.Error(), "404")
}

func TestGet_MaxBytes(t *testing.T) {
	srv := serve(t, "text/plain", strings.Repeat("a", 4096), http.StatusOK)

	page, err := New(Options{MaxBytes: 100, AllowPrivateNetworks: true}).Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, page.HTML, 100)
}

func TestJobPosting_ExtractsDescription(t *testing.T) {
	html := `<html><body>
		<nav>Jobs Home</nav>
		<div class="job-description">
			<h2>Data Analyst</h2>
			<ul><li>SQL and Python</li><li>Build Tableau dashboards</li></ul>
		</div>
		<form id="application-form">Upload your resume</form>
		<footer>Copyright</footer>
	</body></html>`
	srv := serve(t, "text/html; charset=utf-8", html, http.StatusOK)

	page, err := New(Options{AllowPrivateNetworks: true}).JobPosting(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Data Analyst\nSQL and Python\nBuild Tableau dashboards", page.Text)
	assert.False(t, page.Rendered)
}

func TestJobPosting_PlainText(t *testing.T) {
	srv := serve(t, "text/plain", "  Senior Engineer \n\n  Go,   Kubernetes  \n", http.StatusOK)

	page, err := New(Options{AllowPrivateNetworks: true}).JobPosting(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Senior Engineer\nGo, Kubernetes", page.Text)
}

func TestJobPosting_BrowserFallback(t *testing.T) {
	srv := serve(t, "text/html", `<html><body><div id="root"></div></body></html>`, http.StatusOK)

	f := New(Options{Browser: true, AllowPrivateNetworks: true})
	f.render = func(_ context.Context, _ string) (string, error) {
		return `<html><body><main><p>` + strings.Repeat("Rendered requirement. ", 40) + `</p></main></body></html>`, nil
	}

	page, err := f.JobPosting(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.True(t, page.Rendered)
	assert.True(t, strings.HasPrefix(page.Text, "Rendered requirement."))
}

func TestJobPosting_BrowserFailureKeepsStaticText(t *testing.T) {
	srv := serve(t, "text/html", `<html><body><main>Short posting</main></body></html>`, http.StatusOK)

	f := New(Options{Browser: true, AllowPrivateNetworks: true})
	f.render = func(_ context.Context, _ string) (string, error) {
		return "", errors.New("chrome not installed")
	}

	page, err := f.JobPosting(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.False(t, page.Rendered)
	assert.Equal(t, "Short posting", page.Text)
}

func TestExtractMainText_FallbackToBody(t *testing.T) {
	text, err := ExtractMainText(`<html><body><script>x()</script><p>Hello</p></body></html>`, []string{".missing"})
	require.NoError(t, err)
	assert.Equal(t, "Hello", text)
}

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser("   tiny   "))
	assert.False(t, ShouldUseBrowser(strings.Repeat("x", MinContentLength)))
}
