package main

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"strconv"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testAdminPassword = "greece"

var testServer *httptest.Server

func TestMain(m *testing.M) {
	log.SetLevel(log.ErrorLevel)

	uploadsDir, err := os.MkdirTemp("", "sealife-uploads")
	if err != nil {
		panic(err)
	}
	viper.Set("uploads.dir", uploadsDir)

	initDatabase("file::memory:?cache=shared")

	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	if err := db.Create(&Admin{Username: "admin", PasswordHash: string(hash)}).Error; err != nil {
		panic(err)
	}

	testServer = httptest.NewServer(initRouter())

	code := m.Run()

	testServer.Close()
	os.RemoveAll(uploadsDir)
	os.Exit(code)
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

// newNoRedirectClient returns a client that surfaces redirects instead of
// following them.
func newNoRedirectClient(t *testing.T) *http.Client {
	t.Helper()
	client := newClient(t)
	client.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return client
}

func loginClient(t *testing.T) *http.Client {
	t.Helper()
	client := newClient(t)
	resp, body := postForm(t, client, "/admin/login", url.Values{"password": {testAdminPassword}})
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	return client
}

func get(t *testing.T, client *http.Client, path string) (*http.Response, string) {
	t.Helper()
	resp, err := client.Get(testServer.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func postForm(t *testing.T, client *http.Client, path string, values url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := client.PostForm(testServer.URL+path, values)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func TestBootstrapAdminIsIdempotent(t *testing.T) {
	require.NoError(t, bootstrapAdmin())

	var count int64
	db.Model(&Admin{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestGeneratePassword(t *testing.T) {
	first := generatePassword()
	second := generatePassword()
	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}
