package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminRequiresLogin(t *testing.T) {
	client := newNoRedirectClient(t)

	for _, path := range []string{"/admin", "/admin/trips", "/admin/contacts"} {
		resp, _ := get(t, client, path)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode, path)
		assert.Equal(t, "/admin/login", resp.Header.Get("Location"), path)
	}
}

func TestAdminLoginWrongPassword(t *testing.T) {
	client := newClient(t)
	resp, body := postForm(t, client, "/admin/login", url.Values{"password": {"atlantic"}})

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "Невірний пароль")
}

func TestAdminLoginAndDashboard(t *testing.T) {
	client := loginClient(t)

	resp, body := get(t, client, "/admin")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Dashboard")

	// The login page bounces authenticated visitors to the dashboard.
	resp, _ = get(t, client, "/admin/login")
	assert.Equal(t, "/admin", resp.Request.URL.Path)
}

func TestAdminLogout(t *testing.T) {
	client := loginClient(t)

	resp, _ := get(t, client, "/admin/logout")
	assert.Equal(t, "/", resp.Request.URL.Path)

	resp, _ = get(t, client, "/admin")
	assert.Equal(t, "/admin/login", resp.Request.URL.Path)
}

func TestAdminTripLifecycle(t *testing.T) {
	client := loginClient(t)

	resp, _ := postForm(t, client, "/admin/trips/add", validTripValues())
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/admin/trips", resp.Request.URL.Path)

	var trip Trip
	require.NoError(t, db.Where("title_en = ?", "Around Lefkada").First(&trip).Error)
	t.Cleanup(func() { db.Unscoped().Delete(&Trip{}, trip.ID) })
	assert.InDelta(t, 1200, trip.Price, 0.001)
	assert.True(t, trip.IsActive)
	assert.Empty(t, trip.Image, "no upload was attached")

	// An edit without a new upload keeps the stored image reference.
	require.NoError(t, db.Model(&trip).UpdateColumn("image", "trip_existing.jpg").Error)
	edited := validTripValues()
	edited.Set("price", "1100")
	resp, _ = postForm(t, client, "/admin/trips/edit/"+itoa(trip.ID), edited)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, db.First(&trip, trip.ID).Error)
	assert.InDelta(t, 1100, trip.Price, 0.001)
	assert.Equal(t, "trip_existing.jpg", trip.Image)

	resp, _ = postForm(t, client, "/admin/trips/delete/"+itoa(trip.ID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Error(t, db.First(&Trip{}, trip.ID).Error)
}

func TestAdminTripAddValidationErrors(t *testing.T) {
	client := loginClient(t)

	resp, body := postForm(t, client, "/admin/trips/add", url.Values{"title_uk": {"Лише одна мова"}})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "title_en")
	assert.Contains(t, body, "start_date")
	assert.Contains(t, body, "price")
}

func TestAdminTripDeleteKeepsContactRequests(t *testing.T) {
	client := loginClient(t)

	trip := createTrip(t, Trip{TitleUK: "Флотилія", TitleEN: "Flotilla", IsActive: true})
	contact := ContactRequest{Name: "Тарас", Message: "Запис на флотилію", TripID: &trip.ID}
	require.NoError(t, db.Create(&contact).Error)
	t.Cleanup(func() { db.Unscoped().Delete(&ContactRequest{}, contact.ID) })

	resp, _ := postForm(t, client, "/admin/trips/delete/"+itoa(trip.ID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var kept ContactRequest
	require.NoError(t, db.First(&kept, contact.ID).Error)
	require.NotNil(t, kept.TripID)
	assert.Equal(t, trip.ID, *kept.TripID)
}

func validBlogValues(titleEN string) url.Values {
	return url.Values{
		"title_uk":     {"Маневри у гавані"},
		"title_en":     {titleEN},
		"content_uk":   {"Швартування, відхід"},
		"content_en":   {"Docking and departure"},
		"is_published": {"on"},
	}
}

func TestAdminBlogSlugLifecycle(t *testing.T) {
	client := loginClient(t)
	t.Cleanup(func() {
		db.Unscoped().Where("slug LIKE ?", "harbour-maneuvers-101%").Delete(&BlogPost{})
	})

	resp, _ := postForm(t, client, "/admin/blog/add", validBlogValues("Harbour Maneuvers 101"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var first BlogPost
	require.NoError(t, db.Where("slug = ?", "harbour-maneuvers-101").First(&first).Error)

	// A second post with the same title gets a suffixed slug.
	resp, _ = postForm(t, client, "/admin/blog/add", validBlogValues("Harbour Maneuvers 101"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var second BlogPost
	require.NoError(t, db.Where("slug = ?", "harbour-maneuvers-101-2").First(&second).Error)

	// Retitling keeps the published URL stable.
	retitled := validBlogValues("Harbour Maneuvers Revisited")
	resp, _ = postForm(t, client, "/admin/blog/edit/"+itoa(first.ID), retitled)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, db.First(&first, first.ID).Error)
	assert.Equal(t, "Harbour Maneuvers Revisited", first.TitleEN)
	assert.Equal(t, "harbour-maneuvers-101", first.Slug)
}

func TestAdminGalleryAddWithoutImage(t *testing.T) {
	client := loginClient(t)

	var before int64
	db.Model(&GalleryItem{}).Count(&before)

	resp, _ := postForm(t, client, "/admin/gallery/add", url.Values{"caption_uk": {"Без фото"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/admin/gallery", resp.Request.URL.Path)

	var after int64
	db.Model(&GalleryItem{}).Count(&after)
	assert.Equal(t, before, after, "no row without a stored image")
}

func TestAdminGalleryAddWithImage(t *testing.T) {
	client := loginClient(t)

	body, contentType := multipartPayload(t, map[string]string{
		"caption_uk": "Пірс на світанку",
		"caption_en": "Pier at dawn",
		"category":   "lifestyle",
		"sort_order": "2",
	}, "pier.jpg", []byte("jpeg bytes"))

	req, err := http.NewRequest(http.MethodPost, testServer.URL+"/admin/gallery/add", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", contentType)

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	_, err = io.Copy(io.Discard, resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var item GalleryItem
	require.NoError(t, db.Where("caption_uk = ?", "Пірс на світанку").First(&item).Error)
	t.Cleanup(func() { db.Unscoped().Delete(&GalleryItem{}, item.ID) })

	assert.True(t, strings.HasPrefix(item.Image, "gallery_"), "got %q", item.Image)
	assert.True(t, strings.HasSuffix(item.Image, ".jpg"), "got %q", item.Image)
	assert.Equal(t, 2, item.SortOrder)
}

func TestAdminContactMarkRead(t *testing.T) {
	client := loginClient(t)

	contact := ContactRequest{Name: "Марко", Message: "Питання про курс"}
	require.NoError(t, db.Create(&contact).Error)
	t.Cleanup(func() { db.Unscoped().Delete(&ContactRequest{}, contact.ID) })

	markRead := func() map[string]any {
		resp, body := postForm(t, client, "/admin/contacts/mark-read/"+itoa(contact.ID), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var payload map[string]any
		require.NoError(t, json.Unmarshal([]byte(body), &payload))
		return payload
	}

	assert.Equal(t, map[string]any{"success": true}, markRead())

	var updated ContactRequest
	require.NoError(t, db.First(&updated, contact.ID).Error)
	assert.True(t, updated.IsRead)

	// Marking again is a no-op that still reports success.
	assert.Equal(t, map[string]any{"success": true}, markRead())
}

func TestAdminContactMarkReadMissing(t *testing.T) {
	client := loginClient(t)

	resp, _ := postForm(t, client, "/admin/contacts/mark-read/999999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
