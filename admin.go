package main

import (
	"encoding/json"
	"net/http"

	"sealife/constants"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
)

// AdminAuthMiddleware gates the back office: anonymous visitors are sent to
// the login page.
func AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state := getRequestState(r)
		if state == nil || state.Admin == nil {
			http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AdminLogin checks the submitted password against the single admin record.
// Already-authenticated visitors are sent straight to the dashboard.
func AdminLogin(w http.ResponseWriter, r *http.Request) {
	state := getRequestState(r)
	if state.Admin != nil {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	if r.Method == http.MethodGet {
		renderTemplate(w, r, "admin/login", nil)
		return
	}

	password := r.FormValue("password")

	var admin Admin
	err := db.First(&admin).Error
	if err != nil || bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		setFlash(state, "error", tr(state.Lang, "flash.bad_password"))
		renderTemplateStatus(w, r, http.StatusUnauthorized, "admin/login", nil)
		return
	}

	signInAdmin(state, &admin)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func AdminLogout(w http.ResponseWriter, r *http.Request) {
	signOutAdmin(getRequestState(r))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func AdminDashboard(w http.ResponseWriter, r *http.Request) {
	var stats struct {
		Trips, Posts, Gallery, UnreadContacts int64
	}
	db.Model(&Trip{}).Count(&stats.Trips)
	db.Model(&BlogPost{}).Count(&stats.Posts)
	db.Model(&GalleryItem{}).Count(&stats.Gallery)
	db.Model(&ContactRequest{}).Where("is_read = ?", false).Count(&stats.UnreadContacts)

	var recent []ContactRequest
	db.Order("created_at DESC").Limit(constants.DASHBOARD_CONTACTS).Find(&recent)

	renderTemplate(w, r, "admin/dashboard", map[string]any{
		"Stats":    stats,
		"Contacts": recent,
	})
}

// ---- Trips ----

func AdminTripList(w http.ResponseWriter, r *http.Request) {
	var trips []Trip
	if err := db.Order("start_date DESC").Find(&trips).Error; err != nil {
		http.Error(w, "Error fetching trips", http.StatusInternalServerError)
		return
	}
	renderTemplate(w, r, "admin/trips", map[string]any{"Trips": trips})
}

func AdminTripAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		renderTemplate(w, r, "admin/trip_form", map[string]any{})
		return
	}

	var trip Trip
	if errs := parseTripForm(r, &trip); errs.Any() {
		renderTemplateStatus(w, r, http.StatusUnprocessableEntity, "admin/trip_form", map[string]any{
			"Errors": errs,
		})
		return
	}
	trip.Image = saveUploadedImage(r, "trip")

	if err := db.Create(&trip).Error; err != nil {
		http.Error(w, "Error saving trip", http.StatusInternalServerError)
		return
	}

	state := getRequestState(r)
	setFlash(state, "success", tr(state.Lang, "flash.trip_added"))
	http.Redirect(w, r, "/admin/trips", http.StatusSeeOther)
}

func AdminTripEdit(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "tripID")

	var trip Trip
	if err := db.First(&trip, "id = ?", tripID).Error; err != nil {
		http.NotFound(w, r)
		return
	}

	if r.Method == http.MethodGet {
		renderTemplate(w, r, "admin/trip_form", map[string]any{"Trip": &trip})
		return
	}

	if errs := parseTripForm(r, &trip); errs.Any() {
		renderTemplateStatus(w, r, http.StatusUnprocessableEntity, "admin/trip_form", map[string]any{
			"Trip":   &trip,
			"Errors": errs,
		})
		return
	}
	// A newly supplied image replaces the stored reference; otherwise the
	// existing one is kept.
	if image := saveUploadedImage(r, "trip"); image != "" {
		trip.Image = image
	}

	if err := db.Save(&trip).Error; err != nil {
		http.Error(w, "Error saving trip", http.StatusInternalServerError)
		return
	}

	state := getRequestState(r)
	setFlash(state, "success", tr(state.Lang, "flash.trip_updated"))
	http.Redirect(w, r, "/admin/trips", http.StatusSeeOther)
}

// AdminTripDelete removes the trip. Contact requests that referenced it are
// kept; their trip reference simply dangles.
func AdminTripDelete(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "tripID")

	if err := db.Delete(&Trip{}, "id = ?", tripID).Error; err != nil {
		http.Error(w, "Error deleting trip", http.StatusInternalServerError)
		return
	}

	state := getRequestState(r)
	setFlash(state, "success", tr(state.Lang, "flash.trip_deleted"))
	http.Redirect(w, r, "/admin/trips", http.StatusSeeOther)
}

// ---- Blog ----

func AdminBlogList(w http.ResponseWriter, r *http.Request) {
	var posts []BlogPost
	if err := db.Order("created_at DESC").Find(&posts).Error; err != nil {
		http.Error(w, "Error fetching posts", http.StatusInternalServerError)
		return
	}
	renderTemplate(w, r, "admin/blog", map[string]any{"Posts": posts})
}

func AdminBlogAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		renderTemplate(w, r, "admin/blog_form", map[string]any{})
		return
	}

	var post BlogPost
	if errs := parseBlogForm(r, &post); errs.Any() {
		renderTemplateStatus(w, r, http.StatusUnprocessableEntity, "admin/blog_form", map[string]any{
			"Errors": errs,
		})
		return
	}
	post.Slug = uniqueSlug(db, Slugify(post.TitleEN))
	post.Image = saveUploadedImage(r, "blog")

	if err := db.Create(&post).Error; err != nil {
		http.Error(w, "Error saving post", http.StatusInternalServerError)
		return
	}

	state := getRequestState(r)
	setFlash(state, "success", tr(state.Lang, "flash.post_added"))
	http.Redirect(w, r, "/admin/blog", http.StatusSeeOther)
}

func AdminBlogEdit(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")

	var post BlogPost
	if err := db.First(&post, "id = ?", postID).Error; err != nil {
		http.NotFound(w, r)
		return
	}

	if r.Method == http.MethodGet {
		renderTemplate(w, r, "admin/blog_form", map[string]any{"Post": &post})
		return
	}

	// The slug stays stable on edit: published URLs keep working even when
	// the title changes.
	if errs := parseBlogForm(r, &post); errs.Any() {
		renderTemplateStatus(w, r, http.StatusUnprocessableEntity, "admin/blog_form", map[string]any{
			"Post":   &post,
			"Errors": errs,
		})
		return
	}
	if image := saveUploadedImage(r, "blog"); image != "" {
		post.Image = image
	}

	if err := db.Save(&post).Error; err != nil {
		http.Error(w, "Error saving post", http.StatusInternalServerError)
		return
	}

	state := getRequestState(r)
	setFlash(state, "success", tr(state.Lang, "flash.post_updated"))
	http.Redirect(w, r, "/admin/blog", http.StatusSeeOther)
}

func AdminBlogDelete(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")

	if err := db.Delete(&BlogPost{}, "id = ?", postID).Error; err != nil {
		http.Error(w, "Error deleting post", http.StatusInternalServerError)
		return
	}

	state := getRequestState(r)
	setFlash(state, "success", tr(state.Lang, "flash.post_deleted"))
	http.Redirect(w, r, "/admin/blog", http.StatusSeeOther)
}

// ---- Gallery ----

func AdminGalleryList(w http.ResponseWriter, r *http.Request) {
	var items []GalleryItem
	if err := db.Order("sort_order").Order("created_at DESC").Find(&items).Error; err != nil {
		http.Error(w, "Error fetching gallery", http.StatusInternalServerError)
		return
	}
	renderTemplate(w, r, "admin/gallery", map[string]any{"Items": items})
}

// AdminGalleryAdd only creates a row when an allowed image was actually
// stored; without one it silently redirects back to the list.
func AdminGalleryAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		renderTemplate(w, r, "admin/gallery_form", map[string]any{})
		return
	}

	var item GalleryItem
	if errs := parseGalleryForm(r, &item); errs.Any() {
		renderTemplateStatus(w, r, http.StatusUnprocessableEntity, "admin/gallery_form", map[string]any{
			"Errors": errs,
		})
		return
	}

	item.Image = saveUploadedImage(r, "gallery")
	if item.Image == "" {
		http.Redirect(w, r, "/admin/gallery", http.StatusSeeOther)
		return
	}

	if err := db.Create(&item).Error; err != nil {
		http.Error(w, "Error saving photo", http.StatusInternalServerError)
		return
	}

	state := getRequestState(r)
	setFlash(state, "success", tr(state.Lang, "flash.photo_added"))
	http.Redirect(w, r, "/admin/gallery", http.StatusSeeOther)
}

func AdminGalleryDelete(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")

	if err := db.Delete(&GalleryItem{}, "id = ?", itemID).Error; err != nil {
		http.Error(w, "Error deleting photo", http.StatusInternalServerError)
		return
	}

	state := getRequestState(r)
	setFlash(state, "success", tr(state.Lang, "flash.photo_deleted"))
	http.Redirect(w, r, "/admin/gallery", http.StatusSeeOther)
}

// ---- Contacts ----

func AdminContactList(w http.ResponseWriter, r *http.Request) {
	var contacts []ContactRequest
	if err := db.Order("created_at DESC").Find(&contacts).Error; err != nil {
		http.Error(w, "Error fetching contacts", http.StatusInternalServerError)
		return
	}
	renderTemplate(w, r, "admin/contacts", map[string]any{"Contacts": contacts})
}

// AdminContactMarkRead flips the read flag. Marking an already-read request
// is a no-op that still reports success.
func AdminContactMarkRead(w http.ResponseWriter, r *http.Request) {
	contactID := chi.URLParam(r, "contactID")

	var contact ContactRequest
	if err := db.First(&contact, "id = ?", contactID).Error; err != nil {
		http.NotFound(w, r)
		return
	}

	if !contact.IsRead {
		contact.IsRead = true
		if err := db.Save(&contact).Error; err != nil {
			http.Error(w, "Error updating contact", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"success": true})
}
