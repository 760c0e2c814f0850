package main

import (
	"net/http"
	"strconv"

	"sealife/constants"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

func HomePage(w http.ResponseWriter, r *http.Request) {
	var trips []Trip
	result := db.Where("is_active = ?", true).
		Order("start_date").
		Limit(constants.HOME_TRIPS_LIMIT).
		Find(&trips)
	if result.Error != nil {
		http.Error(w, "Error fetching trips", http.StatusInternalServerError)
		return
	}

	var posts []BlogPost
	db.Where("is_published = ?", true).
		Order("created_at DESC").
		Limit(constants.HOME_POSTS_LIMIT).
		Find(&posts)

	var gallery []GalleryItem
	db.Where("is_featured = ?", true).
		Order("sort_order").
		Limit(constants.HOME_GALLERY_LIMIT).
		Find(&gallery)

	renderTemplate(w, r, "pages/home", map[string]any{
		"Trips":   trips,
		"Posts":   posts,
		"Gallery": gallery,
	})
}

func AboutPage(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "pages/about", nil)
}

func TripsPage(w http.ResponseWriter, r *http.Request) {
	tripType := r.URL.Query().Get("type")
	if tripType == "" {
		tripType = "all"
	}

	query := db.Where("is_active = ?", true)
	if tripType != "all" {
		query = query.Where("trip_type = ?", tripType)
	}

	var trips []Trip
	if err := query.Order("start_date").Find(&trips).Error; err != nil {
		http.Error(w, "Error fetching trips", http.StatusInternalServerError)
		return
	}

	renderTemplate(w, r, "pages/trips", map[string]any{
		"Trips":       trips,
		"CurrentType": tripType,
		"Types":       constants.TRIP_TYPES,
	})
}

func TripDetailPage(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "tripID")

	var trip Trip
	result := db.Where("is_active = ?", true).First(&trip, "id = ?", tripID)
	if result.Error != nil {
		http.NotFound(w, r)
		return
	}

	var related []Trip
	db.Where("id <> ? AND is_active = ?", trip.ID, true).
		Limit(constants.RELATED_LIMIT).
		Find(&related)

	renderTemplate(w, r, "pages/trip_detail", map[string]any{
		"Trip":    trip,
		"Related": related,
	})
}

func BlogPage(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	tag := r.URL.Query().Get("tag")

	// Conditions are rebuilt for each statement so Count and Find don't
	// share a half-consumed query.
	published := func() *gorm.DB {
		q := db.Model(&BlogPost{}).Where("is_published = ?", true)
		if tag != "" {
			q = q.Where("tags LIKE ?", "%"+tag+"%")
		}
		return q
	}

	var total int64
	if err := published().Count(&total).Error; err != nil {
		http.Error(w, "Error fetching posts", http.StatusInternalServerError)
		return
	}
	totalPages := int((total + constants.POSTS_PER_PAGE - 1) / constants.POSTS_PER_PAGE)
	if totalPages < 1 {
		totalPages = 1
	}

	var posts []BlogPost
	published().
		Order("created_at DESC").
		Limit(constants.POSTS_PER_PAGE).
		Offset((page - 1) * constants.POSTS_PER_PAGE).
		Find(&posts)

	renderTemplate(w, r, "pages/blog", map[string]any{
		"Posts":      posts,
		"CurrentTag": tag,
		"Page":       page,
		"TotalPages": totalPages,
		"HasPrev":    page > 1,
		"HasNext":    page < totalPages,
		"PrevPage":   page - 1,
		"NextPage":   page + 1,
	})
}

// BlogPostPage is a side-effecting read: every load of a published post
// bumps its view counter. The bump is a single atomic UPDATE and leaves
// UpdatedAt alone, since a page view is not a content mutation.
func BlogPostPage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	var post BlogPost
	result := db.Where("slug = ? AND is_published = ?", slug, true).First(&post)
	if result.Error != nil {
		http.NotFound(w, r)
		return
	}

	db.Model(&BlogPost{}).
		Where("id = ?", post.ID).
		UpdateColumn("views", gorm.Expr("views + 1"))
	post.Views++

	var related []BlogPost
	db.Where("id <> ? AND is_published = ?", post.ID, true).
		Limit(constants.RELATED_LIMIT).
		Find(&related)

	renderTemplate(w, r, "pages/blog_post", map[string]any{
		"Post":    post,
		"Related": related,
	})
}

func GalleryPage(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		category = "all"
	}

	var items []GalleryItem
	var err error
	if category == "all" {
		err = db.Order("sort_order").Order("created_at DESC").Find(&items).Error
	} else {
		err = db.Where("category = ?", category).Order("sort_order").Find(&items).Error
	}
	if err != nil {
		http.Error(w, "Error fetching gallery", http.StatusInternalServerError)
		return
	}

	renderTemplate(w, r, "pages/gallery", map[string]any{
		"Items":           items,
		"CurrentCategory": category,
		"Categories":      constants.GALLERY_CATEGORIES,
	})
}

func ContactPage(w http.ResponseWriter, r *http.Request) {
	renderContactForm(w, r, http.StatusOK, nil)
}

func ContactSubmit(w http.ResponseWriter, r *http.Request) {
	var contact ContactRequest
	if errs := parseContactForm(r, &contact); errs.Any() {
		renderContactForm(w, r, http.StatusUnprocessableEntity, errs)
		return
	}

	if err := db.Create(&contact).Error; err != nil {
		http.Error(w, "Error submitting request", http.StatusInternalServerError)
		return
	}
	notifyNewContact(&contact)

	state := getRequestState(r)
	setFlash(state, "success", tr(state.Lang, "flash.contact_thanks"))
	http.Redirect(w, r, "/contact", http.StatusSeeOther)
}

func renderContactForm(w http.ResponseWriter, r *http.Request, status int, errs FieldErrors) {
	var trips []Trip
	db.Where("is_active = ?", true).Order("start_date").Find(&trips)

	renderTemplateStatus(w, r, status, "pages/contact", map[string]any{
		"Trips":  trips,
		"Errors": errs,
	})
}

// SetLangPage switches the session language and sends the visitor back to
// the page they came from.
func SetLangPage(w http.ResponseWriter, r *http.Request) {
	lang := normalizeLang(chi.URLParam(r, "lang"))
	if lang == "" {
		lang = constants.DEFAULT_LANG
	}

	state := getRequestState(r)
	if state.Session.Lang != lang {
		state.Session.Lang = lang
		db.Save(state.Session)
	}

	target := r.Referer()
	if target == "" {
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
