package main

import (
	"net/http"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"sealife/constants"

	"gorm.io/datatypes"
)

const dateLayout = "2006-01-02"

// FieldErrors accumulates validation failures keyed by form field. Every
// bad field in a submission is reported together, not just the first one.
type FieldErrors map[string]string

func (e FieldErrors) Add(field, message string) {
	e[field] = message
}

func (e FieldErrors) Any() bool {
	return len(e) > 0
}

// formReader pulls typed values out of a submitted form, collecting one
// error per field instead of failing the request on the first bad input.
type formReader struct {
	r    *http.Request
	errs FieldErrors
}

func newFormReader(r *http.Request) *formReader {
	return &formReader{r: r, errs: FieldErrors{}}
}

func (f *formReader) str(field string) string {
	return strings.TrimSpace(f.r.FormValue(field))
}

func (f *formReader) required(field string) string {
	v := f.str(field)
	if v == "" {
		f.errs.Add(field, "required")
	}
	return v
}

func (f *formReader) checkbox(field string) bool {
	return f.r.FormValue(field) == "on"
}

func (f *formReader) integer(field string, def int) int {
	v := f.str(field)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		f.errs.Add(field, "must be a whole number")
		return def
	}
	return n
}

func (f *formReader) float(field string) float64 {
	v := f.str(field)
	if v == "" {
		f.errs.Add(field, "required")
		return 0
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		f.errs.Add(field, "must be a number")
		return 0
	}
	return n
}

func (f *formReader) date(field string, required bool) *datatypes.Date {
	v := f.str(field)
	if v == "" {
		if required {
			f.errs.Add(field, "required")
		}
		return nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		f.errs.Add(field, "must be a date in YYYY-MM-DD format")
		return nil
	}
	d := datatypes.Date(t)
	return &d
}

func oneOf(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// parseTripForm validates a trip submission and applies it to dst. dst is
// left untouched when validation fails.
func parseTripForm(r *http.Request, dst *Trip) FieldErrors {
	f := newFormReader(r)

	titleUK := f.required("title_uk")
	titleEN := f.required("title_en")
	startDate := f.date("start_date", true)
	endDate := f.date("end_date", true)
	price := f.float("price")
	discountPercent := f.integer("discount_percent", 0)
	discountUntil := f.date("discount_until", false)
	maxParticipants := f.integer("max_participants", 10)
	tripType := f.str("trip_type")
	difficulty := f.str("difficulty")

	if price < 0 {
		f.errs.Add("price", "must not be negative")
	}
	if discountPercent < 0 || discountPercent > 100 {
		f.errs.Add("discount_percent", "must be between 0 and 100")
	}
	if startDate != nil && endDate != nil && time.Time(*endDate).Before(time.Time(*startDate)) {
		f.errs.Add("end_date", "must not be before the start date")
	}
	if tripType != "" && !oneOf(constants.TRIP_TYPES, tripType) {
		f.errs.Add("trip_type", "unknown trip type")
	}
	if difficulty != "" && !oneOf(constants.DIFFICULTIES, difficulty) {
		f.errs.Add("difficulty", "unknown difficulty")
	}

	if f.errs.Any() {
		return f.errs
	}

	dst.TitleUK = titleUK
	dst.TitleEN = titleEN
	dst.DescriptionUK = f.str("description_uk")
	dst.DescriptionEN = f.str("description_en")
	dst.StartDate = *startDate
	dst.EndDate = *endDate
	dst.Price = price
	dst.DiscountPercent = discountPercent
	dst.DiscountUntil = discountUntil
	dst.LocationUK = f.str("location_uk")
	dst.LocationEN = f.str("location_en")
	dst.TripType = tripType
	dst.Difficulty = difficulty
	dst.MaxParticipants = maxParticipants
	dst.HighlightsUK = f.str("highlights_uk")
	dst.HighlightsEN = f.str("highlights_en")
	dst.IncludedUK = f.str("included_uk")
	dst.IncludedEN = f.str("included_en")
	dst.IsActive = f.checkbox("is_active")
	return nil
}

// parseBlogForm validates a blog post submission and applies it to dst.
// The slug is not touched here: it is derived once on add and kept stable
// on edit.
func parseBlogForm(r *http.Request, dst *BlogPost) FieldErrors {
	f := newFormReader(r)

	titleUK := f.required("title_uk")
	titleEN := f.required("title_en")
	contentUK := f.required("content_uk")
	contentEN := f.required("content_en")

	if f.errs.Any() {
		return f.errs
	}

	dst.TitleUK = titleUK
	dst.TitleEN = titleEN
	dst.ExcerptUK = f.str("excerpt_uk")
	dst.ExcerptEN = f.str("excerpt_en")
	dst.ContentUK = contentUK
	dst.ContentEN = contentEN
	dst.Tags = f.str("tags")
	dst.MetaDescriptionUK = f.str("meta_description_uk")
	dst.MetaDescriptionEN = f.str("meta_description_en")
	dst.MetaKeywords = f.str("meta_keywords")
	dst.IsPublished = f.checkbox("is_published")
	return nil
}

// parseGalleryForm validates a gallery submission and applies it to dst.
// The category stays open-ended on purpose; the known categories only feed
// the filter links.
func parseGalleryForm(r *http.Request, dst *GalleryItem) FieldErrors {
	f := newFormReader(r)

	sortOrder := f.integer("sort_order", 0)

	if f.errs.Any() {
		return f.errs
	}

	dst.CaptionUK = f.str("caption_uk")
	dst.CaptionEN = f.str("caption_en")
	dst.Category = f.str("category")
	dst.IsFeatured = f.checkbox("is_featured")
	dst.SortOrder = sortOrder
	return nil
}

// parseContactForm validates a public contact submission. Name and message
// are required; the email must parse when present. An unparsable trip_id is
// ignored rather than rejected, since it arrives from a hidden field.
func parseContactForm(r *http.Request, dst *ContactRequest) FieldErrors {
	f := newFormReader(r)

	name := f.required("name")
	message := f.required("message")
	email := f.str("email")
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			f.errs.Add("email", "must be a valid email address")
		}
	}

	if f.errs.Any() {
		return f.errs
	}

	dst.Name = name
	dst.Email = email
	dst.Phone = f.str("phone")
	dst.Message = message
	if id, err := strconv.ParseUint(f.str("trip_id"), 10, 32); err == nil && id > 0 {
		tripID := uint(id)
		dst.TripID = &tripID
	}
	return nil
}
