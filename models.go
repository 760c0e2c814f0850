package main

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Admin is the single back-office account. Exactly one row is expected: it
// is created at first boot if absent and never deleted through the app.
type Admin struct {
	gorm.Model
	Username     string `gorm:"uniqueIndex;size:80"`
	PasswordHash string `gorm:"size:256"`
}

// Trip represents a bookable course, journey or expedition with bilingual
// content and discount-aware pricing.
type Trip struct {
	gorm.Model
	TitleUK         string         `gorm:"size:200;not null"`
	TitleEN         string         `gorm:"size:200;not null"`
	DescriptionUK   string         `gorm:"type:text"`
	DescriptionEN   string         `gorm:"type:text"`
	StartDate       datatypes.Date `gorm:"not null"`
	EndDate         datatypes.Date `gorm:"not null"`
	Price           float64        `gorm:"not null"`
	DiscountPercent int            `gorm:"default:0"`
	DiscountUntil   *datatypes.Date
	LocationUK      string `gorm:"size:200"`
	LocationEN      string `gorm:"size:200"`
	TripType        string `gorm:"size:50;index"` // course, trip, expedition
	Difficulty      string `gorm:"size:20"`       // beginner, intermediate, advanced
	MaxParticipants int    `gorm:"default:10"`
	Image           string `gorm:"size:300"`
	HighlightsUK    string `gorm:"type:text"`
	HighlightsEN    string `gorm:"type:text"`
	IncludedUK      string `gorm:"type:text"`
	IncludedEN      string `gorm:"type:text"`
	IsActive        bool   `gorm:"default:true;index"`
}

// HasActiveDiscountAt reports whether the discount window is open on the
// given day. The window is inclusive of DiscountUntil.
func (t Trip) HasActiveDiscountAt(today time.Time) bool {
	if t.DiscountPercent <= 0 || t.DiscountUntil == nil {
		return false
	}
	return !dateOnly(today).After(dateOnly(time.Time(*t.DiscountUntil)))
}

func (t Trip) HasActiveDiscount() bool {
	return t.HasActiveDiscountAt(time.Now())
}

// CurrentPriceAt returns the price with the discount applied while the
// discount window is open, and the base price otherwise.
func (t Trip) CurrentPriceAt(today time.Time) float64 {
	if t.HasActiveDiscountAt(today) {
		return t.Price * (1 - float64(t.DiscountPercent)/100)
	}
	return t.Price
}

func (t Trip) CurrentPrice() float64 {
	return t.CurrentPriceAt(time.Now())
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// BlogPost is a published or draft article with a unique slug and bilingual
// SEO fields. Views moves on every public detail load.
type BlogPost struct {
	gorm.Model
	TitleUK           string `gorm:"size:300;not null"`
	TitleEN           string `gorm:"size:300;not null"`
	Slug              string `gorm:"size:300;uniqueIndex;not null"`
	ExcerptUK         string `gorm:"type:text"`
	ExcerptEN         string `gorm:"type:text"`
	ContentUK         string `gorm:"type:text;not null"`
	ContentEN         string `gorm:"type:text;not null"`
	Image             string `gorm:"size:300"`
	Tags              string `gorm:"size:500"` // comma-separated
	MetaDescriptionUK string `gorm:"size:300"`
	MetaDescriptionEN string `gorm:"size:300"`
	MetaKeywords      string `gorm:"size:500"`
	IsPublished       bool   `gorm:"default:true;index"`
	Views             int    `gorm:"default:0"`
}

// TagList splits the stored comma-separated tag string.
func (p BlogPost) TagList() []string {
	var tags []string
	for _, t := range strings.Split(p.Tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// GalleryItem is a captioned image with a category and a manual sort order
// (lower sorts first).
type GalleryItem struct {
	gorm.Model
	Image      string `gorm:"size:300;not null"`
	CaptionUK  string `gorm:"size:300"`
	CaptionEN  string `gorm:"size:300"`
	Category   string `gorm:"size:50;index"` // trips, courses, lifestyle
	IsFeatured bool   `gorm:"default:false;index"`
	SortOrder  int    `gorm:"default:0;index"`
}

// ContactRequest is an inbound inquiry, optionally tied to a trip. TripID
// carries no foreign-key constraint so deleting a trip never blocks on
// existing requests; a dangling reference is treated as unset.
type ContactRequest struct {
	gorm.Model
	Name    string `gorm:"size:100"`
	Email   string `gorm:"size:120"`
	Phone   string `gorm:"size:30"`
	Message string `gorm:"type:text"`
	TripID  *uint  `gorm:"index"`
	IsRead  bool   `gorm:"default:false"`
}

// Session is a server-side visitor session addressed by a random cookie
// token. It carries the language choice, the signed-in admin (if any) and a
// one-shot flash message.
type Session struct {
	gorm.Model
	Token     string `gorm:"uniqueIndex"`
	AdminID   *uint
	Lang      string `gorm:"size:5"`
	Flash     string
	FlashKind string    `gorm:"size:10"`
	ExpiresAt time.Time `gorm:"index"`
}

func (s *Session) IsExpired() bool {
	return s.ExpiresAt.Before(time.Now())
}

var slugNonAlnum = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// Slugify derives a URL slug from a title: lowercase, every run of
// non-alphanumeric characters collapsed to a single hyphen, leading and
// trailing hyphens stripped.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = slugNonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// uniqueSlug resolves slug collisions by appending a numeric suffix until
// the slug is free. Soft-deleted posts still occupy the unique index, so
// the check runs unscoped.
func uniqueSlug(db *gorm.DB, base string) string {
	slug := base
	for n := 2; ; n++ {
		var count int64
		db.Unscoped().Model(&BlogPost{}).Where("slug = ?", slug).Count(&count)
		if count == 0 {
			return slug
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
}
