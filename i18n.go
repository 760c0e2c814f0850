package main

import "sealife/constants"

// normalizeLang maps a requested language onto the supported set. Anything
// outside uk/en returns "" so callers fall through to the next source.
func normalizeLang(lang string) string {
	switch lang {
	case "uk", "en":
		return lang
	}
	return ""
}

// uiStrings covers page chrome and flash messages. Stored content carries
// its own uk/en columns and never goes through this table.
var uiStrings = map[string]map[string]string{
	"uk": {
		"nav.home":    "Головна",
		"nav.trips":   "Подорожі",
		"nav.blog":    "Блог",
		"nav.gallery": "Галерея",
		"nav.about":   "Про нас",
		"nav.contact": "Контакти",

		"home.trips":   "Найближчі подорожі",
		"home.posts":   "Останні статті",
		"home.gallery": "Галерея",

		"trips.all":       "Всі",
		"trip.related":    "Схожі подорожі",
		"trip.price":      "Ціна",
		"blog.related":    "Схожі статті",
		"contact.send":    "Надіслати",
		"gallery.empty":   "Фотографій поки немає",
		"form.errors":     "Будь ласка, виправте помилки у формі",
		"login.password":  "Пароль",
		"login.submit":    "Увійти",

		"flash.contact_thanks": "Дякуємо! Ми зв'яжемося з вами найближчим часом.",
		"flash.bad_password":   "Невірний пароль",
		"flash.trip_added":     "Подорож додано!",
		"flash.trip_updated":   "Подорож оновлено!",
		"flash.trip_deleted":   "Подорож видалено!",
		"flash.post_added":     "Статтю додано!",
		"flash.post_updated":   "Статтю оновлено!",
		"flash.post_deleted":   "Статтю видалено!",
		"flash.photo_added":    "Фото додано!",
		"flash.photo_deleted":  "Фото видалено!",
	},
	"en": {
		"nav.home":    "Home",
		"nav.trips":   "Trips",
		"nav.blog":    "Blog",
		"nav.gallery": "Gallery",
		"nav.about":   "About",
		"nav.contact": "Contact",

		"home.trips":   "Upcoming trips",
		"home.posts":   "Latest articles",
		"home.gallery": "Gallery",

		"trips.all":       "All",
		"trip.related":    "Related trips",
		"trip.price":      "Price",
		"blog.related":    "Related articles",
		"contact.send":    "Send",
		"gallery.empty":   "No photos yet",
		"form.errors":     "Please correct the errors in the form",
		"login.password":  "Password",
		"login.submit":    "Sign in",

		"flash.contact_thanks": "Thank you! We will contact you soon.",
		"flash.bad_password":   "Invalid password",
		"flash.trip_added":     "Trip added!",
		"flash.trip_updated":   "Trip updated!",
		"flash.trip_deleted":   "Trip deleted!",
		"flash.post_added":     "Article added!",
		"flash.post_updated":   "Article updated!",
		"flash.post_deleted":   "Article deleted!",
		"flash.photo_added":    "Photo added!",
		"flash.photo_deleted":  "Photo deleted!",
	},
}

// tr returns the UI string for the given language, falling back to the
// default language and then to the key itself.
func tr(lang, key string) string {
	if s, ok := uiStrings[lang][key]; ok {
		return s
	}
	if s, ok := uiStrings[constants.DEFAULT_LANG][key]; ok {
		return s
	}
	return key
}
