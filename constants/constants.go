package constants

const (
	DEFAULT_LANG = "uk"

	HOME_TRIPS_LIMIT   = 6
	HOME_POSTS_LIMIT   = 3
	HOME_GALLERY_LIMIT = 8
	RELATED_LIMIT      = 3
	POSTS_PER_PAGE     = 9
	DASHBOARD_CONTACTS = 5

	MAX_UPLOAD_BYTES = 16 << 20
	SESSION_TTL_DAYS = 7
)

var TRIP_TYPES = []string{"course", "trip", "expedition"}
var DIFFICULTIES = []string{"beginner", "intermediate", "advanced"}
var GALLERY_CATEGORIES = []string{"trips", "courses", "lifestyle"}
