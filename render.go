package main

import (
	"html/template"
	"net/http"
	"path/filepath"
	"time"

	"sealife/constants"

	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// TemplateData is handed to every page template.
type TemplateData struct {
	Lang      string
	Year      int
	Admin     *Admin
	Flash     string
	FlashKind string
	Data      any
}

var templateFuncs = template.FuncMap{
	"T": tr,
	"pick": func(lang, uk, en string) string {
		if lang == "en" {
			return en
		}
		return uk
	},
	"date": func(v any) string {
		switch t := v.(type) {
		case time.Time:
			return t.Format("02.01.2006")
		case datatypes.Date:
			return time.Time(t).Format("02.01.2006")
		case *datatypes.Date:
			if t == nil {
				return ""
			}
			return time.Time(*t).Format("02.01.2006")
		}
		return ""
	},
	// isodate feeds <input type="date"> values.
	"isodate": func(v any) string {
		switch t := v.(type) {
		case datatypes.Date:
			return time.Time(t).Format("2006-01-02")
		case *datatypes.Date:
			if t == nil {
				return ""
			}
			return time.Time(*t).Format("2006-01-02")
		}
		return ""
	},
	"safe": func(s string) template.HTML {
		return template.HTML(s)
	},
}

// renderTemplate renders templates/<name>.html inside the shared layout.
// name is a path relative to the templates dir, e.g. "pages/home".
func renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	renderTemplateStatus(w, r, http.StatusOK, name, data)
}

func renderTemplateStatus(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	state := getRequestState(r)

	td := TemplateData{
		Lang: constants.DEFAULT_LANG,
		Year: time.Now().Year(),
		Data: data,
	}
	if state != nil {
		td.Lang = state.Lang
		td.Admin = state.Admin
		td.Flash, td.FlashKind = popFlash(state)
	}

	templates, err := template.New("").Funcs(templateFuncs).ParseFiles(
		filepath.Join("templates", name+".html"),
		filepath.Join("templates", "layout.html"),
	)
	if err != nil {
		log.WithError(err).WithField("template", name).Error("parsing templates")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.ExecuteTemplate(w, filepath.Base(name)+".html", td); err != nil {
		log.WithError(err).WithField("template", name).Error("executing template")
	}
}
