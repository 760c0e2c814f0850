package main

import (
	"bytes"
	"fmt"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// notifyNewContact emails the site owner about a new contact request. Mail
// is best-effort: it is skipped entirely unless SMTP is configured, and
// failures are logged but never surfaced to the visitor.
func notifyNewContact(contact *ContactRequest) {
	host := viper.GetString("smtp.host")
	notify := viper.GetString("smtp.notify_email")
	if host == "" || notify == "" {
		return
	}

	from := viper.GetString("smtp.from_email")
	port := viper.GetString("smtp.port")
	username := viper.GetString("smtp.username")
	password := viper.GetString("smtp.password")

	auth := sasl.NewLoginClient(username, password)

	body := fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\n\n%s\n",
		contact.Name, contact.Email, contact.Phone, contact.Message)
	message := "From: " + from + "\n" +
		"To: " + notify + "\n" +
		"Subject: New contact request\n\n" +
		body

	reader := bytes.NewReader([]byte(message))
	if err := smtp.SendMail(host+":"+port, auth, from, []string{notify}, reader); err != nil {
		log.WithError(err).Warn("failed to send contact notification")
	}
}
