package mailer

import (
	"fmt"
	"os"

	"tps/src/lib"
)

// NewMailerMessage hands an email to the outbound pipeline: in local env the
// message is produced to the email topic for the local consumer, otherwise it
// is sent straight over SMTP.
func NewMailerMessage(input *lib.SendMailInput) error {
	apiEnv := os.Getenv("API_ENV")
	if apiEnv == "local" {
		emailBody := map[string]any{
			"from":      input.From,
			"from-name": input.FromName,
			"to":        input.To,
			"body":      input.Body,
			"html":      input.Html,
			"subject":   input.Subject,
		}
		if err := lib.KafkaProduceMessage("emails", lib.TopicEmails, emailBody); err != nil {
			return fmt.Errorf("error sending message to queue: %s", err.Error())
		}
		return nil
	}
	return lib.SendMail(input)
}
