package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either the rendered parts (Subject, Text, HTML) or a Template with Data is
// set; the worker renders templates before delivery.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // "verify_email", "reset_password"
	Data     map[string]any `json:"data,omitempty"`
}
