package notifier

type MailPayload struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

type mailErrorResponse struct {
	Message string `json:"message"`
}
