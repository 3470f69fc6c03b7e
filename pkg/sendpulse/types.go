package sendpulse

// Email is an address book entry with optional variables
type Email struct {
	Email     string            `json:"email"`
	Variables map[string]string `json:"variables"`
}

// CreateCampaignParams describes a bulk email campaign. Exactly one of
// BookID and BookIDs should be set.
type CreateCampaignParams struct {
	SenderName  string
	SenderEmail string
	Subject     string
	// Body is the HTML content; it is base64-encoded on the wire.
	Body    string
	BookID  int
	BookIDs []int
	Name    string
	// Attachments maps file names to their content.
	Attachments map[string]string
}

type createCampaignRequest struct {
	SenderName  string      `json:"sender_name"`
	SenderEmail string      `json:"sender_email"`
	Subject     string      `json:"subject"`
	Body        string      `json:"body"`
	ListID      interface{} `json:"list_id"`
	Name        string      `json:"name"`
	Attachments string      `json:"attachments"`
}

// Contact is a name and address pair used by SMTP messages
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SMTPTemplate selects a stored template for an SMTP message
type SMTPTemplate struct {
	ID        int               `json:"id"`
	Variables map[string]string `json:"variables,omitempty"`
}

// SMTPEmail is a transactional message. HTML is base64-encoded before the
// whole message is PHP-serialized.
type SMTPEmail struct {
	HTML              string            `json:"html,omitempty"`
	Text              string            `json:"text,omitempty"`
	Template          *SMTPTemplate     `json:"template,omitempty"`
	AutoPlainText     bool              `json:"auto_plain_text,omitempty"`
	Subject           string            `json:"subject"`
	From              Contact           `json:"from"`
	To                []Contact         `json:"to"`
	Bcc               []Contact         `json:"bcc,omitempty"`
	Attachments       map[string]string `json:"attachments,omitempty"`
	AttachmentsBinary map[string]string `json:"attachments_binary,omitempty"`
}

// SMTPListEmailsParams filters the SMTP send log. Zero values are sent as is.
type SMTPListEmailsParams struct {
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
	From      string `json:"from"`
	To        string `json:"to"`
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
}

// UnsubscribeEntry is an address to exclude from SMTP delivery
type UnsubscribeEntry struct {
	Email   string `json:"email"`
	Comment string `json:"comment,omitempty"`
}

// Variable is a typed value attached to a book entry. Type may be left
// empty for email books.
type Variable struct {
	Name  string `json:"name"`
	Type  string `json:"type,omitempty"`
	Value string `json:"value"`
}

// SMSCampaignParams describes an SMS campaign to an address book
type SMSCampaignParams struct {
	Sender        string
	BookID        int
	Body          string
	Date          string
	Transliterate int
}

// SMSSendParams describes an SMS campaign to an explicit phone list
type SMSSendParams struct {
	Sender        string
	Phones        []string
	Body          string
	Date          string
	Transliterate int
	Route         map[string]string
}

// SMSCostParams asks for the price of an SMS campaign. Either BookID or
// Phones is required.
type SMSCostParams struct {
	Sender string
	Body   string
	BookID int
	Phones []string
}

// Reply shapes for Result.Decode.

type BookInfo struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	AllEmailQty      int    `json:"all_email_qty"`
	ActiveEmailQty   int    `json:"active_email_qty"`
	InactiveEmailQty int    `json:"inactive_email_qty"`
	CreationDate     string `json:"creationdate"`
	Status           int    `json:"status"`
	StatusExplain    string `json:"status_explain"`
}

type EmailFromBook struct {
	Email         string            `json:"email"`
	Status        int               `json:"status"`
	StatusExplain string            `json:"status_explain"`
	Variables     map[string]string `json:"variables"`
}

type EmailGlobalInfo struct {
	EmailFromBook
	BookID int `json:"book_id"`
}

type EmailInfo struct {
	EmailFromBook
	AbookID string `json:"abook_id"`
	Phone   string `json:"phone"`
}

type CampaignCost struct {
	Cur                       string  `json:"cur"`
	SentEmailsQty             int     `json:"sent_emails_qty"`
	OverdraftAllEmailsPrice   float64 `json:"overdraftAllEmailsPrice"`
	AddressesDeltaFromBalance int     `json:"addressesDeltaFromBalance"`
	AddressesDeltaFromTariff  int     `json:"addressesDeltaFromTariff"`
	MaxEmailsPerTask          int     `json:"max_emails_per_task"`
	Result                    bool    `json:"result"`
}

type Campaign struct {
	ID             int    `json:"id"`
	Status         int    `json:"status"`
	Count          int    `json:"count"`
	TariffEmailQty int    `json:"tariff_email_qty"`
	OverdraftPrice string `json:"overdraft_price"`
	// Misspelled by the API.
	OverdraftCurrency string `json:"ovedraft_currency"`
}

type EmailStatByCampaigns struct {
	Statistic struct {
		Sent int `json:"sent"`
		Open int `json:"open"`
		Link int `json:"link"`
	} `json:"statistic"`
	Blacklist    bool `json:"blacklist"`
	Addressbooks []struct {
		ID              int    `json:"id"`
		AddressBookName string `json:"address_book_name"`
	} `json:"addressbooks"`
}

type ReferralStat struct {
	Link  string `json:"link"`
	Count int    `json:"count"`
}

// OperationResult is the common {"result": true} acknowledgement
type OperationResult struct {
	Result bool   `json:"result"`
	Email  string `json:"email,omitempty"`
}
