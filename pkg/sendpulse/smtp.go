package sendpulse

import (
	"context"
	"encoding/base64"
	"net/http"

	"github.com/natserract/sendpulse/pkg/phpserialize"
	"go.uber.org/zap"
)

func (c *Client) SMTPListEmails(ctx context.Context, params SMTPListEmailsParams) (*Result, error) {
	return c.call(ctx, http.MethodGet, "smtp/emails", params)
}

func (c *Client) SMTPGetEmailInfoByID(ctx context.Context, id string) (*Result, error) {
	if id == "" {
		return nil, validationError("Empty id")
	}
	return c.call(ctx, http.MethodGet, "smtp/emails/"+id, nil)
}

func (c *Client) SMTPUnsubscribeEmails(ctx context.Context, emails []UnsubscribeEntry) (*Result, error) {
	if emails == nil {
		return nil, validationError("Empty emails")
	}
	return c.serializedRequest(ctx, http.MethodPost, "smtp/unsubscribe", "emails", emails)
}

func (c *Client) SMTPRemoveFromUnsubscribe(ctx context.Context, emails []string) (*Result, error) {
	if emails == nil {
		return nil, validationError("Empty emails")
	}
	return c.serializedRequest(ctx, http.MethodDelete, "smtp/unsubscribe", "emails", emails)
}

func (c *Client) SMTPListIP(ctx context.Context) (*Result, error) {
	return c.call(ctx, http.MethodGet, "smtp/ips", nil)
}

func (c *Client) SMTPListAllowedDomains(ctx context.Context) (*Result, error) {
	return c.call(ctx, http.MethodGet, "smtp/domains", nil)
}

// SMTPAddDomain starts verification of the domain of email
func (c *Client) SMTPAddDomain(ctx context.Context, email string) (*Result, error) {
	if email == "" {
		return nil, validationError("Empty email")
	}
	return c.call(ctx, http.MethodPost, "smtp/domains", map[string]string{"email": email})
}

func (c *Client) SMTPVerifyDomain(ctx context.Context, email string) (*Result, error) {
	if email == "" {
		return nil, validationError("Empty email")
	}
	return c.call(ctx, http.MethodGet, "smtp/domains/"+email, nil)
}

// SMTPSendMail sends a transactional message. The caller's value is not
// modified.
func (c *Client) SMTPSendMail(ctx context.Context, email *SMTPEmail) (*Result, error) {
	if email == nil {
		return nil, validationError("Empty email data")
	}

	msg := *email
	if msg.HTML != "" {
		msg.HTML = base64.StdEncoding.EncodeToString([]byte(msg.HTML))
	}

	c.logger.Info("Sending SMTP mail", zap.Int("recipients", len(msg.To)))

	return c.serializedRequest(ctx, http.MethodPost, "smtp/emails", "email", msg)
}

// serializedRequest sends {field: serialize(v)}.
func (c *Client) serializedRequest(ctx context.Context, method, path, field string, v interface{}) (*Result, error) {
	serialized, err := phpserialize.Marshal(v)
	if err != nil {
		return nil, newError(KindValidation, err.Error(), err)
	}
	return c.call(ctx, method, path, map[string]string{field: serialized})
}
