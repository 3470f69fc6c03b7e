package sendpulse

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/natserract/sendpulse/pkg/phpserialize"
	"go.uber.org/zap"
)

func (c *Client) ListEmailTemplates(ctx context.Context) (*Result, error) {
	return c.call(ctx, http.MethodGet, "templates", nil)
}

func (c *Client) GetEmailTemplate(ctx context.Context, id string) (*Result, error) {
	if id == "" {
		return nil, validationError("Empty email template id")
	}
	return c.call(ctx, http.MethodGet, "template/"+id, nil)
}

func (c *Client) ListCampaigns(ctx context.Context, limit, offset int) (*Result, error) {
	return c.call(ctx, http.MethodGet, "campaigns", pagination{Limit: limit, Offset: offset})
}

func (c *Client) GetCampaignInfo(ctx context.Context, id int) (*Result, error) {
	if id == 0 {
		return nil, validationError("Empty book id")
	}
	return c.call(ctx, http.MethodGet, fmt.Sprintf("campaigns/%d", id), nil)
}

func (c *Client) CampaignStatByCountries(ctx context.Context, id int) (*Result, error) {
	if id == 0 {
		return nil, validationError("Empty book id")
	}
	return c.call(ctx, http.MethodGet, fmt.Sprintf("campaigns/%d/countries", id), nil)
}

func (c *Client) CampaignStatByReferrals(ctx context.Context, id int) (*Result, error) {
	if id == 0 {
		return nil, validationError("Empty book id")
	}
	return c.call(ctx, http.MethodGet, fmt.Sprintf("campaigns/%d/referrals", id), nil)
}

// CreateCampaign schedules a bulk email campaign. The body is sent base64
// encoded and attachments, when present, PHP-serialized.
func (c *Client) CreateCampaign(ctx context.Context, params CreateCampaignParams) (*Result, error) {
	if params.SenderName == "" || params.SenderEmail == "" || params.Subject == "" || params.Body == "" ||
		(params.BookID == 0 && len(params.BookIDs) == 0) {
		return nil, validationError("Not all data.")
	}

	req := createCampaignRequest{
		SenderName:  params.SenderName,
		SenderEmail: params.SenderEmail,
		Subject:     params.Subject,
		Body:        base64.StdEncoding.EncodeToString([]byte(params.Body)),
		ListID:      params.BookID,
		Name:        params.Name,
	}
	if len(params.BookIDs) > 0 {
		req.ListID = params.BookIDs
	}

	if len(params.Attachments) > 0 {
		attachments, err := phpserialize.Marshal(params.Attachments)
		if err != nil {
			return nil, newError(KindValidation, err.Error(), err)
		}
		req.Attachments = attachments
	}

	c.logger.Info("Creating campaign",
		zap.String("sender_email", params.SenderEmail),
		zap.Int("attachments", len(params.Attachments)))

	return c.call(ctx, http.MethodPost, "campaigns", req)
}

func (c *Client) CancelCampaign(ctx context.Context, id int) (*Result, error) {
	if id == 0 {
		return nil, validationError("Empty campaign id")
	}
	return c.call(ctx, http.MethodDelete, fmt.Sprintf("campaigns/%d", id), nil)
}

func (c *Client) ListSenders(ctx context.Context) (*Result, error) {
	return c.call(ctx, http.MethodGet, "senders", nil)
}

func (c *Client) AddSender(ctx context.Context, name, email string) (*Result, error) {
	if email == "" || name == "" {
		return nil, validationError("Empty sender name or email")
	}
	return c.call(ctx, http.MethodPost, "senders", map[string]string{"email": email, "name": name})
}

func (c *Client) RemoveSender(ctx context.Context, email string) (*Result, error) {
	if email == "" {
		return nil, validationError("Empty email")
	}
	return c.call(ctx, http.MethodDelete, "senders", map[string]string{"email": email})
}

// ActivateSender confirms a sender with the code from its activation mail
func (c *Client) ActivateSender(ctx context.Context, email, code string) (*Result, error) {
	if email == "" || code == "" {
		return nil, validationError("Empty email or activation code")
	}
	return c.call(ctx, http.MethodPost, "senders/"+email+"/code", map[string]string{"code": code})
}

// GetSenderActivationMail asks the API to resend the activation code
func (c *Client) GetSenderActivationMail(ctx context.Context, email string) (*Result, error) {
	if email == "" {
		return nil, validationError("Empty email")
	}
	return c.call(ctx, http.MethodGet, "senders/"+email+"/code", nil)
}
