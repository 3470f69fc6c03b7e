package sendpulse

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"
)

// GetEmailGlobalInfo lists the books an address belongs to
func (c *Client) GetEmailGlobalInfo(ctx context.Context, email string) (*Result, error) {
	if email == "" {
		return nil, validationError("Empty email")
	}
	return c.call(ctx, http.MethodGet, "emails/"+email, nil)
}

func (c *Client) RemoveEmailFromAllBooks(ctx context.Context, email string) (*Result, error) {
	if email == "" {
		return nil, validationError("Empty email")
	}
	return c.call(ctx, http.MethodDelete, "emails/"+email, nil)
}

func (c *Client) EmailStatByCampaigns(ctx context.Context, email string) (*Result, error) {
	if email == "" {
		return nil, validationError("Empty email")
	}
	return c.call(ctx, http.MethodGet, "emails/"+email+"/campaigns", nil)
}

func (c *Client) GetBlackList(ctx context.Context) (*Result, error) {
	return c.call(ctx, http.MethodGet, "blacklist", nil)
}

// AddToBlackList blacklists a comma-separated list of addresses
func (c *Client) AddToBlackList(ctx context.Context, emails, comment string) (*Result, error) {
	if emails == "" {
		return nil, validationError("Empty email")
	}
	body := map[string]string{
		"emails":  base64.StdEncoding.EncodeToString([]byte(emails)),
		"comment": comment,
	}
	return c.call(ctx, http.MethodPost, "blacklist", body)
}

func (c *Client) RemoveFromBlackList(ctx context.Context, emails string) (*Result, error) {
	if emails == "" {
		return nil, validationError("Empty emails")
	}
	body := map[string]string{"emails": base64.StdEncoding.EncodeToString([]byte(emails))}
	return c.call(ctx, http.MethodDelete, "blacklist", body)
}

// GetBalance returns the balance in every currency, or in currency when set
func (c *Client) GetBalance(ctx context.Context, currency string) (*Result, error) {
	path := "balance"
	if currency != "" {
		path += "/" + strings.ToUpper(currency)
	}
	return c.call(ctx, http.MethodGet, path, nil)
}
