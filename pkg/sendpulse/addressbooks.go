package sendpulse

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// booksInfoConcurrency bounds GetBooksInfo fan-out.
const booksInfoConcurrency = 5

// Pagination is sent only for non-zero values.
type pagination struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// ListAddressBooks returns address books, optionally paginated
func (c *Client) ListAddressBooks(ctx context.Context, limit, offset int) (*Result, error) {
	return c.call(ctx, http.MethodGet, "addressbooks", pagination{Limit: limit, Offset: offset})
}

func (c *Client) CreateAddressBook(ctx context.Context, name string) (*Result, error) {
	if name == "" {
		return nil, validationError("Empty book name")
	}
	return c.call(ctx, http.MethodPost, "addressbooks", map[string]string{"bookName": name})
}

func (c *Client) EditAddressBook(ctx context.Context, id int, name string) (*Result, error) {
	if id == 0 || name == "" {
		return nil, validationError("Empty book name or book id")
	}
	return c.call(ctx, http.MethodPut, fmt.Sprintf("addressbooks/%d", id), map[string]string{"name": name})
}

func (c *Client) RemoveAddressBook(ctx context.Context, id int) (*Result, error) {
	if id == 0 {
		return nil, validationError("Empty book id")
	}
	return c.call(ctx, http.MethodDelete, fmt.Sprintf("addressbooks/%d", id), nil)
}

// GetBookInfo returns a one-element list describing the book
func (c *Client) GetBookInfo(ctx context.Context, id int) (*Result, error) {
	if id == 0 {
		return nil, validationError("Empty book id")
	}
	return c.call(ctx, http.MethodGet, fmt.Sprintf("addressbooks/%d", id), nil)
}

// GetBooksInfo fetches several books concurrently. Results keep the order of
// ids; the first failure is returned once every call has finished.
func (c *Client) GetBooksInfo(ctx context.Context, ids []int) ([]*Result, error) {
	if len(ids) == 0 {
		return nil, validationError("Empty book id")
	}
	for _, id := range ids {
		if id == 0 {
			return nil, validationError("Empty book id")
		}
	}

	c.logger.Info("Getting address books", zap.Int("count", len(ids)))

	results := make([]*Result, len(ids))
	errs := make([]error, len(ids))

	p := pool.New().WithMaxGoroutines(booksInfoConcurrency).WithErrors()
	for i, id := range ids {
		p.Go(func() error {
			res, err := c.GetBookInfo(ctx, id)
			if err != nil {
				c.logger.Error("Failed to get address book", zap.Int("book_id", id), zap.Error(err))
				errs[i] = err
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		for _, e := range errs {
			if e != nil {
				return results, e
			}
		}
		return results, err
	}

	c.logger.Info("Successfully retrieved address books", zap.Int("count", len(ids)))
	return results, nil
}

func (c *Client) GetEmailsFromBook(ctx context.Context, id int) (*Result, error) {
	if id == 0 {
		return nil, validationError("Empty book id")
	}
	return c.call(ctx, http.MethodGet, fmt.Sprintf("addressbooks/%d/emails", id), nil)
}

// AddEmails adds entries to a book. The list travels PHP-serialized.
func (c *Client) AddEmails(ctx context.Context, id int, emails []Email) (*Result, error) {
	if id == 0 || len(emails) == 0 {
		return nil, validationError("Empty email or book id")
	}
	return c.emailsRequest(ctx, http.MethodPost, id, emails)
}

func (c *Client) RemoveEmails(ctx context.Context, id int, emails []string) (*Result, error) {
	if id == 0 || len(emails) == 0 {
		return nil, validationError("Empty email or book id")
	}
	return c.emailsRequest(ctx, http.MethodDelete, id, emails)
}

func (c *Client) emailsRequest(ctx context.Context, method string, id int, emails interface{}) (*Result, error) {
	return c.serializedRequest(ctx, method, fmt.Sprintf("addressbooks/%d/emails", id), "emails", emails)
}

func (c *Client) GetEmailInfo(ctx context.Context, id int, email string) (*Result, error) {
	if id == 0 || email == "" {
		return nil, validationError("Empty email or book id")
	}
	return c.call(ctx, http.MethodGet, fmt.Sprintf("addressbooks/%d/emails/%s", id, email), nil)
}

func (c *Client) UpdateEmailVariables(ctx context.Context, id int, email string, variables []Variable) (*Result, error) {
	if id == 0 || email == "" || len(variables) == 0 {
		return nil, validationError("Empty email, variables or book id")
	}
	body := struct {
		Email     string     `json:"email"`
		Variables []Variable `json:"variables"`
	}{Email: email, Variables: variables}
	return c.call(ctx, http.MethodPost, fmt.Sprintf("addressbooks/%d/emails/variable", id), body)
}

// CampaignCost estimates sending a campaign to the book
func (c *Client) CampaignCost(ctx context.Context, id int) (*Result, error) {
	if id == 0 {
		return nil, validationError("Empty book id")
	}
	return c.call(ctx, http.MethodGet, fmt.Sprintf("addressbooks/%d/cost", id), nil)
}
