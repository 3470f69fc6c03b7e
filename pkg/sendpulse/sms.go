package sendpulse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// SMS endpoints take phone lists and variables as JSON text inside string
// fields.

type smsPhonesRequest struct {
	AddressBookID int    `json:"addressBookId,omitempty"`
	Phones        string `json:"phones"`
	Variables     string `json:"variables,omitempty"`
	Description   string `json:"description,omitempty"`
}

type smsCampaignRequest struct {
	Sender        string            `json:"sender"`
	AddressBookID int               `json:"addressBookId,omitempty"`
	Phones        string            `json:"phones,omitempty"`
	Body          string            `json:"body"`
	Date          string            `json:"date,omitempty"`
	Transliterate int               `json:"transliterate,omitempty"`
	Route         map[string]string `json:"route,omitempty"`
}

func jsonText(v interface{}) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", newError(KindValidation, err.Error(), err)
	}
	return string(b), nil
}

func (c *Client) SMSAddPhones(ctx context.Context, bookID int, phones []string) (*Result, error) {
	if bookID == 0 || len(phones) == 0 {
		return nil, validationError("Empty phones or book id")
	}
	return c.smsPhones(ctx, http.MethodPost, "sms/numbers", bookID, phones)
}

// SMSAddPhonesWithVariables adds phones keyed by number, each with its
// variables.
func (c *Client) SMSAddPhonesWithVariables(ctx context.Context, bookID int, phones map[string][]Variable) (*Result, error) {
	if bookID == 0 || len(phones) == 0 {
		return nil, validationError("Empty phones or book id")
	}
	return c.smsPhones(ctx, http.MethodPost, "sms/numbers/variables", bookID, phones)
}

func (c *Client) SMSRemovePhones(ctx context.Context, bookID int, phones []string) (*Result, error) {
	if bookID == 0 || len(phones) == 0 {
		return nil, validationError("Empty phones or book id")
	}
	return c.smsPhones(ctx, http.MethodDelete, "sms/numbers", bookID, phones)
}

func (c *Client) smsPhones(ctx context.Context, method, path string, bookID int, phones interface{}) (*Result, error) {
	encoded, err := jsonText(phones)
	if err != nil {
		return nil, err
	}
	return c.call(ctx, method, path, smsPhonesRequest{AddressBookID: bookID, Phones: encoded})
}

func (c *Client) SMSGetBlackList(ctx context.Context) (*Result, error) {
	return c.call(ctx, http.MethodGet, "sms/black_list", nil)
}

func (c *Client) SMSGetPhoneInfo(ctx context.Context, bookID int, phone string) (*Result, error) {
	if bookID == 0 || phone == "" {
		return nil, validationError("Empty phone or book id")
	}
	return c.call(ctx, http.MethodGet, fmt.Sprintf("sms/numbers/info/%d/%s", bookID, phone), nil)
}

func (c *Client) SMSUpdatePhonesVariables(ctx context.Context, bookID int, phones []string, variables []Variable) (*Result, error) {
	if bookID == 0 {
		return nil, validationError("Empty book id")
	}
	if len(phones) == 0 {
		return nil, validationError("Empty phones")
	}
	if len(variables) == 0 {
		return nil, validationError("Empty variables")
	}

	encodedPhones, err := jsonText(phones)
	if err != nil {
		return nil, err
	}
	encodedVars, err := jsonText(variables)
	if err != nil {
		return nil, err
	}

	return c.call(ctx, http.MethodPut, "sms/numbers", smsPhonesRequest{
		AddressBookID: bookID,
		Phones:        encodedPhones,
		Variables:     encodedVars,
	})
}

func (c *Client) SMSGetPhonesInfoFromBlacklist(ctx context.Context, phones []string) (*Result, error) {
	return c.smsBlacklist(ctx, http.MethodGet, "sms/black_list/by_numbers", phones, "")
}

func (c *Client) SMSAddPhonesToBlacklist(ctx context.Context, phones []string, comment string) (*Result, error) {
	return c.smsBlacklist(ctx, http.MethodPost, "sms/black_list", phones, comment)
}

func (c *Client) SMSDeletePhonesFromBlacklist(ctx context.Context, phones []string) (*Result, error) {
	return c.smsBlacklist(ctx, http.MethodDelete, "sms/black_list", phones, "")
}

func (c *Client) smsBlacklist(ctx context.Context, method, path string, phones []string, comment string) (*Result, error) {
	if len(phones) == 0 {
		return nil, validationError("Empty phones")
	}
	encoded, err := jsonText(phones)
	if err != nil {
		return nil, err
	}
	return c.call(ctx, method, path, smsPhonesRequest{Phones: encoded, Description: comment})
}

// SMSAddCampaign sends an SMS campaign to every phone in a book
func (c *Client) SMSAddCampaign(ctx context.Context, params SMSCampaignParams) (*Result, error) {
	if params.Sender == "" {
		return nil, validationError("Empty sender name")
	}
	if params.BookID == 0 {
		return nil, validationError("Empty book id")
	}
	if params.Body == "" {
		return nil, validationError("Empty sms text")
	}

	return c.call(ctx, http.MethodPost, "sms/campaigns", smsCampaignRequest{
		Sender:        params.Sender,
		AddressBookID: params.BookID,
		Body:          params.Body,
		Date:          params.Date,
		Transliterate: params.Transliterate,
	})
}

// SMSSend sends an SMS campaign to an explicit phone list
func (c *Client) SMSSend(ctx context.Context, params SMSSendParams) (*Result, error) {
	if params.Sender == "" {
		return nil, validationError("Empty sender name")
	}
	if len(params.Phones) == 0 {
		return nil, validationError("Empty phones")
	}
	if params.Body == "" {
		return nil, validationError("Empty sms text")
	}

	phones, err := jsonText(params.Phones)
	if err != nil {
		return nil, err
	}

	return c.call(ctx, http.MethodPost, "sms/send", smsCampaignRequest{
		Sender:        params.Sender,
		Phones:        phones,
		Body:          params.Body,
		Date:          params.Date,
		Transliterate: params.Transliterate,
		Route:         params.Route,
	})
}

// SMSGetListCampaigns lists campaigns in a date range; empty bounds are
// omitted.
func (c *Client) SMSGetListCampaigns(ctx context.Context, dateFrom, dateTo string) (*Result, error) {
	body := struct {
		DateFrom string `json:"dateFrom,omitempty"`
		DateTo   string `json:"dateTo,omitempty"`
	}{DateFrom: dateFrom, DateTo: dateTo}
	return c.call(ctx, http.MethodGet, "sms/campaigns/list", body)
}

func (c *Client) SMSGetCampaignInfo(ctx context.Context, id int) (*Result, error) {
	if id == 0 {
		return nil, validationError("Empty sms campaign id")
	}
	return c.call(ctx, http.MethodGet, fmt.Sprintf("sms/campaigns/info/%d", id), nil)
}

func (c *Client) SMSCancelCampaign(ctx context.Context, id int) (*Result, error) {
	if id == 0 {
		return nil, validationError("Empty sms campaign id")
	}
	return c.call(ctx, http.MethodPut, fmt.Sprintf("sms/campaigns/cancel/%d", id), nil)
}

// SMSGetCampaignCost prices a campaign for a book or a phone list
func (c *Client) SMSGetCampaignCost(ctx context.Context, params SMSCostParams) (*Result, error) {
	if params.Sender == "" {
		return nil, validationError("Empty sender name")
	}
	if params.Body == "" {
		return nil, validationError("Empty sms text")
	}
	if params.BookID == 0 && len(params.Phones) == 0 {
		return nil, validationError("Empty book id or phones")
	}

	req := smsCampaignRequest{
		Sender:        params.Sender,
		AddressBookID: params.BookID,
		Body:          params.Body,
	}
	if len(params.Phones) > 0 {
		phones, err := jsonText(params.Phones)
		if err != nil {
			return nil, err
		}
		req.Phones = phones
	}

	return c.call(ctx, http.MethodGet, "sms/campaigns/cost", req)
}

func (c *Client) SMSDeleteCampaign(ctx context.Context, id int) (*Result, error) {
	if id == 0 {
		return nil, validationError("Empty sms campaign id")
	}
	return c.call(ctx, http.MethodDelete, "sms/campaigns", map[string]int{"id": id})
}
