package sendpulse

import (
	"context"
	"encoding/base64"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func newAuthorizedClient(t *testing.T) (*Client, *FakeSendPulse) {
	t.Helper()

	fake := NewFakeSendPulse()
	t.Cleanup(fake.Close)

	c := newTestClient(t, fake.URL(), t.TempDir())
	_, err := c.Init(context.Background())
	require.NoError(t, err)
	fake.ClearRequests()

	return c, fake
}

func TestEndpointRoutes(t *testing.T) {
	c, fake := newAuthorizedClient(t)
	ctx := context.Background()

	cases := []struct {
		method string
		path   string
		body   string
		call   func() (*Result, error)
	}{
		{http.MethodGet, "/addressbooks", `{}`, func() (*Result, error) { return c.ListAddressBooks(ctx, 0, 0) }},
		{http.MethodGet, "/addressbooks", `{"limit":10,"offset":20}`, func() (*Result, error) { return c.ListAddressBooks(ctx, 10, 20) }},
		{http.MethodPost, "/addressbooks", `{"bookName":"News"}`, func() (*Result, error) { return c.CreateAddressBook(ctx, "News") }},
		{http.MethodPut, "/addressbooks/5", `{"name":"Renamed"}`, func() (*Result, error) { return c.EditAddressBook(ctx, 5, "Renamed") }},
		{http.MethodDelete, "/addressbooks/5", `{}`, func() (*Result, error) { return c.RemoveAddressBook(ctx, 5) }},
		{http.MethodGet, "/addressbooks/5/emails", `{}`, func() (*Result, error) { return c.GetEmailsFromBook(ctx, 5) }},
		{http.MethodGet, "/addressbooks/5/emails/a@b.c", `{}`, func() (*Result, error) { return c.GetEmailInfo(ctx, 5, "a@b.c") }},
		{http.MethodPost, "/addressbooks/5/emails/variable", `{"email":"a@b.c","variables":[{"name":"city","value":"Kyiv"}]}`, func() (*Result, error) {
			return c.UpdateEmailVariables(ctx, 5, "a@b.c", []Variable{{Name: "city", Value: "Kyiv"}})
		}},
		{http.MethodGet, "/addressbooks/5/cost", `{}`, func() (*Result, error) { return c.CampaignCost(ctx, 5) }},
		{http.MethodGet, "/templates", `{}`, func() (*Result, error) { return c.ListEmailTemplates(ctx) }},
		{http.MethodGet, "/template/77", `{}`, func() (*Result, error) { return c.GetEmailTemplate(ctx, "77") }},
		{http.MethodGet, "/campaigns", `{"limit":5}`, func() (*Result, error) { return c.ListCampaigns(ctx, 5, 0) }},
		{http.MethodGet, "/campaigns/9", `{}`, func() (*Result, error) { return c.GetCampaignInfo(ctx, 9) }},
		{http.MethodGet, "/campaigns/9/countries", `{}`, func() (*Result, error) { return c.CampaignStatByCountries(ctx, 9) }},
		{http.MethodGet, "/campaigns/9/referrals", `{}`, func() (*Result, error) { return c.CampaignStatByReferrals(ctx, 9) }},
		{http.MethodDelete, "/campaigns/9", `{}`, func() (*Result, error) { return c.CancelCampaign(ctx, 9) }},
		{http.MethodGet, "/senders", `{}`, func() (*Result, error) { return c.ListSenders(ctx) }},
		{http.MethodPost, "/senders", `{"email":"a@b.c","name":"Alex"}`, func() (*Result, error) { return c.AddSender(ctx, "Alex", "a@b.c") }},
		{http.MethodDelete, "/senders", `{"email":"a@b.c"}`, func() (*Result, error) { return c.RemoveSender(ctx, "a@b.c") }},
		{http.MethodPost, "/senders/a@b.c/code", `{"code":"123"}`, func() (*Result, error) { return c.ActivateSender(ctx, "a@b.c", "123") }},
		{http.MethodGet, "/senders/a@b.c/code", `{}`, func() (*Result, error) { return c.GetSenderActivationMail(ctx, "a@b.c") }},
		{http.MethodGet, "/emails/a@b.c", `{}`, func() (*Result, error) { return c.GetEmailGlobalInfo(ctx, "a@b.c") }},
		{http.MethodDelete, "/emails/a@b.c", `{}`, func() (*Result, error) { return c.RemoveEmailFromAllBooks(ctx, "a@b.c") }},
		{http.MethodGet, "/emails/a@b.c/campaigns", `{}`, func() (*Result, error) { return c.EmailStatByCampaigns(ctx, "a@b.c") }},
		{http.MethodGet, "/blacklist", `{}`, func() (*Result, error) { return c.GetBlackList(ctx) }},
		{http.MethodGet, "/balance", `{}`, func() (*Result, error) { return c.GetBalance(ctx, "") }},
		{http.MethodGet, "/balance/USD", `{}`, func() (*Result, error) { return c.GetBalance(ctx, "usd") }},
		{http.MethodGet, "/smtp/emails", `{"limit":0,"offset":0,"from":"","to":"","sender":"","recipient":"x@y.z"}`, func() (*Result, error) {
			return c.SMTPListEmails(ctx, SMTPListEmailsParams{Recipient: "x@y.z"})
		}},
		{http.MethodGet, "/smtp/emails/abc", `{}`, func() (*Result, error) { return c.SMTPGetEmailInfoByID(ctx, "abc") }},
		{http.MethodGet, "/smtp/ips", `{}`, func() (*Result, error) { return c.SMTPListIP(ctx) }},
		{http.MethodGet, "/smtp/domains", `{}`, func() (*Result, error) { return c.SMTPListAllowedDomains(ctx) }},
		{http.MethodPost, "/smtp/domains", `{"email":"a@b.c"}`, func() (*Result, error) { return c.SMTPAddDomain(ctx, "a@b.c") }},
		{http.MethodGet, "/smtp/domains/a@b.c", `{}`, func() (*Result, error) { return c.SMTPVerifyDomain(ctx, "a@b.c") }},
		{http.MethodGet, "/sms/black_list", `{}`, func() (*Result, error) { return c.SMSGetBlackList(ctx) }},
		{http.MethodGet, "/sms/numbers/info/3/380501234567", `{}`, func() (*Result, error) { return c.SMSGetPhoneInfo(ctx, 3, "380501234567") }},
		{http.MethodGet, "/sms/campaigns/list", `{"dateFrom":"2024-01-01 00:00:00"}`, func() (*Result, error) {
			return c.SMSGetListCampaigns(ctx, "2024-01-01 00:00:00", "")
		}},
		{http.MethodGet, "/sms/campaigns/info/8", `{}`, func() (*Result, error) { return c.SMSGetCampaignInfo(ctx, 8) }},
		{http.MethodPut, "/sms/campaigns/cancel/8", `{}`, func() (*Result, error) { return c.SMSCancelCampaign(ctx, 8) }},
		{http.MethodDelete, "/sms/campaigns", `{"id":8}`, func() (*Result, error) { return c.SMSDeleteCampaign(ctx, 8) }},
	}

	for _, tc := range cases {
		res, err := tc.call()
		require.NoError(t, err, "%s %s", tc.method, tc.path)
		require.Equal(t, http.StatusOK, res.StatusCode, "%s %s", tc.method, tc.path)

		req := fake.LastRequest()
		require.Equal(t, tc.method, req.Method)
		require.Equal(t, tc.path, req.Path)
		require.Equal(t, "Bearer token-1", req.Authorization)
		require.JSONEq(t, tc.body, string(req.Body), "%s %s", tc.method, tc.path)
	}
}

func TestAddEmailsSerializesList(t *testing.T) {
	c, fake := newAuthorizedClient(t)

	_, err := c.AddEmails(context.Background(), 12, []Email{
		{Email: "a@b.c", Variables: map[string]string{"name": "Ann"}},
		{Email: "d@e.f"},
	})
	require.NoError(t, err)

	req := fake.LastRequest()
	require.Equal(t, http.MethodPost, req.Method)
	require.Equal(t, "/addressbooks/12/emails", req.Path)
	require.Equal(t,
		`a:2:{i:0;a:2:{s:5:"email";s:5:"a@b.c";s:9:"variables";a:1:{s:4:"name";s:3:"Ann";}}`+
			`i:1;a:2:{s:5:"email";s:5:"d@e.f";s:9:"variables";a:0:{}}}`,
		gjson.GetBytes(req.Body, "emails").String())
}

func TestRemoveEmailsSerializesList(t *testing.T) {
	c, fake := newAuthorizedClient(t)

	_, err := c.RemoveEmails(context.Background(), 12, []string{"a@b.c"})
	require.NoError(t, err)

	req := fake.LastRequest()
	require.Equal(t, http.MethodDelete, req.Method)
	require.Equal(t, `a:1:{i:0;s:5:"a@b.c";}`, gjson.GetBytes(req.Body, "emails").String())
}

func TestCreateCampaignBody(t *testing.T) {
	c, fake := newAuthorizedClient(t)
	ctx := context.Background()

	_, err := c.CreateCampaign(ctx, CreateCampaignParams{
		SenderName:  "Alex",
		SenderEmail: "alex@example.com",
		Subject:     "Hello",
		Body:        "<h1>Hi</h1>",
		BookID:      7,
	})
	require.NoError(t, err)

	body := fake.LastRequest().Body
	require.Equal(t, base64.StdEncoding.EncodeToString([]byte("<h1>Hi</h1>")), gjson.GetBytes(body, "body").String())
	require.Equal(t, int64(7), gjson.GetBytes(body, "list_id").Int())
	require.Equal(t, "", gjson.GetBytes(body, "name").String())
	require.True(t, gjson.GetBytes(body, "attachments").Exists())
	require.Equal(t, "", gjson.GetBytes(body, "attachments").String())

	_, err = c.CreateCampaign(ctx, CreateCampaignParams{
		SenderName:  "Alex",
		SenderEmail: "alex@example.com",
		Subject:     "Hello",
		Body:        "text",
		BookIDs:     []int{1, 2},
		Name:        "Spring",
		Attachments: map[string]string{"file.txt": "hello"},
	})
	require.NoError(t, err)

	body = fake.LastRequest().Body
	require.JSONEq(t, `[1,2]`, gjson.GetBytes(body, "list_id").Raw)
	require.Equal(t, "Spring", gjson.GetBytes(body, "name").String())
	require.Equal(t, `a:1:{s:8:"file.txt";s:5:"hello";}`, gjson.GetBytes(body, "attachments").String())
}

func TestBlackListEncodesEmails(t *testing.T) {
	c, fake := newAuthorizedClient(t)
	ctx := context.Background()

	_, err := c.AddToBlackList(ctx, "a@b.c,d@e.f", "spam")
	require.NoError(t, err)
	req := fake.LastRequest()
	require.Equal(t, http.MethodPost, req.Method)
	require.Equal(t, "/blacklist", req.Path)
	require.JSONEq(t, `{"emails":"YUBiLmMsZEBlLmY=","comment":"spam"}`, string(req.Body))

	_, err = c.RemoveFromBlackList(ctx, "a@b.c")
	require.NoError(t, err)
	req = fake.LastRequest()
	require.Equal(t, http.MethodDelete, req.Method)
	require.JSONEq(t, `{"emails":"YUBiLmM="}`, string(req.Body))
}

func TestSMTPSendMail(t *testing.T) {
	c, fake := newAuthorizedClient(t)

	email := &SMTPEmail{
		HTML:    "<p>Hi</p>",
		Text:    "Hi",
		Subject: "Test",
		From:    Contact{Name: "Alex", Email: "a@b.c"},
		To:      []Contact{{Name: "Piter", Email: "p@b.c"}},
	}
	_, err := c.SMTPSendMail(context.Background(), email)
	require.NoError(t, err)

	// The caller's message is left alone
	require.Equal(t, "<p>Hi</p>", email.HTML)

	req := fake.LastRequest()
	require.Equal(t, http.MethodPost, req.Method)
	require.Equal(t, "/smtp/emails", req.Path)
	require.Equal(t,
		`a:5:{`+
			`s:4:"html";s:12:"PHA+SGk8L3A+";`+
			`s:4:"text";s:2:"Hi";`+
			`s:7:"subject";s:4:"Test";`+
			`s:4:"from";a:2:{s:4:"name";s:4:"Alex";s:5:"email";s:5:"a@b.c";}`+
			`s:2:"to";a:1:{i:0;a:2:{s:4:"name";s:5:"Piter";s:5:"email";s:5:"p@b.c";}}`+
			`}`,
		gjson.GetBytes(req.Body, "email").String())
}

func TestSMTPUnsubscribe(t *testing.T) {
	c, fake := newAuthorizedClient(t)
	ctx := context.Background()

	_, err := c.SMTPUnsubscribeEmails(ctx, []UnsubscribeEntry{{Email: "a@b.c", Comment: "bye"}})
	require.NoError(t, err)
	req := fake.LastRequest()
	require.Equal(t, http.MethodPost, req.Method)
	require.Equal(t, "/smtp/unsubscribe", req.Path)
	require.Equal(t, `a:1:{i:0;a:2:{s:5:"email";s:5:"a@b.c";s:7:"comment";s:3:"bye";}}`, gjson.GetBytes(req.Body, "emails").String())

	_, err = c.SMTPRemoveFromUnsubscribe(ctx, []string{"a@b.c"})
	require.NoError(t, err)
	req = fake.LastRequest()
	require.Equal(t, http.MethodDelete, req.Method)
	require.Equal(t, `a:1:{i:0;s:5:"a@b.c";}`, gjson.GetBytes(req.Body, "emails").String())
}

func TestSMSPhonesAreJSONText(t *testing.T) {
	c, fake := newAuthorizedClient(t)
	ctx := context.Background()

	_, err := c.SMSAddPhones(ctx, 3, []string{"380501234567", "380507654321"})
	require.NoError(t, err)
	req := fake.LastRequest()
	require.Equal(t, http.MethodPost, req.Method)
	require.Equal(t, "/sms/numbers", req.Path)
	require.JSONEq(t, `{"addressBookId":3,"phones":"[\"380501234567\",\"380507654321\"]"}`, string(req.Body))

	_, err = c.SMSRemovePhones(ctx, 3, []string{"380501234567"})
	require.NoError(t, err)
	require.Equal(t, http.MethodDelete, fake.LastRequest().Method)

	_, err = c.SMSAddPhonesWithVariables(ctx, 3, map[string][]Variable{
		"380501234567": {{Name: "name", Type: "string", Value: "Ann"}},
	})
	require.NoError(t, err)
	req = fake.LastRequest()
	require.Equal(t, "/sms/numbers/variables", req.Path)
	require.Equal(t, `{"380501234567":[{"name":"name","type":"string","value":"Ann"}]}`, gjson.GetBytes(req.Body, "phones").String())

	_, err = c.SMSUpdatePhonesVariables(ctx, 3, []string{"380501234567"}, []Variable{{Name: "age", Type: "number", Value: "30"}})
	require.NoError(t, err)
	req = fake.LastRequest()
	require.Equal(t, http.MethodPut, req.Method)
	require.Equal(t, `[{"name":"age","type":"number","value":"30"}]`, gjson.GetBytes(req.Body, "variables").String())
}

func TestSMSBlacklist(t *testing.T) {
	c, fake := newAuthorizedClient(t)
	ctx := context.Background()

	_, err := c.SMSAddPhonesToBlacklist(ctx, []string{"380501234567"}, "complaint")
	require.NoError(t, err)
	require.JSONEq(t, `{"phones":"[\"380501234567\"]","description":"complaint"}`, string(fake.LastRequest().Body))

	_, err = c.SMSGetPhonesInfoFromBlacklist(ctx, []string{"380501234567"})
	require.NoError(t, err)
	req := fake.LastRequest()
	require.Equal(t, http.MethodGet, req.Method)
	require.Equal(t, "/sms/black_list/by_numbers", req.Path)

	_, err = c.SMSDeletePhonesFromBlacklist(ctx, []string{"380501234567"})
	require.NoError(t, err)
	req = fake.LastRequest()
	require.Equal(t, http.MethodDelete, req.Method)
	require.JSONEq(t, `{"phones":"[\"380501234567\"]"}`, string(req.Body))
}

func TestSMSCampaigns(t *testing.T) {
	c, fake := newAuthorizedClient(t)
	ctx := context.Background()

	_, err := c.SMSAddCampaign(ctx, SMSCampaignParams{Sender: "Shop", BookID: 3, Body: "Sale!"})
	require.NoError(t, err)
	req := fake.LastRequest()
	require.Equal(t, "/sms/campaigns", req.Path)
	require.JSONEq(t, `{"sender":"Shop","addressBookId":3,"body":"Sale!"}`, string(req.Body))

	_, err = c.SMSSend(ctx, SMSSendParams{
		Sender:        "Shop",
		Phones:        []string{"380501234567"},
		Body:          "Hi",
		Transliterate: 1,
		Route:         map[string]string{"UA": "national"},
	})
	require.NoError(t, err)
	req = fake.LastRequest()
	require.Equal(t, "/sms/send", req.Path)
	require.JSONEq(t, `{"sender":"Shop","phones":"[\"380501234567\"]","body":"Hi","transliterate":1,"route":{"UA":"national"}}`, string(req.Body))

	// Phones alone are enough to price a campaign
	_, err = c.SMSGetCampaignCost(ctx, SMSCostParams{Sender: "Shop", Body: "Hi", Phones: []string{"380501234567"}})
	require.NoError(t, err)
	req = fake.LastRequest()
	require.Equal(t, http.MethodGet, req.Method)
	require.Equal(t, "/sms/campaigns/cost", req.Path)
	require.JSONEq(t, `{"sender":"Shop","body":"Hi","phones":"[\"380501234567\"]"}`, string(req.Body))

	_, err = c.SMSGetCampaignCost(ctx, SMSCostParams{Sender: "Shop", Body: "Hi", BookID: 3})
	require.NoError(t, err)
	require.JSONEq(t, `{"sender":"Shop","body":"Hi","addressBookId":3}`, string(fake.LastRequest().Body))
}
