package sendpulse

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/julienschmidt/httprouter"
)

type fakeRequest struct {
	Method        string
	Path          string
	Authorization string
	ContentLength int64
	Body          []byte
}

type fakeReply func(r fakeRequest) (int, string)

// FakeSendPulse is an in-process SendPulse API. Every token it issues stays
// valid; any other bearer token gets a 401.
type FakeSendPulse struct {
	srv *httptest.Server

	mu         sync.Mutex
	requests   []fakeRequest
	issued     map[string]bool
	tokenCount int
	tokenReply fakeReply
	apiReply   fakeReply
}

var fakeRoutes = []struct {
	method string
	path   string
}{
	{http.MethodGet, "/addressbooks"},
	{http.MethodPost, "/addressbooks"},
	{http.MethodPut, "/addressbooks/:id"},
	{http.MethodDelete, "/addressbooks/:id"},
	{http.MethodGet, "/addressbooks/:id/emails"},
	{http.MethodPost, "/addressbooks/:id/emails"},
	{http.MethodDelete, "/addressbooks/:id/emails"},
	{http.MethodGet, "/addressbooks/:id/emails/:email"},
	{http.MethodPost, "/addressbooks/:id/emails/variable"},
	{http.MethodGet, "/addressbooks/:id/cost"},
	{http.MethodGet, "/templates"},
	{http.MethodGet, "/template/:id"},
	{http.MethodGet, "/campaigns"},
	{http.MethodPost, "/campaigns"},
	{http.MethodGet, "/campaigns/:id"},
	{http.MethodDelete, "/campaigns/:id"},
	{http.MethodGet, "/campaigns/:id/countries"},
	{http.MethodGet, "/campaigns/:id/referrals"},
	{http.MethodGet, "/senders"},
	{http.MethodPost, "/senders"},
	{http.MethodDelete, "/senders"},
	{http.MethodGet, "/senders/:email/code"},
	{http.MethodPost, "/senders/:email/code"},
	{http.MethodGet, "/emails/:email"},
	{http.MethodDelete, "/emails/:email"},
	{http.MethodGet, "/emails/:email/campaigns"},
	{http.MethodGet, "/blacklist"},
	{http.MethodPost, "/blacklist"},
	{http.MethodDelete, "/blacklist"},
	{http.MethodGet, "/balance"},
	{http.MethodGet, "/balance/:currency"},
	{http.MethodGet, "/smtp/emails"},
	{http.MethodPost, "/smtp/emails"},
	{http.MethodGet, "/smtp/emails/:id"},
	{http.MethodPost, "/smtp/unsubscribe"},
	{http.MethodDelete, "/smtp/unsubscribe"},
	{http.MethodGet, "/smtp/ips"},
	{http.MethodGet, "/smtp/domains"},
	{http.MethodPost, "/smtp/domains"},
	{http.MethodGet, "/smtp/domains/:email"},
	{http.MethodPost, "/sms/numbers"},
	{http.MethodPut, "/sms/numbers"},
	{http.MethodDelete, "/sms/numbers"},
	{http.MethodPost, "/sms/numbers/variables"},
	{http.MethodGet, "/sms/numbers/info/:book/:phone"},
	{http.MethodGet, "/sms/black_list"},
	{http.MethodPost, "/sms/black_list"},
	{http.MethodDelete, "/sms/black_list"},
	{http.MethodGet, "/sms/black_list/by_numbers"},
	{http.MethodPost, "/sms/campaigns"},
	{http.MethodDelete, "/sms/campaigns"},
	{http.MethodGet, "/sms/campaigns/list"},
	{http.MethodGet, "/sms/campaigns/info/:id"},
	{http.MethodPut, "/sms/campaigns/cancel/:id"},
	{http.MethodGet, "/sms/campaigns/cost"},
	{http.MethodPost, "/sms/send"},
}

func NewFakeSendPulse() *FakeSendPulse {
	router := httprouter.New()
	router.HandleMethodNotAllowed = false

	fake := &FakeSendPulse{
		issued: make(map[string]bool),
	}
	fake.srv = httptest.NewServer(router)

	router.POST("/oauth/access_token", func(rw http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		req := fake.record(r)

		fake.mu.Lock()
		fake.tokenCount++
		n := fake.tokenCount
		reply := fake.tokenReply
		fake.mu.Unlock()

		if reply != nil {
			status, body := reply(req)
			writeJSON(rw, status, body)
			return
		}

		var grant AuthRequest
		if err := json.Unmarshal(req.Body, &grant); err != nil || grant.GrantType != "client_credentials" {
			writeJSON(rw, http.StatusBadRequest, `{"error":"invalid_request"}`)
			return
		}

		token := fmt.Sprintf("token-%d", n)
		fake.mu.Lock()
		fake.issued[token] = true
		fake.mu.Unlock()

		writeJSON(rw, http.StatusOK, fmt.Sprintf(`{"access_token":%q,"token_type":"Bearer","expires_in":3600}`, token))
	})

	router.GET("/addressbooks/:id", func(rw http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		id := ps.ByName("id")
		fake.serveAPI(rw, r, fmt.Sprintf(`[{"id":%s,"name":"Book %s","all_email_qty":3}]`, id, id))
	})
	for _, route := range fakeRoutes {
		router.Handle(route.method, route.path, func(rw http.ResponseWriter, r *http.Request, _ httprouter.Params) {
			fake.serveAPI(rw, r, `{"result":true}`)
		})
	}
	router.NotFound = http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		fake.serveAPI(rw, r, `{"result":true}`)
	})

	return fake
}

func (f *FakeSendPulse) URL() string {
	return f.srv.URL
}

func (f *FakeSendPulse) Close() {
	f.srv.Close()
}

// SetTokenReply overrides the token endpoint.
func (f *FakeSendPulse) SetTokenReply(reply fakeReply) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokenReply = reply
}

// SetAPIReply overrides every endpoint except the token endpoint.
func (f *FakeSendPulse) SetAPIReply(reply fakeReply) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.apiReply = reply
}

func (f *FakeSendPulse) Requests() []fakeRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]fakeRequest(nil), f.requests...)
}

func (f *FakeSendPulse) LastRequest() fakeRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return fakeRequest{}
	}
	return f.requests[len(f.requests)-1]
}

func (f *FakeSendPulse) TokenRequests() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tokenCount
}

// ClearRequests forgets recorded requests but keeps issued tokens.
func (f *FakeSendPulse) ClearRequests() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = nil
}

func (f *FakeSendPulse) record(r *http.Request) fakeRequest {
	body, _ := io.ReadAll(r.Body)
	req := fakeRequest{
		Method:        r.Method,
		Path:          r.URL.Path,
		Authorization: r.Header.Get("Authorization"),
		ContentLength: r.ContentLength,
		Body:          body,
	}

	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	return req
}

func (f *FakeSendPulse) serveAPI(rw http.ResponseWriter, r *http.Request, success string) {
	req := f.record(r)

	f.mu.Lock()
	reply := f.apiReply
	authorized := f.issued[strings.TrimPrefix(req.Authorization, "Bearer ")]
	f.mu.Unlock()

	if reply != nil {
		status, body := reply(req)
		writeJSON(rw, status, body)
		return
	}

	if !authorized {
		writeJSON(rw, http.StatusUnauthorized, `{"error":"invalid_token","error_description":"The access token provided is invalid"}`)
		return
	}

	writeJSON(rw, http.StatusOK, success)
}

func writeJSON(rw http.ResponseWriter, status int, body string) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	_, _ = io.WriteString(rw, body)
}
