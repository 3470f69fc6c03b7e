package sendpulse

import "context"

// SendPulseClient defines the interface for SendPulse API operations
type SendPulseClient interface {
	// Init loads the cached token or fetches a new one
	Init(ctx context.Context) (string, error)

	// FetchToken requests, persists and activates a new access token
	FetchToken(ctx context.Context) (string, error)

	// Request sends an arbitrary call, refreshing the token once on 401
	Request(ctx context.Context, path, method string, body interface{}, requiresAuth bool) (*Result, error)

	// Address books
	ListAddressBooks(ctx context.Context, limit, offset int) (*Result, error)
	CreateAddressBook(ctx context.Context, name string) (*Result, error)
	EditAddressBook(ctx context.Context, id int, name string) (*Result, error)
	RemoveAddressBook(ctx context.Context, id int) (*Result, error)
	GetBookInfo(ctx context.Context, id int) (*Result, error)
	GetBooksInfo(ctx context.Context, ids []int) ([]*Result, error)
	GetEmailsFromBook(ctx context.Context, id int) (*Result, error)
	AddEmails(ctx context.Context, id int, emails []Email) (*Result, error)
	RemoveEmails(ctx context.Context, id int, emails []string) (*Result, error)
	GetEmailInfo(ctx context.Context, id int, email string) (*Result, error)
	UpdateEmailVariables(ctx context.Context, id int, email string, variables []Variable) (*Result, error)
	CampaignCost(ctx context.Context, id int) (*Result, error)

	// Templates and campaigns
	ListEmailTemplates(ctx context.Context) (*Result, error)
	GetEmailTemplate(ctx context.Context, id string) (*Result, error)
	ListCampaigns(ctx context.Context, limit, offset int) (*Result, error)
	GetCampaignInfo(ctx context.Context, id int) (*Result, error)
	CampaignStatByCountries(ctx context.Context, id int) (*Result, error)
	CampaignStatByReferrals(ctx context.Context, id int) (*Result, error)
	CreateCampaign(ctx context.Context, params CreateCampaignParams) (*Result, error)
	CancelCampaign(ctx context.Context, id int) (*Result, error)

	// Senders
	ListSenders(ctx context.Context) (*Result, error)
	AddSender(ctx context.Context, name, email string) (*Result, error)
	RemoveSender(ctx context.Context, email string) (*Result, error)
	ActivateSender(ctx context.Context, email, code string) (*Result, error)
	GetSenderActivationMail(ctx context.Context, email string) (*Result, error)

	// Emails, blacklist and balance
	GetEmailGlobalInfo(ctx context.Context, email string) (*Result, error)
	RemoveEmailFromAllBooks(ctx context.Context, email string) (*Result, error)
	EmailStatByCampaigns(ctx context.Context, email string) (*Result, error)
	GetBlackList(ctx context.Context) (*Result, error)
	AddToBlackList(ctx context.Context, emails, comment string) (*Result, error)
	RemoveFromBlackList(ctx context.Context, emails string) (*Result, error)
	GetBalance(ctx context.Context, currency string) (*Result, error)

	// SMTP
	SMTPListEmails(ctx context.Context, params SMTPListEmailsParams) (*Result, error)
	SMTPGetEmailInfoByID(ctx context.Context, id string) (*Result, error)
	SMTPUnsubscribeEmails(ctx context.Context, emails []UnsubscribeEntry) (*Result, error)
	SMTPRemoveFromUnsubscribe(ctx context.Context, emails []string) (*Result, error)
	SMTPListIP(ctx context.Context) (*Result, error)
	SMTPListAllowedDomains(ctx context.Context) (*Result, error)
	SMTPAddDomain(ctx context.Context, email string) (*Result, error)
	SMTPVerifyDomain(ctx context.Context, email string) (*Result, error)
	SMTPSendMail(ctx context.Context, email *SMTPEmail) (*Result, error)

	// SMS
	SMSAddPhones(ctx context.Context, bookID int, phones []string) (*Result, error)
	SMSAddPhonesWithVariables(ctx context.Context, bookID int, phones map[string][]Variable) (*Result, error)
	SMSRemovePhones(ctx context.Context, bookID int, phones []string) (*Result, error)
	SMSGetBlackList(ctx context.Context) (*Result, error)
	SMSGetPhoneInfo(ctx context.Context, bookID int, phone string) (*Result, error)
	SMSUpdatePhonesVariables(ctx context.Context, bookID int, phones []string, variables []Variable) (*Result, error)
	SMSGetPhonesInfoFromBlacklist(ctx context.Context, phones []string) (*Result, error)
	SMSAddPhonesToBlacklist(ctx context.Context, phones []string, comment string) (*Result, error)
	SMSDeletePhonesFromBlacklist(ctx context.Context, phones []string) (*Result, error)
	SMSAddCampaign(ctx context.Context, params SMSCampaignParams) (*Result, error)
	SMSSend(ctx context.Context, params SMSSendParams) (*Result, error)
	SMSGetListCampaigns(ctx context.Context, dateFrom, dateTo string) (*Result, error)
	SMSGetCampaignInfo(ctx context.Context, id int) (*Result, error)
	SMSCancelCampaign(ctx context.Context, id int) (*Result, error)
	SMSGetCampaignCost(ctx context.Context, params SMSCostParams) (*Result, error)
	SMSDeleteCampaign(ctx context.Context, id int) (*Result, error)
}
