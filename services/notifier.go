// services/notifier.go
package services

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"surfrepair-backend/models"
	"surfrepair-backend/utils"

	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Notifier delivers the outbound business notifications: three
// fire-and-forget webhook POSTs (new-customer welcome, new-repair
// created, repair-finished) plus an optional SMS to the customer when a
// repair is finished. Every delivery is best effort; failures are logged
// and never surfaced to the caller of the async variants.
type Notifier struct {
	client *http.Client
	log    *logrus.Logger

	newCustomerURL    string
	newRepairURL      string
	repairFinishedURL string
	reminderURL       string

	twilio     *twilio.RestClient
	twilioFrom string
}

func NewNotifier(log *logrus.Logger) *Notifier {
	n := &Notifier{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log:               log,
		newCustomerURL:    os.Getenv("WEBHOOK_NEW_CUSTOMER_URL"),
		newRepairURL:      os.Getenv("WEBHOOK_NEW_REPAIR_URL"),
		repairFinishedURL: os.Getenv("WEBHOOK_REPAIR_FINISHED_URL"),
		reminderURL:       os.Getenv("WEBHOOK_DELIVERY_REMINDER_URL"),
	}

	// SMS channel is optional; only wired when Twilio credentials are set
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	if accountSid != "" && authToken != "" {
		n.twilio = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		})
		n.twilioFrom = os.Getenv("TWILIO_PHONE_NUMBER")
	}

	return n
}

// post sends the business fields form-encoded on the query string, the
// format the automation platform receiving these hooks expects.
func (n *Notifier) post(endpoint string, params url.Values) error {
	if endpoint == "" {
		return nil // hook not configured, nothing to deliver
	}

	resp, err := n.client.Post(endpoint+"?"+params.Encode(), "application/x-www-form-urlencoded", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook failed with status: %d", resp.StatusCode)
	}
	return nil
}

// Async runs a delivery in the background, logging failures only.
func (n *Notifier) Async(name string, send func() error) {
	go func() {
		if err := send(); err != nil {
			n.log.WithError(err).WithField("notification", name).Warn("notification delivery failed")
		}
	}()
}

// SendNewCustomer delivers the welcome notification for a new customer.
func (n *Notifier) SendNewCustomer(customer *models.Customer) error {
	params := url.Values{}
	params.Set("firstname", customer.FirstName)
	params.Set("lastname", customer.LastName)
	params.Set("email", customer.Email)
	params.Set("type", customer.Type)
	params.Set("date", time.Now().UTC().Format(time.RFC3339))
	params.Set("company_name", customer.CompanyName)
	params.Set("vat_number", customer.VATNumber)

	return n.post(n.newCustomerURL, params)
}

// SendNewRepair delivers the quote confirmation for a freshly created repair.
func (n *Notifier) SendNewRepair(repair *models.Repair, customer *models.Customer) error {
	params := url.Values{}

	// Customer details
	params.Set("customer_id", customer.ID.String())
	params.Set("customer_first_name", customer.FirstName)
	params.Set("customer_last_name", customer.LastName)
	params.Set("customer_email", customer.Email)
	params.Set("customer_phone", customer.Phone)
	params.Set("customer_type", customer.Type)

	// Address details with country code
	params.Set("customer_street", customer.Street)
	params.Set("customer_city", customer.City)
	params.Set("customer_postal", customer.PostalCode)
	params.Set("customer_country", utils.CountryCode(customer.Country))

	// Company details
	params.Set("company_name", customer.CompanyName)
	params.Set("company_vat", customer.VATNumber)

	// Repair details
	params.Set("repair_id", strconv.Itoa(repair.RepairNumber))
	params.Set("board_model", repair.BoardModel)
	params.Set("delivery_date", repair.DeliveryDate.Format("2006-01-02"))
	params.Set("status", repair.Status)
	params.Set("is_direct", strconv.FormatBool(repair.IsDirect))

	// Pricing details
	params.Set("subtotal", formatPrice(repair.Subtotal))
	params.Set("discount_type", repair.DiscountType)
	params.Set("discount_value", formatPrice(repair.DiscountValue))
	params.Set("discount_amount", formatPrice(repair.DiscountAmount))
	params.Set("total_price", formatPrice(repair.Total))

	// Staff details
	params.Set("seller", repair.Seller)
	params.Set("operator", repair.Operator)

	// Timestamps
	params.Set("created_at", repair.CreatedAt.UTC().Format(time.RFC3339))

	// Repairs list
	for i, a := range repair.Annotations {
		prefix := fmt.Sprintf("repair_%d_", i+1)
		params.Set(prefix+"type", a.TypeName)
		params.Set(prefix+"quantity", strconv.Itoa(a.Quantity))
		params.Set(prefix+"location", a.Location)
		params.Set(prefix+"side", a.Side)
		params.Set(prefix+"price", formatPrice(a.UnitPrice(repair.Construction)))
	}
	params.Set("repair_count", strconv.Itoa(len(repair.Annotations)))

	return n.post(n.newRepairURL, params)
}

// SendRepairFinished notifies the customer that their board is ready.
// The webhook and the optional SMS are independent; either may fail
// without affecting the other.
func (n *Notifier) SendRepairFinished(repair *models.Repair, customer *models.Customer) error {
	params := url.Values{}
	params.Set("customer_id", customer.ID.String())
	params.Set("customer_first_name", customer.FirstName)
	params.Set("customer_last_name", customer.LastName)
	params.Set("customer_email", customer.Email)
	params.Set("customer_country", utils.CountryCode(customer.Country))
	params.Set("repair_id", strconv.Itoa(repair.RepairNumber))
	params.Set("board_model", repair.BoardModel)
	params.Set("total_price", formatPrice(repair.Total))
	params.Set("status", repair.Status)
	params.Set("seller", repair.Seller)
	params.Set("operator", repair.Operator)

	err := n.post(n.repairFinishedURL, params)

	n.sendFinishedSMS(repair, customer)

	return err
}

// SendDeliveryReminder pings the reminder hook for a repair due soon.
func (n *Notifier) SendDeliveryReminder(repair *models.Repair) error {
	params := url.Values{}
	params.Set("repair_id", strconv.Itoa(repair.RepairNumber))
	params.Set("customer_name", repair.CustomerName)
	params.Set("board_model", repair.BoardModel)
	params.Set("status", repair.Status)
	params.Set("delivery_date", repair.DeliveryDate.Format("2006-01-02"))
	params.Set("operator", repair.Operator)

	return n.post(n.reminderURL, params)
}

func (n *Notifier) sendFinishedSMS(repair *models.Repair, customer *models.Customer) {
	if n.twilio == nil || customer.Phone == "" {
		return
	}

	smsParams := &twilioApi.CreateMessageParams{}
	smsParams.SetTo(customer.Phone)
	smsParams.SetFrom(n.twilioFrom)
	smsParams.SetBody(fmt.Sprintf("Hi %s, your board %s is repaired and ready for pickup! Repair #%d",
		customer.FirstName, repair.BoardModel, repair.RepairNumber))

	if _, err := n.twilio.Api.CreateMessage(smsParams); err != nil {
		n.log.WithError(err).WithField("repair", repair.RepairNumber).Warn("finished SMS failed")
	}
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
