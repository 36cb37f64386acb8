// Package apiclient is a Go client for the order intake API. It carries the
// admin front-end flows: login and session guarding, the single-attempt
// order submit, image upload, and partner-code order tracking.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/incogni100x/jltstones/pkg/codegen"
)

// ErrSubmitInFlight is returned when a submit starts while another one is
// still running. The form keeps exactly one attempt alive at a time.
var ErrSubmitInFlight = errors.New("an order submission is already in progress")

type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	mu         sync.Mutex
	submitting bool

	token   string
	session *Session

	// PartnerCode is pre-generated for the next order, like the intake
	// form pre-fills its code field.
	PartnerCode string

	uploadedImageURL string
	trackedOrder     *Order
}

// Session is the client-side mirror of the server session: one explicit
// identity object instead of scattered logged-in flags.
type Session struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Order is the wire shape of an order as the API returns it.
type Order struct {
	ID                 uint      `json:"id"`
	OrderNumber        string    `json:"order_number"`
	PartnerCode        string    `json:"partner_code"`
	OrderDate          string    `json:"order_date"`
	PartnerName        string    `json:"partner_name"`
	ISO                string    `json:"iso"`
	SalesPerson        string    `json:"sales_person"`
	Manager            string    `json:"manager"`
	PaymentType        string    `json:"payment_type"`
	DistributionCarat  float64   `json:"distribution_carat"`
	ExternalEmployees  int       `json:"external_employees"`
	StoneName          string    `json:"stone_name"`
	QuantityCarat      float64   `json:"quantity_carat"`
	PurchasePrice      float64   `json:"purchase_price"`
	MarketSellingPrice float64   `json:"market_selling_price"`
	ProfitPerCarat     float64   `json:"profit_per_carat"`
	TotalProfit        float64   `json:"total_profit"`
	UserImageURL       string    `json:"user_image_url"`
	CreatedAt          time.Time `json:"created_at"`
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		PartnerCode: codegen.GeneratePartnerCode(),
	}
}

// CurrentSession returns the mirrored identity, or nil when unauthenticated.
func (c *Client) CurrentSession() *Session {
	return c.session
}

// Login authenticates and stores the issued bearer token.
func (c *Client) Login(ctx context.Context, username, password string) error {
	body, _ := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})

	var result struct {
		Success bool     `json:"success"`
		Token   string   `json:"token"`
		User    *Session `json:"user"`
		Error   string   `json:"error"`
	}
	status, err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", body, &result)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return apiError(result.Error, status)
	}

	c.token = result.Token
	c.session = result.User
	return nil
}

// CheckAuth asks the server whether the session is still alive. On success
// the identity is mirrored locally; otherwise any local session state is
// dropped and the caller should send the user to the login page.
func (c *Client) CheckAuth(ctx context.Context) (bool, error) {
	if c.token == "" {
		c.session = nil
		return false, nil
	}

	var result struct {
		Success bool     `json:"success"`
		User    *Session `json:"user"`
	}
	status, err := c.doJSON(ctx, http.MethodGet, "/api/auth/session", nil, &result)
	if err != nil {
		return false, err
	}
	if status != http.StatusOK {
		c.token = ""
		c.session = nil
		return false, nil
	}

	c.session = result.User
	return true, nil
}

// SignOut ends the server session. Local state is cleared even when the
// request fails; locally the user is signed out regardless.
func (c *Client) SignOut(ctx context.Context) error {
	_, err := c.doJSON(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
	c.token = ""
	c.session = nil
	return err
}

// FormValues holds the intake form fields exactly as entered: numeric
// fields stay strings until submit coerces them.
type FormValues struct {
	Date              string
	PartnerCode       string
	PartnerName       string
	ISO               string
	SalesPerson       string
	Manager           string
	PaymentType       string
	Distribution      string
	ExternalEmployees string
	StoneName         string
	Quantity          string
	PurchasePrice     string
	MarketPrice       string
}

type SubmitResult struct {
	OrderNumber string
	PartnerCode string
	Order       *Order
	Message     string
}

// SubmitOrder performs one submit attempt: coerce field values, attach any
// previously uploaded image, post to the create endpoint. On success the
// pre-generated partner code is rolled for the next entry; on failure the
// caller's form values are untouched so the user can retry.
func (c *Client) SubmitOrder(ctx context.Context, form FormValues) (*SubmitResult, error) {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	c.submitting = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.submitting = false
		c.mu.Unlock()
	}()

	payload, err := c.buildPayload(form)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	var result struct {
		Success bool   `json:"success"`
		Order   *Order `json:"order"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	status, err := c.doJSON(ctx, http.MethodPost, "/functions/v1/create-order", body, &result)
	if err != nil {
		return nil, err
	}
	if status != http.StatusCreated {
		return nil, apiError(result.Error, status)
	}

	// Ready the form for the next entry.
	c.uploadedImageURL = ""
	c.PartnerCode = codegen.GeneratePartnerCode()

	return &SubmitResult{
		OrderNumber: result.Order.OrderNumber,
		PartnerCode: result.Order.PartnerCode,
		Order:       result.Order,
		Message:     result.Message,
	}, nil
}

func (c *Client) buildPayload(form FormValues) (map[string]interface{}, error) {
	distribution, err := parseFloatField("distribution_carat", form.Distribution)
	if err != nil {
		return nil, err
	}
	quantity, err := parseFloatField("quantity_carat", form.Quantity)
	if err != nil {
		return nil, err
	}
	purchase, err := parseFloatField("purchase_price", form.PurchasePrice)
	if err != nil {
		return nil, err
	}
	market, err := parseFloatField("market_selling_price", form.MarketPrice)
	if err != nil {
		return nil, err
	}
	employees, err := parseIntField("external_employees", form.ExternalEmployees)
	if err != nil {
		return nil, err
	}

	partnerCode := form.PartnerCode
	if partnerCode == "" {
		partnerCode = c.PartnerCode
	}

	payload := map[string]interface{}{
		"order_date":           form.Date,
		"partner_code":         partnerCode,
		"partner_name":         form.PartnerName,
		"iso":                  form.ISO,
		"sales_person":         form.SalesPerson,
		"manager":              form.Manager,
		"payment_type":         form.PaymentType,
		"distribution_carat":   distribution,
		"external_employees":   employees,
		"stone_name":           form.StoneName,
		"quantity_carat":       quantity,
		"purchase_price":       purchase,
		"market_selling_price": market,
	}
	if c.uploadedImageURL != "" {
		payload["user_image_url"] = c.uploadedImageURL
	}
	return payload, nil
}

// UploadImage sends the file to the upload endpoint and remembers the
// returned URL for the next submit.
func (c *Client) UploadImage(ctx context.Context, filename string, reader io.Reader) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, reader); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/orders/image", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var result struct {
		Success bool   `json:"success"`
		URL     string `json:"url"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusCreated {
		return "", apiError(result.Error, resp.StatusCode)
	}

	c.uploadedImageURL = result.URL
	return result.URL, nil
}

// TrackOrder looks an order up by partner code and stashes it for a single
// later read by the order display page.
func (c *Client) TrackOrder(ctx context.Context, partnerCode string) (*Order, error) {
	partnerCode = strings.TrimSpace(partnerCode)
	if partnerCode == "" {
		return nil, errors.New("please enter a partner code")
	}

	path := "/functions/v1/get-order?partner_code=" + url.QueryEscape(partnerCode)
	var result struct {
		Success bool   `json:"success"`
		Order   *Order `json:"order"`
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	status, err := c.doJSON(ctx, http.MethodGet, path, nil, &result)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		if result.Message != "" {
			return nil, errors.New(result.Message)
		}
		return nil, apiError(result.Error, status)
	}

	c.trackedOrder = result.Order
	return result.Order, nil
}

// ConsumeTrackedOrder returns the stashed order exactly once.
func (c *Client) ConsumeTrackedOrder() (*Order, bool) {
	order := c.trackedOrder
	c.trackedOrder = nil
	if order == nil {
		return nil, false
	}
	return order, true
}

func (c *Client) doJSON(ctx context.Context, method, path string, body []byte, out interface{}) (int, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
			return resp.StatusCode, err
		}
	}
	return resp.StatusCode, nil
}

func parseFloatField(field, value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %q", field, value)
	}
	return v, nil
}

func parseIntField(field, value string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %q", field, value)
	}
	return v, nil
}

func apiError(message string, status int) error {
	if message == "" {
		message = fmt.Sprintf("request failed with status %d", status)
	}
	return errors.New(message)
}
