package smsgateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Config параметры подключения к SMS-шлюзу (Twilio-совместимый REST API)
type Config struct {
	BaseURL           string
	AccountSID        string
	AuthToken         string
	FromNumber        string
	CountryCode       string // например "+27"
	RequestsPerMinute int
	Timeout           time.Duration
}

// Client клиент для отправки SMS
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
	log        Logger
}

// NewClient создает новый экземпляр клиента SMS-шлюза
func NewClient(cfg Config, log Logger) *Client {
	rpm := cfg.RequestsPerMinute
	if rpm < 1 {
		rpm = 1
	}

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1),
		log:     log,
	}
}

// IsConfigured возвращает true, если заданы учётные данные и номер отправителя
func (c *Client) IsConfigured() bool {
	return c.cfg.AccountSID != "" && c.cfg.AuthToken != "" && c.cfg.FromNumber != ""
}

// SendMessage отправляет SMS и возвращает ответ шлюза
// Перед запросом ожидает слот лимитера
func (c *Client) SendMessage(ctx context.Context, to string, body string) (*MessageResponse, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}

	phone := NormalizePhone(to, c.cfg.CountryCode)
	if phone == "" {
		return nil, ErrInvalidPhone
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRateLimited, err)
	}

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json",
		strings.TrimRight(c.cfg.BaseURL, "/"), url.PathEscape(c.cfg.AccountSID))

	form := url.Values{}
	form.Set("To", phone)
	form.Set("From", c.cfg.FromNumber)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.cfg.AccountSID, c.cfg.AuthToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// Продолжаем обработку
	default:
		body, _ := io.ReadAll(resp.Body)
		var gwErr ErrorResponse
		if json.Unmarshal(body, &gwErr) == nil && gwErr.Message != "" {
			return nil, fmt.Errorf("%w: status %d, code %d: %s", ErrInvalidResponse, resp.StatusCode, gwErr.Code, gwErr.Message)
		}
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var msg MessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&msg); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &msg, nil
}

// Send отправляет SMS и сообщает только об успехе
// Ненастроенный шлюз и любые ошибки доставки дают false, ошибки логируются
func (c *Client) Send(ctx context.Context, to string, body string) bool {
	if !c.IsConfigured() {
		c.log.Warn("SMS gateway not configured, message to %s skipped", maskPhone(to))
		return false
	}

	msg, err := c.SendMessage(ctx, to, body)
	if err != nil {
		c.log.Error("Failed to send SMS to %s: %v", maskPhone(to), err)
		return false
	}

	c.log.Info("SMS sent to %s, sid=%s, status=%s", maskPhone(msg.To), msg.SID, msg.Status)
	return true
}

// NormalizePhone приводит локальный номер к международному формату
//
//	"0821234567"   -> "+27821234567"
//	"821234567"    -> "+27821234567"
//	"+27821234567" -> без изменений
//
// Номера с другим международным префиксом ("+44...") не меняются
func NormalizePhone(phone string, countryCode string) string {
	phone = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(phone))
	if phone == "" {
		return ""
	}

	switch {
	case strings.HasPrefix(phone, "+"):
		return phone
	case strings.HasPrefix(phone, "0"):
		return countryCode + phone[1:]
	default:
		return countryCode + phone
	}
}

// maskPhone скрывает номер в логах, оставляя последние 4 цифры
func maskPhone(phone string) string {
	if len(phone) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
}
