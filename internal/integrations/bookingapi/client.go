package bookingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	opListBookings        = "list_bookings"
	opListPendingBookings = "list_pending_bookings"
	opCreateBooking       = "create_booking"
	opUpdateStatus        = "update_booking_status"
	opDeleteBooking       = "delete_booking"

	// maxErrorBody ограничение на чтение тела ошибки
	maxErrorBody = 64 << 10
)

// Client клиент для работы с Booking API
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
	metrics    Metrics
}

// NewClient создает новый экземпляр клиента Booking API.
// metrics может быть nil
func NewClient(baseURL string, timeout time.Duration, log Logger, metrics Metrics) *Client {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log:     log,
		metrics: metrics,
	}
}

// ListBookings получает бронирования по фильтру (GET /bookings)
func (c *Client) ListBookings(ctx context.Context, token string, filter ListFilter) ([]Booking, error) {
	query := url.Values{}
	if filter.FieldType != "" {
		query.Set("field_type", filter.FieldType)
	}
	if filter.Date != "" {
		query.Set("date", filter.Date)
	}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}
	if filter.Mine {
		query.Set("mine", "true")
	}

	var resp listBookingsResponse
	if err := c.do(ctx, opListBookings, http.MethodGet, "/bookings", query, token, nil, &resp); err != nil {
		return nil, err
	}

	return resp.Bookings, nil
}

// ListPendingBookings получает бронирования, ожидающие решения администратора (GET /bookings/pending)
func (c *Client) ListPendingBookings(ctx context.Context, token string) ([]Booking, error) {
	var resp listBookingsResponse
	if err := c.do(ctx, opListPendingBookings, http.MethodGet, "/bookings/pending", nil, token, nil, &resp); err != nil {
		return nil, err
	}

	return resp.Bookings, nil
}

// CreateBooking создает бронирование одного слота (POST /bookings)
func (c *Client) CreateBooking(ctx context.Context, token string, req CreateBookingRequest) (*Booking, error) {
	var created Booking
	if err := c.do(ctx, opCreateBooking, http.MethodPost, "/bookings", nil, token, req, &created); err != nil {
		return nil, err
	}

	return &created, nil
}

// UpdateBookingStatus меняет статус бронирования (PATCH /bookings/{id}/status), только для администратора
func (c *Client) UpdateBookingStatus(ctx context.Context, token string, id int64, status string) (*Booking, error) {
	path := fmt.Sprintf("/bookings/%d/status", id)

	var updated Booking
	if err := c.do(ctx, opUpdateStatus, http.MethodPatch, path, nil, token, updateStatusRequest{Status: status}, &updated); err != nil {
		return nil, err
	}

	return &updated, nil
}

// DeleteBooking удаляет бронирование (DELETE /bookings/{id})
func (c *Client) DeleteBooking(ctx context.Context, token string, id int64) error {
	path := fmt.Sprintf("/bookings/%d", id)
	return c.do(ctx, opDeleteBooking, http.MethodDelete, path, nil, token, nil, nil)
}

// do выполняет запрос и декодирует ответ в out (если out != nil)
func (c *Client) do(
	ctx context.Context,
	operation string,
	method string,
	path string,
	query url.Values,
	token string,
	body interface{},
	out interface{},
) (err error) {
	started := time.Now()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		c.metrics.ObserveClientCall(operation, outcome, time.Since(started))
	}()

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newAPIError(resp.StatusCode, readErrorMessage(resp.Body))
		c.log.Warn("BookingAPI: %s %s -> %d: %s", method, path, resp.StatusCode, apiErr.Message)
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}

// readErrorMessage достает message из тела ошибки; если тело не JSON, возвращает его текст
func readErrorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(raw, &errResp); err == nil && errResp.Message != "" {
		return errResp.Message
	}

	return strings.TrimSpace(string(raw))
}
