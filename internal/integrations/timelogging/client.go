package timelogging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultRequestTimeout = 5 * time.Second

// openEntryRequest запрос на открытие проводки учёта времени
type openEntryRequest struct {
	AppointmentID string    `json:"appointmentId"`
	EmployeeID    string    `json:"employeeId"`
	StartedAt     time.Time `json:"startedAt"`
}

// openEntryResponse ответ сервиса учёта времени на открытие проводки
type openEntryResponse struct {
	EntryID string `json:"entryId"`
}

// closeEntryRequest запрос на закрытие проводки с итоговыми часами
type closeEntryRequest struct {
	EndedAt     time.Time `json:"endedAt"`
	HoursWorked float64   `json:"hoursWorked"`
}

// Client HTTP-клиент сервиса учёта рабочего времени.
// Учёт времени вторичен по отношению к сессиям: вызовы выполняются
// best-effort, сбой внешнего сервиса не должен ломать clock-in/clock-out
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     Logger
}

// NewClient создает новый клиент сервиса учёта времени
func NewClient(baseURL string, logger Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
		logger:     logger,
	}
}

// OpenEntry открывает проводку учёта времени и возвращает её ID
func (c *Client) OpenEntry(ctx context.Context, appointmentID, employeeID string, startedAt time.Time) (string, error) {
	var resp openEntryResponse
	url := fmt.Sprintf("%s/api/time-logs", c.baseURL)

	err := c.doJSON(ctx, http.MethodPost, url, openEntryRequest{
		AppointmentID: appointmentID,
		EmployeeID:    employeeID,
		StartedAt:     startedAt,
	}, &resp)
	if err != nil {
		return "", err
	}

	c.logger.Debug("opened time log entry %s for appointment %s", resp.EntryID, appointmentID)
	return resp.EntryID, nil
}

// CloseEntry закрывает проводку учёта времени с итоговыми часами
func (c *Client) CloseEntry(ctx context.Context, entryID string, endedAt time.Time, hoursWorked float64) error {
	url := fmt.Sprintf("%s/api/time-logs/%s/close", c.baseURL, entryID)

	err := c.doJSON(ctx, http.MethodPost, url, closeEntryRequest{
		EndedAt:     endedAt,
		HoursWorked: hoursWorked,
	}, nil)
	if err != nil {
		return err
	}

	c.logger.Debug("closed time log entry %s with %.2f hours", entryID, hoursWorked)
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, url string, reqBody, respBody interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, defaultRequestTimeout)
	defer cancel()

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("%w: marshal request: %v", ErrRequestFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	if respBody != nil {
		if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
			return fmt.Errorf("%w: %v", ErrDecodeResponse, err)
		}
	}

	return nil
}
