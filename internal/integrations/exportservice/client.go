package exportservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/requestid"
)

// Client клиент для работы с внешним сервисом экспорта
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса экспорта
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// StartExportJob запускает задачу экспорта и возвращает её идентификатор
func (c *Client) StartExportJob(ctx context.Context, format string, filters ExportFilters) (string, error) {
	body, err := json.Marshal(StartExportRequest{Format: format, Filters: filters})
	if err != nil {
		return "", fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	resp, err := c.do(ctx, http.MethodPost, c.baseURL+"/exports/reservations", body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return "", fmt.Errorf("%w: %s", ErrBadRequest, readErrorMessage(resp.Body))
	default:
		return "", fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, readErrorMessage(resp.Body))
	}

	var started StartExportResponse
	if err := json.NewDecoder(resp.Body).Decode(&started); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.log.Info("ExportService: started job=%s format=%s", started.JobID, format)
	return started.JobID, nil
}

// GetExportJobStatus получает текущий статус задачи
func (c *Client) GetExportJobStatus(ctx context.Context, jobID string) (*domain.ExportJob, error) {
	resp, err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/exports/%s/status", c.baseURL, url.PathEscape(jobID)), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: job=%s", ErrJobNotFound, jobID)
	default:
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, readErrorMessage(resp.Body))
	}

	var status JobStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if status.JobID == "" {
		status.JobID = jobID
	}

	job := status.ToDomain()
	if !job.Status.IsKnown() {
		return nil, fmt.Errorf("%w: unknown job status %q", ErrInvalidResponse, status.Status)
	}

	return job, nil
}

// GetExportDownloadURL получает ссылку на файл завершенной задачи
func (c *Client) GetExportDownloadURL(ctx context.Context, jobID string) (*domain.ExportDownload, error) {
	resp, err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/exports/%s/download", c.baseURL, url.PathEscape(jobID)), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: job=%s", ErrJobNotFound, jobID)
	case http.StatusConflict:
		return nil, fmt.Errorf("%w: job=%s", ErrNotReady, jobID)
	default:
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, readErrorMessage(resp.Body))
	}

	var download DownloadResponse
	if err := json.NewDecoder(resp.Body).Decode(&download); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &domain.ExportDownload{URL: download.DownloadURL, FileName: download.FileName}, nil
}

func (c *Client) do(ctx context.Context, method, target string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(requestid.Header, requestid.FromContextOrNew(ctx))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}

	return resp, nil
}

// readErrorMessage достает сообщение из тела ошибки, если оно в формате ErrorResponse
func readErrorMessage(body io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(body, 4096))

	var errResp ErrorResponse
	if err := json.Unmarshal(data, &errResp); err == nil && errResp.Message != "" {
		return errResp.Message
	}
	return string(data)
}
