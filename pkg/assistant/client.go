// FILE: pkg/assistant/client.go
// PURPOSE: HTTP client for the remote document-QA assistant.
// NOTE: This is a pure I/O boundary. No conversation or dashboard
//       state lives here; callers own all local bookkeeping.

package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"
)

// Client talks to the remote assistant. Zero base URL is tolerated as
// a misconfiguration (requests become relative and fail as
// RequestError), matching how the frontend treated a missing env var.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates an assistant client. The answer endpoint can be slow
// (retrieval + generation), so the default timeout is generous.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Ask sends one question with its session correlation token and
// returns the generated answer.
func (c *Client) Ask(ctx context.Context, query, sessionID string) (*AskResponse, error) {
	payload := AskRequest{Query: query, SessionID: sessionID}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ask", bytes.NewBuffer(payloadJSON))
	if err != nil {
		return nil, &RequestError{Detail: GenericFailureMessage, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	var out AskResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadDocuments sends the given payloads as one multipart request
// with a repeated "files" field. An empty collection is rejected
// locally before any network call.
func (c *Client) UploadDocuments(ctx context.Context, files []FilePayload) (*UploadResponse, error) {
	if len(files) == 0 {
		return nil, &ValidationError{Message: "no files selected"}
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for _, f := range files {
		part, err := writer.CreateFormFile("files", f.Name)
		if err != nil {
			return nil, fmt.Errorf("create form file: %w", err)
		}
		if _, err := part.Write(f.Content); err != nil {
			return nil, fmt.Errorf("write form file: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/uploads", &body)
	if err != nil {
		return nil, &RequestError{Detail: GenericFailureMessage, Err: err}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var out UploadResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListDocuments fetches the server-side file names and the backend's
// authoritative count.
func (c *Client) ListDocuments(ctx context.Context) (*ListFilesResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/files", nil)
	if err != nil {
		return nil, &RequestError{Detail: GenericFailureMessage, Err: err}
	}

	var out ListFilesResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteDocument removes a single document by name.
func (c *Client) DeleteDocument(ctx context.Context, name string) (*DeleteResponse, error) {
	endpoint := c.baseURL + "/delete/" + url.PathEscape(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return nil, &RequestError{Detail: GenericFailureMessage, Err: err}
	}

	var out DeleteResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResetAllDocuments wipes every document plus the backend index and
// cache. Destructive; callers gate this behind explicit confirmation.
func (c *Client) ResetAllDocuments(ctx context.Context) (*ResetResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/delete-all", nil)
	if err != nil {
		return nil, &RequestError{Detail: GenericFailureMessage, Err: err}
	}

	var out ResetResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do executes a request and decodes a 2xx JSON body into out. Every
// failure surfaces as a typed error; an undecodable success body is
// treated the same as a request failure with the generic message.
func (c *Client) do(req *http.Request, out any) error {
	res, err := c.httpClient.Do(req)
	if err != nil {
		return &RequestError{Detail: GenericFailureMessage, Err: err}
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return &RequestError{StatusCode: res.StatusCode, Detail: GenericFailureMessage, Err: err}
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &RequestError{StatusCode: res.StatusCode, Detail: extractDetail(resBody)}
	}

	if err := json.Unmarshal(resBody, out); err != nil {
		return &RequestError{StatusCode: res.StatusCode, Detail: GenericFailureMessage, Err: err}
	}
	return nil
}
