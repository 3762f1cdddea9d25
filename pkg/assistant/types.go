// FILE: pkg/assistant/types.go
// PURPOSE: Wire types for the remote document-QA assistant API.

package assistant

// ============================================================
// ASK
// ============================================================

// AskRequest is the payload for POST {base}/ask
type AskRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id"`
}

// TokenUsage reports prompt/completion token counts for one answer.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Pricing is the per-million-token price sheet the backend applied.
type Pricing struct {
	InputPricePerMillion  float64 `json:"input_price_per_million"`
	OutputPricePerMillion float64 `json:"output_price_per_million"`
}

// CostEstimate is the backend's USD cost breakdown for one answer.
type CostEstimate struct {
	InputCost  float64 `json:"input_cost"`
	OutputCost float64 `json:"output_cost"`
	TotalCost  float64 `json:"total_cost"`
}

// Metadata carries usage accounting for a single generated answer.
// Every field group is optional: older backend versions omit pricing
// and cost, and bypass answers omit the block entirely.
type Metadata struct {
	ModelUsed       string        `json:"model_used,omitempty"`
	TokenUsage      *TokenUsage   `json:"token_usage,omitempty"`
	Pricing         *Pricing      `json:"pricing,omitempty"`
	CostEstimateUSD *CostEstimate `json:"cost_estimate_usd,omitempty"`
}

// Source is one cited document backing an answer. Order within a
// response is meaningful and drives 1-based citation numbering.
type Source struct {
	File string `json:"file"`
	Link string `json:"link"`
}

// AskResponse is the answer returned by POST {base}/ask
type AskResponse struct {
	Answer   string    `json:"answer"`
	Metadata *Metadata `json:"metadata,omitempty"`
	Sources  []Source  `json:"source,omitempty"`
}

// ============================================================
// DOCUMENT MANAGEMENT
// ============================================================

// FilePayload is one opaque binary document to upload.
type FilePayload struct {
	Name    string
	Content []byte
}

// UploadResponse is returned by POST {base}/uploads
type UploadResponse struct {
	Message       string   `json:"message"`
	UploadedFiles []string `json:"uploaded_files"`
	Details       string   `json:"details"`
}

// ListFilesResponse is returned by GET {base}/files
type ListFilesResponse struct {
	Files []string `json:"files"`
	Count int      `json:"count"`
}

// DeleteResponse is returned by DELETE {base}/delete/{fileName}
type DeleteResponse struct {
	Message string `json:"message"`
}

// ResetDetails describes what a full reset removed on the backend.
type ResetDetails struct {
	DeletedFilesCount int    `json:"deleted_files_count"`
	IndexStatus       string `json:"index_status"`
	CacheStatus       string `json:"cache_status"`
}

// ResetResponse is returned by DELETE {base}/delete-all
type ResetResponse struct {
	Message string       `json:"message"`
	Details ResetDetails `json:"details"`
}
