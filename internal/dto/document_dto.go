package dto

type DashboardResponse struct {
	SessionId     string   `json:"session_id"`
	State         string   `json:"state"`
	Files         []string `json:"files"`
	Count         int      `json:"count"`
	PendingDelete string   `json:"pending_delete,omitempty"`
	DeletingFile  string   `json:"deleting_file,omitempty"`
	LastError     string   `json:"last_error,omitempty"`
}

type UploadDocumentsResponse struct {
	Message       string   `json:"message"`
	UploadedFiles []string `json:"uploaded_files"`
	Details       string   `json:"details"`
}

type DeleteRequestRequest struct {
	FileName string `json:"file_name" validate:"required"`
}

type ResetAllRequest struct {
	// The destructive call is only issued after the browser's modal
	// confirmation round-trips as confirm=true.
	Confirm bool `json:"confirm"`
}

type ResetAllResponse struct {
	Message           string `json:"message"`
	DeletedFilesCount int    `json:"deleted_files_count"`
	IndexStatus       string `json:"index_status"`
	CacheStatus       string `json:"cache_status"`
}
