package service

import "context"

// DriveServiceInterface defines the contract for Google Drive operations
type DriveServiceInterface interface {
	UploadPDF(ctx context.Context, folderID string, name string, data []byte) (string, error)
}
