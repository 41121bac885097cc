package service

import (
	"bytes"
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveService handles Google Drive API operations
type DriveService struct {
	client *drive.Service
}

// NewDriveService creates a new DriveService instance
// credentialsPath should be the path to the Service Account JSON file
func NewDriveService(ctx context.Context, credentialsPath string) (*DriveService, error) {
	driveService, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveService{
		client: driveService,
	}, nil
}

// Ensure DriveService implements DriveServiceInterface
var _ DriveServiceInterface = (*DriveService)(nil)

// UploadPDF stores a PDF in a Drive folder and returns the new file id.
// An existing file with the same name in the folder is replaced.
func (ds *DriveService) UploadPDF(ctx context.Context, folderID string, name string, data []byte) (string, error) {
	existing, err := ds.findByName(ctx, folderID, name)
	if err != nil {
		return "", err
	}

	if existing != "" {
		log.Printf("🔄 Replacing %s in Drive folder %s", name, folderID)
		file, err := ds.client.Files.Update(existing, &drive.File{}).
			Context(ctx).
			Media(bytes.NewReader(data)).
			Fields("id").
			Do()
		if err != nil {
			return "", fmt.Errorf("failed to update file %s: %w", name, err)
		}
		return file.Id, nil
	}

	file, err := ds.client.Files.Create(&drive.File{
		Name:     name,
		MimeType: "application/pdf",
		Parents:  []string{folderID},
	}).
		Context(ctx).
		Media(bytes.NewReader(data)).
		Fields("id").
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload file %s: %w", name, err)
	}

	log.Printf("✓ Uploaded %s to Drive (file_id: %s)", name, file.Id)
	return file.Id, nil
}

// findByName returns the id of the first live file called name in folderID
func (ds *DriveService) findByName(ctx context.Context, folderID string, name string) (string, error) {
	query := fmt.Sprintf("'%s' in parents and name = '%s' and trashed=false", folderID, escapeQuery(name))

	r, err := ds.client.Files.List().
		Context(ctx).
		Q(query).
		Fields("files(id, name)").
		PageSize(1).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to list files: %w", err)
	}
	if len(r.Files) == 0 {
		return "", nil
	}
	return r.Files[0].Id, nil
}

// escapeQuery escapes single quotes for a Drive search query
func escapeQuery(s string) string {
	var b bytes.Buffer
	for _, r := range s {
		if r == '\'' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
