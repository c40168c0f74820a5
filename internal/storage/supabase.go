package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"time"

	"ecsrs/internal/utils"
)

// MediaStore uploads report evidence and resolution media to Supabase
// Storage. The engine only ever sees the resulting public URLs; upload
// failures are the caller's to retry, since the report row exists
// independently of its media.
type MediaStore struct {
	projectID  string
	apiKey     string
	bucketName string
	httpClient *http.Client
}

func NewMediaStore(projectID, apiKey, bucketName string) *MediaStore {
	return &MediaStore{
		projectID:  projectID,
		apiKey:     apiKey,
		bucketName: bucketName,
		httpClient: &http.Client{},
	}
}

// Upload stores one file under a collision-free key and returns its
// public URL.
func (s *MediaStore) Upload(ctx context.Context, ownerID, fileName, contentType string, file io.Reader) (string, error) {
	key := s.objectKey(ownerID, fileName)

	url := fmt.Sprintf("https://%s.supabase.co/storage/v1/object/%s/%s",
		s.projectID, s.bucketName, key)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, file)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))
	req.Header.Set("Content-Type", contentType)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, string(body))
	}

	return s.PublicURL(key), nil
}

// PublicURL returns the public URL for a stored object key.
func (s *MediaStore) PublicURL(key string) string {
	return fmt.Sprintf("https://%s.supabase.co/storage/v1/object/public/%s/%s",
		s.projectID, s.bucketName, key)
}

// objectKey namespaces uploads per owner and keeps the original
// extension for content sniffing downstream.
func (s *MediaStore) objectKey(ownerID, fileName string) string {
	if ownerID == "" {
		ownerID = "anonymous"
	}
	ext := path.Ext(fileName)
	return fmt.Sprintf("%s/%d-%s%s", ownerID, time.Now().UnixMilli(), utils.NanoIDSize(8), ext)
}
