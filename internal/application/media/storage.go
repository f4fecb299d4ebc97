// Package media defines the object storage contract used by onboarding,
// campaign, and donation flows for user supplied files.
package media

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
)

// Storage folders, one per upload category
const (
	FolderCharityDocuments = "charity-documents"
	FolderLogoImages       = "logo-images"
	FolderProgramDocuments = "program-documents"
	FolderProgramImages    = "program-images"
	FolderProgramVideos    = "program-video"
	FolderPaymentSlips     = "bank-payment-slip"
)

// ObjectStorageService abstracts the S3-compatible backend. Upload returns
// the stored location; an empty location means the upload did not land.
type ObjectStorageService interface {
	// Upload stores data under storageKey and returns the object location
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) (string, error)

	// GenerateUploadURL generates a presigned URL for a client-side upload
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL generates a presigned URL for reading an object
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject removes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks whether an object is present
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// BuildKey derives a collision-free storage key for an uploaded file,
// keeping the original extension for content-type sniffing downstream.
func BuildKey(folder, fileName string) string {
	ext := path.Ext(fileName)
	return fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), ext)
}
