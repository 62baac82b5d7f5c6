// pkg/config/sharepoint.go
package config

import (
	"errors"
	"os"
	"strings"
	"time"
)

// SharePointConfig holds parameters for the SharePoint document upload.
// Token acquisition is out of scope: the access token arrives pre-issued.
type SharePointConfig struct {
	// SiteURL is the full site URL, e.g. https://company.sharepoint.com/sites/site-name
	SiteURL string
	// SiteName is the path segment after /sites/
	SiteName string
	// DocumentLibrary is the target library, e.g. "Documents partages"
	DocumentLibrary string
	// GraphBaseURL is the Microsoft Graph endpoint used for chunked uploads
	GraphBaseURL string

	AccessToken string

	// ChunkSize for upload sessions; files below SimpleUploadLimit go in one request
	ChunkSize         int64
	SimpleUploadLimit int64

	RequestTimeout time.Duration
}

// LoadSharePointConfig loads SharePoint configuration from environment variables
func LoadSharePointConfig() (*SharePointConfig, error) {
	siteURL := os.Getenv("SHAREPOINT_SITE")
	if siteURL == "" {
		return nil, errors.New("SHAREPOINT_SITE environment variable is required")
	}

	token := os.Getenv("SHAREPOINT_ACCESS_TOKEN")
	if token == "" {
		return nil, errors.New("SHAREPOINT_ACCESS_TOKEN environment variable is required")
	}

	siteName := getEnv("SHAREPOINT_SITE_NAME", "")
	if siteName == "" {
		// Derive the site name from the /sites/ segment of the URL
		if idx := strings.Index(siteURL, "/sites/"); idx >= 0 {
			siteName = strings.Trim(siteURL[idx+len("/sites/"):], "/")
		}
	}
	if siteName == "" {
		return nil, errors.New("SHAREPOINT_SITE_NAME is required when it cannot be derived from SHAREPOINT_SITE")
	}

	cfg := &SharePointConfig{
		SiteURL:         strings.TrimRight(siteURL, "/"),
		SiteName:        siteName,
		DocumentLibrary: getEnv("SHAREPOINT_DOCUMENT_LIBRARY", "Documents partages"),
		GraphBaseURL:    getEnv("GRAPH_BASE_URL", "https://graph.microsoft.com/v1.0"),
		AccessToken:     token,

		ChunkSize:         int64(getEnvAsInt("SHAREPOINT_CHUNK_SIZE_BYTES", 5*1024*1024)),
		SimpleUploadLimit: int64(getEnvAsInt("SHAREPOINT_SIMPLE_UPLOAD_LIMIT_BYTES", 4*1024*1024)),

		RequestTimeout: getEnvAsDuration("SHAREPOINT_REQUEST_TIMEOUT_SECONDS", 120),
	}

	if cfg.ChunkSize <= 0 {
		return nil, errors.New("SHAREPOINT_CHUNK_SIZE_BYTES must be positive")
	}
	if cfg.SimpleUploadLimit < 0 {
		return nil, errors.New("SHAREPOINT_SIMPLE_UPLOAD_LIMIT_BYTES cannot be negative")
	}

	return cfg, nil
}
