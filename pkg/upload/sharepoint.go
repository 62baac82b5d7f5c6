// pkg/upload/sharepoint.go
package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/satiap/feedback-ingress/pkg/config"
)

// Uploader pushes the generated workbook to a SharePoint document library.
// Files below the simple-upload limit go up in a single request against the
// SharePoint REST API; larger files use a Microsoft Graph upload session with
// Content-Range chunks. The access token is supplied pre-issued; acquiring or
// refreshing it is the caller's problem.
type Uploader struct {
	cfg    *config.SharePointConfig
	client *http.Client
	logger *zap.Logger
}

// NewUploader creates an uploader for the configured site and library.
func NewUploader(cfg *config.SharePointConfig, logger *zap.Logger) (*Uploader, error) {
	if cfg == nil {
		return nil, errors.New("sharepoint configuration cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.ChunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", cfg.ChunkSize)
	}
	if cfg.SimpleUploadLimit < 0 {
		return nil, fmt.Errorf("simple upload limit cannot be negative, got %d", cfg.SimpleUploadLimit)
	}

	return &Uploader{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.RequestTimeout},
		logger: logger,
	}, nil
}

// Upload pushes the file at path into the document library, overwriting any
// existing file with the same name.
func (u *Uploader) Upload(ctx context.Context, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read upload file: %w", err)
	}
	name := filepath.Base(path)

	u.logger.Info("Uploading to SharePoint",
		zap.String("file", name),
		zap.Int("size_bytes", len(content)),
		zap.String("library", u.cfg.DocumentLibrary))

	if int64(len(content)) < u.cfg.SimpleUploadLimit {
		err = u.simpleUpload(ctx, name, content)
	} else {
		err = u.chunkedUpload(ctx, name, content)
	}
	if err != nil {
		return err
	}

	u.logger.Info("Upload complete",
		zap.String("file", name),
		zap.String("location", fmt.Sprintf("%s/%s/%s", u.cfg.SiteURL, u.cfg.DocumentLibrary, name)))
	return nil
}

// simpleUpload sends the whole file in one SharePoint REST request.
func (u *Uploader) simpleUpload(ctx context.Context, name string, content []byte) error {
	uploadURL := fmt.Sprintf(
		"%s/_api/web/GetFolderByServerRelativeUrl('/sites/%s/%s')/Files/Add(url='%s', overwrite=true)",
		u.cfg.SiteURL,
		u.cfg.SiteName,
		u.cfg.DocumentLibrary,
		name,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, bytes.NewReader(content))
	if err != nil {
		return fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+u.cfg.AccessToken)
	req.Header.Set("Accept", "application/json;odata=verbose")
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := u.client.Do(req)
	if err != nil {
		return fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("upload failed: %s: %s", resp.Status, readErrorBody(resp.Body))
	}
	return nil
}

// chunkedUpload creates a Graph upload session and streams the file in
// Content-Range chunks.
func (u *Uploader) chunkedUpload(ctx context.Context, name string, content []byte) error {
	siteID, err := u.siteID(ctx)
	if err != nil {
		return err
	}

	sessionURL := fmt.Sprintf("%s/sites/%s/drive/root:/%s/%s:/createUploadSession",
		u.cfg.GraphBaseURL,
		siteID,
		url.PathEscape(u.cfg.DocumentLibrary),
		url.PathEscape(name),
	)

	body, err := json.Marshal(map[string]interface{}{
		"item": map[string]string{
			"@microsoft.graph.conflictBehavior": "replace",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to encode session request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sessionURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build session request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+u.cfg.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := u.client.Do(req)
	if err != nil {
		return fmt.Errorf("session request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("failed to create upload session: %s: %s", resp.Status, readErrorBody(resp.Body))
	}

	var session struct {
		UploadURL string `json:"uploadUrl"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return fmt.Errorf("failed to decode upload session: %w", err)
	}
	if session.UploadURL == "" {
		return errors.New("upload session response carried no uploadUrl")
	}

	total := int64(len(content))
	chunkSize := u.cfg.ChunkSize
	chunks := (total + chunkSize - 1) / chunkSize

	for start := int64(0); start < total; start += chunkSize {
		end := start + chunkSize
		if end > total {
			end = total
		}
		chunk := content[start:end]

		req, err := http.NewRequestWithContext(ctx, http.MethodPut, session.UploadURL, bytes.NewReader(chunk))
		if err != nil {
			return fmt.Errorf("failed to build chunk request: %w", err)
		}
		req.ContentLength = int64(len(chunk))
		req.Header.Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", start, end-1, total))

		chunkResp, err := u.client.Do(req)
		if err != nil {
			return fmt.Errorf("chunk upload failed at offset %d: %w", start, err)
		}
		if chunkResp.StatusCode >= 300 {
			msg := readErrorBody(chunkResp.Body)
			chunkResp.Body.Close()
			return fmt.Errorf("chunk upload rejected at offset %d: %s: %s", start, chunkResp.Status, msg)
		}
		chunkResp.Body.Close()

		u.logger.Debug("Uploaded chunk",
			zap.Int64("chunk", start/chunkSize+1),
			zap.Int64("chunks_total", chunks))
	}

	return nil
}

// DriveItem describes the uploaded file as SharePoint reports it.
type DriveItem struct {
	Name             string `json:"name"`
	Size             int64  `json:"size"`
	LastModifiedTime string `json:"lastModifiedDateTime"`
}

// VerifyUpload looks the uploaded file up through the Graph drive and returns
// its metadata, or an error if SharePoint does not report it.
func (u *Uploader) VerifyUpload(ctx context.Context, name string) (*DriveItem, error) {
	siteID, err := u.siteID(ctx)
	if err != nil {
		return nil, err
	}

	fileURL := fmt.Sprintf("%s/sites/%s/drive/root:/%s/%s",
		u.cfg.GraphBaseURL,
		siteID,
		url.PathEscape(u.cfg.DocumentLibrary),
		url.PathEscape(name),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build verification request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+u.cfg.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("verification request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("file %q not found on SharePoint", name)
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("verification failed: %s: %s", resp.Status, readErrorBody(resp.Body))
	}

	var item DriveItem
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return nil, fmt.Errorf("failed to decode drive item: %w", err)
	}

	u.logger.Info("Verified SharePoint upload",
		zap.String("name", item.Name),
		zap.Int64("size_bytes", item.Size),
		zap.String("modified", item.LastModifiedTime))
	return &item, nil
}

// siteID resolves the Graph site identifier for the configured site URL.
func (u *Uploader) siteID(ctx context.Context) (string, error) {
	parts := strings.SplitN(u.cfg.SiteURL, "//", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("malformed site URL %q", u.cfg.SiteURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/sites/%s", u.cfg.GraphBaseURL, parts[1]), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build site lookup request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+u.cfg.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := u.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("site lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("site lookup failed: %s: %s", resp.Status, readErrorBody(resp.Body))
	}

	var site struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&site); err != nil {
		return "", fmt.Errorf("failed to decode site lookup: %w", err)
	}
	if site.ID == "" {
		return "", errors.New("site lookup returned no id")
	}
	return site.ID, nil
}

func readErrorBody(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, 2048))
	if err != nil || len(body) == 0 {
		return "no response body"
	}
	return string(body)
}
