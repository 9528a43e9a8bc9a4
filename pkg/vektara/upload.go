package vektara

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// UploadSource identifies what a batch upload should ingest. Exactly three
// variants exist: SingleFile, FileList, and Folder.
type UploadSource interface {
	// paths resolves the variant to the ordered list of files to upload.
	paths() ([]string, error)
}

// SingleFile uploads one file.
type SingleFile struct {
	Path string
}

func (s SingleFile) paths() ([]string, error) {
	return []string{s.Path}, nil
}

// FileList uploads the given files in order.
type FileList struct {
	Paths []string
}

func (f FileList) paths() ([]string, error) {
	return f.Paths, nil
}

// Folder uploads every regular file directly inside the directory, in
// lexical order. No recursion into subdirectories.
type Folder struct {
	Path string
}

func (f Folder) paths() ([]string, error) {
	entries, err := os.ReadDir(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read folder: %w", err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(f.Path, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// UploadOptions carries the optional per-batch arguments. DocIDs and
// Metadata, when set, must have exactly one entry per file; SharedMetadata
// is broadcast to every file instead and is mutually exclusive with
// Metadata.
type UploadOptions struct {
	DocIDs         []string
	Metadata       []map[string]any
	SharedMetadata map[string]any
}

// UploadResult reports the outcome of one file within a batch.
type UploadResult struct {
	Path  string
	DocID string
	Err   error
}

// UploadRecord is the ledger entry for one batch item.
type UploadRecord struct {
	CorpusID int
	Path     string
	DocID    string
	OK       bool
	Detail   string
	At       time.Time
}

// UploadRecorder persists batch item outcomes so partial failures can be
// attributed after the fact.
type UploadRecorder interface {
	RecordUpload(ctx context.Context, rec UploadRecord) error
}

// Upload ingests the source into the corpus, one file per request, strictly
// in order. Validation failures (duplicate paths, length mismatches) abort
// the whole batch before any request is issued; a per-file remote failure is
// collected in its UploadResult and the batch continues.
func (c *Client) Upload(ctx context.Context, corpusID int, source UploadSource, opts *UploadOptions) ([]UploadResult, error) {
	if opts == nil {
		opts = &UploadOptions{}
	}

	paths, err := source.paths()
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, &ValidationError{Reason: "upload source resolves to no files", Err: ErrEmptyUploadSource}
	}

	if err := validateBatch(paths, opts); err != nil {
		return nil, err
	}

	results := make([]UploadResult, 0, len(paths))
	for i, path := range paths {
		docID := filepath.Base(path)
		if len(opts.DocIDs) > 0 {
			docID = opts.DocIDs[i]
		}

		metadata := opts.SharedMetadata
		if len(opts.Metadata) > 0 {
			metadata = opts.Metadata[i]
		}

		err := c.UploadFile(ctx, corpusID, path, docID, metadata)
		if err != nil {
			c.logger.Error().Err(err).Str("path", path).Msg("upload failed; continuing with remaining files")
		}
		results = append(results, UploadResult{Path: path, DocID: docID, Err: err})
		c.record(ctx, corpusID, path, docID, err)
	}
	return results, nil
}

// UploadFile uploads one file as a multipart request. An empty docID
// defaults to the file's base name. Metadata, when present, is serialized
// as a JSON string part alongside the file bytes.
func (c *Client) UploadFile(ctx context.Context, corpusID int, path, docID string, metadata map[string]any) error {
	if docID == "" {
		docID = filepath.Base(path)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	body, contentType, err := multipartBody(file, docID, metadata)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/v1/upload?c=%s&o=%d", c.baseURL, url.QueryEscape(c.customerID), corpusID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	c.setAuthHeaders(req)

	c.logger.Info().Str("path", path).Str("doc_id", docID).Int("corpus_id", corpusID).Msg("uploading file")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Error().Err(err).Msg("failed to close response body")
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &RemoteError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return nil
}

func (c *Client) record(ctx context.Context, corpusID int, path, docID string, uploadErr error) {
	if c.recorder == nil {
		return
	}
	rec := UploadRecord{
		CorpusID: corpusID,
		Path:     path,
		DocID:    docID,
		OK:       uploadErr == nil,
		At:       time.Now().UTC(),
	}
	if uploadErr != nil {
		rec.Detail = uploadErr.Error()
	}
	if err := c.recorder.RecordUpload(ctx, rec); err != nil {
		c.logger.Error().Err(err).Str("path", path).Msg("failed to record upload outcome")
	}
}

// validateBatch enforces the pre-flight invariants: no duplicate paths, and
// any per-file list must match the file count exactly.
func validateBatch(paths []string, opts *UploadOptions) error {
	seen := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		if _, dup := seen[p]; dup {
			return &ValidationError{Reason: fmt.Sprintf("duplicate path %q in batch", p), Err: ErrDuplicatePaths}
		}
		seen[p] = struct{}{}
	}

	if len(opts.DocIDs) > 0 && len(opts.DocIDs) != len(paths) {
		return &ValidationError{
			Reason: fmt.Sprintf("%d doc IDs for %d files", len(opts.DocIDs), len(paths)),
			Err:    ErrLengthMismatch,
		}
	}
	if len(opts.Metadata) > 0 && len(opts.Metadata) != len(paths) {
		return &ValidationError{
			Reason: fmt.Sprintf("%d metadata entries for %d files", len(opts.Metadata), len(paths)),
			Err:    ErrLengthMismatch,
		}
	}
	if len(opts.Metadata) > 0 && opts.SharedMetadata != nil {
		return &ValidationError{Reason: "Metadata and SharedMetadata are mutually exclusive"}
	}
	return nil
}

// multipartBody assembles the two-part upload body: the file bytes under the
// doc ID as an octet-stream, and the metadata as a JSON string part.
func multipartBody(file io.Reader, docID string, metadata map[string]any) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, docID))
	header.Set("Content-Type", "application/octet-stream")
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("failed to copy file contents: %w", err)
	}

	if metadata != nil {
		metadataJSON, err := json.Marshal(metadata)
		if err != nil {
			return nil, "", fmt.Errorf("failed to marshal metadata: %w", err)
		}
		if err := writer.WriteField("doc_metadata", string(metadataJSON)); err != nil {
			return nil, "", fmt.Errorf("failed to write metadata part: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}
	return &buf, writer.FormDataContentType(), nil
}
