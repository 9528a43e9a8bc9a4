package vektara

import (
	"context"
	"fmt"
	"time"
)

// Caller-facing filter attribute vocabulary.
const (
	FilterTypeText  = "text"
	FilterTypeFloat = "float"
	FilterTypeInt   = "int"
	FilterTypeBool  = "bool"

	FilterLevelDocument = "document"
	FilterLevelPart     = "part"
)

var filterTypeToWire = map[string]string{
	FilterTypeText:  "FILTER_ATTRIBUTE_TYPE__TEXT",
	FilterTypeFloat: "FILTER_ATTRIBUTE_TYPE__REAL",
	FilterTypeInt:   "FILTER_ATTRIBUTE_TYPE__INTEGER",
	FilterTypeBool:  "FILTER_ATTRIBUTE_TYPE__BOOLEAN",
}

var filterLevelToWire = map[string]string{
	FilterLevelDocument: "FILTER_ATTRIBUTE_LEVEL__DOCUMENT",
	FilterLevelPart:     "FILTER_ATTRIBUTE_LEVEL__DOCUMENT_PART",
}

// Job states the platform reports from the job listing.
const (
	JobStateCompleted = "JOB_STATE__COMPLETED"
	JobStateFailed    = "JOB_STATE__FAILED"
)

// FilterAttribute registers one metadata key for query-time filtering. Name
// must match a key present in ingested documents' metadata for filtering to
// take effect.
type FilterAttribute struct {
	Name        string
	Description string
	Indexed     bool
	Type        string // text, float, int, bool
	Level       string // document, part
}

// PollConfig bounds the job status polling that follows filter attribute
// registration. The zero value is replaced by DefaultPollConfig; a MaxWait
// of zero with a non-zero Interval polls without bound, matching the
// platform's own tooling.
type PollConfig struct {
	Interval time.Duration
	MaxWait  time.Duration
}

// DefaultPollConfig polls every five seconds for at most ten minutes.
func DefaultPollConfig() PollConfig {
	return PollConfig{Interval: 5 * time.Second, MaxWait: 10 * time.Minute}
}

// WireType returns the platform's enumerated token for a caller-facing
// filter type.
func WireType(t string) (string, error) {
	wire, ok := filterTypeToWire[t]
	if !ok {
		return "", &ValidationError{Reason: fmt.Sprintf("unknown filter type %q", t), Err: ErrUnknownFilterType}
	}
	return wire, nil
}

// WireLevel returns the platform's enumerated token for a caller-facing
// filter level.
func WireLevel(level string) (string, error) {
	wire, ok := filterLevelToWire[level]
	if !ok {
		return "", &ValidationError{Reason: fmt.Sprintf("unknown filter level %q", level), Err: ErrUnknownFilterLevel}
	}
	return wire, nil
}

// FilterTypeFromWire back-translates a wire type token; it returns an empty
// string for unknown tokens.
func FilterTypeFromWire(wire string) string {
	for caller, w := range filterTypeToWire {
		if w == wire {
			return caller
		}
	}
	return ""
}

// FilterLevelFromWire back-translates a wire level token; it returns an
// empty string for unknown tokens.
func FilterLevelFromWire(wire string) string {
	for caller, w := range filterLevelToWire {
		if w == wire {
			return caller
		}
	}
	return ""
}

// SetFilterAttributes replaces the corpus's filter attributes with attrs.
// The platform applies the change asynchronously, so this call submits the
// replacement and then polls job status per poll until the job completes,
// fails, vanishes from the listing, or exceeds the poll bound.
func (c *Client) SetFilterAttributes(ctx context.Context, corpusID int, attrs []FilterAttribute, poll PollConfig) error {
	if len(attrs) == 0 {
		return &ValidationError{Reason: "no filter attributes supplied"}
	}

	wireAttrs := make([]wireFilterAttribute, 0, len(attrs))
	for _, attr := range attrs {
		wireType, err := WireType(attr.Type)
		if err != nil {
			return err
		}
		wireLevel, err := WireLevel(attr.Level)
		if err != nil {
			return err
		}
		wireAttrs = append(wireAttrs, wireFilterAttribute{
			Name:        attr.Name,
			Description: attr.Description,
			Indexed:     attr.Indexed,
			Type:        wireType,
			Level:       wireLevel,
		})
	}

	req := replaceFilterAttrsRequest{CorpusID: corpusID, FilterAttributes: wireAttrs}
	var resp replaceFilterAttrsResponse
	if err := c.postJSON(ctx, "/v1/replace-corpus-filter-attrs", req, &resp); err != nil {
		return err
	}
	if resp.JobID == "" {
		return &MalformedResponseError{Reason: "replace-corpus-filter-attrs response missing jobId"}
	}

	c.logger.Info().Str("job_id", resp.JobID).Int("corpus_id", corpusID).Msg("filter attributes submitted; awaiting job completion")
	return c.awaitJob(ctx, resp.JobID, poll)
}

// awaitJob polls the job listing until the job completes or disappears.
// A job that vanishes from the listing is treated as done, which is how the
// platform reports old finished jobs.
func (c *Client) awaitJob(ctx context.Context, jobID string, poll PollConfig) error {
	if poll.Interval <= 0 {
		poll = DefaultPollConfig()
	}

	start := time.Now()
	ticker := time.NewTicker(poll.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		elapsed := time.Since(start)
		if poll.MaxWait > 0 && elapsed > poll.MaxWait {
			return fmt.Errorf("%w: job %s still pending after %s", ErrPollTimeout, jobID, elapsed.Round(time.Second))
		}

		jobs, err := c.ListJobs(ctx, []string{jobID})
		if err != nil {
			return err
		}

		found := false
		for _, job := range jobs {
			if job.ID != jobID {
				continue
			}
			found = true
			switch job.State {
			case JobStateCompleted:
				c.logger.Info().Str("job_id", jobID).Dur("elapsed", elapsed).Msg("job completed")
				return nil
			case JobStateFailed:
				return fmt.Errorf("%w: job %s", ErrJobFailed, jobID)
			}
		}
		if !found {
			c.logger.Info().Str("job_id", jobID).Dur("elapsed", elapsed).Msg("job no longer listed; treating as done")
			return nil
		}

		c.logger.Info().Str("job_id", jobID).Dur("elapsed", elapsed).Msg("job still pending")
	}
}

// Job is one entry from the platform's job listing.
type Job struct {
	ID    string
	State string
}

// ListJobs fetches the current state of the given jobs, following paging
// keys until the listing is exhausted.
func (c *Client) ListJobs(ctx context.Context, jobIDs []string) ([]Job, error) {
	var jobs []Job
	pageKey := ""
	for {
		req := listJobsRequest{JobID: jobIDs, PageKey: pageKey}
		var resp listJobsResponse
		if err := c.postJSON(ctx, "/v1/list-jobs", req, &resp); err != nil {
			return nil, err
		}
		for _, job := range resp.Job {
			jobs = append(jobs, Job{ID: job.ID, State: job.State})
		}
		if resp.PageKey == "" {
			return jobs, nil
		}
		pageKey = resp.PageKey
	}
}
