package schemas

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultCheckIntervalMinutes is how often an alert is checked when the
// creator does not say otherwise.
const DefaultCheckIntervalMinutes = 5

// DefaultMinRelevanceScore is the match threshold applied when a processing
// request does not carry one.
const DefaultMinRelevanceScore = 60

// Keywords accepts either a single string or a list of strings on the wire
// and always presents a list in Go.
type Keywords []string

// UnmarshalJSON decodes "golang" and ["golang", "backend"] alike.
func (k *Keywords) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*k = Keywords{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("schemas: keywords must be a string or a list of strings: %w", err)
	}
	*k = many
	return nil
}

// JobAlertCreate is the request payload for creating a job alert.
type JobAlertCreate struct {
	AlertName            string         `json:"alert_name,omitempty"`
	Keywords             Keywords       `json:"keywords"`
	Sources              []string       `json:"sources,omitempty"`
	Location             string         `json:"location,omitempty"`
	CheckIntervalMinutes int            `json:"check_interval_minutes,omitempty"`
	Filters              map[string]any `json:"filters,omitempty"`
}

// Validate checks required fields and applies defaults.
func (r *JobAlertCreate) Validate() error {
	if len(r.Keywords) == 0 {
		return ErrMissingKeywords
	}
	if r.CheckIntervalMinutes <= 0 {
		r.CheckIntervalMinutes = DefaultCheckIntervalMinutes
	}
	return nil
}

// JobAlertUpdate is the request payload for updating a job alert. Every
// field is optional; absent fields leave the alert unchanged.
type JobAlertUpdate struct {
	AlertName            *string        `json:"alert_name,omitempty"`
	Keywords             Keywords       `json:"keywords,omitempty"`
	Sources              []string       `json:"sources,omitempty"`
	Location             *string        `json:"location,omitempty"`
	CheckIntervalMinutes *int           `json:"check_interval_minutes,omitempty"`
	Filters              map[string]any `json:"filters,omitempty"`
	IsActive             *bool          `json:"is_active,omitempty"`
}

// Validate rejects updates that would leave the alert unusable.
func (r *JobAlertUpdate) Validate() error {
	if r.CheckIntervalMinutes != nil && *r.CheckIntervalMinutes <= 0 {
		return fmt.Errorf("schemas: check_interval_minutes must be positive, got %d", *r.CheckIntervalMinutes)
	}
	return nil
}

// LinkedInCookieCreate carries LinkedIn session cookies to the watcher. The
// values are credentials; they must never appear in logs.
type LinkedInCookieCreate struct {
	LiAt              string            `json:"li_at"`
	JSessionID        string            `json:"jsession_id,omitempty"`
	AdditionalCookies map[string]string `json:"additional_cookies,omitempty"`
}

// Validate checks the session token is present.
func (r *LinkedInCookieCreate) Validate() error {
	if r.LiAt == "" {
		return ErrMissingCookie
	}
	return nil
}

// JobListingResponse is the wire form of a scraped job listing.
type JobListingResponse struct {
	ID             uuid.UUID  `json:"id"`
	ExternalID     string     `json:"external_id"`
	Source         string     `json:"source"`
	SourceJobID    string     `json:"source_job_id"`
	URL            string     `json:"url"`
	Title          string     `json:"title"`
	Company        *string    `json:"company"`
	Location       *string    `json:"location"`
	Description    *string    `json:"description"`
	Snippet        *string    `json:"snippet"`
	PostedAt       *time.Time `json:"posted_at"`
	SalaryMin      *float64   `json:"salary_min"`
	SalaryMax      *float64   `json:"salary_max"`
	SalaryCurrency *string    `json:"salary_currency"`
	EmploymentType *string    `json:"employment_type"`
	RemoteType     *string    `json:"remote_type"`
	ContentHash    string     `json:"content_hash"`
	EmbeddingModel *string    `json:"embedding_model,omitempty"`
	FirstSeenAt    time.Time  `json:"first_seen_at"`
	LastSeenAt     time.Time  `json:"last_seen_at"`
	CreatedAt      time.Time  `json:"created_at"`
}

// JobMatchResponse is the wire form of a job match record.
type JobMatchResponse struct {
	ID                uuid.UUID `json:"id"`
	JobAlertID        uuid.UUID `json:"job_alert_id"`
	JobListingID      uuid.UUID `json:"job_listing_id"`
	UserID            uuid.UUID `json:"user_id"`
	RelevanceScore    int       `json:"relevance_score"`
	KeyStrengths      []string  `json:"key_strengths"`
	PotentialConcerns []string  `json:"potential_concerns"`
	StrategicValue    *string   `json:"strategic_value"`
	RecommendedAction *string   `json:"recommended_action"`
	Reasoning         *string   `json:"reasoning"`
	IsNotified        bool      `json:"is_notified"`
	CreatedAt         time.Time `json:"created_at"`
}

// JobMatchWithListing is a match with its listing embedded, as returned by
// the match-feed endpoints.
type JobMatchWithListing struct {
	JobMatchResponse
	JobListing JobListingResponse `json:"job_listing"`
}

// ProcessAlertRequest asks the watcher to process one alert now.
type ProcessAlertRequest struct {
	AlertID           uuid.UUID `json:"alert_id"`
	MinRelevanceScore int       `json:"min_relevance_score,omitempty"`
}

// Validate checks the target alert and score range, applying the default
// threshold when none is given.
func (r *ProcessAlertRequest) Validate() error {
	if r.AlertID == uuid.Nil {
		return ErrMissingID
	}
	if r.MinRelevanceScore == 0 {
		r.MinRelevanceScore = DefaultMinRelevanceScore
	}
	if r.MinRelevanceScore < 0 || r.MinRelevanceScore > 100 {
		return fmt.Errorf("%w: %d", ErrScoreOutOfRange, r.MinRelevanceScore)
	}
	return nil
}

// ProcessAlertResponse reports one processing pass over an alert.
type ProcessAlertResponse struct {
	AlertID           string   `json:"alert_id"`
	AlertName         string   `json:"alert_name"`
	ScrapedJobs       int      `json:"scraped_jobs"`
	NewJobs           int      `json:"new_jobs"`
	Matches           int      `json:"matches"`
	NotificationsSent int      `json:"notifications_sent"`
	Errors            []string `json:"errors"`
}

// MarkNotifiedRequest marks a match as delivered to the user.
type MarkNotifiedRequest struct {
	MatchID uuid.UUID `json:"match_id"`
}

// Validate checks the target match is named.
func (r *MarkNotifiedRequest) Validate() error {
	if r.MatchID == uuid.Nil {
		return ErrMissingID
	}
	return nil
}
