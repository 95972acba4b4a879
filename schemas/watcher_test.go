package schemas

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
)

// TestKeywords_UnmarshalJSON verifies both wire forms decode.
func TestKeywords_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected Keywords
		wantErr  bool
	}{
		{name: "single string", payload: `"golang"`, expected: Keywords{"golang"}},
		{name: "list", payload: `["golang","backend"]`, expected: Keywords{"golang", "backend"}},
		{name: "empty list", payload: `[]`, expected: Keywords{}},
		{name: "number rejected", payload: `42`, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var k Keywords
			err := json.Unmarshal([]byte(tc.payload), &k)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if len(k) != len(tc.expected) {
				t.Fatalf("expected %v, got %v", tc.expected, k)
			}
			for i := range k {
				if k[i] != tc.expected[i] {
					t.Errorf("expected %v, got %v", tc.expected, k)
				}
			}
		})
	}
}

// TestJobAlertCreate_Validate verifies required keywords and interval default.
func TestJobAlertCreate_Validate(t *testing.T) {
	r := JobAlertCreate{}
	if err := r.Validate(); !errors.Is(err, ErrMissingKeywords) {
		t.Errorf("expected ErrMissingKeywords, got %v", err)
	}

	r = JobAlertCreate{Keywords: Keywords{"golang"}}
	if err := r.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if r.CheckIntervalMinutes != DefaultCheckIntervalMinutes {
		t.Errorf("expected default interval, got %d", r.CheckIntervalMinutes)
	}

	r = JobAlertCreate{Keywords: Keywords{"golang"}, CheckIntervalMinutes: 30}
	if err := r.Validate(); err != nil || r.CheckIntervalMinutes != 30 {
		t.Errorf("expected explicit interval preserved, got %d (%v)", r.CheckIntervalMinutes, err)
	}
}

// TestJobAlertUpdate_Validate verifies partial updates.
func TestJobAlertUpdate_Validate(t *testing.T) {
	empty := JobAlertUpdate{}
	if err := empty.Validate(); err != nil {
		t.Errorf("empty update should validate, got %v", err)
	}

	bad := -1
	r := JobAlertUpdate{CheckIntervalMinutes: &bad}
	if err := r.Validate(); err == nil {
		t.Error("expected error for non-positive interval")
	}
}

// TestLinkedInCookieCreate_Validate verifies the session token requirement.
func TestLinkedInCookieCreate_Validate(t *testing.T) {
	r := LinkedInCookieCreate{}
	if err := r.Validate(); !errors.Is(err, ErrMissingCookie) {
		t.Errorf("expected ErrMissingCookie, got %v", err)
	}

	r = LinkedInCookieCreate{LiAt: "AQEDAxxxx"}
	if err := r.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

// TestProcessAlertRequest_Validate verifies id requirement, score default,
// and score range.
func TestProcessAlertRequest_Validate(t *testing.T) {
	r := ProcessAlertRequest{}
	if err := r.Validate(); !errors.Is(err, ErrMissingID) {
		t.Errorf("expected ErrMissingID, got %v", err)
	}

	r = ProcessAlertRequest{AlertID: uuid.New()}
	if err := r.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if r.MinRelevanceScore != DefaultMinRelevanceScore {
		t.Errorf("expected default score, got %d", r.MinRelevanceScore)
	}

	r = ProcessAlertRequest{AlertID: uuid.New(), MinRelevanceScore: 150}
	if err := r.Validate(); !errors.Is(err, ErrScoreOutOfRange) {
		t.Errorf("expected ErrScoreOutOfRange, got %v", err)
	}
}

// TestMarkNotifiedRequest_Validate verifies the match id requirement.
func TestMarkNotifiedRequest_Validate(t *testing.T) {
	r := MarkNotifiedRequest{}
	if err := r.Validate(); !errors.Is(err, ErrMissingID) {
		t.Errorf("expected ErrMissingID, got %v", err)
	}
	r = MarkNotifiedRequest{MatchID: uuid.New()}
	if err := r.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

// TestJobMatchWithListing_RoundTrip verifies the embedded listing keeps its
// wire shape.
func TestJobMatchWithListing_RoundTrip(t *testing.T) {
	payload := `{
		"id": "5f9c2e8a-3d1b-4c7a-9e2f-1a2b3c4d5e6f",
		"job_alert_id": "6f9c2e8a-3d1b-4c7a-9e2f-1a2b3c4d5e6f",
		"job_listing_id": "7f9c2e8a-3d1b-4c7a-9e2f-1a2b3c4d5e6f",
		"user_id": "8f9c2e8a-3d1b-4c7a-9e2f-1a2b3c4d5e6f",
		"relevance_score": 85,
		"key_strengths": ["go", "distributed systems"],
		"potential_concerns": [],
		"strategic_value": null,
		"recommended_action": "apply",
		"reasoning": null,
		"is_notified": false,
		"created_at": "2026-08-20T10:00:00Z",
		"job_listing": {
			"id": "7f9c2e8a-3d1b-4c7a-9e2f-1a2b3c4d5e6f",
			"external_id": "linkedin:123",
			"source": "linkedin",
			"source_job_id": "123",
			"url": "https://example.com/jobs/123",
			"title": "Backend Engineer",
			"company": "Acme",
			"location": null,
			"description": null,
			"snippet": null,
			"posted_at": null,
			"salary_min": null,
			"salary_max": null,
			"salary_currency": null,
			"employment_type": null,
			"remote_type": "Full",
			"content_hash": "abc123",
			"first_seen_at": "2026-08-19T09:00:00Z",
			"last_seen_at": "2026-08-20T09:00:00Z",
			"created_at": "2026-08-19T09:00:00Z"
		}
	}`

	var m JobMatchWithListing
	if err := json.Unmarshal([]byte(payload), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m.RelevanceScore != 85 {
		t.Errorf("expected score 85, got %d", m.RelevanceScore)
	}
	if m.JobListing.Title != "Backend Engineer" {
		t.Errorf("unexpected listing %+v", m.JobListing)
	}
	if m.JobListing.Company == nil || *m.JobListing.Company != "Acme" {
		t.Errorf("expected company Acme, got %v", m.JobListing.Company)
	}
	if m.JobListing.Location != nil {
		t.Errorf("expected nil location, got %v", m.JobListing.Location)
	}
	if *m.RecommendedAction != "apply" {
		t.Errorf("expected recommended action, got %v", m.RecommendedAction)
	}
}
