package schemas

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// Remote is the level of remote work a job offers.
type Remote string

const (
	RemoteFull   Remote = "Full"
	RemoteHybrid Remote = "Hybrid"
	RemoteNone   Remote = "None"
)

// Validate checks the value is one of the known levels.
func (r Remote) Validate() error {
	switch r {
	case RemoteFull, RemoteHybrid, RemoteNone:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidRemote, string(r))
}

// partialDatePattern accepts YYYY, YYYY-MM, and YYYY-MM-DD.
var partialDatePattern = regexp.MustCompile(`^([1-2][0-9]{3}-[0-1][0-9]-[0-3][0-9]|[1-2][0-9]{3}-[0-1][0-9]|[1-2][0-9]{3})$`)

// PartialDate is an ISO 8601 date where each section after the year is
// optional, e.g. "2014-06-29" or "2023-04".
type PartialDate string

// Validate checks the date shape.
func (d PartialDate) Validate() error {
	if d == "" {
		return nil
	}
	if !partialDatePattern.MatchString(string(d)) {
		return fmt.Errorf("%w: %q", ErrInvalidDate, string(d))
	}
	return nil
}

// UnmarshalJSON rejects malformed dates at decode time.
func (d *PartialDate) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s != "" && !partialDatePattern.MatchString(s) {
		return fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	*d = PartialDate(s)
	return nil
}

// Location is a postal location attached to a job.
type Location struct {
	// Address may hold multiple lines separated by \n.
	Address    string `json:"address,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	City       string `json:"city,omitempty"`
	// CountryCode is ISO 3166-1 alpha-2, e.g. US, AU, IN.
	CountryCode string `json:"countryCode,omitempty"`
	Region      string `json:"region,omitempty"`
}

// Skill is one professional skill with optional keywords.
type Skill struct {
	Name     string   `json:"name,omitempty"`
	Level    string   `json:"level,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

// Meta carries schema version and tooling configuration.
type Meta struct {
	// Canonical is a URL to the latest version of this document.
	Canonical string `json:"canonical,omitempty"`
	// Version follows semver, e.g. v1.0.0.
	Version      string `json:"version,omitempty"`
	LastModified string `json:"lastModified,omitempty"`
}

// JobDescription is the structured form of a job posting, extracted from
// free text by an LLM.
type JobDescription struct {
	Title            string      `json:"title,omitempty"`
	Company          string      `json:"company,omitempty"`
	Type             string      `json:"type,omitempty"`
	Date             PartialDate `json:"date,omitempty"`
	Description      string      `json:"description,omitempty"`
	Location         *Location   `json:"location,omitempty"`
	Remote           Remote      `json:"remote,omitempty"`
	Salary           string      `json:"salary,omitempty"`
	Experience       string      `json:"experience,omitempty"`
	Responsibilities []string    `json:"responsibilities,omitempty"`
	Qualifications   []string    `json:"qualifications,omitempty"`
	Skills           []Skill     `json:"skills,omitempty"`
	Meta             *Meta       `json:"meta,omitempty"`
}

// Validate checks the constrained fields.
func (j *JobDescription) Validate() error {
	if err := j.Date.Validate(); err != nil {
		return err
	}
	if j.Remote != "" {
		if err := j.Remote.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// jobSchemaJSON is the JSON schema embedded in the format instructions.
const jobSchemaJSON = `{
  "type": "object",
  "properties": {
    "title": {"type": "string", "description": "e.g. Web Developer"},
    "company": {"type": "string", "description": "e.g. Microsoft"},
    "type": {"type": "string", "description": "Full-time, part-time, contract, etc."},
    "date": {"type": "string", "pattern": "^([1-2][0-9]{3}-[0-1][0-9]-[0-3][0-9]|[1-2][0-9]{3}-[0-1][0-9]|[1-2][0-9]{3})$", "description": "ISO 8601 date; sections after the year are optional, e.g. 2014-06-29 or 2023-04"},
    "description": {"type": "string", "description": "A short description of the job"},
    "location": {
      "type": "object",
      "properties": {
        "address": {"type": "string"},
        "postalCode": {"type": "string"},
        "city": {"type": "string"},
        "countryCode": {"type": "string", "description": "ISO 3166-1 alpha-2, e.g. US, AU, IN"},
        "region": {"type": "string"}
      }
    },
    "remote": {"type": "string", "enum": ["Full", "Hybrid", "None"], "description": "the level of remote work available"},
    "salary": {"type": "string", "description": "e.g. 100000"},
    "experience": {"type": "string", "description": "Senior, Junior, or Mid-level"},
    "responsibilities": {"type": "array", "items": {"type": "string"}},
    "qualifications": {"type": "array", "items": {"type": "string"}},
    "skills": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "name": {"type": "string", "description": "e.g. Web Development"},
          "level": {"type": "string", "description": "e.g. Master"},
          "keywords": {"type": "array", "items": {"type": "string"}}
        }
      }
    },
    "meta": {
      "type": "object",
      "properties": {
        "canonical": {"type": "string", "format": "uri"},
        "version": {"type": "string", "description": "semver, e.g. v1.0.0"},
        "lastModified": {"type": "string"}
      }
    }
  }
}`

// FormatInstructions returns the instructions appended to extraction prompts
// so the model emits a JobDescription-shaped JSON object.
func FormatInstructions() string {
	return "The output should be formatted as a JSON instance that conforms to the JSON schema below.\n\n" +
		"Here is the output schema:\n```\n" + jobSchemaJSON + "\n```"
}
