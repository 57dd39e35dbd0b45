// Package extract - schema.go parses embedded JSON-LD job-posting records.
// A reliable structured-data record bypasses HTML scraping entirely.
package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// JobSchema is the normalized flat field set extracted from a JSON-LD
// JobPosting record. All fields are optional.
type JobSchema struct {
	Title          string   `json:"title,omitempty"`
	Description    string   `json:"description,omitempty"`
	Company        string   `json:"company,omitempty"`
	Location       string   `json:"location,omitempty"`
	EmploymentType string   `json:"employment_type,omitempty"`
	DatePosted     string   `json:"date_posted,omitempty"`
	Salary         string   `json:"salary,omitempty"`
	Experience     string   `json:"experience,omitempty"`
	Education      string   `json:"education,omitempty"`
	Skills         []string `json:"skills,omitempty"`
	Industry       string   `json:"industry,omitempty"`
}

// Text renders the schema as readable job description text, description
// first, with labeled metadata lines.
func (s *JobSchema) Text() string {
	var sb strings.Builder
	if s.Title != "" {
		sb.WriteString(s.Title + "\n\n")
	}
	if s.Company != "" {
		sb.WriteString("Company: " + s.Company + "\n")
	}
	if s.Location != "" {
		sb.WriteString("Location: " + s.Location + "\n")
	}
	if s.EmploymentType != "" {
		sb.WriteString("Employment Type: " + s.EmploymentType + "\n")
	}
	if s.Salary != "" {
		sb.WriteString("Salary: " + s.Salary + "\n")
	}
	if sb.Len() > 0 {
		sb.WriteString("\n")
	}
	sb.WriteString(s.Description)
	if len(s.Skills) > 0 {
		sb.WriteString("\n\nSkills: " + strings.Join(s.Skills, ", "))
	}
	return strings.TrimSpace(sb.String())
}

// ParseJobSchema scans all JSON-LD script blocks in the HTML for a JobPosting
// record and normalizes the first one found. It returns nil when no record
// with a non-empty description exists: metadata alone cannot feed downstream
// analysis, so a description-less record counts as a miss. Malformed blocks
// are skipped individually; the scan itself never fails.
func ParseJobSchema(htmlStr string) *JobSchema {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return nil
	}

	var schema *JobSchema
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var payload any
		if err := json.Unmarshal([]byte(s.Text()), &payload); err != nil {
			return true // malformed block, keep scanning
		}
		if record := findJobPosting(payload); record != nil {
			if candidate := normalizeJobPosting(record); candidate.Description != "" {
				schema = candidate
				return false // first record with a description wins
			}
		}
		return true
	})

	return schema
}

// findJobPosting locates a JobPosting object directly, inside an array, or
// inside an @graph wrapper.
func findJobPosting(payload any) map[string]any {
	switch t := payload.(type) {
	case map[string]any:
		if isJobPostingType(t["@type"]) {
			return t
		}
		if graph, ok := t["@graph"].([]any); ok {
			for _, item := range graph {
				if record := findJobPosting(item); record != nil {
					return record
				}
			}
		}
	case []any:
		for _, item := range t {
			if record := findJobPosting(item); record != nil {
				return record
			}
		}
	}
	return nil
}

func isJobPostingType(t any) bool {
	switch v := t.(type) {
	case string:
		return v == "JobPosting"
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && s == "JobPosting" {
				return true
			}
		}
	}
	return false
}

// normalizeJobPosting flattens the heterogeneous field shapes schema.org
// allows (plain strings, typed sub-objects, arrays) into the flat JobSchema.
func normalizeJobPosting(record map[string]any) *JobSchema {
	schema := &JobSchema{
		Title:          stringField(record["title"]),
		Description:    htmlToText(stringField(record["description"])),
		Company:        organizationName(record["hiringOrganization"]),
		Location:       locationText(record["jobLocation"]),
		EmploymentType: joinedStringField(record["employmentType"]),
		DatePosted:     stringField(record["datePosted"]),
		Salary:         salaryText(record["baseSalary"]),
		Experience:     requirementText(record["experienceRequirements"], "monthsOfExperience", "months of experience"),
		Education:      requirementText(record["educationRequirements"], "credentialCategory", ""),
		Skills:         skillList(record["skills"]),
		Industry:       joinedStringField(record["industry"]),
	}
	return schema
}

// stringField returns a scalar string, unwrapping common typed sub-objects
// by their name/value keys.
func stringField(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case map[string]any:
		for _, key := range []string{"name", "value", "@value"} {
			if s, ok := t[key].(string); ok {
				return strings.TrimSpace(s)
			}
		}
	case []any:
		if len(t) > 0 {
			return stringField(t[0])
		}
	}
	return ""
}

// joinedStringField flattens a string or list of strings into one
// comma-separated value.
func joinedStringField(v any) string {
	switch t := v.(type) {
	case []any:
		var parts []string
		for _, item := range t {
			if s := stringField(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return stringField(v)
	}
}

func organizationName(v any) string {
	return stringField(v)
}

// locationText flattens a jobLocation Place (possibly a list) into
// "locality, region, country" form.
func locationText(v any) string {
	if list, ok := v.([]any); ok {
		if len(list) == 0 {
			return ""
		}
		v = list[0]
	}

	place, ok := v.(map[string]any)
	if !ok {
		return stringField(v)
	}

	address, ok := place["address"].(map[string]any)
	if !ok {
		return stringField(place)
	}

	var parts []string
	for _, key := range []string{"addressLocality", "addressRegion", "addressCountry"} {
		if s := stringField(address[key]); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return stringField(address["streetAddress"])
	}
	return strings.Join(parts, ", ")
}

// salaryText flattens a baseSalary MonetaryAmount into a readable string.
func salaryText(v any) string {
	amount, ok := v.(map[string]any)
	if !ok {
		return stringField(v)
	}

	currency := stringField(amount["currency"])
	value := amount["value"]

	if quantity, ok := value.(map[string]any); ok {
		minVal := numberField(quantity["minValue"])
		maxVal := numberField(quantity["maxValue"])
		unit := stringField(quantity["unitText"])

		var s string
		switch {
		case minVal != "" && maxVal != "":
			s = minVal + "-" + maxVal
		case minVal != "":
			s = minVal
		case maxVal != "":
			s = maxVal
		default:
			s = numberField(quantity["value"])
		}
		if s == "" {
			return ""
		}
		if currency != "" {
			s = currency + " " + s
		}
		if unit != "" {
			s += " per " + strings.ToLower(unit)
		}
		return s
	}

	s := numberField(value)
	if s == "" {
		return ""
	}
	if currency != "" {
		return currency + " " + s
	}
	return s
}

func numberField(v any) string {
	switch t := v.(type) {
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	case string:
		return strings.TrimSpace(t)
	}
	return ""
}

// requirementText flattens experience/education requirements, which appear as
// plain strings or typed objects keyed by a quantity field.
func requirementText(v any, quantityKey, unitSuffix string) string {
	obj, ok := v.(map[string]any)
	if !ok {
		return joinedStringField(v)
	}
	if quantity := numberField(obj[quantityKey]); quantity != "" {
		if unitSuffix != "" {
			return quantity + " " + unitSuffix
		}
		return quantity
	}
	return stringField(obj)
}

// skillList flattens skills into an ordered sequence, splitting a single
// comma-separated string when needed.
func skillList(v any) []string {
	switch t := v.(type) {
	case string:
		var skills []string
		for _, part := range strings.Split(t, ",") {
			if part = strings.TrimSpace(part); part != "" {
				skills = append(skills, part)
			}
		}
		return skills
	case []any:
		var skills []string
		for _, item := range t {
			if s := stringField(item); s != "" {
				skills = append(skills, s)
			}
		}
		return skills
	}
	return nil
}

// htmlToText strips markup from a description field. JSON-LD descriptions
// frequently carry embedded HTML.
func htmlToText(s string) string {
	if !strings.Contains(s, "<") {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return FinalizeText(blockText(doc.Selection))
}
