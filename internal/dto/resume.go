package dto

import "encoding/json"

// IngestFileResult is the per-file outcome of an upload batch. Failures of
// one file never abort its siblings, so each entry carries either an
// identifier or an error.
type IngestFileResult struct {
	FileName string `json:"file_name"`
	RecordID string `json:"record_id,omitempty"`
	Error    string `json:"error,omitempty"`
}

type IngestResponse struct {
	Results []IngestFileResult `json:"results"`
}

type ResumeListItem struct {
	Identifier string          `json:"identifier"`
	Content    json.RawMessage `json:"content"`
}

type ListResumesResponse struct {
	Total   int              `json:"total"`
	Records []ResumeListItem `json:"records"`
}
