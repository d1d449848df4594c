package service

import (
	"net/url"
	"strings"
)

// ProvenanceResolver maps record identifiers cited in an answer to
// download references. Identity stays in the request header, never in the
// URL, so references are safe to log and share. Existence is checked by
// the download endpoint itself, not here.
type ProvenanceResolver struct {
	baseURL string
}

func NewProvenanceResolver(baseURL string) *ProvenanceResolver {
	return &ProvenanceResolver{
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (r *ProvenanceResolver) Resolve(ids []string) []string {
	urls := make([]string, len(ids))
	for i, id := range ids {
		urls[i] = r.baseURL + "/api/v1/resumes/" + url.PathEscape(id) + "/download"
	}
	return urls
}
