package dto

type AskRequest struct {
	Query string `json:"query"`
}

type AskResponse struct {
	Answer   string   `json:"answer"`
	Files    []string `json:"files"`
	FileURLs []string `json:"file_urls"`
}
