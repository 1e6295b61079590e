package analyze

// Request represents the request body for repository analysis
type Request struct {
	RepoURL string `json:"repoUrl"`
}

// Response acknowledges a repository submitted for analysis
type Response struct {
	Message string `json:"message"`
	RepoURL string `json:"repoUrl"`
}
