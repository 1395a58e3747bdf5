package service

// defaultDiffBytes caps dry-run diffs when neither the input nor Config sets a limit.
const defaultDiffBytes = 8192

type Config struct {
	// BaseURL confines processed files to a directory or storage prefix.
	// Relative URLs are resolved against it. Examples: /srv/site, mem://localhost/site, gs://bucket/site
	BaseURL string `json:"baseURL,omitempty"`
	// DiffBytes caps the unified diff size for dry runs (default 8192).
	DiffBytes int `json:"diffBytes,omitempty"`
	// If true, return tool results in the structured content field instead of text.
	UseData bool `json:"useData,omitempty"`
}
