package service

type StripInput struct {
	URL       string `json:"url" description:"file path or storage URL (file://, mem://, gs://, s3://)"`
	DryRun    bool   `json:"dryRun,omitempty" description:"report edits and diff without writing the file"`
	DiffBytes int    `json:"diffBytes,omitempty" description:"max diff size in bytes for dry runs (default 8192)"`
}

type StripOutput struct {
	URL     string         `json:"url"`
	Edits   int            `json:"edits"`
	Removed map[string]int `json:"removed,omitempty"`
	Changed bool           `json:"changed"`
	Written bool           `json:"written"`
	Diff    string         `json:"diff,omitempty"`
}
