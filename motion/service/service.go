package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/viant/afs"
	afsfile "github.com/viant/afs/file"
)

// Service reads a file, strips animation props and writes the result back in place.
type Service struct {
	fs        afs.Service
	stripper  *Stripper
	baseURL   string
	diffBytes int
	useText   bool
}

func NewService(cfg *Config) *Service {
	if cfg == nil {
		cfg = &Config{}
	}
	diffBytes := cfg.DiffBytes
	if diffBytes <= 0 {
		diffBytes = defaultDiffBytes
	}
	return &Service{
		fs:        afs.New(),
		stripper:  NewStripper(),
		baseURL:   strings.TrimSpace(cfg.BaseURL),
		diffBytes: diffBytes,
		useText:   !cfg.UseData,
	}
}

// UseTextField reports whether tool results go to the text content field.
func (s *Service) UseTextField() bool { return s.useText }

// Strip cleans the file at in.URL. The file is only written when the content changed
// and in.DryRun is false.
func (s *Service) Strip(ctx context.Context, in *StripInput) (*StripOutput, error) {
	if in == nil || strings.TrimSpace(in.URL) == "" {
		return nil, errors.New("url is required")
	}
	URL, err := s.resolve(strings.TrimSpace(in.URL))
	if err != nil {
		return nil, err
	}
	object, err := s.fs.Object(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to locate %v: %w", in.URL, err)
	}
	if object == nil {
		return nil, fmt.Errorf("failed to locate %v: not found", in.URL)
	}
	if object.IsDir() {
		return nil, fmt.Errorf("%v is a directory", in.URL)
	}
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read %v: %w", in.URL, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("failed to decode %v: content is not valid UTF-8", in.URL)
	}
	text := string(data)
	cleaned, report := s.stripper.Apply(text)
	out := &StripOutput{URL: in.URL, Edits: report.Edits, Changed: cleaned != text}
	if len(report.Removed) > 0 {
		out.Removed = report.Removed
	}
	if in.DryRun {
		limit := in.DiffBytes
		if limit <= 0 {
			limit = s.diffBytes
		}
		out.Diff = renderDiff(text, cleaned, limit)
		return out, nil
	}
	if !out.Changed {
		return out, nil
	}
	mode := object.Mode().Perm()
	if mode == 0 {
		mode = afsfile.DefaultFileOsMode
	}
	if err = s.fs.Upload(ctx, URL, mode, strings.NewReader(cleaned)); err != nil {
		return nil, fmt.Errorf("failed to write %v: %w", in.URL, err)
	}
	out.Written = true
	return out, nil
}

// resolve joins relative URLs with the base URL and rejects anything outside of it.
func (s *Service) resolve(URL string) (string, error) {
	if s.baseURL == "" {
		return URL, nil
	}
	base := cleanURL(s.baseURL)
	if !strings.Contains(URL, "://") && !filepath.IsAbs(URL) {
		URL = strings.TrimRight(base, "/") + "/" + URL
	}
	URL = cleanURL(URL)
	if URL != base && !strings.HasPrefix(URL, strings.TrimRight(base, "/")+"/") {
		return "", fmt.Errorf("%v is outside of %v", URL, s.baseURL)
	}
	return URL, nil
}

// cleanURL normalises the path part of a storage URL or local path.
func cleanURL(URL string) string {
	idx := strings.Index(URL, "://")
	if idx == -1 {
		return filepath.Clean(URL)
	}
	scheme, rest := URL[:idx+3], URL[idx+3:]
	host, location, _ := strings.Cut(rest, "/")
	return scheme + host + path.Clean("/"+location)
}
