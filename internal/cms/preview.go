package cms

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

const screenshotEndpoint = "https://api.microlink.io"

// PreviewURL returns the screenshot service URL that renders link as an image.
func PreviewURL(link string) (string, error) {
	if !strings.HasPrefix(link, "http") {
		return "", fmt.Errorf("%w: %q", ErrInvalidLink, link)
	}
	return screenshotEndpoint + "?url=" + url.QueryEscape(link) + "&screenshot=true&embed=screenshot.url", nil
}

// SyncProjectPreview points the project's image at a screenshot of its link
// and returns the new image URL.
func (s *ContentStore) SyncProjectPreview(ctx context.Context, id string) (string, error) {
	projects, outcome, err := listRecords[Project](ctx, s.backend, CollectionProjects)
	if outcome == readUnavailable {
		return "", s.fail(ctx, "synchronizing preview for "+id, err)
	}

	var project *Project
	for i := range projects {
		if projects[i].ID == id {
			project = &projects[i]
			break
		}
	}
	if project == nil {
		return "", fmt.Errorf("project %s: %w", id, ErrNotFound)
	}

	previewURL, err := PreviewURL(project.Link)
	if err != nil {
		return "", fmt.Errorf("project %s: %w", id, err)
	}
	if err := s.UpdateProject(ctx, id, map[string]any{"imageUrl": previewURL}); err != nil {
		return "", err
	}
	s.state.AppendLog(ctx, "Preview synchronized for project: "+project.Title, LevelSuccess)
	return previewURL, nil
}
