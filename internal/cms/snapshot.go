package cms

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"
)

// SnapshotVersion is the format version written by Export.
const SnapshotVersion = 1

// Snapshot is a full copy of the site content, used to move content between
// backends. The session and journal are not part of it.
type Snapshot struct {
	Version    int       `json:"version"`
	ExportedAt time.Time `json:"exportedAt"`
	Settings   Settings  `json:"settings"`
	Skills     []Skill   `json:"skills"`
	Projects   []Project `json:"projects"`
	Blogs      []Blog    `json:"blogs"`
}

// Export reads every collection. Unlike the Get operations it fails when the
// backend cannot be read, so an outage never produces an empty export.
func (s *ContentStore) Export(ctx context.Context) (Snapshot, error) {
	settings, outcome, err := s.readSettings(ctx)
	if outcome == readUnavailable {
		return Snapshot{}, fmt.Errorf("exporting settings: %w", err)
	}
	skills, outcome, err := listRecords[Skill](ctx, s.backend, CollectionSkills)
	if outcome == readUnavailable {
		return Snapshot{}, fmt.Errorf("exporting skills: %w", err)
	}
	projects, outcome, err := listRecords[Project](ctx, s.backend, CollectionProjects)
	if outcome == readUnavailable {
		return Snapshot{}, fmt.Errorf("exporting projects: %w", err)
	}
	blogs, outcome, err := listRecords[Blog](ctx, s.backend, CollectionBlogs)
	if outcome == readUnavailable {
		return Snapshot{}, fmt.Errorf("exporting blogs: %w", err)
	}

	s.logger.Info("content exported", "skills", len(skills), "projects", len(projects), "blogs", len(blogs))
	return Snapshot{
		Version:    SnapshotVersion,
		ExportedAt: s.clock.Now().UTC(),
		Settings:   settings,
		Skills:     skills,
		Projects:   projects,
		Blogs:      blogs,
	}, nil
}

// Import overwrites the settings with snap's and inserts every record whose id
// is not present yet. Existing records are left alone. Returns the number of
// records inserted.
func (s *ContentStore) Import(ctx context.Context, snap Snapshot) (int, error) {
	if snap.Version != SnapshotVersion {
		return 0, fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}
	for _, sk := range snap.Skills {
		if err := sk.Validate(); err != nil {
			return 0, err
		}
	}
	for _, p := range snap.Projects {
		if err := p.Validate(); err != nil {
			return 0, err
		}
	}
	for _, b := range snap.Blogs {
		if err := b.Validate(); err != nil {
			return 0, err
		}
	}

	doc, err := toDocument(snap.Settings)
	if err != nil {
		return 0, err
	}
	if err := s.backend.Replace(ctx, CollectionSettings, SettingsID, doc); err != nil {
		return 0, s.fail(ctx, "importing settings", err)
	}

	total := 0
	n, err := importRecords(ctx, s, CollectionSkills, snap.Skills, func(r Skill) string { return r.ID })
	total += n
	if err != nil {
		return total, s.fail(ctx, "importing skills", err)
	}
	n, err = importRecords(ctx, s, CollectionProjects, snap.Projects, func(r Project) string { return r.ID })
	total += n
	if err != nil {
		return total, s.fail(ctx, "importing projects", err)
	}
	n, err = importRecords(ctx, s, CollectionBlogs, snap.Blogs, func(r Blog) string { return r.ID })
	total += n
	if err != nil {
		return total, s.fail(ctx, "importing blogs", err)
	}

	s.logger.Info("content imported", "records", total)
	s.state.AppendLog(ctx, fmt.Sprintf("Content imported: %d records", total), LevelSuccess)
	return total, nil
}

func importRecords[T any](ctx context.Context, s *ContentStore, c Collection, recs []T, id func(T) string) (int, error) {
	existing, outcome, err := listRecords[T](ctx, s.backend, c)
	if outcome == readUnavailable {
		return 0, err
	}
	seen := make(map[string]bool, len(existing))
	for _, r := range existing {
		seen[id(r)] = true
	}

	n := 0
	for _, rec := range slices.Backward(recs) {
		if seen[id(rec)] {
			continue
		}
		if err := s.insert(ctx, c, rec); err != nil && !errors.Is(err, ErrDuplicateID) {
			return n, fmt.Errorf("inserting %s %s: %w", c, id(rec), err)
		}
		seen[id(rec)] = true
		n++
	}
	return n, nil
}
