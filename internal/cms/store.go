package cms

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ContentStore is the collection-oriented façade over the site's content.
//
// Reads never fail: a backend error degrades to an empty collection (or the
// default settings) and is reported on the process logger only. Writes return
// backend errors to the caller and also journal the failure.
type ContentStore struct {
	backend Backend
	state   *State
	bucket  AssetBucket
	logger  Logger
	clock   Clock
	idgen   IDGenerator
}

// NewContentStore creates a ContentStore with the provided dependencies.
// bucket may be nil, in which case UploadImage always fails.
func NewContentStore(backend Backend, state *State, bucket AssetBucket, logger Logger, clock Clock, idgen IDGenerator) *ContentStore {
	return &ContentStore{
		backend: backend,
		state:   state,
		bucket:  bucket,
		logger:  logger,
		clock:   clock,
		idgen:   idgen,
	}
}

// readOutcome says how a read resolved before it is collapsed to a plain value.
type readOutcome int

const (
	readFound readOutcome = iota
	readEmptyDefault
	readUnavailable
)

func (o readOutcome) String() string {
	switch o {
	case readFound:
		return "found"
	case readEmptyDefault:
		return "empty"
	default:
		return "unavailable"
	}
}

// listRecords reads and decodes a whole collection.
func listRecords[T any](ctx context.Context, b Backend, c Collection) ([]T, readOutcome, error) {
	docs, err := b.List(ctx, c)
	if err != nil {
		return nil, readUnavailable, fmt.Errorf("listing %s: %w", c, err)
	}
	recs, err := fromDocuments[T](docs)
	if err != nil {
		return nil, readUnavailable, fmt.Errorf("decoding %s: %w", c, err)
	}
	if len(recs) == 0 {
		return recs, readEmptyDefault, nil
	}
	return recs, readFound, nil
}

// degrade collapses a read to its public value, logging when the backend was unavailable.
func degrade[T any](s *ContentStore, c Collection, recs []T, outcome readOutcome, err error) []T {
	if outcome == readUnavailable {
		s.logger.Warn("read degraded to empty", "collection", string(c), "error", err)
		return []T{}
	}
	return recs
}

// readSettings resolves the settings singleton.
func (s *ContentStore) readSettings(ctx context.Context) (Settings, readOutcome, error) {
	recs, outcome, err := listRecords[Settings](ctx, s.backend, CollectionSettings)
	if outcome != readFound {
		return DefaultSettings(), outcome, err
	}
	return recs[0], readFound, nil
}

// GetSettings returns the site settings, or DefaultSettings when none are stored
// or the backend cannot be reached.
func (s *ContentStore) GetSettings(ctx context.Context) Settings {
	settings, outcome, err := s.readSettings(ctx)
	if outcome == readUnavailable {
		s.logger.Warn("settings read degraded to defaults", "error", err)
	}
	return settings
}

// UpdateSettings overwrites the settings singleton.
func (s *ContentStore) UpdateSettings(ctx context.Context, settings Settings) error {
	doc, err := toDocument(settings)
	if err != nil {
		return err
	}
	err = s.backend.Replace(ctx, CollectionSettings, SettingsID, doc)
	return s.journal(ctx, err, "updating settings", LevelInfo, "Site settings updated")
}

// GetSkills returns every skill.
func (s *ContentStore) GetSkills(ctx context.Context) []Skill {
	recs, outcome, err := listRecords[Skill](ctx, s.backend, CollectionSkills)
	return degrade(s, CollectionSkills, recs, outcome, err)
}

// AddSkill inserts one skill.
func (s *ContentStore) AddSkill(ctx context.Context, skill Skill) error {
	if err := skill.Validate(); err != nil {
		return err
	}
	err := s.insert(ctx, CollectionSkills, skill)
	return s.journal(ctx, err, "adding skill "+skill.Name, LevelSuccess, "Skill added: "+skill.Name)
}

// DeleteSkill removes the skill with the given id, if any.
func (s *ContentStore) DeleteSkill(ctx context.Context, id string) error {
	err := s.backend.DeleteByID(ctx, CollectionSkills, id)
	return s.journal(ctx, err, "deleting skill "+id, LevelWarn, "Skill deleted: ID "+id)
}

// GetProjects returns every project, newest date first.
func (s *ContentStore) GetProjects(ctx context.Context) []Project {
	recs, outcome, err := listRecords[Project](ctx, s.backend, CollectionProjects)
	recs = degrade(s, CollectionProjects, recs, outcome, err)
	slices.SortStableFunc(recs, func(a, b Project) int { return strings.Compare(b.Date, a.Date) })
	return recs
}

// AddProject inserts one project.
func (s *ContentStore) AddProject(ctx context.Context, project Project) error {
	if err := project.Validate(); err != nil {
		return err
	}
	err := s.insert(ctx, CollectionProjects, project)
	return s.journal(ctx, err, "adding project "+project.Title, LevelSuccess, "Project added: "+project.Title)
}

// DeleteProject removes the project with the given id, if any.
func (s *ContentStore) DeleteProject(ctx context.Context, id string) error {
	err := s.backend.DeleteByID(ctx, CollectionProjects, id)
	return s.journal(ctx, err, "deleting project "+id, LevelWarn, "Project deleted: ID "+id)
}

// projectUpdatableFields is the allow-list for UpdateProject.
var projectUpdatableFields = []string{"title", "description", "imageUrl", "link", "category"}

// UpdateProject sets the allow-listed fields present in fields on the project
// with the given id. Any other key is ignored. Returns ErrNotFound if there is
// no such project.
func (s *ContentStore) UpdateProject(ctx context.Context, id string, fields map[string]any) error {
	patch := Document{}
	for _, key := range projectUpdatableFields {
		v, ok := fields[key]
		if !ok {
			continue
		}
		str, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: project field %s must be a string", ErrInvalidRecord, key)
		}
		if key == "category" && !ProjectCategory(str).Valid() {
			return fmt.Errorf("%w: unknown project category %q", ErrInvalidRecord, str)
		}
		patch[key] = str
	}
	if len(patch) == 0 {
		s.logger.Debug("project update without updatable fields", "id", id)
		return nil
	}

	err := s.backend.UpdatePartial(ctx, CollectionProjects, id, patch)
	return s.journal(ctx, err, "updating project "+id, LevelInfo, "Project updated: ID "+id)
}

// GetBlogs returns every blog post, newest date first.
func (s *ContentStore) GetBlogs(ctx context.Context) []Blog {
	recs, outcome, err := listRecords[Blog](ctx, s.backend, CollectionBlogs)
	recs = degrade(s, CollectionBlogs, recs, outcome, err)
	slices.SortStableFunc(recs, func(a, b Blog) int { return strings.Compare(b.Date, a.Date) })
	return recs
}

// GetBlog returns the blog post with the given id.
func (s *ContentStore) GetBlog(ctx context.Context, id string) (Blog, bool) {
	for _, b := range s.GetBlogs(ctx) {
		if b.ID == id {
			return b, true
		}
	}
	return Blog{}, false
}

// AddBlog inserts one blog post.
func (s *ContentStore) AddBlog(ctx context.Context, blog Blog) error {
	if err := blog.Validate(); err != nil {
		return err
	}
	if blog.Tags == nil {
		blog.Tags = []string{}
	}
	err := s.insert(ctx, CollectionBlogs, blog)
	return s.journal(ctx, err, "adding blog "+blog.Title, LevelSuccess, "Blog post published: "+blog.Title)
}

// DeleteBlog removes the blog post with the given id, if any.
func (s *ContentStore) DeleteBlog(ctx context.Context, id string) error {
	err := s.backend.DeleteByID(ctx, CollectionBlogs, id)
	return s.journal(ctx, err, "deleting blog "+id, LevelWarn, "Blog post deleted: ID "+id)
}

// Stats counts the records shown on the dashboard.
func (s *ContentStore) Stats(ctx context.Context) Stats {
	return Stats{
		Blogs:    len(s.GetBlogs(ctx)),
		Projects: len(s.GetProjects(ctx)),
		Skills:   len(s.GetSkills(ctx)),
	}
}

// AddLog appends an entry to the diagnostic journal.
func (s *ContentStore) AddLog(ctx context.Context, message string, level LogLevel) {
	s.state.AppendLog(ctx, message, level)
}

// GetLogs returns the diagnostic journal, newest first. It never touches the backend.
func (s *ContentStore) GetLogs() []SystemLog {
	return s.state.Logs()
}

// FilterProjects returns the projects in category. An empty category or "all" keeps everything.
func FilterProjects(projects []Project, category string) []Project {
	if category == "" || strings.EqualFold(category, "all") {
		return projects
	}
	out := []Project{}
	for _, p := range projects {
		if string(p.Category) == category {
			out = append(out, p)
		}
	}
	return out
}

// FilterSkills returns the skills in category. An empty category or "all" keeps everything.
func FilterSkills(skills []Skill, category string) []Skill {
	if category == "" || strings.EqualFold(category, "all") {
		return skills
	}
	out := []Skill{}
	for _, sk := range skills {
		if string(sk.Category) == category {
			out = append(out, sk)
		}
	}
	return out
}

// insert encodes rec and hands it to the backend.
func (s *ContentStore) insert(ctx context.Context, c Collection, rec any) error {
	doc, err := toDocument(rec)
	if err != nil {
		return err
	}
	return s.backend.Insert(ctx, c, doc)
}

// journal records the outcome of a write. On failure the error is wrapped with
// action and returned; on success okMessage is journaled at okLevel.
func (s *ContentStore) journal(ctx context.Context, err error, action string, okLevel LogLevel, okMessage string) error {
	if err != nil {
		return s.fail(ctx, action, err)
	}
	s.logger.Info(okMessage)
	s.state.AppendLog(ctx, okMessage, okLevel)
	return nil
}

// fail journals a failed write and returns err wrapped with action.
func (s *ContentStore) fail(ctx context.Context, action string, err error) error {
	s.logger.Error("write failed", "action", action, "error", err)
	s.state.AppendLog(ctx, "Failed "+action+": "+rootCause(err), LevelError)
	return fmt.Errorf("%s: %w", action, err)
}

// rootCause returns the innermost error message for journal lines.
func rootCause(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
