package cms

import (
	"context"
	"fmt"
	"slices"
)

// Init seeds the default content on first start. Each collection is seeded
// only if it is empty, and only once per key-value store: after the seed
// marker is written, emptying a collection does not bring the defaults back.
func (s *ContentStore) Init(ctx context.Context) error {
	done, err := s.state.seeded(ctx)
	if err != nil {
		return err
	}
	if done {
		s.logger.Debug("content store already seeded")
		return nil
	}

	if err := s.seedSettings(ctx); err != nil {
		return s.fail(ctx, "initializing content store", err)
	}
	if err := seedCollection(ctx, s, CollectionSkills, DefaultSkills()); err != nil {
		return s.fail(ctx, "initializing content store", err)
	}
	if err := seedCollection(ctx, s, CollectionProjects, DefaultProjects()); err != nil {
		return s.fail(ctx, "initializing content store", err)
	}
	if err := seedCollection(ctx, s, CollectionBlogs, DefaultBlogs()); err != nil {
		return s.fail(ctx, "initializing content store", err)
	}

	if err := s.state.markSeeded(ctx); err != nil {
		return err
	}
	s.logger.Info("content store initialized")
	s.state.AppendLog(ctx, "Content store initialized", LevelSuccess)
	return nil
}

func (s *ContentStore) seedSettings(ctx context.Context) error {
	_, outcome, err := s.readSettings(ctx)
	switch outcome {
	case readUnavailable:
		return err
	case readFound:
		return nil
	}
	doc, err := toDocument(DefaultSettings())
	if err != nil {
		return err
	}
	return s.backend.Replace(ctx, CollectionSettings, SettingsID, doc)
}

// seedCollection inserts recs into an empty collection. Records are inserted in
// reverse so a prepending backend lists them in their declared order.
func seedCollection[T any](ctx context.Context, s *ContentStore, c Collection, recs []T) error {
	_, outcome, err := listRecords[T](ctx, s.backend, c)
	switch outcome {
	case readUnavailable:
		return err
	case readFound:
		return nil
	}
	for _, rec := range slices.Backward(recs) {
		if err := s.insert(ctx, c, rec); err != nil {
			return fmt.Errorf("seeding %s: %w", c, err)
		}
	}
	return nil
}
