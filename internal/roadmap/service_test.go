package roadmap

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

type fakeRepo struct {
	created []*Roadmap
	byUser  map[uuid.UUID][]*Roadmap
}

func (f *fakeRepo) Create(r *Roadmap) error {
	f.created = append(f.created, r)
	return nil
}

func (f *fakeRepo) FindByID(id uuid.UUID) (*Roadmap, error) { return nil, nil }

func (f *fakeRepo) ListByUser(userID uuid.UUID) ([]*Roadmap, error) {
	return f.byUser[userID], nil
}

func (f *fakeRepo) Delete(id uuid.UUID) (int64, error) { return 0, nil }

type fakeProvider struct {
	milestones []Milestone
	err        error
	lastUser   string
}

func (f *fakeProvider) SendPrompt(ctx context.Context, system, user string) ([]Milestone, error) {
	f.lastUser = user
	return f.milestones, f.err
}

func TestGenerate(t *testing.T) {
	milestones := []Milestone{
		{Week: 1, Title: "Foundations", Topics: []string{"variables", "control flow"}},
		{Week: 2, Title: "Data structures", Topics: []string{"slices", "maps"}},
	}

	t.Run("PersistsGeneratedPlan", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := NewService(repo, &fakeProvider{milestones: milestones})

		r, err := svc.Generate(context.Background(), GenerateRoadmapDTO{
			UserID: uuid.New(),
			Goal:   "learn Go",
			Weeks:  2,
		})
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if len(repo.created) != 1 {
			t.Fatalf("expected one persisted roadmap, got %d", len(repo.created))
		}
		if got := r.Milestones(); len(got) != 2 || got[0].Title != "Foundations" {
			t.Errorf("milestones not round-tripped through content column: %+v", got)
		}
	})

	t.Run("DefaultsWeeks", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := NewService(repo, &fakeProvider{milestones: milestones})

		r, err := svc.Generate(context.Background(), GenerateRoadmapDTO{
			UserID: uuid.New(),
			Goal:   "learn Go",
		})
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if r.Weeks != defaultWeeks {
			t.Errorf("weeks should default to %d, got %d", defaultWeeks, r.Weeks)
		}
	})

	t.Run("RequiresGoal", func(t *testing.T) {
		svc := NewService(&fakeRepo{}, &fakeProvider{milestones: milestones})

		_, err := svc.Generate(context.Background(), GenerateRoadmapDTO{UserID: uuid.New()})
		if !errors.Is(err, ErrValidation) {
			t.Errorf("expected ErrValidation, got: %v", err)
		}
	})

	t.Run("ProviderFailure", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := NewService(repo, &fakeProvider{err: ErrGeneration})

		_, err := svc.Generate(context.Background(), GenerateRoadmapDTO{UserID: uuid.New(), Goal: "learn Go"})
		if !errors.Is(err, ErrGeneration) {
			t.Errorf("expected ErrGeneration, got: %v", err)
		}
		if len(repo.created) != 0 {
			t.Error("failed generation should not persist a roadmap")
		}
	})
}
