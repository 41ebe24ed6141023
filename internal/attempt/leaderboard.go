package attempt

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/Peyu5h/edusynck-sub000/internal/config"
	"github.com/Peyu5h/edusynck-sub000/internal/quiz"
	util "github.com/Peyu5h/edusynck-sub000/internal/utils"
)

func (s *attemptService) Leaderboard(ctx context.Context, quizID uuid.UUID) ([]LeaderboardEntry, error) {
	log := config.WithContext(ctx)

	q, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, quiz.ErrQuizNotFound
	}

	attempts, err := s.repo.ListCompletedByQuiz(quizID)
	if err != nil {
		log.WithError(err).Error("Failed to list completed attempts for leaderboard")
		return nil, err
	}

	return rankAttempts(attempts), nil
}

// rankAttempts orders by score descending, ties broken by earlier
// completion. Rank is the 1-based position; tied scores do not share a rank.
func rankAttempts(attempts []*StudentQuizAttempt) []LeaderboardEntry {
	sort.SliceStable(attempts, func(i, j int) bool {
		if attempts[i].Score != attempts[j].Score {
			return attempts[i].Score > attempts[j].Score
		}
		return attempts[i].CompletedAt.Before(*attempts[j].CompletedAt)
	})

	entries := make([]LeaderboardEntry, 0, len(attempts))
	for i, a := range attempts {
		entry := LeaderboardEntry{
			Rank:        i + 1,
			UserID:      a.UserID,
			Score:       a.Score,
			CompletedAt: *a.CompletedAt,
			Duration:    util.FormatDuration(a.CompletedAt.Sub(a.StartedAt)),
		}
		if a.User != nil {
			entry.Name = a.User.Name
		}
		entries = append(entries, entry)
	}
	return entries
}

func (s *attemptService) Progress(ctx context.Context, quizID uuid.UUID) (*ProgressView, error) {
	log := config.WithContext(ctx)

	q, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, quiz.ErrQuizNotFound
	}

	students, err := s.courseRepo.ListStudents(q.CourseID)
	if err != nil {
		log.WithError(err).Error("Failed to resolve course roster for progress")
		return nil, err
	}

	attempts, err := s.repo.ListByQuiz(quizID)
	if err != nil {
		log.WithError(err).Error("Failed to list attempts for progress")
		return nil, err
	}

	// Latest attempt per student, by most recent start.
	latest := make(map[uuid.UUID]*StudentQuizAttempt, len(attempts))
	for _, a := range attempts {
		current, ok := latest[a.UserID]
		if !ok || a.StartedAt.After(current.StartedAt) {
			latest[a.UserID] = a
		}
	}

	view := &ProgressView{
		Students: make([]StudentProgress, 0, len(students)),
	}

	for _, student := range students {
		row := StudentProgress{
			UserID: student.ID,
			Name:   student.Name,
			Status: "NOT_STARTED",
		}
		if a, ok := latest[student.ID]; ok {
			row.Status = string(a.Status)
			started := a.StartedAt
			row.StartedAt = &started
			if a.Status == StatusCompleted {
				score := a.Score
				row.Score = &score
				row.CompletedAt = a.CompletedAt
			}
		}
		view.Students = append(view.Students, row)
	}

	view.Stats = aggregateStats(latest)
	return view, nil
}

// aggregateStats is zero-valued, never NaN, when nothing was completed.
func aggregateStats(latest map[uuid.UUID]*StudentQuizAttempt) ProgressStats {
	stats := ProgressStats{AttemptedCount: len(latest)}

	sum := 0
	for _, a := range latest {
		if a.Status != StatusCompleted {
			continue
		}
		if stats.CompletedCount == 0 || a.Score > stats.HighestScore {
			stats.HighestScore = a.Score
		}
		if stats.CompletedCount == 0 || a.Score < stats.LowestScore {
			stats.LowestScore = a.Score
		}
		sum += a.Score
		stats.CompletedCount++
	}

	if stats.CompletedCount > 0 {
		stats.AverageScore = float64(sum) / float64(stats.CompletedCount)
	}
	return stats
}
