package classroom

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	gclassroom "google.golang.org/api/classroom/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/Peyu5h/edusynck-sub000/internal/config"
	"github.com/Peyu5h/edusynck-sub000/internal/course"
	"github.com/Peyu5h/edusynck-sub000/internal/user"
)

var (
	ErrUserNotFound          = errors.New("user not found for classroom integration")
	ErrDecryptionFailed      = errors.New("failed to decrypt user's google token")
	ErrMissingClassroomToken = errors.New("user has no google classroom tokens")
	ErrCourseNotLinked       = errors.New("course is not linked to google classroom")
)

type ClassroomService interface {
	SyncCourses(ctx context.Context, userID uuid.UUID) ([]SyncedCourse, error)
	ListMaterials(ctx context.Context, userID, courseID uuid.UUID) ([]Material, error)
	ImportRoster(ctx context.Context, userID, courseID uuid.UUID) (*RosterImportResult, error)
}

type classroomService struct {
	userRepo    user.UserRepository
	courseRepo  course.CourseRepository
	oauthConfig *oauth2.Config
}

func NewService(userRepo user.UserRepository, courseRepo course.CourseRepository) ClassroomService {
	return &classroomService{
		userRepo:    userRepo,
		courseRepo:  courseRepo,
		oauthConfig: user.GoogleOAuthConfig(),
	}
}

func (s *classroomService) getClassroomClient(ctx context.Context, userID uuid.UUID) (*gclassroom.Service, error) {
	log := config.WithContext(ctx)

	u, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	if u.EncryptedGoogleAccessToken == "" {
		return nil, ErrMissingClassroomToken
	}

	accessToken, err := config.Decrypt(u.EncryptedGoogleAccessToken)
	if err != nil {
		log.WithError(err).Error("Failed to decrypt access token")
		return nil, ErrDecryptionFailed
	}

	refreshToken := ""
	if u.EncryptedGoogleRefreshToken != "" {
		if refreshToken, err = config.Decrypt(u.EncryptedGoogleRefreshToken); err != nil {
			log.WithError(err).Error("Failed to decrypt refresh token")
			return nil, ErrDecryptionFailed
		}
	}

	token := &oauth2.Token{
		AccessToken:  accessToken,
		TokenType:    "Bearer",
		RefreshToken: refreshToken,
		Expiry:       time.Now().Add(-time.Hour),
	}

	tokenSource := s.oauthConfig.TokenSource(ctx, token)
	if _, err := tokenSource.Token(); err != nil {
		log.WithError(err).Error("Failed to refresh Google token")
		return nil, err
	}

	client := oauth2.NewClient(ctx, tokenSource)
	srv, err := gclassroom.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		log.WithError(err).Error("Failed to create Classroom service client")
		return nil, err
	}

	return srv, nil
}

func (s *classroomService) SyncCourses(ctx context.Context, userID uuid.UUID) ([]SyncedCourse, error) {
	log := config.WithContext(ctx)

	srv, err := s.getClassroomClient(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp, err := srv.Courses.List().CourseStates("ACTIVE").Context(ctx).Do()
	if err != nil {
		log.WithError(err).Error("Failed to list google classroom courses")
		return nil, err
	}

	synced := make([]SyncedCourse, 0, len(resp.Courses))
	for _, gc := range resp.Courses {
		c := &course.Course{
			GoogleCourseID: gc.Id,
			Name:           gc.Name,
			Section:        gc.Section,
			Room:           gc.Room,
			OwnerID:        userID,
		}
		if err := s.courseRepo.UpsertByGoogleID(c); err != nil {
			log.WithError(err).Warnf("Failed to upsert course %s, skipping", gc.Id)
			continue
		}
		if err := s.courseRepo.Enroll(c.ID, userID); err != nil {
			log.WithError(err).Warnf("Failed to enroll user in course %s", c.ID)
		}

		synced = append(synced, SyncedCourse{
			ID:             c.ID.String(),
			GoogleCourseID: gc.Id,
			Name:           gc.Name,
			Section:        gc.Section,
		})
	}

	log.Infof("Synced %d classroom courses for user %s", len(synced), userID)
	return synced, nil
}

func (s *classroomService) ListMaterials(ctx context.Context, userID, courseID uuid.UUID) ([]Material, error) {
	log := config.WithContext(ctx)

	c, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if c == nil || c.GoogleCourseID == "" {
		return nil, ErrCourseNotLinked
	}

	srv, err := s.getClassroomClient(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp, err := srv.Courses.CourseWorkMaterials.List(c.GoogleCourseID).Context(ctx).Do()
	if err != nil {
		if apiErr, ok := err.(*googleapi.Error); ok && apiErr.Code == 404 {
			log.Warnf("Course %s not found on Google Classroom", c.GoogleCourseID)
			return []Material{}, nil
		}
		log.WithError(err).Error("Failed to list course materials")
		return nil, err
	}

	materials := make([]Material, 0, len(resp.CourseWorkMaterial))
	for _, cwm := range resp.CourseWorkMaterial {
		m := Material{
			ID:          cwm.Id,
			Title:       cwm.Title,
			Description: cwm.Description,
		}
		if t, err := time.Parse(time.RFC3339, cwm.CreationTime); err == nil {
			m.CreatedAt = &t
		}
		for _, item := range cwm.Materials {
			switch {
			case item.DriveFile != nil && item.DriveFile.DriveFile != nil:
				m.DriveFileID = item.DriveFile.DriveFile.Id
				if m.Link == "" {
					m.Link = item.DriveFile.DriveFile.AlternateLink
				}
			case item.YoutubeVideo != nil:
				m.YouTubeID = item.YoutubeVideo.Id
				if m.Link == "" {
					m.Link = item.YoutubeVideo.AlternateLink
				}
			case item.Link != nil && m.Link == "":
				m.Link = item.Link.Url
			}
		}
		materials = append(materials, m)
	}

	return materials, nil
}

func (s *classroomService) ImportRoster(ctx context.Context, userID, courseID uuid.UUID) (*RosterImportResult, error) {
	log := config.WithContext(ctx)

	c, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if c == nil || c.GoogleCourseID == "" {
		return nil, ErrCourseNotLinked
	}

	srv, err := s.getClassroomClient(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp, err := srv.Courses.Students.List(c.GoogleCourseID).Context(ctx).Do()
	if err != nil {
		log.WithError(err).Error("Failed to list classroom roster")
		return nil, err
	}

	result := &RosterImportResult{}
	for _, st := range resp.Students {
		// Only students who already logged into the platform can be enrolled.
		local, err := s.userRepo.FindByGoogleID(st.UserId)
		if err != nil {
			return nil, err
		}
		if local == nil {
			result.Skipped++
			continue
		}
		if err := s.courseRepo.Enroll(courseID, local.ID); err != nil {
			log.WithError(err).Warnf("Failed to enroll student %s", local.ID)
			result.Skipped++
			continue
		}
		result.Enrolled++
	}

	log.Infof("Roster import for course %s: %d enrolled, %d skipped", courseID, result.Enrolled, result.Skipped)
	return result, nil
}
