package course

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Peyu5h/edusynck-sub000/internal/user"
)

type CourseRepository interface {
	UpsertByGoogleID(c *Course) error
	FindByID(id uuid.UUID) (*Course, error)
	ListByUser(userID uuid.UUID) ([]*Course, error)
	ListStudents(courseID uuid.UUID) ([]*user.User, error)
	Enroll(courseID, userID uuid.UUID) error
}

type courseRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) UpsertByGoogleID(c *Course) error {
	var existing Course
	err := r.db.First(&existing, "google_course_id = ?", c.GoogleCourseID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(c).Error
	}
	if err != nil {
		return err
	}

	c.ID = existing.ID
	return r.db.Save(c).Error
}

func (r *courseRepository) FindByID(id uuid.UUID) (*Course, error) {
	var c Course
	if err := r.db.First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *courseRepository) ListByUser(userID uuid.UUID) ([]*Course, error) {
	var courses []*Course
	if err := r.db.
		Joins("JOIN enrollments ON enrollments.course_id = courses.id").
		Where("enrollments.user_id = ?", userID).
		Order("courses.created_at DESC").
		Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) ListStudents(courseID uuid.UUID) ([]*user.User, error) {
	var students []*user.User
	if err := r.db.Model(&user.User{}).
		Joins("JOIN enrollments ON enrollments.user_id = users.id").
		Where("enrollments.course_id = ? AND users.role = ?", courseID, user.RoleStudent).
		Order("users.name ASC").
		Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

func (r *courseRepository) Enroll(courseID, userID uuid.UUID) error {
	err := r.db.Create(&Enrollment{CourseID: courseID, UserID: userID}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}
