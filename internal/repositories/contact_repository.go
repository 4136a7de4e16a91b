package repositories

import (
	"fmt"
	"time"

	"tokoshop/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactRepository stores contact form submissions.
type ContactRepository interface {
	Create(msg *models.ContactMessage) error
	List(limit int) ([]models.ContactMessage, error)
}

// GORMContactRepository is a GORM implementation of ContactRepository.
type GORMContactRepository struct {
	db *gorm.DB
}

// NewGORMContactRepository creates a new instance of GORMContactRepository.
func NewGORMContactRepository(db *gorm.DB) *GORMContactRepository {
	return &GORMContactRepository{db: db}
}

// Create saves a contact message, assigning its ID and timestamp.
func (r *GORMContactRepository) Create(msg *models.ContactMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	if err := r.db.Create(msg).Error; err != nil {
		return fmt.Errorf("failed to create contact message: %w", err)
	}
	return nil
}

// List returns the newest messages first.
func (r *GORMContactRepository) List(limit int) ([]models.ContactMessage, error) {
	var msgs []models.ContactMessage
	if err := r.db.Order("created_at DESC").Limit(limit).Find(&msgs).Error; err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	return msgs, nil
}
