package services

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"tokoshop/internal/models"
	"tokoshop/internal/repositories"
)

// Publisher broadcasts a JSON payload. *rabbitmq.Client implements it.
type Publisher interface {
	PublishJSON(payload any) error
}

// ContactRecorder counts contact submissions by outcome.
type ContactRecorder interface {
	ContactMessage(outcome string)
}

// ContactService backs the contact page.
type ContactService struct {
	repo      repositories.ContactRepository
	publisher Publisher
	details   models.ContactDetails
	log       *zap.Logger
	recorder  ContactRecorder
}

// NewContactService creates a ContactService. publisher and recorder may be nil.
func NewContactService(repo repositories.ContactRepository, publisher Publisher, details models.ContactDetails, log *zap.Logger, recorder ContactRecorder) *ContactService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ContactService{
		repo:      repo,
		publisher: publisher,
		details:   details,
		log:       log,
		recorder:  recorder,
	}
}

// Details returns the static contact information.
func (s *ContactService) Details() models.ContactDetails {
	return s.details
}

// Submit stores a contact message and publishes it. A publish failure is
// logged but does not fail the submission: the message is already stored.
func (s *ContactService) Submit(msg *models.ContactMessage) error {
	msg.Normalize()

	if err := s.repo.Create(msg); err != nil {
		s.record("failed")
		return fmt.Errorf("failed to store contact message: %w", err)
	}
	s.record("stored")

	if s.publisher == nil {
		s.log.Debug("no publisher configured, skipping contact message publication", zap.String("id", msg.ID))
		return nil
	}
	if err := s.publisher.PublishJSON(msg); err != nil {
		s.log.Warn("failed to publish contact message", zap.String("id", msg.ID), zap.Error(err))
		s.record("publish_failed")
		return nil
	}
	s.record("published")
	return nil
}

// Recent returns up to limit stored messages, newest first.
func (s *ContactService) Recent(limit int) ([]models.ContactMessage, error) {
	msgs, err := s.repo.List(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	if msgs == nil {
		msgs = []models.ContactMessage{}
	}
	return msgs, nil
}

// HandleMessage processes a contact message delivered from the queue.
func (s *ContactService) HandleMessage(body []byte) error {
	var msg models.ContactMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("failed to decode contact message: %w", err)
	}
	s.log.Info("Received contact message",
		zap.String("id", msg.ID),
		zap.String("email", msg.Email),
		zap.Int("length", len(msg.Message)),
	)
	return nil
}

func (s *ContactService) record(outcome string) {
	if s.recorder != nil {
		s.recorder.ContactMessage(outcome)
	}
}
