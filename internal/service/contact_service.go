package service

import (
	"context"
	"strings"

	"github.com/spec-kit/insurance-crm/internal/domain"
	"github.com/spec-kit/insurance-crm/internal/repository"
)

// ContactService manages people at client companies.
type ContactService struct {
	contacts repository.ContactRepository
}

// ContactInput describes a contact payload. Nil optional fields keep their
// stored value on update.
type ContactInput struct {
	CompanyID int64
	FirstName string
	LastName  string
	Email     *string
	Phone     *string
	JobTitle  *string
	IsPrimary *bool
}

// NewContactService constructs the service.
func NewContactService(contacts repository.ContactRepository) *ContactService {
	return &ContactService{contacts: contacts}
}

func (s *ContactService) List(ctx context.Context, filter repository.ContactFilter, page domain.Page) (domain.PageResult[domain.Contact], error) {
	result, err := s.contacts.List(ctx, filter, page)
	if err != nil {
		return domain.PageResult[domain.Contact]{}, notFoundOr(err, "Contact")
	}
	return result, nil
}

func (s *ContactService) Get(ctx context.Context, id int64) (*domain.Contact, error) {
	contact, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Contact")
	}
	return contact, nil
}

func (s *ContactService) Create(ctx context.Context, input ContactInput) (*domain.Contact, error) {
	contact := &domain.Contact{}
	input.applyTo(contact)
	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, notFoundOr(err, "Contact")
	}
	return contact, nil
}

func (s *ContactService) Update(ctx context.Context, id int64, input ContactInput) (*domain.Contact, error) {
	contact, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Contact")
	}
	input.applyTo(contact)
	if err := s.contacts.Update(ctx, contact); err != nil {
		return nil, notFoundOr(err, "Contact")
	}
	return contact, nil
}

func (s *ContactService) Delete(ctx context.Context, id int64) error {
	if err := s.contacts.Delete(ctx, id); err != nil {
		return notFoundOr(err, "Contact")
	}
	return nil
}

func (in ContactInput) applyTo(c *domain.Contact) {
	if in.CompanyID != 0 {
		c.CompanyID = in.CompanyID
	}
	c.FirstName = strings.TrimSpace(in.FirstName)
	c.LastName = strings.TrimSpace(in.LastName)
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		c.Email = &email
	}
	if in.Phone != nil {
		c.Phone = in.Phone
	}
	if in.JobTitle != nil {
		c.JobTitle = in.JobTitle
	}
	if in.IsPrimary != nil {
		c.IsPrimary = *in.IsPrimary
	}
}
