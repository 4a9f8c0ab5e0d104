package create_quote

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/heavyrent/rental-service/internal/domain"
	"github.com/heavyrent/rental-service/internal/service/profiles"
)

type UseCase struct {
	quoteRepo QuoteRepository
	profiles  ProfileResolver
	alerter   AdminAlerter
	phone     domain.PhoneFormat
	logger    Logger
}

func NewUseCase(quoteRepo QuoteRepository, profiles ProfileResolver, alerter AdminAlerter, phone domain.PhoneFormat, logger Logger) *UseCase {
	return &UseCase{
		quoteRepo: quoteRepo,
		profiles:  profiles,
		alerter:   alerter,
		phone:     phone,
		logger:    logger,
	}
}

// Execute stores a quote request for unlisted equipment. session is nil for anonymous callers.
func (uc *UseCase) Execute(ctx context.Context, session *domain.Session, req *Request) (*QuoteResponse, error) {
	uc.logger.Info("CreateQuote: equipmentType=%q, signedIn=%t", req.EquipmentType, session != nil)

	// 1. Validate input
	if err := validateRequest(req, uc.phone); err != nil {
		uc.logger.Warn("CreateQuote: validation failed: %v", err)
		return nil, err
	}

	q := &domain.CustomQuote{
		Name:               strings.TrimSpace(req.Name),
		Phone:              req.Phone,
		Email:              strings.TrimSpace(req.Email),
		EquipmentType:      strings.TrimSpace(req.EquipmentType),
		ProjectDescription: strings.TrimSpace(req.ProjectDescription),
		Location:           strings.TrimSpace(req.Location),
		Duration:           strings.TrimSpace(req.Duration),
		BudgetRange:        req.BudgetRange,
		Status:             domain.QuotePending,
	}

	// 2. Link the profile of a signed-in caller
	if session != nil {
		p, err := uc.profiles.ResolveIdentity(ctx, session.UserID)
		switch {
		case err == nil:
			q.ProfileID = &p.ID
			if q.Email == "" {
				q.Email = session.Email
			}
		case errors.Is(err, profiles.ErrProfileNotFound):
			// Signed in but not signed up yet: keep the quote anonymous.
		default:
			return nil, err
		}
	}

	// 3. Persist
	created, err := uc.quoteRepo.Create(ctx, q)
	if err != nil {
		uc.logger.Error("CreateQuote: failed to store quote: %v", err)
		return nil, fmt.Errorf("%w: failed to store quote: %v", ErrInternal, err)
	}

	// 4. Alert the team
	uc.alerter.AlertAdmin(ctx,
		fmt.Sprintf("New custom quote request: %s", created.EquipmentType),
		fmt.Sprintf("%s (%s, %s) needs %s in %s for %s.\n\n%s",
			created.Name, created.Phone, created.Email, created.EquipmentType,
			created.Location, created.Duration, created.ProjectDescription),
	)

	uc.logger.Info("CreateQuote: created quote id=%s", created.ID)
	return fromDomainQuote(created), nil
}
