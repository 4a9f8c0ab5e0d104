package domain

import (
	"time"

	"github.com/google/uuid"
)

type QuoteStatus string

const (
	QuotePending QuoteStatus = "pending"
	QuoteQuoted  QuoteStatus = "quoted"
	QuoteClosed  QuoteStatus = "closed"
)

// CustomQuote is a request for equipment not listed in the catalog. ProfileID is set when the caller is signed in.
type CustomQuote struct {
	ID                 uuid.UUID
	ProfileID          *uuid.UUID
	Name               string
	Phone              string
	Email              string
	EquipmentType      string
	ProjectDescription string
	Location           string
	Duration           string
	BudgetRange        *string
	Status             QuoteStatus
	CreatedAt          time.Time
}
