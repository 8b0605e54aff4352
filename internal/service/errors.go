// Package service provides business logic implementation for the application.
package service

import (
	"errors"
	"fmt"

	"github.com/bulkwave/campaign-engine/internal/models"
)

var (
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrEventNotFound    = errors.New("webhook event not found")
)

// InvalidTransitionError rejects a lifecycle operation that is not allowed
// from the campaign's current status. The message names both sides of the
// disallowed move so operators can see why the call failed.
type InvalidTransitionError struct {
	Action  string
	Current models.CampaignStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s campaign in status %s", e.Action, e.Current)
}

// IsInvalidTransition reports whether err is an InvalidTransitionError.
func IsInvalidTransition(err error) bool {
	var ite *InvalidTransitionError
	return errors.As(err, &ite)
}
