package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/order-management-api/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrInvalidState signals a lifecycle guard rejected the operation.
	ErrInvalidState = errors.New("invalid order state")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	var verrs domain.ValidationErrors
	if errors.As(err, &verrs) || errors.Is(err, domain.ErrInvalidStatus) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, domain.ErrIllegalTransition) || errors.Is(err, domain.ErrNotPending) {
		return fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	return err
}
