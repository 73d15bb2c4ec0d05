package orderserver

import (
	"errors"
	"net/http"
	"strconv"

	orderapp "github.com/Apurer/order-management-api/internal/domains/orders/application"
	orderdomain "github.com/Apurer/order-management-api/internal/domains/orders/domain"
	orderports "github.com/Apurer/order-management-api/internal/domains/orders/ports"
	apierrors "github.com/Apurer/order-management-api/internal/shared/errors"
)

func newOrderResponder() *apierrors.ChainedResponder {
	return apierrors.NewChainedResponder("", mapOrderError)
}

// mapOrderError turns service errors into category-level problems. Messages
// come from the sentinels, never from the wrapped store error.
func mapOrderError(err error) (apierrors.ProblemDetail, bool) {
	var verrs orderdomain.ValidationErrors
	switch {
	case errors.Is(err, orderports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail("order not found"), true
	case errors.As(err, &verrs):
		return apierrors.NewValidationProblem(verrs.Fields()), true
	case errors.Is(err, orderdomain.ErrInvalidStatus):
		return apierrors.ErrValidation.WithDetail("unknown order status").
			WithExtension("allowed", orderdomain.Statuses()), true
	case errors.Is(err, orderapp.ErrInvalidDateRange):
		return apierrors.ErrValidation.WithDetail("startDate must not be after endDate"), true
	case errors.Is(err, orderapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail("invalid order input"), true
	case errors.Is(err, orderdomain.ErrNotPending):
		return apierrors.ErrInvalidState.WithDetail(orderdomain.ErrNotPending.Error()), true
	case errors.Is(err, orderdomain.ErrIllegalTransition), errors.Is(err, orderapp.ErrInvalidState):
		return apierrors.ErrInvalidState.WithDetail("order status transition is not allowed"), true
	default:
		return apierrors.ProblemDetail{}, false
	}
}

// checkoutProblem reports every checkout failure as 400, keeping the
// category-level detail of mapped errors.
func checkoutProblem(responder *apierrors.ChainedResponder, err error) apierrors.ProblemDetail {
	problem, ok := responder.Map(err)
	if !ok {
		return apierrors.ErrBadRequest.WithDetail("checkout failed")
	}
	if problem.Status != http.StatusBadRequest {
		return apierrors.ErrBadRequest.WithDetail(problem.Detail)
	}
	return problem
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
