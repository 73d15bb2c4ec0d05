package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var errMissing = stderrors.New("missing")

func serve(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, ProblemDetail) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/orders/:id", handler)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/9", nil))

	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return rec, problem
}

func TestChainedResponder_UsesFirstMatchingMapper(t *testing.T) {
	responder := NewChainedResponder("https://orders.example",
		func(err error) (ProblemDetail, bool) {
			if stderrors.Is(err, errMissing) {
				return NewNotFoundProblem("order", 9), true
			}
			return ProblemDetail{}, false
		},
		func(error) (ProblemDetail, bool) { return ErrBadRequest, true },
	)

	rec, problem := serve(t, func(c *gin.Context) { responder.RespondError(c, errMissing) })
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	require.Equal(t, "https://orders.example/problems/not-found", problem.Type)
	require.Equal(t, "/orders/9", problem.Instance)
	require.Equal(t, "order", problem.Extensions["resourceType"])
}

func TestResponder_HidesUnknownErrors(t *testing.T) {
	responder := NewChainedResponder("")
	rec, problem := serve(t, func(c *gin.Context) {
		responder.RespondError(c, stderrors.New("pq: connection refused on 10.0.0.4"))
	})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "internal error", problem.Detail)
	require.NotContains(t, rec.Body.String(), "10.0.0.4")
}

func TestResponder_PassesThroughProblemErrors(t *testing.T) {
	rec, problem := serve(t, func(c *gin.Context) {
		NewResponder("").RespondError(c, ErrInvalidState.WithDetail("order must be pending to checkout"))
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, TypeInvalidState, problem.Type)
	require.Equal(t, "order must be pending to checkout", problem.Detail)
}

func TestNewValidationProblem(t *testing.T) {
	problem := NewValidationProblem(map[string]string{"phone": "phone is required"})
	require.Equal(t, http.StatusBadRequest, problem.Status)
	require.Equal(t, map[string]string{"phone": "phone is required"}, problem.Extensions["fields"])
	require.Nil(t, ErrValidation.Extensions)

	require.Nil(t, NewValidationProblem(nil).Extensions)
}
