package validate_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cancunbooking/booking-service/internal/model"
	"github.com/cancunbooking/booking-service/pkg/validate"
)

func TestCustomValidator_FutureRule(t *testing.T) {
	t.Parallel()
	cv := validate.NewCustomValidator()

	type req struct {
		StartDate *model.Date `json:"startDate" validate:"required,future"`
	}

	past := model.NewDate(2020, time.January, 10)
	future := model.DateOf(time.Now().AddDate(0, 0, 2))
	today := model.DateOf(time.Now())

	require.Error(t, cv.Validate(req{}))
	require.Error(t, cv.Validate(req{StartDate: &past}))
	require.Error(t, cv.Validate(req{StartDate: &today}), "today is not a future date")
	require.NoError(t, cv.Validate(req{StartDate: &future}))
}

func TestFields_Messages(t *testing.T) {
	t.Parallel()
	cv := validate.NewCustomValidator()

	type req struct {
		UserID    *int64      `json:"userId" validate:"required"`
		StartDate *model.Date `json:"startDate" validate:"required,future"`
	}

	err := cv.Validate(req{})
	require.Error(t, err)

	list := validate.Fields(err)
	require.Equal(t, []validate.FieldError{
		{Field: "userId", Message: "User id cannot be null"},
		{Field: "startDate", Message: "Start date cannot be null"},
	}, list.Errors)
}
