package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cancunbooking/booking-service/internal/model"
)

func TestDate_DaysUntil(t *testing.T) {
	t.Parallel()
	start := model.NewDate(2023, time.January, 10)

	require.Equal(t, 0, start.DaysUntil(start))
	require.Equal(t, 2, start.DaysUntil(model.NewDate(2023, time.January, 12)))
	require.Equal(t, -2, model.NewDate(2023, time.January, 12).DaysUntil(start))
	// month boundary
	require.Equal(t, 22, start.DaysUntil(model.NewDate(2023, time.February, 1)))
}

func TestDate_AddDays(t *testing.T) {
	t.Parallel()
	require.Equal(t,
		model.NewDate(2023, time.February, 1),
		model.NewDate(2023, time.January, 31).AddDays(1))
}

func TestDate_JSON(t *testing.T) {
	t.Parallel()

	var d model.Date
	require.NoError(t, json.Unmarshal([]byte(`"2023-01-10"`), &d))
	require.Equal(t, model.NewDate(2023, time.January, 10), d)

	out, err := json.Marshal(d)
	require.NoError(t, err)
	require.Equal(t, `"2023-01-10"`, string(out))

	require.Error(t, json.Unmarshal([]byte(`"10/01/2023"`), &d))
	require.Error(t, json.Unmarshal([]byte(`"2023-01-10T00:00:00Z"`), &d))
}
