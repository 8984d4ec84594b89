package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmon/shelfmon/internal/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want Crontab
	}{
		{
			name: "five fields",
			expr: "30 4 * * 1",
			want: Crontab{Minute: "30", Hour: "4", DayOfMonth: "*", Month: "*", DayOfWeek: "1"},
		},
		{
			name: "extra whitespace",
			expr: "  0   0  *  *  *  ",
			want: Default(),
		},
		{
			name: "hourly shortcut",
			expr: "@hourly",
			want: Crontab{Minute: "0", Hour: "*", DayOfMonth: "*", Month: "*", DayOfWeek: "*"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse("0 0 * *")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))

	_, err = Parse("@fortnightly")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "@fortnightly")
}

func TestString_RoundTrip(t *testing.T) {
	c := Crontab{Minute: "*/15", Hour: "8-18", DayOfMonth: "*", Month: "*", DayOfWeek: "1-5"}

	parsed, err := Parse(c.String())
	require.NoError(t, err)
	assert.Equal(t, c, parsed)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Daily", Default().Describe())

	weekly, err := Parse("@weekly")
	require.NoError(t, err)
	assert.Equal(t, "Weekly", weekly.Describe())

	custom := Crontab{Minute: "5", Hour: "3", DayOfMonth: "*", Month: "*", DayOfWeek: "*"}
	assert.Equal(t, "5 3 * * *", custom.Describe())
}

func TestPresets_AllParseable(t *testing.T) {
	for _, p := range Presets() {
		got, err := Parse(p.Shortcut)
		require.NoError(t, err, p.Name)
		assert.Equal(t, p.Crontab, got)

		rt, err := Parse(p.Crontab.String())
		require.NoError(t, err)
		assert.Equal(t, p.Crontab, rt)
	}
}
