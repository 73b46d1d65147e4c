package planlog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbrown/janus-lift/internal/planlog"
)

func TestParseVerbosity(t *testing.T) {
	cases := []struct {
		in      string
		want    planlog.Verbosity
		wantErr bool
	}{
		{"quiet", planlog.Quiet, false},
		{"normal", planlog.Normal, false},
		{"", planlog.Normal, false},
		{"debug", planlog.Debug, false},
		{"chatty", planlog.Normal, true},
	}
	for _, c := range cases {
		got, err := planlog.ParseVerbosity(c.in)
		assert.Equal(t, c.want, got)
		if c.wantErr {
			assert.Error(t, err)
		} else {
			assert.NoError(t, err)
		}
	}
}

func TestLoggerBuildsAtEveryVerbosity(t *testing.T) {
	for _, v := range []planlog.Verbosity{planlog.Quiet, planlog.Normal, planlog.Debug} {
		log := planlog.New(v, false)
		require.NotNil(t, log)
		log.Infof("hello %s", "world")
		log.Banner("search", 1, 2, 3.5)
		log.Table("plan", []string{"step"}, [][]string{{"1"}})
		log.Sync()
	}
}
