package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ccplan/internal/core/domain"
)

func TestParseLabel(t *testing.T) {
	tests := []struct {
		input string
		want  domain.Label
	}{
		{"//lib:base", domain.Label{Package: "lib", Name: "base"}},
		{"//third_party/zlib", domain.Label{Package: "third_party/zlib", Name: "zlib"}},
		{"//:root", domain.Label{Package: "", Name: "root"}},
		{"//a/b:c.d", domain.Label{Package: "a/b", Name: "c.d"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := domain.ParseLabel(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLabel_Invalid(t *testing.T) {
	for _, input := range []string{"", "lib:base", "//lib:", "//lib:a:b", "///lib:a", "//lib/:a", "//a//b:c", "//"} {
		t.Run(input, func(t *testing.T) {
			_, err := domain.ParseLabel(input)
			require.Error(t, err)
			assert.ErrorContains(t, err, "invalid label")
		})
	}
}

func TestLabel_String(t *testing.T) {
	l := domain.MustParseLabel("//third_party/zlib")

	assert.Equal(t, "//third_party/zlib:zlib", l.String())
	assert.Equal(t, "third_party/zlib", l.PackageFragment())
	assert.False(t, l.IsZero())
	assert.True(t, domain.Label{}.IsZero())

	data, err := json.Marshal(map[string]domain.Label{"target": l})
	require.NoError(t, err)
	assert.JSONEq(t, `{"target":"//third_party/zlib:zlib"}`, string(data))
}

func TestMustParseLabel_Panics(t *testing.T) {
	assert.Panics(t, func() { domain.MustParseLabel("nope") })
}
