// Copyright (c) 2026 EasyBuy. All rights reserved.

package slug_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/easybuy/api/pkg/slug"
)

/*
TestFrom covers accent stripping, separator collapsing and truncation.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Summer Dress", "summer-dress"},
		{"Crème brûlée", "creme-brulee"},
		{"../../etc/passwd", "etc-passwd"},
		{"  --IMG_0001--  ", "img-0001"},
		{"日本語", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, slug.From(tt.in), tt.in)
	}

	long := slug.From(strings.Repeat("ab ", 40))
	assert.LessOrEqual(t, len(long), slug.MaxLength)
	assert.False(t, strings.HasSuffix(long, "-"))
}
