package uid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsValid(t *testing.T) {
	id := New()
	assert.True(t, IsValid(id))
	assert.False(t, IsValid("not-a-uuid"))
}

func TestNewIsUnique(t *testing.T) {
	assert.NotEqual(t, New(), New())
}

func TestOrderNumber(t *testing.T) {
	n := OrderNumber()
	assert.True(t, strings.HasPrefix(n, "CMD-"))
	assert.Len(t, n, len("CMD-")+8)
	assert.Equal(t, strings.ToUpper(n), n)
	assert.NotEqual(t, n, OrderNumber())
}
