package cli

import (
	"errors"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestMustGet(t *testing.T) {
	assert.Equal(t, 5, MustGet(5, nil))
	assert.Panics(t, func() {
		MustGet(0, errors.New("flag accessed but not defined"))
	})
}
