package validation_test

import (
	"errors"
	"smartsociety/backend/internal/localization"
	"smartsociety/backend/internal/validation"
	"testing"

	"github.com/stretchr/testify/assert"
)

type form struct {
	Name  string `json:"name" binding:"required,max=5"`
	Email string `json:"email" binding:"required,email"`
}

var formMessages = validation.Messages{
	"name.required": localization.NewMessage("name.required"),
	"name":          localization.NewMessage("name.invalid"),
}

func TestStruct(t *testing.T) {
	fields := validation.Struct(form{Name: "Ayesha Khan", Email: "nope"}, formMessages)

	assert.Len(t, fields, 2)
	assert.Equal(t, "name.invalid", fields["name"].Key)
	assert.Equal(t, "validation.invalid", fields["email"].Key)

	fields = validation.Struct(form{Email: "a@b.co"}, formMessages)
	assert.Equal(t, "name.required", fields["name"].Key)

	assert.Empty(t, validation.Struct(form{Name: "Ali", Email: "a@b.co"}, formMessages))
}

func TestCollect_IgnoresOtherErrors(t *testing.T) {
	fields := map[string]localization.Message{}
	assert.False(t, validation.Collect(errors.New("unexpected EOF"), nil, fields))
	assert.Empty(t, fields)
	assert.False(t, validation.IsFailure(errors.New("unexpected EOF")))
}

func TestEmail(t *testing.T) {
	assert.True(t, validation.Email("a@b.co"))
	assert.False(t, validation.Email("not-an-email"))
	assert.False(t, validation.Email(""))
}
