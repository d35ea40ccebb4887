package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Certification(t *testing.T) {
	data := map[string]any{
		"Nickname":  "dobi",
		"Code":      "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaab",
		"VerifyURL": "http://localhost:8080/api/users/1/verify?certificationCode=aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaab",
	}

	subject, text, html, err := Render(Certification, data)
	require.NoError(t, err)

	assert.NotEmpty(t, subject)
	assert.Contains(t, text, "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaab")
	assert.Contains(t, html, "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaab")
	assert.Contains(t, html, "certificationCode=")
}

func TestRender_FallsBackWhenNicknameEmpty(t *testing.T) {
	_, text, _, err := Render(Certification, map[string]any{
		"Code":      "c",
		"VerifyURL": "http://localhost/verify",
	})
	require.NoError(t, err)
	assert.Contains(t, text, "Hello there")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, _, _, err := Render("nope", nil)
	assert.Error(t, err)
}
