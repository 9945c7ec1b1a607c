package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMemberRegistered(t *testing.T) {
	at := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	data := NewEmailData("member.registered", "Ann", "a@x.io",
		WithTime(at),
		WithCompany("Acme", "https://acme.test/help"),
		WithLoginURL("https://acme.test/login"),
	)

	subject, text, html, err := Render(MemberRegistered, ToMap(data))
	require.NoError(t, err)
	assert.Equal(t, "Welcome to Acme, Ann", subject)
	assert.Contains(t, text, "a@x.io")
	assert.Contains(t, text, "01 March 2024, 09:30 UTC")
	assert.Contains(t, text, "https://acme.test/help")
	assert.Contains(t, html, `href="https://acme.test/login"`)
}

func TestRenderDefaults(t *testing.T) {
	subject, text, _, err := Render(MemberRegistered, NewEmailData("member.registered", "Ann", "a@x.io"))
	require.NoError(t, err)
	assert.Equal(t, "Welcome to our community, Ann", subject)
	assert.NotContains(t, text, "Need help?")

	_, text, _, err = Render(PasswordChanged, ToMap(NewEmailData("member.password_changed", "", "a@x.io")))
	require.NoError(t, err)
	assert.Contains(t, text, "Hi there,")
}

func TestRenderEscapesHTML(t *testing.T) {
	data := NewEmailData("member.registered", "<script>x</script>", "a@x.io")
	_, text, html, err := Render(MemberRegistered, data)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, text, "<script>x</script>")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, _, err := Render("nope", nil)
	assert.Error(t, err)
}

func TestDefaultFn(t *testing.T) {
	assert.Equal(t, "fb", defaultFn("fb", ""))
	assert.Equal(t, "fb", defaultFn("fb", "   "))
	assert.Equal(t, "fb", defaultFn("fb", nil))
	assert.Equal(t, "fb", defaultFn("fb", 0))
	assert.Equal(t, "v", defaultFn("fb", "v"))
	assert.Equal(t, 3, defaultFn("fb", 3))
}
