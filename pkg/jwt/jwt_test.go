package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/utility-backoffice-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "utility-backoffice-test"
)

func TestGenerateAndParse_ConIdentidadCompleta(t *testing.T) {
	in := pkgjwt.Identity{UserID: "U1", Username: "admin", Role: "ADMIN", PasswordChangeRequired: true}

	tok, err := pkgjwt.Generate(testSecret, in, testIssuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	out, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", pkgjwt.Identity{UserID: "U1"}, testIssuer, 60)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, pkgjwt.Identity{UserID: "U1", Role: "ADMIN"}, testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, pkgjwt.Identity{UserID: "U1", Role: "ADMIN"}, testIssuer, 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}

func TestParse_TokenMalformado(t *testing.T) {
	_, err := pkgjwt.Parse(testSecret, "token.invalido.aqui")
	assert.Error(t, err)
}
