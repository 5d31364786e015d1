package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raktsetu/raktsetu-api/pkg/jwt"
)

const secret = "secreto-de-prueba"

func TestGenerateAndParse(t *testing.T) {
	token, err := jwt.GenerateAccess(secret, "u-1", "donor", "raktsetu", 15)
	require.NoError(t, err)

	userID, role, tokenType, err := jwt.Parse(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
	assert.Equal(t, "donor", role)
	assert.Equal(t, jwt.TypeAccess, tokenType)
}

func TestRefreshTokenType(t *testing.T) {
	token, err := jwt.GenerateRefresh(secret, "u-1", "hospital", "raktsetu", 7)
	require.NoError(t, err)

	_, _, tokenType, err := jwt.Parse(secret, token)
	require.NoError(t, err)
	assert.Equal(t, jwt.TypeRefresh, tokenType)
}

func TestParse_SecretoIncorrecto(t *testing.T) {
	token, err := jwt.GenerateAccess(secret, "u-1", "donor", "raktsetu", 15)
	require.NoError(t, err)

	_, _, _, err = jwt.Parse("otro-secreto", token)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	// Con expiración negativa el token nace vencido.
	token, err := jwt.GenerateAccess(secret, "u-1", "donor", "raktsetu", -1)
	require.NoError(t, err)

	_, _, _, err = jwt.Parse(secret, token)
	assert.Error(t, err)
}

func TestGenerate_SecretoVacio(t *testing.T) {
	_, err := jwt.GenerateAccess("", "u-1", "donor", "raktsetu", 15)
	assert.Error(t, err)
}

func TestParse_TokenBasura(t *testing.T) {
	_, _, _, err := jwt.Parse(secret, "definitivamente-no-es-un-jwt")
	assert.Error(t, err)
}
