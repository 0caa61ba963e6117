package jwtutil

import (
	"testing"

	"school-erp-service/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchoolTokenRoundTrip(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})

	token, err := GenerateSchoolToken(7, "Springfield Elementary", "springfield_elem")
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	require.NotNil(t, claims.SchoolID)
	assert.Equal(t, uint(7), *claims.SchoolID)
	assert.Equal(t, "Springfield Elementary", claims.SchoolName)
	assert.Equal(t, "springfield_elem", claims.LoginID)
	assert.False(t, claims.Super)
}

func TestSuperTokenRoundTrip(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})

	token, err := GenerateSuperToken("superadmin")
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, claims.Super)
	assert.Nil(t, claims.SchoolID)
	assert.Equal(t, "superadmin", claims.LoginID)
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "first-key", ExpirationHours: 1})
	token, err := GenerateSuperToken("superadmin")
	require.NoError(t, err)

	Initialize(&config.JWTConfig{SigningKey: "second-key", ExpirationHours: 1})
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})
	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}
